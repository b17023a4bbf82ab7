package main

import "autogypi/internal/cli"

func main() {
	cli.Execute()
}
