package app

import (
	"os"

	"autogypi/internal/adapters"
	"autogypi/internal/ports"
)

type Service struct {
	Configs  ports.ConfigPort
	FS       ports.FileSystemPort
	Output   ports.OutputPort
	Resolver ports.ResolverPort
	Getwd    func() (string, error)
}

func NewService(nodePaths []string) Service {
	return Service{
		Configs:  adapters.NewConfigFileAdapter(),
		FS:       adapters.NewOSFileSystemAdapter(),
		Output:   adapters.NewOutputFileAdapter(),
		Resolver: adapters.NewNodeResolverAdapter(nodePaths),
		Getwd:    os.Getwd,
	}
}
