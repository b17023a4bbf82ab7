package ports

import "autogypi/internal/types"

type OutputPort interface {
	WriteGypi(path string, gypi types.Gypi, header string) error
	WriteBinding(path string, gyp types.BindingGyp) error
}
