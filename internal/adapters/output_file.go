package adapters

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"autogypi/internal/ports"
	"autogypi/internal/types"
)

// OutputFileAdapter writes generated gyp files as tab-indented JSON, which
// gyp reads as a Python literal.
type OutputFileAdapter struct{}

func NewOutputFileAdapter() OutputFileAdapter {
	return OutputFileAdapter{}
}

func (a OutputFileAdapter) WriteGypi(path string, gypi types.Gypi, header string) error {
	if gypi == nil {
		gypi = types.Gypi{}
	}
	data, err := encodeJSON(gypi)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to encode gypi for %s", path)).
			WithCause(err)
	}
	return writeFile(path, append([]byte(header), data...))
}

func (a OutputFileAdapter) WriteBinding(path string, gyp types.BindingGyp) error {
	data, err := encodeJSON(gyp)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to encode gyp template for %s", path)).
			WithCause(err)
	}
	return writeFile(path, data)
}

var _ ports.OutputPort = OutputFileAdapter{}
