package ports

import "autogypi/internal/types"

type ConfigPort interface {
	LoadConfig(path string) (types.Config, error)
	SaveConfig(path string, config types.Config) error
}
