package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"autogypi/internal/types"
)

// ValidateConfig rejects configurations whose lists contain blank
// entries. path is only used in messages.
func ValidateConfig(path string, config types.Config) error {
	lists := []struct {
		field  string
		values []string
	}{
		{field: "dependencies", values: config.Dependencies},
		{field: "includes", values: config.Includes},
		{field: "topIncludes", values: config.TopIncludes},
		{field: "includeDirs", values: config.IncludeDirs},
	}
	for _, list := range lists {
		for index, value := range list.values {
			if strings.TrimSpace(value) == "" {
				return errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("empty entry %s[%d] in configuration file %s", list.field, index, path))
			}
		}
	}
	return nil
}
