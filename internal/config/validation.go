package config

import (
	"fmt"
	"strings"

	derrors "github.com/mthadley/magnet-plugin-sass/internal/foundation/errors"
)

// Validate checks the configuration for values the plugin cannot act on.
func (c *Config) Validate() error {
	sass := c.Magnet.PluginsConfig.Sass
	for i, src := range sass.Src {
		if strings.TrimSpace(src) == "" {
			return validationError(fmt.Errorf("src[%d] is empty", i), "magnet.pluginsConfig.sass.src")
		}
	}
	for i, p := range sass.IncludePaths {
		if strings.TrimSpace(p) == "" {
			return validationError(fmt.Errorf("includePaths[%d] is empty", i), "magnet.pluginsConfig.sass.includePaths")
		}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return validationError(fmt.Errorf("port %d out of range", c.Server.Port), "server.port")
	}
	return nil
}

func validationError(err error, field string) error {
	return derrors.WrapError(err, derrors.CategoryConfig, "invalid configuration").
		Fatal().
		WithContext("field", field).
		Build()
}
