package config

// DefaultPort is the HTTP port used when server.port is unset.
const DefaultPort = 3000

func (c *Config) normalize() error {
	var err error
	sass := &c.Magnet.PluginsConfig.Sass
	if sass.OutputStyle, err = outputStyleNormalizer.Parse(string(sass.OutputStyle)); err != nil {
		return validationError(err, "magnet.pluginsConfig.sass.outputStyle")
	}
	if sass.Compiler, err = compilerNormalizer.Parse(string(sass.Compiler)); err != nil {
		return validationError(err, "magnet.pluginsConfig.sass.compiler")
	}
	if c.Logging.Level, err = logLevelNormalizer.Parse(string(c.Logging.Level)); err != nil {
		return validationError(err, "logging.level")
	}
	if c.Logging.Format, err = logFormatNormalizer.Parse(string(c.Logging.Format)); err != nil {
		return validationError(err, "logging.format")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
}
