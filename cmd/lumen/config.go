package main

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/alecthomas/lumen/analyser"
)

// Config is loaded from a YAML file with -config.
//
//	builtins: [print, range, len]
//	logging:
//	  level: debug
//	  development: true
type Config struct {
	Builtins []string      `yaml:"builtins"`
	Logging  LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func defaultConfig() Config {
	return Config{
		Builtins: analyser.DefaultBuiltins,
		Logging:  LoggingConfig{Level: "warn"},
	}
}

func loadConfig(path string, config *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	if err := yaml.Unmarshal(b, config); err != nil {
		return errors.Wrapf(err, "%s", path)
	}
	return nil
}

func (c LoggingConfig) build() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return nil, errors.Wrap(err, "logging level")
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func (c Config) options(log *zap.Logger) []analyser.Option {
	return []analyser.Option{
		analyser.WithLogger(log),
		analyser.WithBuiltins(c.Builtins...),
	}
}
