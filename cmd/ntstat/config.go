package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type config struct {
	// Lenient collects unrecognized lines instead of failing on them.
	Lenient bool
	// LogLevel is a zerolog level name; "info" when unset.
	LogLevel string
}

type fileConfig struct {
	Lenient  bool   `toml:"lenient"`
	LogLevel string `toml:"log_level"`
}

func defaultConfig() config {
	return config{LogLevel: "info"}
}

// loadConfig overlays the TOML file at path over the defaults. Only keys
// actually present in the file override anything.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("lenient") {
		cfg.Lenient = raw.Lenient
	}
	if meta.IsDefined("log_level") {
		level := strings.TrimSpace(raw.LogLevel)
		if level != "" {
			cfg.LogLevel = level
		}
	}
	return cfg, nil
}
