// Package config loads serving options from the environment and an
// optional YAML options file. Environment variables win over the file,
// which wins over the defaults.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/addonkit-project/addonkit-go/pkg/router"
)

// Environment variables understood by the loader.
const (
	EnvBindAddress = "ADDONKIT_BIND_ADDRESS"
	EnvPort        = "ADDONKIT_PORT"
	EnvCacheMaxAge = "ADDONKIT_CACHE_MAX_AGE"
	EnvOptionsFile = "ADDONKIT_OPTIONS_FILE"
	EnvLogLevel    = "ADDONKIT_LOG_LEVEL"
)

// optionsFile is the YAML shape of the options file.
type optionsFile struct {
	BindAddress string `yaml:"bindAddress"`
	Port        int    `yaml:"port"`
	CacheMaxAge *int   `yaml:"cacheMaxAge"`
	LandingFile string `yaml:"landingFile"`
}

// LoadServerOptions assembles the serving options: defaults, then the
// options file named by ADDONKIT_OPTIONS_FILE (if any), then environment
// overrides.
func LoadServerOptions() (router.ServerOptions, error) {
	opts := router.DefaultServerOptions()

	if path := os.Getenv(EnvOptionsFile); path != "" {
		if err := applyOptionsFile(&opts, path); err != nil {
			return router.ServerOptions{}, err
		}
	}

	if addr := os.Getenv(EnvBindAddress); addr != "" {
		opts.BindAddress = addr
	}
	if port := os.Getenv(EnvPort); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return router.ServerOptions{}, fmt.Errorf("invalid %s %q: %w", EnvPort, port, err)
		}
		opts.Port = p
	}
	if maxAge := os.Getenv(EnvCacheMaxAge); maxAge != "" {
		m, err := strconv.Atoi(maxAge)
		if err != nil {
			return router.ServerOptions{}, fmt.Errorf("invalid %s %q: %w", EnvCacheMaxAge, maxAge, err)
		}
		opts.CacheMaxAge = m
	}

	return opts, nil
}

func applyOptionsFile(opts *router.ServerOptions, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read options file: %w", err)
	}
	var file optionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse options file %s: %w", path, err)
	}

	if file.BindAddress != "" {
		opts.BindAddress = file.BindAddress
	}
	if file.Port != 0 {
		opts.Port = file.Port
	}
	if file.CacheMaxAge != nil {
		opts.CacheMaxAge = *file.CacheMaxAge
	}
	if file.LandingFile != "" {
		landing, err := os.ReadFile(file.LandingFile)
		if err != nil {
			return fmt.Errorf("read landing page file: %w", err)
		}
		opts.LandingHTML = string(landing)
	}
	return nil
}
