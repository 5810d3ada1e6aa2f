// Package logging constructs the process-wide logger. Components receive
// it by injection; nothing in the routing core writes to a global.
package logging

import (
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/addonkit-project/addonkit-go/internal/config"
)

// New creates a named logger with its level taken from
// ADDONKIT_LOG_LEVEL, defaulting to info.
func New(name string) hclog.Logger {
	level := hclog.LevelFromString(os.Getenv(config.EnvLogLevel))
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  level,
		Output: os.Stdout,
	})
}
