package adapter

import (
	"os"
	"sync"
)

// Mode represents the runtime mode of the add-on server
type Mode int

const (
	ModeUnknown Mode = iota
	ModeLambda
	ModeHTTPServer
)

var (
	currentMode Mode
	modeOnce    sync.Once
)

// DetectMode determines and caches the runtime mode. Lambda mode is
// selected when the AWS Lambda environment is present.
func DetectMode() Mode {
	modeOnce.Do(func() {
		if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
			currentMode = ModeLambda
		} else {
			currentMode = ModeHTTPServer
		}
	})
	return currentMode
}

// IsLambda returns true if running in AWS Lambda mode
func IsLambda() bool {
	return DetectMode() == ModeLambda
}

// IsHTTPServer returns true if running in HTTP server mode
func IsHTTPServer() bool {
	return DetectMode() == ModeHTTPServer
}
