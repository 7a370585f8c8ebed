package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the process logger. Debug mode logs human-readable output to
// stdout; otherwise the JSON production config is used.
func New(debug bool) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if debug {
		z := zap.NewDevelopmentConfig()
		z.OutputPaths = []string{"stdout"}
		logger, err = z.Build()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Stderr builds a logger for command line use, where stdout may carry
// command responses.
func Stderr(debug bool) (*zap.Logger, error) {
	z := zap.NewProductionConfig()
	if debug {
		z = zap.NewDevelopmentConfig()
	}
	z.OutputPaths = []string{"stderr"}
	z.ErrorOutputPaths = []string{"stderr"}
	logger, err := z.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
