package config

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"

	"keypoint-bench/internal/logger"
	"keypoint-bench/internal/opencv/safe"
)

const (
	ProgramName = "keypoint-bench"

	// DefaultNumPatches gives a 4x4 grid.
	DefaultNumPatches = 4
)

var ErrUsage = errors.New("invalid arguments")

type Config struct {
	ImagePath  string
	Width      int
	Height     int
	NumPatches int
	Workers    int
	LogLevel   logger.LogLevel
}

func Usage() string {
	return fmt.Sprintf("Usage: %s <image_path> <width> <height>", ProgramName)
}

// Parse reads the positional arguments <image_path> <width> <height>.
// Extra arguments are ignored. The log level comes from the environment.
func Parse(args []string) (*Config, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("%w: expected 3 arguments, got %d", ErrUsage, len(args))
	}

	width, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("%w: width %q is not an integer", ErrUsage, args[1])
	}
	height, err := strconv.Atoi(args[2])
	if err != nil {
		return nil, fmt.Errorf("%w: height %q is not an integer", ErrUsage, args[2])
	}
	if err := safe.ValidateDimensions(width, height, "resize"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	return &Config{
		ImagePath:  args[0],
		Width:      width,
		Height:     height,
		NumPatches: DefaultNumPatches,
		Workers:    runtime.NumCPU(),
		LogLevel:   logger.LevelFromEnv(),
	}, nil
}
