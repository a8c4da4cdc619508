// Package bench drives the keypoint benchmark: one image, every registered
// detector variant, parallel then sequential dispatch, each run timed.
package bench

import (
	"context"
	"fmt"
	"io"

	"keypoint-bench/internal/config"
	"keypoint-bench/internal/dispatch"
	"keypoint-bench/internal/features"
	"keypoint-bench/internal/logger"
	"keypoint-bench/internal/opencv/loader"
	"keypoint-bench/internal/system"
	"keypoint-bench/internal/timing"
)

const (
	ExitSuccess = 0
	ExitFailure = -1
)

// Main runs the benchmark for args (without the program name) and returns
// the process exit code. Results and timings go to stdout, logs to stderr.
func Main(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(args)
	if err != nil {
		fmt.Fprintln(stdout, config.Usage())
		fmt.Fprintln(stderr, err)
		return ExitFailure
	}

	log := logger.NewConsoleLogger(stderr, cfg.LogLevel)

	img, err := loader.New(log).Load(cfg.ImagePath, cfg.Width, cfg.Height)
	if err != nil {
		img.Close()
		fmt.Fprintln(stdout, "Failed to read the image.")
		log.Error("Bench", err, map[string]interface{}{"path": cfg.ImagePath})
		return ExitFailure
	}
	defer img.Close()

	host, err := system.Describe(ctx, features.DeviceCount())
	if err != nil {
		log.Warning("Bench", "host description incomplete", map[string]interface{}{"error": err.Error()})
	}
	header := host.Fields()
	header["workers"] = cfg.Workers
	header["grid"] = fmt.Sprintf("%dx%d", cfg.NumPatches, cfg.NumPatches)
	header["image"] = fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)
	log.Info("Bench", "benchmark starting", header)

	registry := features.NewRegistry(features.DefaultDevice())
	runner := NewRunner(dispatch.New(cfg.Workers, log), stdout, log)

	results, err := runner.Run(ctx, img, registry.Entries(), cfg.NumPatches)
	summarize(log, runner.Tracker(), results)
	if err != nil {
		log.Error("Bench", fmt.Errorf("benchmark interrupted: %w", err), map[string]interface{}{
			"completed_runs": len(results),
		})
		return ExitFailure
	}

	return ExitSuccess
}

func summarize(log logger.Logger, tracker *timing.Tracker, results []Result) {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		log.Debug("Bench", "average run time", map[string]interface{}{
			"run":     r.Name(),
			"average": tracker.Average(r.Label()).String(),
		})
	}

	log.Info("Bench", "benchmark finished", map[string]interface{}{
		"runs":   len(results),
		"failed": failed,
	})
}
