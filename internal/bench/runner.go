package bench

import (
	"context"
	"fmt"
	"io"
	"time"

	"keypoint-bench/internal/dispatch"
	"keypoint-bench/internal/features"
	"keypoint-bench/internal/logger"
	"keypoint-bench/internal/timing"

	"gocv.io/x/gocv"
)

// Result is the outcome of one (variant, mode) run.
type Result struct {
	Variant   features.Variant
	Mode      dispatch.Mode
	Keypoints int
	Elapsed   time.Duration
	Err       error
}

// Name is "<Algorithm> - <Backend> - <Mode>".
func (r Result) Name() string {
	return r.Variant.String() + " - " + r.Mode.String()
}

// Label is the timer label printed for the run.
func (r Result) Label() string {
	return "Compute Features (" + r.Name() + ")"
}

// Modes lists the dispatch modes in run order for each variant.
var Modes = []dispatch.Mode{dispatch.Parallel, dispatch.Sequential}

type Runner struct {
	dispatcher *dispatch.Dispatcher
	tracker    *timing.Tracker
	out        io.Writer
	logger     logger.Logger
}

// NewRunner prints result and timing lines to out.
func NewRunner(d *dispatch.Dispatcher, out io.Writer, log logger.Logger) *Runner {
	if log == nil {
		log = logger.Nop{}
	}
	return &Runner{
		dispatcher: d,
		tracker:    timing.NewTracker(out),
		out:        out,
		logger:     log,
	}
}

func (r *Runner) Tracker() *timing.Tracker {
	return r.tracker
}

// Run benchmarks every entry in both modes. A failing run is reported and
// the rest still execute; only ctx cancellation stops early.
func (r *Runner) Run(ctx context.Context, img gocv.Mat, entries []features.Entry, numPatches int) ([]Result, error) {
	results := make([]Result, 0, len(entries)*len(Modes))

	for _, entry := range entries {
		for _, mode := range Modes {
			if err := ctx.Err(); err != nil {
				return results, err
			}

			result := r.runOne(ctx, img, entry, mode, numPatches)
			results = append(results, result)
		}
	}

	return results, nil
}

func (r *Runner) runOne(ctx context.Context, img gocv.Mat, entry features.Entry, mode dispatch.Mode, numPatches int) Result {
	result := Result{Variant: entry.Variant, Mode: mode}

	result.Elapsed, result.Err = r.tracker.Measure(result.Label(), func() error {
		count, err := r.dispatcher.ProcessImage(ctx, img, entry.Processor, numPatches, mode)
		if err != nil {
			fmt.Fprintf(r.out, "%s: failed: %v\n", result.Name(), err)
			return err
		}
		result.Keypoints = count
		fmt.Fprintf(r.out, "%s: Number of keypoints detected = %d\n", result.Name(), count)
		return nil
	})

	if result.Err != nil {
		r.logger.Error("Runner", result.Err, map[string]interface{}{
			"run": result.Name(),
		})
	} else {
		r.logger.Debug("Runner", "run finished", map[string]interface{}{
			"run":       result.Name(),
			"keypoints": result.Keypoints,
			"elapsed":   result.Elapsed.String(),
		})
	}

	return result
}
