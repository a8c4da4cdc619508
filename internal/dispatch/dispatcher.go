// Package dispatch fans a feature processor out over the patches of one image
// and sums the keypoint counts.
package dispatch

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"
	"time"

	"keypoint-bench/internal/features"
	"keypoint-bench/internal/logger"
	"keypoint-bench/internal/patch"

	"gocv.io/x/gocv"
	"golang.org/x/sync/errgroup"
)

type Mode int

const (
	Sequential Mode = iota
	Parallel
)

func (m Mode) String() string {
	switch m {
	case Sequential:
		return "Sequential"
	case Parallel:
		return "Parallel"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// PatchError attributes a processor failure to the patch it happened on.
type PatchError struct {
	Index  int
	Bounds image.Rectangle
	Err    error
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("patch %d %v: %v", e.Index, e.Bounds, e.Err)
}

func (e *PatchError) Unwrap() error {
	return e.Err
}

type Dispatcher struct {
	workers int
	logger  logger.Logger
}

// New returns a Dispatcher running at most workers patches at once in
// Parallel mode. workers <= 0 means runtime.NumCPU().
func New(workers int, log logger.Logger) *Dispatcher {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Dispatcher{workers: workers, logger: log}
}

func (d *Dispatcher) Workers() int {
	return d.workers
}

// ProcessImage splits img into numPatches x numPatches cells and returns the
// total keypoint count over all of them. The first failing patch aborts the
// call and is returned as a *PatchError.
func (d *Dispatcher) ProcessImage(ctx context.Context, img gocv.Mat, proc features.Processor, numPatches int, mode Mode) (int, error) {
	patches, err := patch.Split(img, numPatches)
	if err != nil {
		return 0, fmt.Errorf("split image: %w", err)
	}
	defer patches.Close()

	start := time.Now()

	var total int
	switch mode {
	case Sequential:
		total, err = d.sequential(ctx, patches, proc)
	case Parallel:
		total, err = d.parallel(ctx, patches, proc)
	default:
		return 0, fmt.Errorf("unknown dispatch mode: %s", mode)
	}
	if err != nil {
		return 0, err
	}

	d.logger.Debug("Dispatcher", "image processed", map[string]interface{}{
		"mode":      mode.String(),
		"patches":   len(patches),
		"keypoints": total,
		"elapsed":   time.Since(start).String(),
	})

	return total, nil
}

func (d *Dispatcher) sequential(ctx context.Context, patches patch.Set, proc features.Processor) (int, error) {
	total := 0
	for i := range patches {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		count, err := proc.ComputeFeatures(patches[i].Mat)
		if err != nil {
			return 0, &PatchError{Index: patches[i].Index, Bounds: patches[i].Bounds, Err: err}
		}
		total += count
	}
	return total, nil
}

func (d *Dispatcher) parallel(ctx context.Context, patches patch.Set, proc features.Processor) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	var (
		mu    sync.Mutex
		total int
	)

	for i := range patches {
		p := &patches[i]
		g.Go(func() error {
			// a failed sibling cancels gctx; queued patches skip their work
			if err := gctx.Err(); err != nil {
				return err
			}

			count, err := proc.ComputeFeatures(p.Mat)
			if err != nil {
				return &PatchError{Index: p.Index, Bounds: p.Bounds, Err: err}
			}

			mu.Lock()
			total += count
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return total, nil
}
