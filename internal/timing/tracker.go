package timing

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Tracker reports one "<label> took <N> milliseconds." line per measured
// block and keeps every duration for later summaries.
type Tracker struct {
	out     io.Writer
	now     func() time.Time
	timings map[string][]time.Duration
	mu      sync.RWMutex
}

func NewTracker(out io.Writer) *Tracker {
	return &Tracker{
		out:     out,
		now:     time.Now,
		timings: make(map[string][]time.Duration),
	}
}

// Start begins timing label. The returned stop func reports and records the
// elapsed time on its first call only.
func (tt *Tracker) Start(label string) func() time.Duration {
	start := tt.now()
	var (
		once    sync.Once
		elapsed time.Duration
	)

	return func() time.Duration {
		once.Do(func() {
			elapsed = tt.now().Sub(start)
			tt.record(label, elapsed)
		})
		return elapsed
	}
}

// Measure times fn and returns the elapsed time with fn's error. The line is
// written however fn exits, including a panic, which is re-raised after
// reporting.
func (tt *Tracker) Measure(label string, fn func() error) (elapsed time.Duration, err error) {
	stop := tt.Start(label)
	defer func() { elapsed = stop() }()

	return 0, fn()
}

func (tt *Tracker) record(label string, elapsed time.Duration) {
	tt.mu.Lock()
	tt.timings[label] = append(tt.timings[label], elapsed)
	tt.mu.Unlock()

	if tt.out != nil {
		fmt.Fprintf(tt.out, "%s took %d milliseconds.\n", label, elapsed.Milliseconds())
	}
}

func (tt *Tracker) Timings(label string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[label]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

func (tt *Tracker) Average(label string) time.Duration {
	timings := tt.Timings(label)
	if len(timings) == 0 {
		return 0
	}

	var total time.Duration
	for _, duration := range timings {
		total += duration
	}

	return total / time.Duration(len(timings))
}

// Labels returns every recorded label in lexical order.
func (tt *Tracker) Labels() []string {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	labels := make([]string, 0, len(tt.timings))
	for label := range tt.timings {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Reset drops one label, or everything when label is empty.
func (tt *Tracker) Reset(label string) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if label == "" {
		tt.timings = make(map[string][]time.Duration)
	} else {
		delete(tt.timings, label)
	}
}
