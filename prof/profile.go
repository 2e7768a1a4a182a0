// Package prof accumulates wall-clock timings of named phases. Recording is
// off until Enable(true); while on, memory grows with the number of distinct
// labels, not the number of measurements.
package prof

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Summary aggregates the measurements sharing a label.
type Summary struct {
	Label string
	Count int
	Total time.Duration
}

var (
	enabled atomic.Bool
	mu      sync.Mutex
	totals  = map[string]*Summary{}
)

// Enable switches recording on or off. Totals already collected are kept.
func Enable(on bool) { enabled.Store(on) }

// Enabled reports whether Track records anything.
func Enabled() bool { return enabled.Load() }

// Track adds the duration since start to name's total. Use it as
// defer prof.Track(time.Now(), "phase").
func Track(start time.Time, name string) {
	if !enabled.Load() {
		return
	}
	elapsed := time.Since(start)
	mu.Lock()
	s, ok := totals[name]
	if !ok {
		s = &Summary{Label: name}
		totals[name] = s
	}
	s.Count++
	s.Total += elapsed
	mu.Unlock()
}

// Start begins timing name; calling the returned func records it.
func Start(name string) func() {
	if !enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() { Track(start, name) }
}

// SnapshotAndReset returns the per-label totals, longest first, and clears
// them.
func SnapshotAndReset() []Summary {
	mu.Lock()
	out := make([]Summary, 0, len(totals))
	for _, s := range totals {
		out = append(out, *s)
	}
	totals = map[string]*Summary{}
	mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total == out[j].Total {
			return out[i].Label < out[j].Label
		}
		return out[i].Total > out[j].Total
	})
	return out
}

// Write prints one line per summary.
func Write(w io.Writer, sums []Summary) error {
	for _, s := range sums {
		if _, err := fmt.Fprintf(w, "[timing] %-32s %6dx %s\n", s.Label, s.Count, s.Total); err != nil {
			return err
		}
	}
	return nil
}
