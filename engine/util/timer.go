package util

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"
)

// TimerStats are the durations of one named stage in milliseconds.
type TimerStats struct {
	Name  string
	Last  float64
	Total float64
	Count int64
	Min   float64
	Max   float64
}

func (s TimerStats) Average() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Total / float64(s.Count)
}

func (s TimerStats) String() string {
	return fmt.Sprintf("%s last: %.2fms, avg: %.2fms, min: %.2fms, max: %.2fms (%d runs)", s.Name, s.Last, s.Average(), s.Min, s.Max, s.Count)
}

// Timer measures named stages. It may be shared between goroutines.
type Timer struct {
	mu    sync.Mutex
	stats map[string]*TimerStats
	names []string
	now   func() time.Time
}

func NewTimer() *Timer {
	return &Timer{
		stats: make(map[string]*TimerStats),
		now:   time.Now,
	}
}

// Stats returns a copy of the stats of name.
func (t *Timer) Stats(name string) (TimerStats, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	stats, ok := t.stats[name]
	if !ok {
		return TimerStats{Name: name}, false
	}
	return *stats, true
}

func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for name := range t.stats {
		t.stats[name] = newTimerStats(name)
	}
}

func (t *Timer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	lines := make([]string, 0, len(t.names))
	for _, name := range t.names {
		lines = append(lines, t.stats[name].String())
	}
	return strings.Join(lines, "\n")
}

// Start begins a measurement of name. The returned func ends it and returns the duration in milliseconds.
func (t *Timer) Start(name string) func() float64 {
	start := t.now()
	return func() float64 {
		durationInMS := float64(t.now().Sub(start).Microseconds()) / 1000.0
		t.record(name, durationInMS)
		return durationInMS
	}
}

func (t *Timer) record(name string, durationInMS float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	stats, ok := t.stats[name]
	if !ok {
		stats = newTimerStats(name)
		t.stats[name] = stats
		t.names = append(t.names, name)
	}
	stats.Last = durationInMS
	stats.Total += durationInMS
	stats.Count++
	stats.Min = math.Min(stats.Min, durationInMS)
	stats.Max = math.Max(stats.Max, durationInMS)
}

func newTimerStats(name string) *TimerStats {
	return &TimerStats{
		Name: name,
		Min:  math.Inf(1),
		Max:  math.Inf(-1),
	}
}
