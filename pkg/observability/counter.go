package observability

import (
	"sync"
	"time"
)

// Counter implements both hook interfaces by tallying events per kind.
type Counter struct {
	mu       sync.Mutex
	inserts  map[string]int
	repeats  map[string]int
	flushes  map[string]int
	records  map[string]int
	failures map[string]int
	elapsed  time.Duration
}

// NewCounter returns an empty Counter.
func NewCounter() *Counter {
	return &Counter{
		inserts:  map[string]int{},
		repeats:  map[string]int{},
		flushes:  map[string]int{},
		records:  map[string]int{},
		failures: map[string]int{},
	}
}

func (c *Counter) OnInsert(kind string, repeated bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inserts[kind]++
	if repeated {
		c.repeats[kind]++
	}
}

func (c *Counter) OnFlushStart(kind string, _ int) {}

func (c *Counter) OnFlushComplete(kind string, records int, d time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushes[kind]++
	c.records[kind] += records
	c.elapsed += d
	if err != nil {
		c.failures[kind]++
	}
}

// Snapshot is a copy of a Counter's tallies for one kind.
type Snapshot struct {
	Inserts, Repeats, Flushes, Records, Failures int
}

// Kind returns the tallies for kind.
func (c *Counter) Kind(kind string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Inserts:  c.inserts[kind],
		Repeats:  c.repeats[kind],
		Flushes:  c.flushes[kind],
		Records:  c.records[kind],
		Failures: c.failures[kind],
	}
}

// Elapsed returns the total time spent in completed flushes.
func (c *Counter) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

var (
	_ FlushHooks = (*Counter)(nil)
	_ CacheHooks = (*Counter)(nil)
)
