package stats

import "sync/atomic"

// Counter is the process-lifetime request counter. It only moves forward;
// a restart is the only reset.
type Counter struct {
	n atomic.Int64
}

func NewCounter() *Counter {
	return &Counter{}
}

// Inc bumps the counter and returns the new value.
func (c *Counter) Inc() int64 {
	return c.n.Add(1)
}

func (c *Counter) Load() int64 {
	return c.n.Load()
}
