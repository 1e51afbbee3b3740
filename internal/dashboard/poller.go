package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"cicd-demo/statusboard/internal/logging"
	"cicd-demo/statusboard/internal/metrics"
)

const (
	DefaultPollInterval = 30 * time.Second
	DefaultFetchTimeout = 10 * time.Second
)

var ErrAlreadyStarted = errors.New("poller already started")

// Poller refreshes a State from a Fetcher: once immediately on Start and
// then on every tick until Stop.
type Poller struct {
	fetcher      Fetcher
	state        *State
	interval     time.Duration
	fetchTimeout time.Duration
	now          func() time.Time
	metricsReg   *metrics.MetricsRegistry
	onUpdate     func(Snapshot)

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

type PollerOption func(*Poller)

func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) { p.interval = d }
}

// WithFetchTimeout bounds each individual fetch.
func WithFetchTimeout(d time.Duration) PollerOption {
	return func(p *Poller) { p.fetchTimeout = d }
}

func WithMetrics(m *metrics.MetricsRegistry) PollerOption {
	return func(p *Poller) { p.metricsReg = m }
}

// WithOnUpdate registers a callback run after every applied fetch result.
func WithOnUpdate(fn func(Snapshot)) PollerOption {
	return func(p *Poller) { p.onUpdate = fn }
}

func WithPollerClock(now func() time.Time) PollerOption {
	return func(p *Poller) { p.now = now }
}

func NewPoller(fetcher Fetcher, state *State, opts ...PollerOption) *Poller {
	p := &Poller{
		fetcher:      fetcher,
		state:        state,
		interval:     DefaultPollInterval,
		fetchTimeout: DefaultFetchTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.interval <= 0 {
		p.interval = DefaultPollInterval
	}
	return p
}

// Start launches the polling loop. The loop runs until ctx is cancelled or
// Stop is called. A Poller can be started once.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return ErrAlreadyStarted
	}
	p.started = true

	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})

	logging.Info("Dashboard poller starting", "interval", p.interval.String())
	go p.run(ctx)
	return nil
}

// Stop cancels the loop and any in-flight fetches, and returns once the loop
// has exited. No fetch is issued after Stop returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Run immediately on start
	p.PollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info("Dashboard poller shutting down")
			return
		case <-ticker.C:
			p.PollOnce(ctx)
		}
	}
}

// PollOnce fetches health and stats concurrently and applies each result as
// soon as it arrives. One failing fetch does not affect the other.
func (p *Poller) PollOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	var g errgroup.Group
	g.Go(func() error {
		p.refreshHealth(ctx)
		return nil
	})
	g.Go(func() error {
		p.refreshStats(ctx)
		return nil
	})
	_ = g.Wait()

	if p.metricsReg != nil && ctx.Err() == nil {
		p.metricsReg.PollCyclesTotal.Inc()
	}
}

func (p *Poller) refreshHealth(ctx context.Context) {
	fctx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	start := time.Now()
	h, err := p.fetcher.FetchHealth(fctx)
	if ctx.Err() != nil {
		// torn down mid-fetch
		return
	}
	p.observe("health", start, err)

	if err != nil {
		logging.Error("Health check failed", "error", err.Error())
	}
	p.state.ApplyHealth(h, err, p.now())
	p.notify()
}

func (p *Poller) refreshStats(ctx context.Context) {
	fctx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	start := time.Now()
	s, err := p.fetcher.FetchStats(fctx)
	if ctx.Err() != nil {
		return
	}
	p.observe("stats", start, err)

	if err != nil {
		logging.Error("Stats fetch failed", "error", err.Error())
		return
	}
	p.state.ApplyStats(s, nil, p.now())
	p.notify()
}

func (p *Poller) observe(resource string, start time.Time, err error) {
	if p.metricsReg == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	p.metricsReg.PollFetchesTotal.WithLabelValues(resource, outcome).Inc()
	p.metricsReg.PollFetchDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
}

func (p *Poller) notify() {
	if p.onUpdate != nil {
		p.onUpdate(p.state.Snapshot())
	}
}
