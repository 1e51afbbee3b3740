package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cicd-demo/statusboard/internal/metrics"
	"cicd-demo/statusboard/internal/models/entities"
)

// fakeFetcher lets each test script health and stats outcomes.
type fakeFetcher struct {
	mu          sync.Mutex
	healthFn    func(ctx context.Context) (*entities.HealthReport, error)
	statsFn     func(ctx context.Context) (*entities.StatsReport, error)
	healthCalls atomic.Int64
	statsCalls  atomic.Int64
}

func (f *fakeFetcher) FetchHealth(ctx context.Context) (*entities.HealthReport, error) {
	f.healthCalls.Add(1)
	f.mu.Lock()
	fn := f.healthFn
	f.mu.Unlock()
	return fn(ctx)
}

func (f *fakeFetcher) FetchStats(ctx context.Context) (*entities.StatsReport, error) {
	f.statsCalls.Add(1)
	f.mu.Lock()
	fn := f.statsFn
	f.mu.Unlock()
	return fn(ctx)
}

func (f *fakeFetcher) setHealth(fn func(ctx context.Context) (*entities.HealthReport, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.healthFn = fn
}

func (f *fakeFetcher) setStats(fn func(ctx context.Context) (*entities.StatsReport, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statsFn = fn
}

func healthOK(version string) func(context.Context) (*entities.HealthReport, error) {
	return func(context.Context) (*entities.HealthReport, error) {
		return &entities.HealthReport{Status: entities.HealthStatusHealthy, Version: version}, nil
	}
}

func statsOK(total int64) func(context.Context) (*entities.StatsReport, error) {
	return func(context.Context) (*entities.StatsReport, error) {
		return &entities.StatsReport{TotalRequests: total, Uptime: "0h 0m 1s"}, nil
	}
}

func healthErr(context.Context) (*entities.HealthReport, error) {
	return nil, errors.New("connection refused")
}

func statsErr(context.Context) (*entities.StatsReport, error) {
	return nil, errors.New("connection refused")
}

func newFake() *fakeFetcher {
	f := &fakeFetcher{}
	f.setHealth(healthOK("1.0.0"))
	f.setStats(statsOK(1))
	return f
}

func TestPollOnce_PopulatesState(t *testing.T) {
	state := NewState()
	require.Equal(t, PhaseLoading, state.Snapshot().Phase())

	NewPoller(newFake(), state).PollOnce(context.Background())

	snap := state.Snapshot()
	assert.Equal(t, PhaseReady, snap.Phase())
	require.NotNil(t, snap.Health)
	require.NotNil(t, snap.Stats)
	assert.Equal(t, "1.0.0", snap.Health.Version)
	assert.Equal(t, int64(1), snap.Stats.TotalRequests)
}

func TestPollOnce_HealthFailureKeepsStaleData(t *testing.T) {
	f := newFake()
	state := NewState()
	p := NewPoller(f, state)
	p.PollOnce(context.Background())

	f.setHealth(healthErr)
	f.setStats(statsErr)
	p.PollOnce(context.Background())

	snap := state.Snapshot()
	assert.Equal(t, PhaseReadyWithError, snap.Phase())
	assert.Equal(t, HealthErrorMessage, snap.Error)
	require.NotNil(t, snap.Health)
	assert.Equal(t, "1.0.0", snap.Health.Version)
	require.NotNil(t, snap.Stats)
	assert.Equal(t, int64(1), snap.Stats.TotalRequests)
}

func TestPollOnce_StatsFailureIsSilent(t *testing.T) {
	f := newFake()
	f.setStats(statsErr)
	f.setHealth(healthOK("2.0.0"))
	state := NewState()

	NewPoller(f, state).PollOnce(context.Background())

	snap := state.Snapshot()
	assert.Equal(t, PhaseReady, snap.Phase())
	assert.Empty(t, snap.Error)
	require.NotNil(t, snap.Health)
	assert.Equal(t, "2.0.0", snap.Health.Version)
	assert.Nil(t, snap.Stats)
}

func TestPollOnce_RecoversOnNextPoll(t *testing.T) {
	f := newFake()
	f.setHealth(healthErr)
	state := NewState()
	p := NewPoller(f, state)

	p.PollOnce(context.Background())
	assert.Equal(t, PhaseReadyWithError, state.Snapshot().Phase())
	assert.Nil(t, state.Snapshot().Health)

	f.setHealth(healthOK("1.0.1"))
	p.PollOnce(context.Background())
	assert.Equal(t, PhaseReady, state.Snapshot().Phase())
}

func TestPollOnce_FetchesAreIndependent(t *testing.T) {
	f := newFake()
	release := make(chan struct{})
	f.setHealth(func(ctx context.Context) (*entities.HealthReport, error) {
		<-release
		return &entities.HealthReport{Version: "late"}, nil
	})
	f.setStats(statsOK(99))
	state := NewState()
	p := NewPoller(f, state)

	done := make(chan struct{})
	go func() {
		p.PollOnce(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool {
		return state.Snapshot().Stats != nil
	}, time.Second, 5*time.Millisecond)
	assert.Nil(t, state.Snapshot().Health)

	close(release)
	<-done
	assert.Equal(t, "late", state.Snapshot().Health.Version)
}

func TestPollOnce_HungFetchIsBounded(t *testing.T) {
	f := newFake()
	f.setHealth(func(ctx context.Context) (*entities.HealthReport, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	state := NewState()
	p := NewPoller(f, state, WithFetchTimeout(20*time.Millisecond))

	start := time.Now()
	p.PollOnce(context.Background())

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, HealthErrorMessage, state.Snapshot().Error)
	assert.NotNil(t, state.Snapshot().Stats)
}

func TestPoller_StartFetchesImmediatelyThenOnTick(t *testing.T) {
	f := newFake()
	var updates atomic.Int64
	p := NewPoller(f, NewState(),
		WithInterval(20*time.Millisecond),
		WithOnUpdate(func(Snapshot) { updates.Add(1) }),
	)

	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	require.Eventually(t, func() bool {
		return f.healthCalls.Load() >= 1 && f.statsCalls.Load() >= 1
	}, time.Second, time.Millisecond)

	require.Eventually(t, func() bool {
		return f.healthCalls.Load() >= 3
	}, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, updates.Load(), int64(2))
}

func TestPoller_NoFetchAfterStop(t *testing.T) {
	f := newFake()
	p := NewPoller(f, NewState(), WithInterval(5*time.Millisecond))

	require.NoError(t, p.Start(context.Background()))
	require.Eventually(t, func() bool { return f.healthCalls.Load() >= 2 }, time.Second, time.Millisecond)

	p.Stop()
	health, stats := f.healthCalls.Load(), f.statsCalls.Load()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, health, f.healthCalls.Load())
	assert.Equal(t, stats, f.statsCalls.Load())
}

func TestPoller_StopCancelsInFlightWithoutError(t *testing.T) {
	f := newFake()
	entered := make(chan struct{})
	var once sync.Once
	f.setHealth(func(ctx context.Context) (*entities.HealthReport, error) {
		once.Do(func() { close(entered) })
		<-ctx.Done()
		return nil, ctx.Err()
	})
	state := NewState()
	p := NewPoller(f, state, WithInterval(time.Hour))

	require.NoError(t, p.Start(context.Background()))
	<-entered
	p.Stop()

	// teardown is not a connectivity failure
	assert.Empty(t, state.Snapshot().Error)
}

func TestPoller_ParentContextCancelStopsLoop(t *testing.T) {
	f := newFake()
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPoller(f, NewState(), WithInterval(5*time.Millisecond))

	require.NoError(t, p.Start(ctx))
	require.Eventually(t, func() bool { return f.healthCalls.Load() >= 1 }, time.Second, time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after parent cancellation")
	}
}

func TestPoller_StartTwiceAndStopIdempotent(t *testing.T) {
	p := NewPoller(newFake(), NewState(), WithInterval(time.Hour))
	p.Stop() // before start

	require.NoError(t, p.Start(context.Background()))
	assert.ErrorIs(t, p.Start(context.Background()), ErrAlreadyStarted)

	p.Stop()
	p.Stop()
}

func TestPollOnce_RecordsMetrics(t *testing.T) {
	reg := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	f := newFake()
	f.setStats(statsErr)

	NewPoller(f, NewState(), WithMetrics(reg)).PollOnce(context.Background())

	assert.Equal(t, 1.0, testutil.ToFloat64(reg.PollFetchesTotal.WithLabelValues("health", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.PollFetchesTotal.WithLabelValues("stats", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.PollCyclesTotal))
}

func TestPollOnce_CancelledContextIssuesNoFetch(t *testing.T) {
	f := newFake()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	NewPoller(f, NewState()).PollOnce(ctx)
	assert.Zero(t, f.healthCalls.Load())
	assert.Zero(t, f.statsCalls.Load())
}
