package stats

import (
	"os"
	"runtime"
	"time"

	"cicd-demo/statusboard/internal/logging"
	"cicd-demo/statusboard/internal/models/entities"
)

type ReporterConfig struct {
	Version     string
	Environment string
}

// Reporter computes point-in-time process reports. Apart from the injected
// counter it holds no mutable state.
type Reporter struct {
	cfg       ReporterConfig
	counter   *Counter
	startTime time.Time
	now       func() time.Time
	memory    MemorySampler
	process   ProcessSampler
}

type Option func(*Reporter)

func WithClock(now func() time.Time) Option {
	return func(r *Reporter) { r.now = now }
}

func WithStartTime(t time.Time) Option {
	return func(r *Reporter) { r.startTime = t }
}

func WithMemorySampler(m MemorySampler) Option {
	return func(r *Reporter) { r.memory = m }
}

func WithProcessSampler(p ProcessSampler) Option {
	return func(r *Reporter) { r.process = p }
}

func NewReporter(cfg ReporterConfig, counter *Counter, opts ...Option) *Reporter {
	r := &Reporter{
		cfg:     cfg,
		counter: counter,
		now:     time.Now,
		memory:  RuntimeMemory,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.startTime.IsZero() {
		r.startTime = r.now()
	}
	if r.process == nil {
		r.process = NewProcessSampler()
	}
	if r.counter == nil {
		r.counter = NewCounter()
	}
	return r
}

// IncrementRequestCount bumps the shared request counter.
func (r *Reporter) IncrementRequestCount() int64 {
	return r.counter.Inc()
}

func (r *Reporter) uptimeSeconds(now time.Time) int64 {
	secs := int64(now.Sub(r.startTime) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

func (r *Reporter) memoryMB() entities.MemoryUsage {
	used, total := r.memory()
	if used > total {
		total = used
	}
	return entities.MemoryUsage{Used: bytesToMB(used), Total: bytesToMB(total)}
}

// Health always reports healthy; no dependency is probed.
func (r *Reporter) Health() entities.HealthReport {
	now := r.now()

	cpu, err := r.process.CPUTimes()
	if err != nil {
		logging.Debug("cpu sampling unavailable", "error", err.Error())
	}

	return entities.HealthReport{
		Status:      entities.HealthStatusHealthy,
		Timestamp:   now.UTC(),
		Version:     r.cfg.Version,
		Environment: r.cfg.Environment,
		Uptime:      r.uptimeSeconds(now),
		Memory:      r.memoryMB(),
		CPU:         cpu,
	}
}

func (r *Reporter) Stats() entities.StatsReport {
	mem := r.memoryMB()
	return entities.StatsReport{
		TotalRequests:  r.counter.Load(),
		Uptime:         FormatUptime(r.uptimeSeconds(r.now())),
		MemoryUsage:    formatMB(mem.Used),
		Environment:    r.cfg.Environment,
		RuntimeVersion: runtime.Version(),
		Platform:       runtime.GOOS,
		PID:            os.Getpid(),
	}
}

var featureCatalog = []struct {
	name        string
	description string
}{
	{"CI/CD Pipeline", "Automated build, test, and deployment pipeline using AWS CodePipeline"},
	{"Blue-Green Deployment", "Zero-downtime deployment strategy with AWS CodeDeploy"},
	{"Container Orchestration", "Docker containers managed by Amazon ECS"},
	{"Load Balancing", "Application Load Balancer for traffic distribution"},
	{"Auto Scaling", "Automatic scaling based on CPU and memory metrics"},
	{"Monitoring", "CloudWatch metrics, logs, and alarms"},
}

// Features returns the fixed feature list stamped with the current time.
func (r *Reporter) Features() []entities.Feature {
	now := r.now().UTC()
	features := make([]entities.Feature, 0, len(featureCatalog))
	for _, f := range featureCatalog {
		features = append(features, entities.Feature{
			Name:        f.name,
			Description: f.description,
			Status:      entities.FeatureStatusActive,
			LastUpdated: now,
		})
	}
	return features
}
