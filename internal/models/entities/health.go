package entities

import "time"

// HealthStatus is the overall status reported by /api/v1/health.
type HealthStatus string

const (
	HealthStatusHealthy HealthStatus = "healthy"
	HealthStatusWarning HealthStatus = "warning"
	HealthStatusError   HealthStatus = "error"
)

// MemoryUsage is heap usage in megabytes, rounded to two decimals.
type MemoryUsage struct {
	Used  float64 `json:"used"`
	Total float64 `json:"total"`
}

// CPUUsage is cumulative process CPU time in microseconds.
type CPUUsage struct {
	User   int64 `json:"user"`
	System int64 `json:"system"`
}

type HealthReport struct {
	Status      HealthStatus `json:"status"`
	Timestamp   time.Time    `json:"timestamp"`
	Version     string       `json:"version"`
	Environment string       `json:"environment"`
	Uptime      int64        `json:"uptime"`
	Memory      MemoryUsage  `json:"memory"`
	CPU         CPUUsage     `json:"cpu"`
}
