package entities

import "time"

type StatsReport struct {
	TotalRequests  int64  `json:"totalRequests"`
	Uptime         string `json:"uptime"`
	MemoryUsage    string `json:"memoryUsage"`
	Environment    string `json:"environment"`
	RuntimeVersion string `json:"runtimeVersion"`
	Platform       string `json:"platform"`
	PID            int    `json:"pid"`
}

type FeatureStatus string

const (
	FeatureStatusActive   FeatureStatus = "active"
	FeatureStatusInactive FeatureStatus = "inactive"
)

type Feature struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      FeatureStatus `json:"status"`
	LastUpdated time.Time     `json:"lastUpdated"`
}

// APIInfo is returned by GET /api/v1.
type APIInfo struct {
	Message       string   `json:"message"`
	Version       string   `json:"version"`
	Framework     string   `json:"framework"`
	Endpoints     []string `json:"endpoints"`
	Documentation string   `json:"documentation"`
}
