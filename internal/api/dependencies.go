package api

import (
	"cicd-demo/statusboard/internal/models/entities"
)

// Reporter answers the reporting queries served under /api/v1.
type Reporter interface {
	Health() entities.HealthReport
	Stats() entities.StatsReport
	Features() []entities.Feature
}

type Dependencies struct {
	Reporter Reporter
	Version  string
	// DocsPath is advertised in the API info response; empty when docs are disabled.
	DocsPath string
}
