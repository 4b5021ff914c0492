// Package health aggregates component availability into a single report.
package health

import "context"

// Status is the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the AI provider is down; searches still run with
	// fallback parsing and zero-similarity scoring.
	Degraded Status = "degraded"
	// Unhealthy indicates the listing store is unreachable; searches fail.
	Unhealthy Status = "error"
)

// CheckResult is an individual component health check outcome.
type CheckResult string

const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db DBPinger
	ai AIChecker
}

// New creates a Service. ai can be nil when no provider check is available.
func New(db DBPinger, ai AIChecker) *Service {
	return &Service{db: db, ai: ai}
}

// Check runs health checks against all components. The database is
// load-bearing: its failure marks the service unhealthy. An AI provider
// failure only degrades, because the search pipeline has local fallbacks.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		status = Unhealthy
	} else {
		checks["database"] = CheckOK
	}

	if s.ai != nil {
		if err := s.ai.HealthCheck(ctx); err != nil {
			checks["ai_provider"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["ai_provider"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
