package health

import "context"

// Status is the aggregated readiness of the service.
type Status string

const (
	// Healthy means every probed component answered.
	Healthy Status = "ok"
	// Degraded means at least one component failed its probe.
	Degraded Status = "degraded"
)

// CheckResult is the outcome of a single component probe.
type CheckResult string

const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
)

// Report carries the aggregate status plus per-component outcomes.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service probes the database and the encoder model.
type Service struct {
	db    DBPinger
	model ModelChecker
}

// New creates a Service. model may be nil when no encoder is wired.
func New(db DBPinger, model ModelChecker) *Service {
	return &Service{db: db, model: model}
}

// Check probes each wired component and aggregates the results.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{
		"database": probe(s.db.Ping(ctx)),
	}
	if s.model != nil {
		checks["model"] = probe(s.model.HealthCheck(ctx))
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

func probe(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
