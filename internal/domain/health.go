package domain

// HealthStatus enumerates doctor check outcomes.
type HealthStatus string

const (
	HealthOK   HealthStatus = "ok"
	HealthWarn HealthStatus = "warn"
	HealthFail HealthStatus = "fail"
)

// HealthCheck is a single diagnostic result.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Message string
}

// HealthReport aggregates all doctor checks.
type HealthReport struct {
	Checks []HealthCheck
}
