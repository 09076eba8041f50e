package domain

import "time"

// ServiceType enumerates the kinds of ATM service visits agents report.
type ServiceType string

const (
	ServiceTypeFeeding     ServiceType = "feeding"
	ServiceTypeMaintenance ServiceType = "maintenance"
)

// Valid reports whether the service type is one of the known values.
func (t ServiceType) Valid() bool {
	return t == ServiceTypeFeeding || t == ServiceTypeMaintenance
}

// Submission is a single ATM service visit report. Submissions are immutable
// after creation; no update or delete path exists.
type Submission struct {
	ID          string
	ClientName  string
	Government  string
	ATMCode     string
	ServiceType ServiceType
	AgentID     string
	CreatedAt   time.Time
}

// SubmissionWithAgent pairs a submission with the owning agent's display name
// for manager-facing listings.
type SubmissionWithAgent struct {
	Submission
	AgentName string
}
