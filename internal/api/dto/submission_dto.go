package dto

import (
	"time"

	"github.com/fieldops/atm-visit-service/internal/domain"
)

// CreateSubmissionRequest is the payload for recording an ATM visit.
type CreateSubmissionRequest struct {
	ClientName  string `json:"clientName" validate:"required"`
	Government  string `json:"government" validate:"required"`
	ATMCode     string `json:"atmCode" validate:"required"`
	ServiceType string `json:"serviceType" validate:"required,oneof=feeding maintenance"`
}

// SubmissionResponse describes a recorded visit.
type SubmissionResponse struct {
	ID          string    `json:"id"`
	ClientName  string    `json:"clientName"`
	Government  string    `json:"government"`
	ATMCode     string    `json:"atmCode"`
	ServiceType string    `json:"serviceType"`
	AgentID     string    `json:"agentId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SubmissionWithAgentResponse adds the reporting agent's display name for
// supervisor listings.
type SubmissionWithAgentResponse struct {
	SubmissionResponse
	AgentName string `json:"agentName"`
}

// NewSubmissionResponse maps a domain submission.
func NewSubmissionResponse(sub *domain.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:          sub.ID,
		ClientName:  sub.ClientName,
		Government:  sub.Government,
		ATMCode:     sub.ATMCode,
		ServiceType: string(sub.ServiceType),
		AgentID:     sub.AgentID,
		CreatedAt:   sub.CreatedAt,
	}
}
