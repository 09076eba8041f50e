package events

import (
	"time"

	"github.com/fieldops/atm-visit-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSubmissionCreated EventType = "submission_created"
	EventUserFirstLogin    EventType = "user_first_login"
	EventUserRoleChanged   EventType = "user_role_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SubmissionCreatedPayload payload.
type SubmissionCreatedPayload struct {
	SubmissionID string             `json:"submission_id"`
	AgentID      string             `json:"agent_id"`
	AgentName    string             `json:"agent_name"`
	ServiceType  domain.ServiceType `json:"service_type"`
	ATMCode      string             `json:"atm_code"`
	Government   string             `json:"government"`
}

// UserFirstLoginPayload payload.
type UserFirstLoginPayload struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Role   domain.Role `json:"role"`
}

// UserRoleChangedPayload payload.
type UserRoleChangedPayload struct {
	UserID  string      `json:"user_id"`
	Email   string      `json:"email"`
	OldRole domain.Role `json:"old_role"`
	NewRole domain.Role `json:"new_role"`
}
