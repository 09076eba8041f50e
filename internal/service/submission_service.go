package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fieldops/atm-visit-service/internal/domain"
	"github.com/fieldops/atm-visit-service/internal/events"
	"github.com/fieldops/atm-visit-service/internal/observability"
	"github.com/fieldops/atm-visit-service/internal/repository"
	apperrors "github.com/fieldops/atm-visit-service/pkg/util"
)

// SubmissionService coordinates visit report workflows.
type SubmissionService struct {
	submissions repository.SubmissionRepository
	dispatcher  events.Dispatcher
}

// SubmissionDependencies bundles collaborators for the submission service.
type SubmissionDependencies struct {
	SubmissionRepo repository.SubmissionRepository
	Dispatcher     events.Dispatcher
}

// SubmissionCreateInput describes a new visit report.
type SubmissionCreateInput struct {
	ClientName  string
	Government  string
	ATMCode     string
	ServiceType string
}

// NewSubmissionService constructs the service.
func NewSubmissionService(deps SubmissionDependencies) *SubmissionService {
	return &SubmissionService{
		submissions: deps.SubmissionRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// Create validates and records a visit report on behalf of the agent. The
// reporting agent comes from the verified request identity, never from the
// payload.
func (s *SubmissionService) Create(ctx context.Context, agent *domain.User, input SubmissionCreateInput) (*domain.Submission, error) {
	sub := &domain.Submission{
		ClientName:  strings.TrimSpace(input.ClientName),
		Government:  strings.TrimSpace(input.Government),
		ATMCode:     strings.TrimSpace(input.ATMCode),
		ServiceType: domain.ServiceType(strings.TrimSpace(input.ServiceType)),
		AgentID:     agent.ID,
	}

	details := map[string]any{}
	if sub.ClientName == "" {
		details["clientName"] = "client name is required"
	}
	if sub.Government == "" {
		details["government"] = "governorate is required"
	}
	if sub.ATMCode == "" {
		details["atmCode"] = "ATM code is required"
	}
	if !sub.ServiceType.Valid() {
		details["serviceType"] = "service type must be feeding or maintenance"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("submission validation failed", details)
	}

	if err := s.submissions.Create(ctx, sub); err != nil {
		return nil, err
	}

	observability.SubmissionsCreatedTotal.WithLabelValues(string(sub.ServiceType)).Inc()
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSubmissionCreated,
		ActorID:   agent.ID,
		Timestamp: time.Now().UTC(),
		Payload: events.SubmissionCreatedPayload{
			SubmissionID: sub.ID,
			AgentID:      agent.ID,
			AgentName:    agent.DisplayName(),
			ServiceType:  sub.ServiceType,
			ATMCode:      sub.ATMCode,
			Government:   sub.Government,
		},
	})
	return sub, nil
}

// ListMine returns the agent's own submissions, newest first.
func (s *SubmissionService) ListMine(ctx context.Context, agentID string) ([]domain.Submission, error) {
	return s.submissions.ListByAgent(ctx, agentID)
}

// ListAll returns every submission with the reporting agent's display name,
// newest first.
func (s *SubmissionService) ListAll(ctx context.Context) ([]domain.SubmissionWithAgent, error) {
	return s.submissions.ListAllWithAgent(ctx)
}

func (s *SubmissionService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
