package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fieldops/atm-visit-service/internal/domain"
	"github.com/fieldops/atm-visit-service/internal/events"
	apperrors "github.com/fieldops/atm-visit-service/pkg/util"
)

func TestSubmissionCreateHappyPath(t *testing.T) {
	repo := newStubSubmissionRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewSubmissionService(SubmissionDependencies{SubmissionRepo: repo, Dispatcher: dispatcher})

	agent := &domain.User{ID: "idp|agent", FirstName: "Sara", LastName: "Hassan", Role: domain.RoleAgent}
	sub, err := svc.Create(context.Background(), agent, SubmissionCreateInput{
		ClientName:  "  National Bank  ",
		Government:  "Cairo",
		ATMCode:     "ATM-0042",
		ServiceType: "feeding",
	})
	require.NoError(t, err)
	require.Equal(t, "sub-1", sub.ID)
	require.Equal(t, "National Bank", sub.ClientName, "surrounding whitespace is trimmed")
	require.Equal(t, "idp|agent", sub.AgentID, "agent comes from the request identity")
	require.Equal(t, domain.ServiceTypeFeeding, sub.ServiceType)

	require.Len(t, dispatcher.published, 1)
	require.Equal(t, events.EventSubmissionCreated, dispatcher.published[0].Type)
	payload, ok := dispatcher.published[0].Payload.(events.SubmissionCreatedPayload)
	require.True(t, ok)
	require.Equal(t, "Sara Hassan", payload.AgentName)
	require.Equal(t, "ATM-0042", payload.ATMCode)
}

func TestSubmissionCreateCollectsFieldErrors(t *testing.T) {
	repo := newStubSubmissionRepo()
	svc := NewSubmissionService(SubmissionDependencies{SubmissionRepo: repo, Dispatcher: &recordingDispatcher{}})

	agent := &domain.User{ID: "idp|agent", Role: domain.RoleAgent}
	_, err := svc.Create(context.Background(), agent, SubmissionCreateInput{
		ClientName:  "   ",
		Government:  "",
		ATMCode:     "\t",
		ServiceType: "inspection",
	})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, apperrors.CodeValidationFailed, domainErr.Code)
	require.Contains(t, domainErr.Details, "clientName")
	require.Contains(t, domainErr.Details, "government")
	require.Contains(t, domainErr.Details, "atmCode")
	require.Contains(t, domainErr.Details, "serviceType")
	require.Empty(t, repo.created, "nothing persisted on validation failure")
}

func TestSubmissionCreateRejectsUnknownServiceType(t *testing.T) {
	svc := NewSubmissionService(SubmissionDependencies{SubmissionRepo: newStubSubmissionRepo(), Dispatcher: &recordingDispatcher{}})

	agent := &domain.User{ID: "idp|agent", Role: domain.RoleAgent}
	_, err := svc.Create(context.Background(), agent, SubmissionCreateInput{
		ClientName:  "National Bank",
		Government:  "Giza",
		ATMCode:     "ATM-0001",
		ServiceType: "Feeding",
	})

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, apperrors.CodeValidationFailed, domainErr.Code)
	require.Contains(t, domainErr.Details, "serviceType")
}

func TestSubmissionListMine(t *testing.T) {
	repo := newStubSubmissionRepo()
	repo.byAgent["idp|agent"] = []domain.Submission{
		{ID: "sub-2", AgentID: "idp|agent"},
		{ID: "sub-1", AgentID: "idp|agent"},
	}
	svc := NewSubmissionService(SubmissionDependencies{SubmissionRepo: repo, Dispatcher: &recordingDispatcher{}})

	subs, err := svc.ListMine(context.Background(), "idp|agent")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	require.Equal(t, "sub-2", subs[0].ID)
}

func TestSubmissionListAll(t *testing.T) {
	repo := newStubSubmissionRepo()
	repo.all = []domain.SubmissionWithAgent{
		{Submission: domain.Submission{ID: "sub-9"}, AgentName: "Sara Hassan"},
		{Submission: domain.Submission{ID: "sub-8"}, AgentName: "Unknown"},
	}
	svc := NewSubmissionService(SubmissionDependencies{SubmissionRepo: repo, Dispatcher: &recordingDispatcher{}})

	subs, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 2)
	require.Equal(t, "Sara Hassan", subs[0].AgentName)
	require.Equal(t, "Unknown", subs[1].AgentName)
}
