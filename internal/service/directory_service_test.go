package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fieldops/atm-visit-service/internal/domain"
	"github.com/fieldops/atm-visit-service/internal/events"
	"github.com/fieldops/atm-visit-service/internal/identity"
	apperrors "github.com/fieldops/atm-visit-service/pkg/util"
)

func newDirectoryService(repo *stubUserRepo, dispatcher *recordingDispatcher) *DirectoryService {
	return NewDirectoryService(DirectoryDependencies{
		UserRepo:   repo,
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
	})
}

func TestResolveCreatesUserWithDefaultRole(t *testing.T) {
	repo := newStubUserRepo()
	dispatcher := &recordingDispatcher{}
	svc := newDirectoryService(repo, dispatcher)

	user, err := svc.Resolve(context.Background(), &identity.Claims{
		Subject:   "idp|abc",
		Email:     "agent@fieldops.example",
		FirstName: "Sara",
		LastName:  "Hassan",
		Picture:   "https://cdn.example/p.png",
	})
	require.NoError(t, err)
	require.Equal(t, "idp|abc", user.ID)
	require.Equal(t, domain.RoleAgent, user.Role)
	require.Equal(t, "agent@fieldops.example", user.Email)

	require.Len(t, dispatcher.published, 1)
	require.Equal(t, events.EventUserFirstLogin, dispatcher.published[0].Type)
	payload, ok := dispatcher.published[0].Payload.(events.UserFirstLoginPayload)
	require.True(t, ok)
	require.Equal(t, "Sara Hassan", payload.Name)
}

func TestResolveKeepsStoredRoleOnReturn(t *testing.T) {
	repo := newStubUserRepo()
	seeded := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	repo.seed(domain.User{
		ID:        "idp|abc",
		Email:     "old@fieldops.example",
		Role:      domain.RoleManager,
		CreatedAt: seeded,
		UpdatedAt: seeded,
	})
	dispatcher := &recordingDispatcher{}
	svc := newDirectoryService(repo, dispatcher)

	user, err := svc.Resolve(context.Background(), &identity.Claims{
		Subject:   "idp|abc",
		Email:     "new@fieldops.example",
		FirstName: "Sara",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleManager, user.Role, "stored role must survive the profile refresh")
	require.Equal(t, "new@fieldops.example", user.Email, "profile fields refresh from claims")
	require.Empty(t, dispatcher.published, "no first-login event for a returning user")
}

func TestResolveFailsClosedWhenDirectoryDown(t *testing.T) {
	repo := newStubUserRepo()
	repo.upsertErr = errors.New("dial tcp: connection refused")
	svc := newDirectoryService(repo, &recordingDispatcher{})

	_, err := svc.Resolve(context.Background(), &identity.Claims{Subject: "idp|abc"})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, apperrors.CodeDirectoryUnavailable, domainErr.Code)
	require.Equal(t, http.StatusServiceUnavailable, domainErr.HTTPStatus)
}

func TestUpdateRoleHappyPath(t *testing.T) {
	repo := newStubUserRepo()
	seeded := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	repo.seed(domain.User{ID: "idp|agent", Email: "agent@fieldops.example", Role: domain.RoleAgent, CreatedAt: seeded, UpdatedAt: seeded})
	dispatcher := &recordingDispatcher{}
	svc := newDirectoryService(repo, dispatcher)

	admin := &domain.User{ID: "idp|admin", Role: domain.RoleAdmin}
	updated, err := svc.UpdateRole(context.Background(), admin, "agent@fieldops.example", domain.RoleManager)
	require.NoError(t, err)
	require.Equal(t, domain.RoleManager, updated.Role)

	require.Len(t, dispatcher.published, 1)
	require.Equal(t, events.EventUserRoleChanged, dispatcher.published[0].Type)
	payload, ok := dispatcher.published[0].Payload.(events.UserRoleChangedPayload)
	require.True(t, ok)
	require.Equal(t, domain.RoleAgent, payload.OldRole)
	require.Equal(t, domain.RoleManager, payload.NewRole)
	require.Equal(t, "idp|admin", dispatcher.published[0].ActorID)
}

func TestUpdateRoleRejectsNonAdmin(t *testing.T) {
	svc := newDirectoryService(newStubUserRepo(), &recordingDispatcher{})

	manager := &domain.User{ID: "idp|mgr", Role: domain.RoleManager}
	_, err := svc.UpdateRole(context.Background(), manager, "agent@fieldops.example", domain.RoleManager)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, apperrors.CodeForbidden, domainErr.Code)
}

func TestUpdateRoleValidatesInput(t *testing.T) {
	svc := newDirectoryService(newStubUserRepo(), &recordingDispatcher{})
	admin := &domain.User{ID: "idp|admin", Role: domain.RoleAdmin}

	_, err := svc.UpdateRole(context.Background(), admin, "  ", "superuser")

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, apperrors.CodeValidationFailed, domainErr.Code)
	require.Contains(t, domainErr.Details, "email")
	require.Contains(t, domainErr.Details, "role")
}

func TestUpdateRoleUnknownEmail(t *testing.T) {
	svc := newDirectoryService(newStubUserRepo(), &recordingDispatcher{})
	admin := &domain.User{ID: "idp|admin", Role: domain.RoleAdmin}

	_, err := svc.UpdateRole(context.Background(), admin, "ghost@fieldops.example", domain.RoleManager)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, apperrors.CodeNotFound, domainErr.Code)
	require.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}
