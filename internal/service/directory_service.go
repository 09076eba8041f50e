package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/fieldops/atm-visit-service/internal/domain"
	"github.com/fieldops/atm-visit-service/internal/events"
	"github.com/fieldops/atm-visit-service/internal/identity"
	"github.com/fieldops/atm-visit-service/internal/observability"
	"github.com/fieldops/atm-visit-service/internal/repository"
	apperrors "github.com/fieldops/atm-visit-service/pkg/util"
)

// DirectoryService keeps the local user directory in sync with the identity
// provider and applies role assignments.
type DirectoryService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// DirectoryDependencies bundles collaborators for the directory service.
type DirectoryDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewDirectoryService constructs the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	return &DirectoryService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Resolve maps verified credential claims onto the stored user record,
// creating the record on first sight and refreshing profile fields on later
// sightings. The stored role always wins; nothing in the claims can change
// it. When the directory cannot be consulted the request fails closed.
func (s *DirectoryService) Resolve(ctx context.Context, claims *identity.Claims) (*domain.User, error) {
	user := &domain.User{
		ID:              claims.Subject,
		Email:           claims.Email,
		FirstName:       claims.FirstName,
		LastName:        claims.LastName,
		ProfileImageURL: claims.Picture,
		Role:            domain.DefaultRole,
	}

	if err := s.users.Upsert(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewConflict("email already registered to another account", nil)
		}
		return nil, apperrors.NewUnavailable(apperrors.CodeDirectoryUnavailable, "user directory unavailable", err)
	}

	if user.CreatedAt.Equal(user.UpdatedAt) {
		s.logger.Info("first login recorded",
			zap.String("user_id", user.ID),
			zap.String("email", user.Email))
		s.publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserFirstLogin,
			ActorID:   user.ID,
			Timestamp: time.Now().UTC(),
			Payload: events.UserFirstLoginPayload{
				UserID: user.ID,
				Email:  user.Email,
				Name:   user.DisplayName(),
				Role:   user.Role,
			},
		})
	}
	return user, nil
}

// UpdateRole assigns a new role to the user identified by email. Only admins
// may call this; the check here backs up the route gate.
func (s *DirectoryService) UpdateRole(ctx context.Context, actor *domain.User, email string, role domain.Role) (*domain.User, error) {
	if actor == nil || !actor.Role.AtLeast(domain.RoleAdmin) {
		return nil, apperrors.NewForbidden("admin role required")
	}

	email = strings.TrimSpace(email)
	details := map[string]any{}
	if email == "" {
		details["email"] = "email is required"
	}
	if !role.Valid() {
		details["role"] = "role must be one of agent, manager, admin"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("role update validation failed", details)
	}

	before, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
		}
		return nil, apperrors.NewUnavailable(apperrors.CodeDirectoryUnavailable, "user directory unavailable", err)
	}

	updated, err := s.users.UpdateRole(ctx, email, role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
		}
		return nil, apperrors.NewUnavailable(apperrors.CodeDirectoryUnavailable, "user directory unavailable", err)
	}

	observability.RoleChangesTotal.WithLabelValues(string(updated.Role)).Inc()
	s.logger.Info("role updated",
		zap.String("actor_id", actor.ID),
		zap.String("user_id", updated.ID),
		zap.String("old_role", string(before.Role)),
		zap.String("new_role", string(updated.Role)))

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserRoleChanged,
		ActorID:   actor.ID,
		Timestamp: time.Now().UTC(),
		Payload: events.UserRoleChangedPayload{
			UserID:  updated.ID,
			Email:   updated.Email,
			OldRole: before.Role,
			NewRole: updated.Role,
		},
	})
	return updated, nil
}

func (s *DirectoryService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
