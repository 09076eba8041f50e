package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fieldops/atm-visit-service/internal/domain"
	"github.com/fieldops/atm-visit-service/internal/events"
)

// stubUserRepo mimics the upsert semantics of the Postgres repository: the
// stored role survives later upserts and timestamps reveal first sight.
type stubUserRepo struct {
	users     map[string]*domain.User
	byEmail   map[string]string
	upsertErr error
	queryErr  error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:   make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *stubUserRepo) seed(user domain.User) {
	u := user
	r.users[u.ID] = &u
	r.byEmail[u.Email] = u.ID
}

func (r *stubUserRepo) Upsert(_ context.Context, user *domain.User) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	if existing, ok := r.users[user.ID]; ok {
		existing.Email = user.Email
		existing.FirstName = user.FirstName
		existing.LastName = user.LastName
		existing.ProfileImageURL = user.ProfileImageURL
		existing.UpdatedAt = existing.UpdatedAt.Add(time.Minute)
		*user = *existing
		return nil
	}
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	r.users[user.ID] = &stored
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if r.queryErr != nil {
		return nil, r.queryErr
	}
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	u := *user
	return &u, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.queryErr != nil {
		return nil, r.queryErr
	}
	id, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	u := *r.users[id]
	return &u, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, email string, role domain.Role) (*domain.User, error) {
	if r.queryErr != nil {
		return nil, r.queryErr
	}
	id, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	r.users[id].Role = role
	r.users[id].UpdatedAt = r.users[id].UpdatedAt.Add(time.Minute)
	u := *r.users[id]
	return &u, nil
}

type stubSubmissionRepo struct {
	created   []domain.Submission
	byAgent   map[string][]domain.Submission
	all       []domain.SubmissionWithAgent
	stats     domain.VisitStats
	gotStart  time.Time
	gotEnd    time.Time
	createErr error
	queryErr  error
}

func newStubSubmissionRepo() *stubSubmissionRepo {
	return &stubSubmissionRepo{byAgent: make(map[string][]domain.Submission)}
}

func (r *stubSubmissionRepo) Create(_ context.Context, sub *domain.Submission) error {
	if r.createErr != nil {
		return r.createErr
	}
	sub.ID = "sub-1"
	sub.CreatedAt = time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)
	r.created = append(r.created, *sub)
	return nil
}

func (r *stubSubmissionRepo) ListByAgent(_ context.Context, agentID string) ([]domain.Submission, error) {
	if r.queryErr != nil {
		return nil, r.queryErr
	}
	return r.byAgent[agentID], nil
}

func (r *stubSubmissionRepo) ListAllWithAgent(_ context.Context) ([]domain.SubmissionWithAgent, error) {
	if r.queryErr != nil {
		return nil, r.queryErr
	}
	return r.all, nil
}

func (r *stubSubmissionRepo) Stats(_ context.Context, dayStart, dayEnd time.Time) (*domain.VisitStats, error) {
	if r.queryErr != nil {
		return nil, r.queryErr
	}
	r.gotStart = dayStart
	r.gotEnd = dayEnd
	stats := r.stats
	return &stats, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}
