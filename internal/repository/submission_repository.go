package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fieldops/atm-visit-service/internal/domain"
)

// SubmissionRepository defines persistence access for visit reports.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *domain.Submission) error
	ListByAgent(ctx context.Context, agentID string) ([]domain.Submission, error)
	ListAllWithAgent(ctx context.Context) ([]domain.SubmissionWithAgent, error)
	// Stats aggregates counters over all submissions. The day bounds select
	// which submissions count as today's.
	Stats(ctx context.Context, dayStart, dayEnd time.Time) (*domain.VisitStats, error)
}

type submissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository returns a Postgres-backed implementation.
func NewSubmissionRepository(pool *pgxpool.Pool) SubmissionRepository {
	return &submissionRepository{pool: pool}
}

func (r *submissionRepository) Create(ctx context.Context, sub *domain.Submission) error {
	const query = `
        INSERT INTO submissions (client_name, government, atm_code, service_type, agent_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		sub.ClientName,
		sub.Government,
		sub.ATMCode,
		sub.ServiceType,
		sub.AgentID,
	).Scan(&sub.ID, &sub.CreatedAt)
}

func (r *submissionRepository) ListByAgent(ctx context.Context, agentID string) ([]domain.Submission, error) {
	const query = `
        SELECT id, client_name, government, atm_code, service_type, agent_id, created_at
        FROM submissions
        WHERE agent_id=$1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]domain.Submission, 0)
	for rows.Next() {
		var sub domain.Submission
		if err := rows.Scan(
			&sub.ID,
			&sub.ClientName,
			&sub.Government,
			&sub.ATMCode,
			&sub.ServiceType,
			&sub.AgentID,
			&sub.CreatedAt,
		); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *submissionRepository) ListAllWithAgent(ctx context.Context) ([]domain.SubmissionWithAgent, error) {
	const query = `
        SELECT s.id, s.client_name, s.government, s.atm_code, s.service_type, s.agent_id, s.created_at,
               COALESCE(u.first_name, ''), COALESCE(u.last_name, '')
        FROM submissions s
        LEFT JOIN users u ON u.id = s.agent_id
        ORDER BY s.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]domain.SubmissionWithAgent, 0)
	for rows.Next() {
		var (
			item      domain.SubmissionWithAgent
			firstName string
			lastName  string
		)
		if err := rows.Scan(
			&item.ID,
			&item.ClientName,
			&item.Government,
			&item.ATMCode,
			&item.ServiceType,
			&item.AgentID,
			&item.CreatedAt,
			&firstName,
			&lastName,
		); err != nil {
			return nil, err
		}
		agent := domain.User{FirstName: firstName, LastName: lastName}
		item.AgentName = agent.DisplayName()
		subs = append(subs, item)
	}
	return subs, rows.Err()
}

func (r *submissionRepository) Stats(ctx context.Context, dayStart, dayEnd time.Time) (*domain.VisitStats, error) {
	const query = `
        SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE service_type = 'feeding'),
            COUNT(*) FILTER (WHERE service_type = 'maintenance'),
            COUNT(*) FILTER (WHERE created_at >= $1 AND created_at < $2),
            COUNT(DISTINCT agent_id)
        FROM submissions`

	var stats domain.VisitStats
	if err := r.pool.QueryRow(ctx, query, dayStart, dayEnd).Scan(
		&stats.Total,
		&stats.Feeding,
		&stats.Maintenance,
		&stats.TodayCount,
		&stats.ActiveAgents,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}
