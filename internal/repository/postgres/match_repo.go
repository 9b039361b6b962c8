package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/SafeMemoryZone/buckshot-roulette/internal/model"
)

const matchColumns = `id, label, strategy, seed, live, blank, max_lives, items, outcome,
	turns, reloads, player_lives, dealer_lives, duration_ms, created_at`

// MatchRepo handles match database operations.
type MatchRepo struct {
	db *sql.DB
}

// NewMatchRepo creates a MatchRepo.
func NewMatchRepo(db *sql.DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// Create inserts a finished match and returns it with its id and timestamp.
func (r *MatchRepo) Create(ctx context.Context, m *model.Match) (*model.Match, error) {
	out := *m
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO matches (label, strategy, seed, live, blank, max_lives, items, outcome,
		                      turns, reloads, player_lives, dealer_lives, duration_ms)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at`,
		m.Label, m.Strategy, m.Seed, m.Live, m.Blank, m.MaxLives, m.Items, m.Outcome,
		m.Turns, m.Reloads, m.PlayerLives, m.DealerLives, m.DurationMS,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}
	return &out, nil
}

// FindByID returns a match by id, or nil if it does not exist. Ids that
// are not UUIDs never match.
func (r *MatchRepo) FindByID(ctx context.Context, id string) (*model.Match, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	m, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find match: %w", err)
	}
	return m, nil
}

// ListByLabel returns every match of a batch, oldest first.
func (r *MatchRepo) ListByLabel(ctx context.Context, label string) ([]model.Match, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE label = $1 ORDER BY created_at, id`, label)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var matches []model.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

// Summarize aggregates results per strategy. An empty label covers every
// stored match.
func (r *MatchRepo) Summarize(ctx context.Context, label string) ([]model.StrategySummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT strategy,
		        COUNT(*),
		        COUNT(*) FILTER (WHERE outcome = 'win'),
		        COUNT(*) FILTER (WHERE outcome = 'draw')
		 FROM matches
		 WHERE $1 = '' OR label = $1
		 GROUP BY strategy
		 ORDER BY strategy`, label)
	if err != nil {
		return nil, fmt.Errorf("summarize matches: %w", err)
	}
	defer rows.Close()

	var out []model.StrategySummary
	for rows.Next() {
		var s model.StrategySummary
		if err := rows.Scan(&s.Strategy, &s.Games, &s.Wins, &s.Draws); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		if s.Games > 0 {
			s.WinRate = float64(s.Wins) / float64(s.Games)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*model.Match, error) {
	var m model.Match
	err := row.Scan(&m.ID, &m.Label, &m.Strategy, &m.Seed, &m.Live, &m.Blank, &m.MaxLives,
		&m.Items, &m.Outcome, &m.Turns, &m.Reloads, &m.PlayerLives, &m.DealerLives,
		&m.DurationMS, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
