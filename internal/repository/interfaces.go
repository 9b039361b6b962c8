package repository

import (
	"context"
	"time"

	"github.com/SafeMemoryZone/buckshot-roulette/internal/model"
)

// MatchRepository defines simulated match data operations.
type MatchRepository interface {
	Create(ctx context.Context, m *model.Match) (*model.Match, error)
	FindByID(ctx context.Context, id string) (*model.Match, error)
	ListByLabel(ctx context.Context, label string) ([]model.Match, error)
	Summarize(ctx context.Context, label string) ([]model.StrategySummary, error)
}

// SolutionCache defines solved position operations (Redis). A miss returns
// nil, nil.
type SolutionCache interface {
	GetSolution(ctx context.Context, notation string) (*model.Solution, error)
	SetSolution(ctx context.Context, sol model.Solution, ttl time.Duration) error
	DeleteSolution(ctx context.Context, notation string) error
}
