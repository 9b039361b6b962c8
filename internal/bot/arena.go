package bot

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SafeMemoryZone/buckshot-roulette/internal/logger"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/model"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/repository"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/solver"
	"github.com/SafeMemoryZone/buckshot-roulette/pkg/roulette"
)

const defaultMaxTurns = 10000

// MatchConfig configures a single player-vs-dealer match. Every load of the
// chamber holds Live and Blank shells, and both sides receive Items.
type MatchConfig struct {
	Label         string
	Strategy      string // default "expectimax"
	Live          int
	Blank         int
	MaxLives      int
	Items         []roulette.Item
	Seed          int64 // 0 = random
	MaxTurns      int   // turn cap before a draw, default 10000
	SolverWorkers int
}

// MatchResult describes the outcome of a completed match.
type MatchResult struct {
	MatchID     string        `json:"match_id"`
	Label       string        `json:"label,omitempty"`
	Strategy    string        `json:"strategy"`
	Seed        int64         `json:"seed"`
	Outcome     string        `json:"outcome"`
	Turns       int           `json:"turns"`
	Reloads     int           `json:"reloads"`
	PlayerLives int           `json:"player_lives"`
	DealerLives int           `json:"dealer_lives"`
	Duration    time.Duration `json:"duration_ns"`
}

func (cfg MatchConfig) withDefaults() MatchConfig {
	if cfg.Strategy == "" {
		cfg.Strategy = "expectimax"
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = defaultMaxTurns
	}
	return cfg
}

// initialState validates the configuration and builds the opening state:
// full lives, player to act.
func (cfg MatchConfig) initialState() (roulette.GameState, error) {
	if cfg.Live < 1 {
		return roulette.GameState{}, fmt.Errorf("%w: a load needs at least one live round", roulette.ErrInvalidState)
	}
	return roulette.NewGameState(roulette.Setup{
		Live:        cfg.Live,
		Blank:       cfg.Blank,
		MaxLives:    cfg.MaxLives,
		DealerLives: cfg.MaxLives,
		PlayerLives: cfg.MaxLives,
		DealerItems: cfg.Items,
		PlayerItems: cfg.Items,
	})
}

// RunMatch plays one match between a player strategy and the simulated
// dealer. Pass a nil repo for dry-run mode.
func RunMatch(ctx context.Context, cfg MatchConfig, repo repository.MatchRepository) (*MatchResult, error) {
	cfg = cfg.withDefaults()
	gs, err := cfg.initialState()
	if err != nil {
		return nil, fmt.Errorf("match config: %w", err)
	}
	items := gs.PlayerItems

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := NewRng(seed)

	matchID := logger.NewMatchID()
	ctx = logger.WithMatchID(ctx, matchID)
	l := logger.ForMatch(ctx)

	strategy, err := StrategyForName(cfg.Strategy, StrategyOptions{
		Rng:           rng,
		SolverOptions: []solver.Option{solver.WithWorkers(cfg.SolverWorkers), solver.WithLogger(l)},
	})
	if err != nil {
		return nil, err
	}

	result := &MatchResult{
		MatchID:  matchID,
		Label:    cfg.Label,
		Strategy: strategy.Name(),
		Seed:     seed,
	}
	start := time.Now()

	for gs.DealerLives > 0 && gs.PlayerLives > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if result.Turns >= cfg.MaxTurns {
			break
		}

		if gs.Rounds() == 0 {
			gs, err = gs.ApplyReload(cfg.Live, cfg.Blank, items, items)
			if err != nil {
				return nil, fmt.Errorf("reload: %w", err)
			}
			result.Reloads++
			l.Debug().Str("state", gs.String()).Int("reload", result.Reloads).Msg("Chamber reloaded")
			continue
		}

		result.Turns++
		if gs.DealerTurn {
			gs = DealerTurn(gs, rng)
			continue
		}

		action := strategy.ChooseAction(gs)
		if !gs.IsLegal(action) {
			return nil, fmt.Errorf("strategy %s chose illegal action %s in %s", strategy.Name(), action, gs)
		}
		round := roulette.Unknown
		if action != roulette.SmokeCigarette {
			round = rng.Round(gs)
		}
		gs = gs.ApplyAction(action, round)
	}

	result.Duration = time.Since(start)
	result.PlayerLives = int(gs.PlayerLives)
	result.DealerLives = int(gs.DealerLives)
	switch {
	case gs.DealerLives == 0:
		result.Outcome = model.OutcomeWin
	case gs.PlayerLives == 0:
		result.Outcome = model.OutcomeLoss
	default:
		result.Outcome = model.OutcomeDraw
	}

	if es, ok := strategy.(*ExpectimaxStrategy); ok {
		st := es.Stats()
		l.Debug().Int("entries", st.Entries).Uint64("hits", st.Hits).Uint64("misses", st.Misses).Msg("Solver table")
	}

	if repo != nil {
		saved, err := repo.Create(ctx, result.toModel(cfg, items))
		if err != nil {
			return nil, fmt.Errorf("save match: %w", err)
		}
		result.MatchID = saved.ID
	}

	l.Info().
		Str("strategy", result.Strategy).
		Str("outcome", result.Outcome).
		Int("turns", result.Turns).
		Int("reloads", result.Reloads).
		Msg("Match finished")
	return result, nil
}

func (r *MatchResult) toModel(cfg MatchConfig, items roulette.Inventory) *model.Match {
	return &model.Match{
		Label:       r.Label,
		Strategy:    r.Strategy,
		Seed:        r.Seed,
		Live:        cfg.Live,
		Blank:       cfg.Blank,
		MaxLives:    cfg.MaxLives,
		Items:       roulette.EncodeItems(items),
		Outcome:     r.Outcome,
		Turns:       r.Turns,
		Reloads:     r.Reloads,
		PlayerLives: r.PlayerLives,
		DealerLives: r.DealerLives,
		DurationMS:  r.Duration.Milliseconds(),
	}
}

// RunMatches plays n matches on up to workers goroutines. With a non-zero
// seed, match i uses seed+i so a batch is reproducible. The first failing
// match cancels the rest.
func RunMatches(ctx context.Context, cfg MatchConfig, n, workers int, repo repository.MatchRepository) ([]*MatchResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]*MatchResult, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range n {
		g.Go(func() error {
			mc := cfg
			if cfg.Seed != 0 {
				mc.Seed = cfg.Seed + int64(i)
			}
			r, err := RunMatch(gctx, mc, repo)
			if err != nil {
				return fmt.Errorf("match %d: %w", i+1, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// WinRate summarises a batch of matches.
type WinRate struct {
	Games  int     `json:"games"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	Draws  int     `json:"draws"`
	Rate   float64 `json:"win_rate"`
}

// Summarize counts outcomes over results, skipping nil entries.
func Summarize(results []*MatchResult) WinRate {
	var w WinRate
	for _, r := range results {
		if r == nil {
			continue
		}
		w.Games++
		switch r.Outcome {
		case model.OutcomeWin:
			w.Wins++
		case model.OutcomeLoss:
			w.Losses++
		default:
			w.Draws++
		}
	}
	if w.Games > 0 {
		w.Rate = float64(w.Wins) / float64(w.Games)
	}
	return w
}

// EstimateWinRate plays n dry-run matches and returns the fraction the
// player won.
func EstimateWinRate(ctx context.Context, cfg MatchConfig, n, workers int) (WinRate, error) {
	results, err := RunMatches(ctx, cfg, n, workers, nil)
	if err != nil {
		return WinRate{}, err
	}
	return Summarize(results), nil
}
