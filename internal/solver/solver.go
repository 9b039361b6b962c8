// Package solver computes expected game values and the best player action
// for shotgun roulette by expectimax search over roulette.GameState.
//
// The player maximises expected value. The dealer is not an optimiser: it
// follows a fixed heuristic, so dealer nodes average over its behaviour
// instead of minimising.
package solver

import (
	"math"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/SafeMemoryZone/buckshot-roulette/pkg/roulette"
)

// dealerShotOdds is the chance the dealer aims at either side when it has
// nothing better to do.
const dealerShotOdds = 0.5

// Solver runs expectimax searches that share one transposition table. A
// Solver belongs to a single game; create a new one (or Reset it) before
// searching an unrelated game.
type Solver struct {
	table   Table
	workers int
	logger  zerolog.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Option configures a Solver.
type Option func(*Solver)

// WithTable sets the transposition table. It must be safe for concurrent
// use when more than one worker is configured.
func WithTable(t Table) Option {
	return func(s *Solver) { s.table = t }
}

// WithWorkers evaluates the root actions of BestAction on up to n
// goroutines. Values are identical to a single-worker search.
func WithWorkers(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the logger used for search statistics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Solver) { s.logger = l }
}

// New creates a Solver. Without WithTable it uses a MapTable, or a
// SyncTable when several workers are configured.
func New(opts ...Option) *Solver {
	s := &Solver{workers: 1, logger: log.Logger}
	for _, opt := range opts {
		opt(s)
	}
	if s.table == nil {
		if s.workers > 1 {
			s.table = NewSyncTable()
		} else {
			s.table = NewMapTable()
		}
	}
	return s
}

// Stats summarises transposition table usage.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Stats returns the table statistics accumulated since the last Reset.
func (s *Solver) Stats() Stats {
	return Stats{
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
		Entries: s.table.Len(),
	}
}

// Reset clears the transposition table and statistics.
func (s *Solver) Reset() {
	s.table.Reset()
	s.hits.Store(0)
	s.misses.Store(0)
}

// Value returns the expected value of gs under optimal player play and the
// dealer heuristic.
func (s *Solver) Value(gs roulette.GameState) float64 {
	return s.expectimax(gs)
}

func (s *Solver) expectimax(gs roulette.GameState) float64 {
	if gs.IsTerminal() {
		return Evaluate(gs)
	}
	if v, ok := s.table.Get(gs); ok {
		s.hits.Add(1)
		return v
	}
	s.misses.Add(1)

	var v float64
	if gs.DealerTurn {
		v = s.dealerValue(gs)
	} else {
		v = s.playerValue(gs)
	}
	s.table.Put(gs, v)
	return v
}

// dealerValue follows the dealer heuristic. Every eligible item, visited in
// acquisition order, is a branch weighted by the chance 1/len(items) that
// the dealer reached for it; if any item applies, the dealer does not shoot
// at this decision point. Otherwise the dealer takes the last shell at
// whoever it must hit, or flips a coin over the target.
func (s *Solver) dealerValue(gs roulette.GameState) float64 {
	inv := gs.DealerItems
	if inv.Len() > 0 {
		pickup := 1 / float64(inv.Len())
		used := false
		ev := 0.0
		for i, kind := range inv.All() {
			if !gs.CanUse(kind) {
				continue
			}
			ev += s.itemValue(gs, i) * pickup
			used = true
		}
		if used {
			return ev
		}
	}

	if gs.IsLastRound() {
		if gs.Live == 1 {
			return Evaluate(gs.ApplyShoot(roulette.Player, roulette.Live))
		}
		return Evaluate(gs.ApplyShoot(roulette.Dealer, roulette.Blank))
	}

	return s.shotValue(gs, roulette.Dealer)*dealerShotOdds +
		s.shotValue(gs, roulette.Player)*(1-dealerShotOdds)
}

// playerValue is the best value among the player's eligible actions.
func (s *Solver) playerValue(gs roulette.GameState) float64 {
	best := math.Inf(-1)
	for _, a := range gs.LegalActions() {
		best = max(best, s.actionValue(gs, a))
	}
	return best
}

// actionValue is the expected value of the acting side playing a.
func (s *Solver) actionValue(gs roulette.GameState, a roulette.Action) float64 {
	switch a {
	case roulette.ShootDealer:
		return s.shotValue(gs, roulette.Dealer)
	case roulette.ShootPlayer:
		return s.shotValue(gs, roulette.Player)
	}
	return s.itemValue(gs, gs.Items(gs.Turn()).IndexOf(a.Item()))
}

// shotValue averages the acting side firing at target over the shell kinds.
func (s *Solver) shotValue(gs roulette.GameState, target roulette.Side) float64 {
	ev := 0.0
	for _, c := range gs.Chances() {
		ev += s.expectimax(gs.ApplyShoot(target, c.Round)) * c.P
	}
	return ev
}

// itemValue is the expected value of the acting side using the item at
// acquisition index idx.
func (s *Solver) itemValue(gs roulette.GameState, idx int) float64 {
	if gs.Items(gs.Turn()).At(idx) == roulette.Cigarette {
		return s.expectimax(gs.ApplyItemAt(idx, roulette.Unknown))
	}
	ev := 0.0
	for _, c := range gs.Chances() {
		ev += s.expectimax(gs.ApplyItemAt(idx, c.Round)) * c.P
	}
	return ev
}
