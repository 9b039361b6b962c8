package bot

import (
	"fmt"
	"sort"

	"github.com/SafeMemoryZone/buckshot-roulette/internal/solver"
	"github.com/SafeMemoryZone/buckshot-roulette/pkg/roulette"
)

// Strategy picks the player's action in a non-terminal state where the
// player is to act. The returned action must be in gs.LegalActions().
type Strategy interface {
	Name() string
	ChooseAction(gs roulette.GameState) roulette.Action
}

// StrategyOptions carries what the strategies may need from the match.
type StrategyOptions struct {
	Rng           *Rng
	SolverOptions []solver.Option
}

var strategyNames = map[string]func(StrategyOptions) Strategy{
	"expectimax": func(o StrategyOptions) Strategy { return NewExpectimaxStrategy(o.SolverOptions...) },
	"random":     func(o StrategyOptions) Strategy { return &RandomStrategy{rng: o.Rng} },
	"aggressive": func(StrategyOptions) Strategy { return AggressiveStrategy{} },
	"heuristic":  func(StrategyOptions) Strategy { return HeuristicStrategy{} },
}

// StrategyNames lists the names accepted by StrategyForName.
func StrategyNames() []string {
	names := make([]string, 0, len(strategyNames))
	for n := range strategyNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// StrategyForName returns a fresh strategy by name.
func StrategyForName(name string, opts StrategyOptions) (Strategy, error) {
	build, ok := strategyNames[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (available: %v)", name, StrategyNames())
	}
	if opts.Rng == nil {
		opts.Rng = NewRng(0)
	}
	return build(opts), nil
}

// --- ExpectimaxStrategy ---

// ExpectimaxStrategy plays the solver's best action. Its solver keeps its
// transposition table for the whole match.
type ExpectimaxStrategy struct {
	solver *solver.Solver
}

// NewExpectimaxStrategy creates an ExpectimaxStrategy with its own solver.
func NewExpectimaxStrategy(opts ...solver.Option) *ExpectimaxStrategy {
	return &ExpectimaxStrategy{solver: solver.New(opts...)}
}

func (s *ExpectimaxStrategy) Name() string { return "expectimax" }

func (s *ExpectimaxStrategy) ChooseAction(gs roulette.GameState) roulette.Action {
	a, _ := s.solver.BestAction(gs)
	return a
}

// Stats exposes the solver's table statistics.
func (s *ExpectimaxStrategy) Stats() solver.Stats {
	return s.solver.Stats()
}

// --- RandomStrategy ---

// RandomStrategy picks uniformly among the legal actions.
type RandomStrategy struct {
	rng *Rng
}

func (s *RandomStrategy) Name() string { return "random" }

func (s *RandomStrategy) ChooseAction(gs roulette.GameState) roulette.Action {
	actions := gs.LegalActions()
	return actions[s.rng.Intn(len(actions))]
}

// --- AggressiveStrategy ---

// AggressiveStrategy always shoots the dealer.
type AggressiveStrategy struct{}

func (AggressiveStrategy) Name() string { return "aggressive" }

func (AggressiveStrategy) ChooseAction(roulette.GameState) roulette.Action {
	return roulette.ShootDealer
}

// --- HeuristicStrategy ---

// HeuristicStrategy heals when hurt, looks at the shell when it can, then
// shoots the dealer on a live shell and itself on a blank. With the shell
// unknown it aims at the dealer unless blanks are the majority.
type HeuristicStrategy struct{}

func (HeuristicStrategy) Name() string { return "heuristic" }

func (HeuristicStrategy) ChooseAction(gs roulette.GameState) roulette.Action {
	if gs.IsLegal(roulette.SmokeCigarette) {
		return roulette.SmokeCigarette
	}
	if gs.IsLegal(roulette.UseMagnifyingGlass) {
		return roulette.UseMagnifyingGlass
	}

	next, known := gs.ForcedRound()
	switch {
	case known && next == roulette.Live:
		return roulette.ShootDealer
	case known && next == roulette.Blank:
		return roulette.ShootPlayer
	case gs.Blank > gs.Live:
		if gs.IsLegal(roulette.DrinkBeer) {
			return roulette.DrinkBeer
		}
		return roulette.ShootPlayer
	}
	return roulette.ShootDealer
}
