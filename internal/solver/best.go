package solver

import (
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/SafeMemoryZone/buckshot-roulette/pkg/roulette"
)

// ActionValue pairs a player action with its expected value.
type ActionValue struct {
	Action roulette.Action
	Value  float64
}

// ActionValues returns the expected value of every eligible player action
// in gs, in roulette.LegalActions order.
func (s *Solver) ActionValues(gs roulette.GameState) []ActionValue {
	requirePlayerTurn("action values", gs)

	actions := gs.LegalActions()
	out := make([]ActionValue, len(actions))
	if s.workers <= 1 {
		for i, a := range actions {
			out[i] = ActionValue{Action: a, Value: s.actionValue(gs, a)}
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, a := range actions {
		g.Go(func() error {
			out[i] = ActionValue{Action: a, Value: s.actionValue(gs, a)}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// BestAction returns the player's action with the highest expected value.
// Ties go to shooting the dealer, then shooting the player, then the first
// best item in beer, cigarette, magnifying glass order. gs must be a
// non-terminal state with the player to act.
func (s *Solver) BestAction(gs roulette.GameState) (roulette.Action, float64) {
	best := pickBest(s.ActionValues(gs))

	st := s.Stats()
	s.logger.Debug().
		Str("state", roulette.EncodeNotation(gs)).
		Str("action", best.Action.String()).
		Float64("ev", best.Value).
		Int("entries", st.Entries).
		Uint64("hits", st.Hits).
		Uint64("misses", st.Misses).
		Msg("Best action")

	return best.Action, best.Value
}

func pickBest(values []ActionValue) ActionValue {
	bestItem := ActionValue{Value: math.Inf(-1)}
	shootDealer := ActionValue{Action: roulette.ShootDealer, Value: math.Inf(-1)}
	shootPlayer := ActionValue{Action: roulette.ShootPlayer, Value: math.Inf(-1)}

	for _, av := range values {
		switch av.Action {
		case roulette.ShootDealer:
			shootDealer = av
		case roulette.ShootPlayer:
			shootPlayer = av
		default:
			if av.Value > bestItem.Value {
				bestItem = av
			}
		}
	}

	if shootDealer.Value >= shootPlayer.Value && shootDealer.Value >= bestItem.Value {
		return shootDealer
	}
	if shootPlayer.Value > shootDealer.Value && shootPlayer.Value >= bestItem.Value {
		return shootPlayer
	}
	return bestItem
}

func requirePlayerTurn(op string, gs roulette.GameState) {
	if gs.IsTerminal() {
		panic(&roulette.PreconditionError{Op: op, Reason: "state " + roulette.EncodeNotation(gs) + " is terminal"})
	}
	if gs.DealerTurn {
		panic(&roulette.PreconditionError{Op: op, Reason: "it is the dealer's turn"})
	}
}
