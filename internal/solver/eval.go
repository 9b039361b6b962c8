package solver

import "github.com/SafeMemoryZone/buckshot-roulette/pkg/roulette"

// Heuristic scores, from the player's point of view.
const (
	WinScore  = 100.0
	LossScore = -100.0
	// LifeWeight scales the life difference of a state where both sides
	// are still alive.
	LifeWeight = 10.0
)

// Evaluate scores a state without searching it. It is exact for finished
// games and a life-difference estimate for an emptied chamber.
func Evaluate(gs roulette.GameState) float64 {
	if gs.PlayerLives == 0 {
		return LossScore
	}
	if gs.DealerLives == 0 {
		return WinScore
	}
	return (float64(gs.PlayerLives) - float64(gs.DealerLives)) * LifeWeight
}
