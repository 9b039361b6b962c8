package bot

import "github.com/SafeMemoryZone/buckshot-roulette/pkg/roulette"

// DealerTurn plays one full dealer turn on gs and returns the result. The
// dealer picks every item kind it could use at the start of the turn, then
// uses them in acquisition order, skipping any that the earlier ones made
// unusable. It then shoots: the last shell goes to whoever it must hit,
// otherwise a coin decides the target.
func DealerTurn(gs roulette.GameState, rng *Rng) roulette.GameState {
	if gs.IsTerminal() || !gs.DealerTurn {
		panic(&roulette.PreconditionError{Op: "dealer turn", Reason: "dealer cannot act in " + gs.String()})
	}

	var chosen []roulette.Item
	for _, kind := range gs.DealerItems.All() {
		if gs.CanUse(kind) {
			chosen = append(chosen, kind)
		}
	}
	for _, kind := range chosen {
		if !gs.CanUse(kind) {
			continue
		}
		round := roulette.Unknown
		if kind != roulette.Cigarette {
			round = rng.Round(gs)
		}
		gs = gs.ApplyItemAt(gs.DealerItems.IndexOf(kind), round)
	}

	if gs.IsLastRound() {
		if gs.Live == 1 {
			return gs.ApplyShoot(roulette.Player, roulette.Live)
		}
		return gs.ApplyShoot(roulette.Dealer, roulette.Blank)
	}

	target := roulette.Player
	if rng.Coin() {
		target = roulette.Dealer
	}
	return gs.ApplyShoot(target, rng.Round(gs))
}
