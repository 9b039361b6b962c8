package roulette

// CanUse reports whether the acting side may use kind in gs. Dealer and
// player share these rules:
//   - beer: not when the next shell is known live, not on the last shell
//   - cigarette: not at the life cap
//   - magnifying glass: not when the next shell is known, not on the last shell
//   - handsaw, handcuffs: never
func (gs GameState) CanUse(kind Item) bool {
	if gs.IsTerminal() {
		return false
	}
	switch kind {
	case Beer:
		return gs.Next != Live && !gs.IsLastRound()
	case Cigarette:
		return gs.Lives(gs.Turn()) < gs.MaxLives
	case MagnifyingGlass:
		return gs.Next == Unknown && !gs.IsLastRound()
	}
	return false
}

// itemActionOrder is the order in which item actions are listed.
var itemActionOrder = []Item{Beer, Cigarette, MagnifyingGlass}

// LegalActions lists the acting side's eligible actions: one entry per
// usable item kind (beer, cigarette, magnifying glass), then both shots.
// A terminal state has none.
func (gs GameState) LegalActions() []Action {
	if gs.IsTerminal() {
		return nil
	}
	inv := gs.Items(gs.Turn())
	actions := make([]Action, 0, len(itemActionOrder)+2)
	for _, kind := range itemActionOrder {
		if inv.Has(kind) && gs.CanUse(kind) {
			a, _ := ItemAction(kind)
			actions = append(actions, a)
		}
	}
	return append(actions, ShootDealer, ShootPlayer)
}

// IsLegal reports whether action is among LegalActions.
func (gs GameState) IsLegal(action Action) bool {
	for _, a := range gs.LegalActions() {
		if a == action {
			return true
		}
	}
	return false
}

// NeedsRound reports whether applying action depends on the kind of the
// next shell, and that kind is not already determined.
func (gs GameState) NeedsRound(action Action) bool {
	if action == SmokeCigarette {
		return false
	}
	return len(gs.Chances()) > 1
}

// ForcedRound returns the next shell's kind when it is already determined
// by knowledge or by the remaining counts.
func (gs GameState) ForcedRound() (Round, bool) {
	c := gs.Chances()
	if len(c) == 1 {
		return c[0].Round, true
	}
	return Unknown, false
}
