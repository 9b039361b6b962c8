package roulette

import "fmt"

// consumeRound removes one shell of kind r from the chamber and clears the
// next-round knowledge.
func (gs GameState) consumeRound(op string, r Round) GameState {
	switch r {
	case Live:
		if gs.Live == 0 {
			violate(op, "no live rounds remain")
		}
		if gs.Next == Blank {
			violate(op, "next round is known blank")
		}
		gs.Live--
	case Blank:
		if gs.Blank == 0 {
			violate(op, "no blank rounds remain")
		}
		if gs.Next == Live {
			violate(op, "next round is known live")
		}
		gs.Blank--
	default:
		violate(op, "round kind %s is not a shell", r)
	}
	gs.Next = Unknown
	return gs
}

// withItems returns gs with the acting side's inventory replaced.
func (gs GameState) withItems(inv Inventory) GameState {
	if gs.DealerTurn {
		gs.DealerItems = inv
	} else {
		gs.PlayerItems = inv
	}
	return gs
}

func (gs GameState) requireActive(op string) {
	if gs.IsTerminal() {
		violate(op, "state %s is terminal", EncodeNotation(gs))
	}
}

// ApplyShoot fires the next shell, known to be round, at target. A live
// shell costs the target one life. The turn passes to the other side except
// when the shooter fires a blank at themself.
func (gs GameState) ApplyShoot(target Side, round Round) GameState {
	const op = "shoot"
	gs.requireActive(op)
	shooter := gs.Turn()
	gs = gs.consumeRound(op, round)

	if round == Live {
		if target == Dealer {
			gs.DealerLives--
		} else {
			gs.PlayerLives--
		}
	}
	if round == Blank && target == shooter {
		return gs
	}
	gs.DealerTurn = !gs.DealerTurn
	return gs
}

// ApplyDrinkBeer racks the next shell, known to be round, out of the chamber
// without firing it. The acting side keeps the turn.
func (gs GameState) ApplyDrinkBeer(round Round) GameState {
	return gs.drinkBeerAt(gs.itemIndex("drink beer", Beer), round)
}

func (gs GameState) drinkBeerAt(idx int, round Round) GameState {
	const op = "drink beer"
	gs.requireActive(op)
	inv := gs.Items(gs.Turn()).RemoveAt(idx)
	return gs.consumeRound(op, round).withItems(inv)
}

// ApplySmokeCigarette restores one life to the acting side.
func (gs GameState) ApplySmokeCigarette() GameState {
	return gs.smokeAt(gs.itemIndex("smoke cigarette", Cigarette))
}

func (gs GameState) smokeAt(idx int) GameState {
	const op = "smoke cigarette"
	gs.requireActive(op)
	if gs.Lives(gs.Turn()) >= gs.MaxLives {
		violate(op, "%s is already at %d lives", gs.Turn(), gs.MaxLives)
	}
	inv := gs.Items(gs.Turn()).RemoveAt(idx)
	if gs.DealerTurn {
		gs.DealerLives++
	} else {
		gs.PlayerLives++
	}
	return gs.withItems(inv)
}

// ApplyMagnify reveals that the next shell is round without consuming it.
func (gs GameState) ApplyMagnify(round Round) GameState {
	return gs.magnifyAt(gs.itemIndex("magnify", MagnifyingGlass), round)
}

func (gs GameState) magnifyAt(idx int, round Round) GameState {
	const op = "magnify"
	gs.requireActive(op)
	switch round {
	case Live:
		if gs.Live == 0 || gs.Next == Blank {
			violate(op, "next round cannot be live")
		}
	case Blank:
		if gs.Blank == 0 || gs.Next == Live {
			violate(op, "next round cannot be blank")
		}
	default:
		violate(op, "round kind %s is not a shell", round)
	}
	inv := gs.Items(gs.Turn()).RemoveAt(idx)
	gs.Next = round
	return gs.withItems(inv)
}

// ApplyItemAt uses the acting side's item at acquisition index idx. round
// is the kind of the affected shell and is ignored for cigarettes.
func (gs GameState) ApplyItemAt(idx int, round Round) GameState {
	switch kind := gs.Items(gs.Turn()).At(idx); kind {
	case Beer:
		return gs.drinkBeerAt(idx, round)
	case Cigarette:
		return gs.smokeAt(idx)
	case MagnifyingGlass:
		return gs.magnifyAt(idx, round)
	default:
		violate("use item", "%s has no effect", kind)
	}
	return gs
}

// ApplyAction plays action for the acting side. round is the realized kind
// of the shell involved; it is ignored by SmokeCigarette.
func (gs GameState) ApplyAction(action Action, round Round) GameState {
	switch action {
	case ShootDealer:
		return gs.ApplyShoot(Dealer, round)
	case ShootPlayer:
		return gs.ApplyShoot(Player, round)
	case DrinkBeer:
		return gs.ApplyDrinkBeer(round)
	case SmokeCigarette:
		return gs.ApplySmokeCigarette()
	case UseMagnifyingGlass:
		return gs.ApplyMagnify(round)
	}
	violate("apply action", "unknown action %d", uint8(action))
	return gs
}

func (gs GameState) itemIndex(op string, kind Item) int {
	idx := gs.Items(gs.Turn()).IndexOf(kind)
	if idx < 0 {
		violate(op, "%s holds no %s", gs.Turn(), kind)
	}
	return idx
}

// ShotOutcome is one branch of a shot: who was targeted, which shell was
// fired, the resulting state and the probability of that shell.
type ShotOutcome struct {
	Target Side
	Round  Round
	State  GameState
	P      float64
}

// ExpandShootOutcomes returns every feasible (target, shell) branch of the
// acting side's shot. Probabilities are conditional on the target, so the
// branches for each target sum to 1.
func (gs GameState) ExpandShootOutcomes() []ShotOutcome {
	gs.requireActive("expand shoot outcomes")
	chances := gs.Chances()
	out := make([]ShotOutcome, 0, 2*len(chances))
	for _, target := range []Side{Dealer, Player} {
		for _, c := range chances {
			out = append(out, ShotOutcome{
				Target: target,
				Round:  c.Round,
				State:  gs.ApplyShoot(target, c.Round),
				P:      c.P,
			})
		}
	}
	return out
}

// ApplyReload loads a fresh chamber once the previous one is empty. Lives,
// the life cap and the turn carry over; both inventories are replaced.
func (gs GameState) ApplyReload(live, blank int, dealerItems, playerItems Inventory) (GameState, error) {
	const op = "reload"
	if gs.Rounds() != 0 {
		violate(op, "%d rounds remain in the chamber", gs.Rounds())
	}
	if gs.DealerLives == 0 || gs.PlayerLives == 0 {
		violate(op, "the game is over")
	}
	if live < 0 || blank < 0 || live > maxCounter || blank > maxCounter || live+blank == 0 || live+blank > MaxRounds {
		return GameState{}, fmt.Errorf("%w: cannot load %d live and %d blank rounds", ErrInvalidState, live, blank)
	}
	gs.Live, gs.Blank = uint8(live), uint8(blank)
	gs.Next = Unknown
	gs.DealerItems, gs.PlayerItems = dealerItems, playerItems
	return gs, nil
}
