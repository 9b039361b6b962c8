package roulette

import "fmt"

// Side identifies one of the two agents.
type Side uint8

const (
	Dealer Side = iota
	Player
)

func (s Side) String() string {
	if s == Dealer {
		return "dealer"
	}
	return "player"
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == Dealer {
		return Player
	}
	return Dealer
}

// Round is a shell kind. As knowledge about the next shell, Unknown means
// nothing has been revealed.
type Round uint8

const (
	Unknown Round = iota
	Live
	Blank
)

func (r Round) String() string {
	switch r {
	case Live:
		return "live"
	case Blank:
		return "blank"
	default:
		return "unknown"
	}
}

// Action is a move available on a turn.
type Action uint8

const (
	ShootDealer Action = iota
	ShootPlayer
	DrinkBeer
	SmokeCigarette
	UseMagnifyingGlass
)

var actionNames = map[Action]string{
	ShootDealer:        "shoot dealer",
	ShootPlayer:        "shoot player",
	DrinkBeer:          "drink beer",
	SmokeCigarette:     "smoke cigarette",
	UseMagnifyingGlass: "use magnifying glass",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// Item returns the item consumed by a, or NoItem for shots.
func (a Action) Item() Item {
	switch a {
	case DrinkBeer:
		return Beer
	case SmokeCigarette:
		return Cigarette
	case UseMagnifyingGlass:
		return MagnifyingGlass
	}
	return NoItem
}

// ItemAction returns the action that consumes kind, if any.
func ItemAction(kind Item) (Action, bool) {
	switch kind {
	case Beer:
		return DrinkBeer, true
	case Cigarette:
		return SmokeCigarette, true
	case MagnifyingGlass:
		return UseMagnifyingGlass, true
	}
	return 0, false
}

// Limits on the counters. Each one fits a 4-bit field; the two shell
// counters together may reach MaxRounds.
const (
	MaxRounds  = 16
	MaxLifeCap = 15
	maxCounter = 15
	minLifeCap = 1
)

// GameState is a complete, comparable snapshot of a game. Transitions take
// the receiver by value and return a new state, so a GameState can be used
// directly as a map key.
type GameState struct {
	DealerTurn  bool
	Next        Round
	Live        uint8
	Blank       uint8
	MaxLives    uint8
	DealerLives uint8
	PlayerLives uint8
	DealerItems Inventory
	PlayerItems Inventory
}

// Setup holds externally supplied initial fields.
type Setup struct {
	DealerTurn  bool
	Next        Round
	Live        int
	Blank       int
	MaxLives    int
	DealerLives int
	PlayerLives int
	DealerItems []Item
	PlayerItems []Item
}

// NewGameState validates s and builds the corresponding state.
func NewGameState(s Setup) (GameState, error) {
	counters := []struct {
		name string
		v    int
	}{
		{"live rounds", s.Live},
		{"blank rounds", s.Blank},
		{"max lives", s.MaxLives},
		{"dealer lives", s.DealerLives},
		{"player lives", s.PlayerLives},
	}
	for _, c := range counters {
		if c.v < 0 || c.v > maxCounter {
			return GameState{}, fmt.Errorf("%w: %s %d out of range [0,%d]", ErrInvalidState, c.name, c.v, maxCounter)
		}
	}
	dealerItems, err := NewInventory(s.DealerItems...)
	if err != nil {
		return GameState{}, fmt.Errorf("dealer items: %w", err)
	}
	playerItems, err := NewInventory(s.PlayerItems...)
	if err != nil {
		return GameState{}, fmt.Errorf("player items: %w", err)
	}
	gs := GameState{
		DealerTurn:  s.DealerTurn,
		Next:        s.Next,
		Live:        uint8(s.Live),
		Blank:       uint8(s.Blank),
		MaxLives:    uint8(s.MaxLives),
		DealerLives: uint8(s.DealerLives),
		PlayerLives: uint8(s.PlayerLives),
		DealerItems: dealerItems,
		PlayerItems: playerItems,
	}
	if err := gs.Validate(); err != nil {
		return GameState{}, err
	}
	return gs, nil
}

// MustGameState is NewGameState for fixed literals; it panics on error.
func MustGameState(s Setup) GameState {
	gs, err := NewGameState(s)
	if err != nil {
		panic(err)
	}
	return gs
}

// Validate checks the structural invariants of gs.
func (gs GameState) Validate() error {
	if gs.MaxLives < minLifeCap || gs.MaxLives > MaxLifeCap {
		return fmt.Errorf("%w: max lives %d out of range [%d,%d]", ErrInvalidState, gs.MaxLives, minLifeCap, MaxLifeCap)
	}
	if gs.DealerLives > gs.MaxLives {
		return fmt.Errorf("%w: dealer lives %d exceed max %d", ErrInvalidState, gs.DealerLives, gs.MaxLives)
	}
	if gs.PlayerLives > gs.MaxLives {
		return fmt.Errorf("%w: player lives %d exceed max %d", ErrInvalidState, gs.PlayerLives, gs.MaxLives)
	}
	if gs.DealerLives == 0 && gs.PlayerLives == 0 {
		return fmt.Errorf("%w: both sides have no lives", ErrInvalidState)
	}
	if gs.Rounds() > MaxRounds {
		return fmt.Errorf("%w: %d rounds exceed %d", ErrInvalidState, gs.Rounds(), MaxRounds)
	}
	switch gs.Next {
	case Unknown:
	case Live:
		if gs.Live == 0 {
			return fmt.Errorf("%w: next round known live but no live rounds remain", ErrInvalidState)
		}
	case Blank:
		if gs.Blank == 0 {
			return fmt.Errorf("%w: next round known blank but no blank rounds remain", ErrInvalidState)
		}
	default:
		return fmt.Errorf("%w: unknown next-round knowledge %d", ErrInvalidState, gs.Next)
	}
	return nil
}

// Turn returns the side to act.
func (gs GameState) Turn() Side {
	if gs.DealerTurn {
		return Dealer
	}
	return Player
}

// Lives returns the life total of side.
func (gs GameState) Lives(side Side) uint8 {
	if side == Dealer {
		return gs.DealerLives
	}
	return gs.PlayerLives
}

// Items returns the inventory of side.
func (gs GameState) Items(side Side) Inventory {
	if side == Dealer {
		return gs.DealerItems
	}
	return gs.PlayerItems
}

// Rounds returns the number of shells left in the chamber.
func (gs GameState) Rounds() int {
	return int(gs.Live) + int(gs.Blank)
}

// IsTerminal reports whether either side is dead or the chamber is empty.
func (gs GameState) IsTerminal() bool {
	return gs.DealerLives == 0 || gs.PlayerLives == 0 || gs.Rounds() == 0
}

// IsLastRound reports whether exactly one shell remains.
func (gs GameState) IsLastRound() bool {
	return gs.Rounds() == 1
}

// OnlyLive reports whether every remaining shell is live.
func (gs GameState) OnlyLive() bool {
	return gs.Live > 0 && gs.Blank == 0
}

// OnlyBlank reports whether every remaining shell is blank.
func (gs GameState) OnlyBlank() bool {
	return gs.Blank > 0 && gs.Live == 0
}

// Chance is one possible kind of the next shell with its probability.
type Chance struct {
	Round Round
	P     float64
}

// Chances returns the distribution of the next shell. A revealed or forced
// shell yields a single entry with probability 1.
func (gs GameState) Chances() []Chance {
	switch {
	case gs.Next == Live, gs.OnlyLive():
		return []Chance{{Round: Live, P: 1}}
	case gs.Next == Blank, gs.OnlyBlank():
		return []Chance{{Round: Blank, P: 1}}
	case gs.Rounds() == 0:
		return nil
	}
	pLive := float64(gs.Live) / float64(gs.Rounds())
	return []Chance{
		{Round: Live, P: pLive},
		{Round: Blank, P: 1 - pLive},
	}
}

func (gs GameState) String() string {
	return EncodeNotation(gs)
}
