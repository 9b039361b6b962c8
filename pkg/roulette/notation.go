package roulette

import (
	"fmt"
	"strconv"
	"strings"
)

var nextToChar = map[Round]byte{
	Unknown: '?',
	Live:    'l',
	Blank:   'b',
}

var charToNext = map[byte]Round{
	'?': Unknown,
	'l': Live,
	'b': Blank,
}

// EncodeNotation serializes gs into notation form.
func EncodeNotation(gs GameState) string {
	var b strings.Builder
	b.Grow(32)

	if gs.DealerTurn {
		b.WriteByte('d')
	} else {
		b.WriteByte('p')
	}
	b.WriteByte(nextToChar[gs.Next])
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(int(gs.Live)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(int(gs.Blank)))
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(int(gs.DealerLives)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(int(gs.PlayerLives)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(int(gs.MaxLives)))
	b.WriteByte('/')
	encodeInventory(&b, gs.DealerItems)
	b.WriteByte('/')
	encodeInventory(&b, gs.PlayerItems)

	return b.String()
}

func encodeInventory(b *strings.Builder, inv Inventory) {
	if inv.Len() == 0 {
		b.WriteByte('-')
		return
	}
	for _, it := range inv.All() {
		b.WriteByte(itemLetters[it])
	}
}

// DecodeNotation parses a notation string into a validated GameState.
func DecodeNotation(s string) (GameState, error) {
	sections := strings.Split(strings.TrimSpace(s), "/")
	if len(sections) != 5 {
		return GameState{}, fmt.Errorf("%w: expected 5 sections, got %d", ErrInvalidNotation, len(sections))
	}

	var setup Setup
	if err := decodeTurn(sections[0], &setup); err != nil {
		return GameState{}, err
	}

	rounds, err := decodeNumbers(sections[1], 2, "rounds")
	if err != nil {
		return GameState{}, err
	}
	setup.Live, setup.Blank = rounds[0], rounds[1]

	lives, err := decodeNumbers(sections[2], 3, "lives")
	if err != nil {
		return GameState{}, err
	}
	setup.DealerLives, setup.PlayerLives, setup.MaxLives = lives[0], lives[1], lives[2]

	if setup.DealerItems, err = decodeItems(sections[3]); err != nil {
		return GameState{}, fmt.Errorf("dealer items: %w", err)
	}
	if setup.PlayerItems, err = decodeItems(sections[4]); err != nil {
		return GameState{}, fmt.Errorf("player items: %w", err)
	}

	gs, err := NewGameState(setup)
	if err != nil {
		return GameState{}, fmt.Errorf("%w: %w", ErrInvalidNotation, err)
	}
	return gs, nil
}

func decodeTurn(s string, setup *Setup) error {
	if len(s) != 2 {
		return fmt.Errorf("%w: turn section %q must be 2 characters", ErrInvalidNotation, s)
	}
	switch s[0] {
	case 'd':
		setup.DealerTurn = true
	case 'p':
		setup.DealerTurn = false
	default:
		return fmt.Errorf("%w: unknown turn %q", ErrInvalidNotation, s[0])
	}
	next, ok := charToNext[s[1]]
	if !ok {
		return fmt.Errorf("%w: unknown next-round marker %q", ErrInvalidNotation, s[1])
	}
	setup.Next = next
	return nil
}

func decodeNumbers(s string, n int, what string) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%w: %s section %q needs %d numbers", ErrInvalidNotation, what, s, n)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %s section %q: %v", ErrInvalidNotation, what, s, err)
		}
		out[i] = v
	}
	return out, nil
}

func decodeItems(s string) ([]Item, error) {
	if s == "-" {
		return nil, nil
	}
	if s == "" {
		return nil, fmt.Errorf("%w: empty item section", ErrInvalidNotation)
	}
	items := make([]Item, 0, len(s))
	for i := 0; i < len(s); i++ {
		it, ok := letterItems[s[i]]
		if !ok {
			return nil, fmt.Errorf("%w: unknown item letter %q", ErrInvalidNotation, s[i])
		}
		items = append(items, it)
	}
	return items, nil
}

// EncodeItems returns the notation letters of inv, or "-" when empty.
func EncodeItems(inv Inventory) string {
	var b strings.Builder
	encodeInventory(&b, inv)
	return b.String()
}

// DecodeItems parses notation letters into an inventory.
func DecodeItems(s string) (Inventory, error) {
	items, err := decodeItems(strings.TrimSpace(s))
	if err != nil {
		return Inventory{}, err
	}
	inv, err := NewInventory(items...)
	if err != nil {
		return Inventory{}, fmt.Errorf("%w: %w", ErrInvalidNotation, err)
	}
	return inv, nil
}
