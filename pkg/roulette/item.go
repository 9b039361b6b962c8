package roulette

import (
	"fmt"
	"strings"
)

// Item is a consumable held by one side.
type Item uint8

const (
	NoItem Item = iota
	Beer
	Cigarette
	MagnifyingGlass
	// Handsaw and Handcuffs occupy inventory slots but no rule consults them.
	Handsaw
	Handcuffs
)

// numItemKinds counts the real kinds, NoItem excluded.
const numItemKinds = 5

var itemNames = map[Item]string{
	Beer:            "beer",
	Cigarette:       "cigarette",
	MagnifyingGlass: "magnifying glass",
	Handsaw:         "handsaw",
	Handcuffs:       "handcuffs",
}

// itemLetters are the single-character codes used by the notation.
var itemLetters = map[Item]byte{
	Beer:            'b',
	Cigarette:       'c',
	MagnifyingGlass: 'm',
	Handsaw:         's',
	Handcuffs:       'h',
}

var letterItems = map[byte]Item{
	'b': Beer,
	'c': Cigarette,
	'm': MagnifyingGlass,
	's': Handsaw,
	'h': Handcuffs,
}

var itemAliases = map[string]Item{
	"beer":             Beer,
	"cigarette":        Cigarette,
	"cigarettes":       Cigarette,
	"cigarette pack":   Cigarette,
	"cig":              Cigarette,
	"magnifying glass": MagnifyingGlass,
	"magnifier":        MagnifyingGlass,
	"glass":            MagnifyingGlass,
	"handsaw":          Handsaw,
	"saw":              Handsaw,
	"handcuffs":        Handcuffs,
	"cuffs":            Handcuffs,
}

func (it Item) String() string {
	if name, ok := itemNames[it]; ok {
		return name
	}
	return fmt.Sprintf("item(%d)", uint8(it))
}

// Valid reports whether it names a real item kind.
func (it Item) Valid() bool {
	return it >= Beer && it <= Handcuffs
}

// ParseItem converts a user-facing item name into an Item.
func ParseItem(s string) (Item, error) {
	it, ok := itemAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return NoItem, fmt.Errorf("%w: unknown item %q", ErrInvalidState, s)
	}
	return it, nil
}
