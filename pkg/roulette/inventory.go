package roulette

import (
	"fmt"
	"iter"
	"strings"
)

// MaxItems is the number of slots an inventory holds.
const MaxItems = 8

// Inventory is the ordered sequence of items one side holds, oldest first.
// It is a plain value: copying it copies the items, and two inventories are
// equal when they hold the same kinds in the same order. Slots past Len are
// kept zeroed so that equality stays structural.
type Inventory struct {
	items [MaxItems]Item
	n     uint8
}

// NewInventory builds an inventory from items in acquisition order.
func NewInventory(items ...Item) (Inventory, error) {
	var inv Inventory
	if len(items) > MaxItems {
		return inv, fmt.Errorf("%w: %d items exceeds capacity %d", ErrInvalidState, len(items), MaxItems)
	}
	for _, it := range items {
		if !it.Valid() {
			return Inventory{}, fmt.Errorf("%w: unknown item kind %d", ErrInvalidState, uint8(it))
		}
		inv.items[inv.n] = it
		inv.n++
	}
	return inv, nil
}

// MustInventory is NewInventory for fixed literals; it panics on error.
func MustInventory(items ...Item) Inventory {
	inv, err := NewInventory(items...)
	if err != nil {
		panic(err)
	}
	return inv
}

// Len returns the total number of items held, inert kinds included.
func (inv Inventory) Len() int { return int(inv.n) }

// Has reports whether at least one unit of kind is held.
func (inv Inventory) Has(kind Item) bool {
	return inv.IndexOf(kind) >= 0
}

// Count returns how many units of kind are held.
func (inv Inventory) Count(kind Item) int {
	c := 0
	for i := range int(inv.n) {
		if inv.items[i] == kind {
			c++
		}
	}
	return c
}

// Counts returns the per-kind counter form of the inventory.
func (inv Inventory) Counts() map[Item]int {
	counts := make(map[Item]int, numItemKinds)
	for i := range int(inv.n) {
		counts[inv.items[i]]++
	}
	return counts
}

// IndexOf returns the acquisition index of the oldest unit of kind, or -1.
func (inv Inventory) IndexOf(kind Item) int {
	for i := range int(inv.n) {
		if inv.items[i] == kind {
			return i
		}
	}
	return -1
}

// At returns the item at acquisition index i.
func (inv Inventory) At(i int) Item {
	if i < 0 || i >= int(inv.n) {
		violate("inventory at", "index %d out of range [0,%d)", i, inv.n)
	}
	return inv.items[i]
}

// All yields (index, item) pairs in acquisition order.
func (inv Inventory) All() iter.Seq2[int, Item] {
	return func(yield func(int, Item) bool) {
		for i := range int(inv.n) {
			if !yield(i, inv.items[i]) {
				return
			}
		}
	}
}

// Items returns a copy of the held items in acquisition order.
func (inv Inventory) Items() []Item {
	out := make([]Item, inv.n)
	copy(out, inv.items[:inv.n])
	return out
}

// Remove returns the inventory without the oldest unit of kind.
func (inv Inventory) Remove(kind Item) Inventory {
	idx := inv.IndexOf(kind)
	if idx < 0 {
		violate("inventory remove", "no %s held", kind)
	}
	return inv.RemoveAt(idx)
}

// RemoveAt returns the inventory without the item at index i. The relative
// order of the remaining items is unchanged.
func (inv Inventory) RemoveAt(i int) Inventory {
	if i < 0 || i >= int(inv.n) {
		violate("inventory remove", "index %d out of range [0,%d)", i, inv.n)
	}
	copy(inv.items[i:inv.n], inv.items[i+1:inv.n])
	inv.n--
	inv.items[inv.n] = NoItem
	return inv
}

// String lists the items by name, oldest first.
func (inv Inventory) String() string {
	if inv.n == 0 {
		return "none"
	}
	names := make([]string, inv.n)
	for i := range int(inv.n) {
		names[i] = inv.items[i].String()
	}
	return strings.Join(names, ", ")
}
