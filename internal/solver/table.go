package solver

import (
	"sync"
	"sync/atomic"

	"github.com/SafeMemoryZone/buckshot-roulette/pkg/roulette"
)

// Table is a transposition table: it maps a complete game state to the
// expected value computed for it. Keys compare by full structural equality,
// so states reached through different move orders share an entry.
type Table interface {
	Get(gs roulette.GameState) (float64, bool)
	Put(gs roulette.GameState, v float64)
	Len() int
	Reset()
}

// MapTable is a Table for a single search goroutine.
type MapTable struct {
	entries map[roulette.GameState]float64
}

// NewMapTable creates an empty MapTable.
func NewMapTable() *MapTable {
	return &MapTable{entries: make(map[roulette.GameState]float64)}
}

func (t *MapTable) Get(gs roulette.GameState) (float64, bool) {
	v, ok := t.entries[gs]
	return v, ok
}

func (t *MapTable) Put(gs roulette.GameState, v float64) { t.entries[gs] = v }

func (t *MapTable) Len() int { return len(t.entries) }

func (t *MapTable) Reset() { clear(t.entries) }

// SyncTable is a Table safe for concurrent search goroutines. The first
// write for a key wins; later writers carry the same value and are dropped.
type SyncTable struct {
	entries sync.Map
	n       atomic.Int64
}

// NewSyncTable creates an empty SyncTable.
func NewSyncTable() *SyncTable {
	return &SyncTable{}
}

func (t *SyncTable) Get(gs roulette.GameState) (float64, bool) {
	v, ok := t.entries.Load(gs)
	if !ok {
		return 0, false
	}
	return v.(float64), true
}

func (t *SyncTable) Put(gs roulette.GameState, v float64) {
	if _, loaded := t.entries.LoadOrStore(gs, v); !loaded {
		t.n.Add(1)
	}
}

func (t *SyncTable) Len() int { return int(t.n.Load()) }

func (t *SyncTable) Reset() {
	t.entries.Clear()
	t.n.Store(0)
}
