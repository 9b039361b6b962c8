package bot

import (
	"math/rand"
	"time"

	"github.com/SafeMemoryZone/buckshot-roulette/pkg/roulette"
)

// Rng is the random source of one match. Matches run concurrently, so each
// owns its own source instead of sharing a package-level one.
type Rng struct {
	r *rand.Rand
}

// NewRng creates a deterministic source for seed. A zero seed draws one
// from the clock.
func NewRng(seed int64) *Rng {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rng{r: rand.New(rand.NewSource(seed))}
}

// Intn returns a uniform integer in [0,n).
func (g *Rng) Intn(n int) int {
	return g.r.Intn(n)
}

// Coin returns true with probability 1/2.
func (g *Rng) Coin() bool {
	return g.r.Intn(2) == 0
}

// Round draws the kind of the next shell in gs. A revealed or forced shell
// is returned as is; otherwise each remaining shell is equally likely.
func (g *Rng) Round(gs roulette.GameState) roulette.Round {
	if r, ok := gs.ForcedRound(); ok {
		return r
	}
	if g.r.Intn(gs.Rounds()) < int(gs.Live) {
		return roulette.Live
	}
	return roulette.Blank
}
