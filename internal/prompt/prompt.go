// Package prompt reads game setup and in-game events from a line-oriented
// terminal. Invalid answers are reported and asked again; only a closed
// input ends a prompt early.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SafeMemoryZone/buckshot-roulette/pkg/roulette"
)

// ErrClosed is returned when the input ends before a prompt is answered.
var ErrClosed = errors.New("prompt: input closed")

// maxLoad is the largest number of shells a real chamber is loaded with.
const maxLoad = 8

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Printf writes a message without waiting for an answer.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *Prompter) errorf(format string, args ...any) {
	fmt.Fprintf(p.out, "error: "+format+"\n", args...)
}

// Number asks for an integer in [lo,hi].
func (p *Prompter) Number(lo, hi int, question string) (int, error) {
	for {
		fmt.Fprintf(p.out, "%s (%d-%d): ", question, lo, hi)
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < lo || n > hi {
			p.errorf("enter a number between %d and %d", lo, hi)
			continue
		}
		return n, nil
	}
}

// Items reads one item name per line until an empty line.
func (p *Prompter) Items(question string) ([]roulette.Item, error) {
	fmt.Fprintf(p.out, "%s (one per line, empty line to finish):\n", question)
	var items []roulette.Item
	for {
		line, err := p.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			return items, nil
		}
		it, err := roulette.ParseItem(line)
		if err != nil {
			p.errorf("unknown item %q; available: beer, cigarette, magnifying glass, handsaw, handcuffs", line)
			continue
		}
		if len(items) == roulette.MaxItems {
			p.errorf("at most %d items fit", roulette.MaxItems)
			continue
		}
		items = append(items, it)
	}
}

// Round asks which kind of shell came out.
func (p *Prompter) Round(question string) (roulette.Round, error) {
	for {
		fmt.Fprintf(p.out, "%s (live/blank): ", question)
		line, err := p.readLine()
		if err != nil {
			return roulette.Unknown, err
		}
		switch strings.ToLower(line) {
		case "live", "l":
			return roulette.Live, nil
		case "blank", "b":
			return roulette.Blank, nil
		}
		p.errorf("answer live or blank")
	}
}

var actionAliases = map[string]roulette.Action{
	"shoot dealer":         roulette.ShootDealer,
	"dealer":               roulette.ShootDealer,
	"sd":                   roulette.ShootDealer,
	"shoot player":         roulette.ShootPlayer,
	"player":               roulette.ShootPlayer,
	"sp":                   roulette.ShootPlayer,
	"beer":                 roulette.DrinkBeer,
	"drink beer":           roulette.DrinkBeer,
	"cigarette":            roulette.SmokeCigarette,
	"smoke cigarette":      roulette.SmokeCigarette,
	"magnifying glass":     roulette.UseMagnifyingGlass,
	"use magnifying glass": roulette.UseMagnifyingGlass,
	"magnifier":            roulette.UseMagnifyingGlass,
	"glass":                roulette.UseMagnifyingGlass,
}

// Action asks for one of the legal actions of gs.
func (p *Prompter) Action(question string, gs roulette.GameState) (roulette.Action, error) {
	legal := gs.LegalActions()
	names := make([]string, len(legal))
	for i, a := range legal {
		names[i] = a.String()
	}
	for {
		fmt.Fprintf(p.out, "%s [%s]: ", question, strings.Join(names, ", "))
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		a, ok := actionAliases[strings.ToLower(line)]
		if !ok || !gs.IsLegal(a) {
			p.errorf("%q is not available now", line)
			continue
		}
		return a, nil
	}
}

// lifeCaps maps the game's round number to the life cap of that round.
var lifeCaps = map[int]int{1: 2, 2: 4, 3: 6}

// Setup asks for a full opening state with the player to act.
func (p *Prompter) Setup() (roulette.GameState, error) {
	round, err := p.Number(1, 3, "Current round number")
	if err != nil {
		return roulette.GameState{}, err
	}
	maxLives := lifeCaps[round]

	playerLives, err := p.Number(1, maxLives, "Player lives")
	if err != nil {
		return roulette.GameState{}, err
	}
	dealerLives, err := p.Number(1, maxLives, "Dealer lives")
	if err != nil {
		return roulette.GameState{}, err
	}
	live, blank, err := p.load()
	if err != nil {
		return roulette.GameState{}, err
	}
	dealerItems, err := p.Items("Dealer items")
	if err != nil {
		return roulette.GameState{}, err
	}
	playerItems, err := p.Items("Player items")
	if err != nil {
		return roulette.GameState{}, err
	}

	return roulette.NewGameState(roulette.Setup{
		Live:        live,
		Blank:       blank,
		MaxLives:    maxLives,
		DealerLives: dealerLives,
		PlayerLives: playerLives,
		DealerItems: dealerItems,
		PlayerItems: playerItems,
	})
}

// Reload asks for the next load of an emptied chamber and the items handed
// out with it.
func (p *Prompter) Reload(gs roulette.GameState) (roulette.GameState, error) {
	live, blank, err := p.load()
	if err != nil {
		return roulette.GameState{}, err
	}
	dealerItems, err := p.Items("Dealer items")
	if err != nil {
		return roulette.GameState{}, err
	}
	playerItems, err := p.Items("Player items")
	if err != nil {
		return roulette.GameState{}, err
	}
	dinv, err := roulette.NewInventory(dealerItems...)
	if err != nil {
		return roulette.GameState{}, err
	}
	pinv, err := roulette.NewInventory(playerItems...)
	if err != nil {
		return roulette.GameState{}, err
	}
	return gs.ApplyReload(live, blank, dinv, pinv)
}

// load asks for the shell counts of one chamber: at most eight shells and
// at least one of them.
func (p *Prompter) load() (int, int, error) {
	live, err := p.Number(0, maxLoad, "Live round count")
	if err != nil {
		return 0, 0, err
	}
	minBlank := 0
	if live == 0 {
		minBlank = 1
	}
	blank, err := p.Number(minBlank, maxLoad-live, "Blank round count")
	if err != nil {
		return 0, 0, err
	}
	return live, blank, nil
}
