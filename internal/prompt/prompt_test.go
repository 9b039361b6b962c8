package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/SafeMemoryZone/buckshot-roulette/pkg/roulette"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out), &out
}

func TestNumber_RepromptsUntilValid(t *testing.T) {
	p, out := newTestPrompter("abc\n9\n0\n2\n")
	n, err := p.Number(1, 3, "Round")
	if err != nil {
		t.Fatalf("number: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2, got %d", n)
	}
	if c := strings.Count(out.String(), "error:"); c != 3 {
		t.Errorf("expected 3 errors, got %d in %q", c, out.String())
	}
}

func TestNumber_Closed(t *testing.T) {
	p, _ := newTestPrompter("x\n")
	if _, err := p.Number(1, 3, "Round"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestItems(t *testing.T) {
	p, out := newTestPrompter("beer\nlaser\nMagnifying Glass\ncigarette\n\n")
	items, err := p.Items("Dealer items")
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	want := []roulette.Item{roulette.Beer, roulette.MagnifyingGlass, roulette.Cigarette}
	if len(items) != len(want) {
		t.Fatalf("expected %v, got %v", want, items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("item %d: expected %v, got %v", i, want[i], items[i])
		}
	}
	if !strings.Contains(out.String(), `unknown item "laser"`) {
		t.Errorf("expected unknown item error, got %q", out.String())
	}
}

func TestItems_Capacity(t *testing.T) {
	p, _ := newTestPrompter(strings.Repeat("beer\n", 10) + "\n")
	items, err := p.Items("Player items")
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != roulette.MaxItems {
		t.Errorf("expected %d items, got %d", roulette.MaxItems, len(items))
	}
}

func TestRound(t *testing.T) {
	p, _ := newTestPrompter("maybe\nL\nblank\n")
	r, err := p.Round("Shell")
	if err != nil || r != roulette.Live {
		t.Errorf("expected live, got %v (%v)", r, err)
	}
	r, err = p.Round("Shell")
	if err != nil || r != roulette.Blank {
		t.Errorf("expected blank, got %v (%v)", r, err)
	}
}

func TestAction_RejectsIllegal(t *testing.T) {
	gs, err := roulette.DecodeNotation("d?/2,2/3,3,3/c/-")
	if err != nil {
		t.Fatal(err)
	}
	// The dealer is at the cap, so the cigarette is refused.
	p, out := newTestPrompter("cigarette\ndance\nshoot player\n")
	a, err := p.Action("Dealer action", gs)
	if err != nil {
		t.Fatalf("action: %v", err)
	}
	if a != roulette.ShootPlayer {
		t.Errorf("expected shoot player, got %v", a)
	}
	if c := strings.Count(out.String(), "error:"); c != 2 {
		t.Errorf("expected 2 errors, got %d", c)
	}
}

func TestSetup(t *testing.T) {
	input := strings.Join([]string{
		"4", "2", // round 4 is rejected
		"5", "3", // lives cap at 4
		"2",
		"9", "3", // live
		"6", "0", // blanks: at most 8-3
		"beer", "",
		"cigarette", "magnifying glass", "",
	}, "\n") + "\n"
	p, _ := newTestPrompter(input)

	gs, err := p.Setup()
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if gs.MaxLives != 4 || gs.PlayerLives != 3 || gs.DealerLives != 2 {
		t.Errorf("unexpected lives in %s", gs)
	}
	if gs.Live != 3 || gs.Blank != 0 {
		t.Errorf("unexpected rounds in %s", gs)
	}
	if gs.DealerTurn {
		t.Error("the player acts first")
	}
	if got := roulette.EncodeNotation(gs); got != "p?/3,0/2,3,4/b/cm" {
		t.Errorf("unexpected state %s", got)
	}
}

func TestSetup_NoLiveNeedsBlank(t *testing.T) {
	input := "1\n2\n2\n0\n0\n2\n\n\n"
	p, out := newTestPrompter(input)
	gs, err := p.Setup()
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if gs.Live != 0 || gs.Blank != 2 {
		t.Errorf("unexpected rounds in %s", gs)
	}
	if !strings.Contains(out.String(), "between 1 and 8") {
		t.Errorf("expected blank lower bound 1, got %q", out.String())
	}
}

func TestReload(t *testing.T) {
	empty, err := roulette.DecodeNotation("d?/0,0/1,2,4/-/-")
	if err != nil {
		t.Fatal(err)
	}
	p, _ := newTestPrompter("2\n3\nbeer\n\nhandsaw\ncigarette\n\n")
	gs, err := p.Reload(empty)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := roulette.EncodeNotation(gs); got != "d?/2,3/1,2,4/b/sc" {
		t.Errorf("unexpected state %s", got)
	}
}
