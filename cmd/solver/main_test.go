package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SafeMemoryZone/buckshot-roulette/internal/model"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/prompt"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/solver"
	"github.com/SafeMemoryZone/buckshot-roulette/pkg/roulette"
)

type memCache struct {
	solutions map[string]model.Solution
	gets      int
	sets      int
}

func newMemCache() *memCache {
	return &memCache{solutions: make(map[string]model.Solution)}
}

func (c *memCache) GetSolution(_ context.Context, notation string) (*model.Solution, error) {
	c.gets++
	sol, ok := c.solutions[notation]
	if !ok {
		return nil, nil
	}
	return &sol, nil
}

func (c *memCache) SetSolution(_ context.Context, sol model.Solution, _ time.Duration) error {
	c.sets++
	c.solutions[sol.Notation] = sol
	return nil
}

func (c *memCache) DeleteSolution(_ context.Context, notation string) error {
	delete(c.solutions, notation)
	return nil
}

func newTestSession(input string) (*session, *bytes.Buffer) {
	var out bytes.Buffer
	return &session{
		p:      prompt.New(strings.NewReader(input), &out),
		solver: solver.New(),
	}, &out
}

func mustState(t *testing.T, notation string) roulette.GameState {
	t.Helper()
	gs, err := roulette.DecodeNotation(notation)
	if err != nil {
		t.Fatalf("decode %q: %v", notation, err)
	}
	return gs
}

func TestSession_ForcedWin(t *testing.T) {
	s, out := newTestSession("")
	if err := s.run(context.Background(), mustState(t, "p?/1,0/1,2,2/-/-")); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Best action: shoot dealer") {
		t.Errorf("expected a shoot dealer recommendation, got %q", out.String())
	}
	if !strings.Contains(out.String(), "You win") {
		t.Errorf("expected a win, got %q", out.String())
	}
}

func TestSession_DealerTurnAndReload(t *testing.T) {
	// The dealer fires the last shell at the player, the chamber is
	// reloaded with one live shell, and the player finishes the dealer.
	input := strings.Join([]string{
		"shoot player",
		"1", "0", "", "",
	}, "\n") + "\n"
	s, out := newTestSession(input)
	if err := s.run(context.Background(), mustState(t, "d?/1,0/1,2,2/-/-")); err != nil {
		t.Fatalf("run: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "chamber is empty") {
		t.Errorf("expected a reload prompt, got %q", text)
	}
	if !strings.Contains(text, "You win") {
		t.Errorf("expected a win, got %q", text)
	}
}

func TestSession_AsksForUnknownShell(t *testing.T) {
	// Both shots tie at 0, so the player shoots the dealer; the shell is
	// live and the game ends.
	s, out := newTestSession("live\n")
	if err := s.run(context.Background(), mustState(t, "p?/1,1/1,1,1/-/-")); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Which shell was fired?") {
		t.Errorf("expected a shell prompt, got %q", out.String())
	}
	if !strings.Contains(out.String(), "You win") {
		t.Errorf("expected a win, got %q", out.String())
	}
}

func TestSession_InputClosed(t *testing.T) {
	s, _ := newTestSession("")
	err := s.run(context.Background(), mustState(t, "d?/1,1/2,2,2/-/-"))
	if !errors.Is(err, prompt.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestSolve_UsesCache(t *testing.T) {
	s, _ := newTestSession("")
	cache := newMemCache()
	s.cache = cache
	gs := mustState(t, "p?/2,2/3,3,3/bcm/bcm")

	first := s.solve(context.Background(), gs)
	if cache.sets != 1 {
		t.Fatalf("expected the solution to be stored, got %d sets", cache.sets)
	}
	misses := s.solver.Stats().Misses

	second := s.solve(context.Background(), gs)
	if second.Action != first.Action || second.Value != first.Value {
		t.Errorf("cached %+v differs from solved %+v", second, first)
	}
	if s.solver.Stats().Misses != misses {
		t.Error("a cache hit must not search")
	}
}

func TestSolve_IgnoresIllegalCachedAction(t *testing.T) {
	s, _ := newTestSession("")
	cache := newMemCache()
	s.cache = cache
	gs := mustState(t, "p?/1,0/1,2,2/-/-")
	cache.solutions[gs.String()] = model.Solution{Notation: gs.String(), Action: "drink beer", Value: 99}

	sol := s.solve(context.Background(), gs)
	if sol.Action != roulette.ShootDealer.String() || sol.Value != solver.WinScore {
		t.Errorf("expected a fresh solution, got %+v", sol)
	}
}

func TestPlay_RejectsIllegalAction(t *testing.T) {
	s, _ := newTestSession("")
	gs := mustState(t, "p?/1,1/2,2,2/-/-")

	got, err := s.play(gs, model.Solution{Notation: gs.String(), Action: "drink beer"})
	if err == nil {
		t.Fatal("expected an error for an action the player cannot take")
	}
	if got != gs {
		t.Errorf("expected the state to be unchanged, got %s", got)
	}
}
