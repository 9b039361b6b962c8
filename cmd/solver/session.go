package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/SafeMemoryZone/buckshot-roulette/internal/model"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/prompt"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/repository"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/solver"
	"github.com/SafeMemoryZone/buckshot-roulette/pkg/roulette"
)

// session walks one game with the user: it recommends the player's moves,
// asks what the dealer did and which shells came out, and reloads the
// chamber when it runs dry.
type session struct {
	p        *prompt.Prompter
	solver   *solver.Solver
	cache    repository.SolutionCache // nil disables caching
	cacheTTL time.Duration
}

func (s *session) run(ctx context.Context, gs roulette.GameState) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch {
		case gs.DealerLives == 0:
			s.p.Printf("The dealer is dead. You win.\n")
			return nil
		case gs.PlayerLives == 0:
			s.p.Printf("You are dead. The dealer wins.\n")
			return nil
		}

		var err error
		switch {
		case gs.Rounds() == 0:
			s.p.Printf("The chamber is empty. Enter the next load.\n")
			gs, err = s.p.Reload(gs)
		case gs.DealerTurn:
			gs, err = s.dealerMove(gs)
		default:
			gs, err = s.playerMove(ctx, gs)
		}
		if err != nil {
			return err
		}
		s.p.Printf("State: %s (dealer %d, player %d lives)\n", gs, gs.DealerLives, gs.PlayerLives)
	}
}

func (s *session) playerMove(ctx context.Context, gs roulette.GameState) (roulette.GameState, error) {
	sol := s.solve(ctx, gs)
	s.p.Printf("Best action: %s (expected value %.2f)\n", sol.Action, sol.Value)
	return s.play(gs, sol)
}

// play applies the recommended action of sol to gs.
func (s *session) play(gs roulette.GameState, sol model.Solution) (roulette.GameState, error) {
	action, ok := actionByName(gs, sol.Action)
	if !ok {
		return gs, fmt.Errorf("recommended action %q is not legal in %s", sol.Action, gs)
	}
	round, err := s.outcome(gs, action)
	if err != nil {
		return gs, err
	}
	return gs.ApplyAction(action, round), nil
}

func (s *session) dealerMove(gs roulette.GameState) (roulette.GameState, error) {
	action, err := s.p.Action("Dealer action", gs)
	if err != nil {
		return gs, err
	}
	round, err := s.outcome(gs, action)
	if err != nil {
		return gs, err
	}
	return gs.ApplyAction(action, round), nil
}

// outcome returns the shell kind involved in action, asking only when the
// state does not already determine it.
func (s *session) outcome(gs roulette.GameState, action roulette.Action) (roulette.Round, error) {
	if !gs.NeedsRound(action) {
		r, _ := gs.ForcedRound()
		return r, nil
	}
	switch action {
	case roulette.UseMagnifyingGlass:
		return s.p.Round("What did the magnifying glass show?")
	case roulette.DrinkBeer:
		return s.p.Round("Which shell was racked out?")
	}
	return s.p.Round("Which shell was fired?")
}

// solve returns the best action for gs, from the cache when possible. A
// cached action that is not legal in gs is ignored.
func (s *session) solve(ctx context.Context, gs roulette.GameState) model.Solution {
	notation := roulette.EncodeNotation(gs)
	if s.cache != nil {
		cached, err := s.cache.GetSolution(ctx, notation)
		if err != nil {
			log.Warn().Err(err).Str("state", notation).Msg("Solution cache read failed")
		} else if cached != nil {
			if _, ok := actionByName(gs, cached.Action); ok {
				log.Debug().Str("state", notation).Msg("Solution cache hit")
				return *cached
			}
		}
	}

	action, ev := s.solver.BestAction(gs)
	sol := model.Solution{
		Notation: notation,
		Action:   action.String(),
		Value:    ev,
		SolvedAt: time.Now().UTC(),
	}
	if s.cache != nil {
		if err := s.cache.SetSolution(ctx, sol, s.cacheTTL); err != nil {
			log.Warn().Err(err).Str("state", notation).Msg("Solution cache write failed")
		}
	}
	return sol
}

func actionByName(gs roulette.GameState, name string) (roulette.Action, bool) {
	for _, a := range gs.LegalActions() {
		if a.String() == name {
			return a, true
		}
	}
	return 0, false
}
