// Command solver recommends the best move in a game of shotgun roulette
// against the dealer. It asks for the opening state (or takes one in
// notation form) and then follows the game turn by turn.
//
// Usage:
//
//	go run ./cmd/solver/
//	go run ./cmd/solver/ -state 'p?/2,2/3,3,3/bcm/c' -once
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/SafeMemoryZone/buckshot-roulette/internal/config"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/logger"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/prompt"
	redisrepo "github.com/SafeMemoryZone/buckshot-roulette/internal/repository/redis"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/solver"
	"github.com/SafeMemoryZone/buckshot-roulette/pkg/roulette"
)

func main() {
	logger.Init()
	cfg := config.Load()

	var (
		state    string
		once     bool
		workers  int
		redisURL string
		noCache  bool
	)

	flag.StringVar(&state, "state", "", "Starting state in notation form (skips the setup prompts)")
	flag.BoolVar(&once, "once", false, "Print the best action for -state as JSON and exit")
	flag.IntVar(&workers, "workers", cfg.SolverWorkers, "Goroutines for the root of each search")
	flag.StringVar(&redisURL, "redis", cfg.RedisURL, "Redis URL for the solution cache (or use REDIS_URL env)")
	flag.BoolVar(&noCache, "no-cache", false, "Disable the solution cache")

	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("Shutting down...")
		cancel()
		os.Exit(1)
	}()

	p := prompt.New(os.Stdin, os.Stdout)
	s := &session{
		p:        p,
		solver:   solver.New(solver.WithWorkers(workers)),
		cacheTTL: cfg.SolutionCacheTTL,
	}

	if redisURL != "" && !noCache {
		client, err := redisrepo.NewClient(ctx, redisURL)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, solving without cache")
		} else {
			defer client.Close()
			s.cache = client
		}
	}

	var gs roulette.GameState
	var err error
	if state != "" {
		gs, err = roulette.DecodeNotation(state)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid -state")
		}
	} else {
		if once {
			log.Fatal().Msg("-once requires -state")
		}
		gs, err = p.Setup()
		if err != nil {
			log.Fatal().Err(err).Msg("Setup failed")
		}
	}

	if once {
		if gs.IsTerminal() || gs.DealerTurn {
			log.Fatal().Str("state", gs.String()).Msg("-once needs a live state with the player to act")
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s.solve(ctx, gs)); err != nil {
			log.Fatal().Err(err).Msg("Write result")
		}
		return
	}

	if err := s.run(ctx, gs); err != nil && !errors.Is(err, prompt.ErrClosed) && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Game aborted")
	}
}
