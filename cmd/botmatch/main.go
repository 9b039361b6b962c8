// Command botmatch plays batches of simulated matches between a player
// strategy and the heuristic dealer and reports the player's win rate.
//
// Usage:
//
//	go run ./cmd/botmatch/ -strategy expectimax -n 1000 -workers 8 -live 2 -blank 2 -lives 3 -items bcm
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/SafeMemoryZone/buckshot-roulette/internal/bot"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/config"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/logger"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/repository"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/repository/postgres"
	"github.com/SafeMemoryZone/buckshot-roulette/pkg/roulette"
)

func main() {
	logger.Init()
	cfg := config.Load()

	var (
		strategies string
		numGames   int
		workers    int
		live       int
		blank      int
		lives      int
		items      string
		maxTurns   int
		seed       int64
		label      string
		dbURL      string
		jsonOut    bool
		jsonlPath  string
	)

	flag.StringVar(&strategies, "strategy", "expectimax", "Comma-separated player strategies ("+strings.Join(bot.StrategyNames(), ", ")+")")
	flag.IntVar(&numGames, "n", 100, "Number of matches per strategy")
	flag.IntVar(&workers, "workers", 1, "Concurrency (parallel matches)")
	flag.IntVar(&live, "live", 2, "Live rounds per load")
	flag.IntVar(&blank, "blank", 2, "Blank rounds per load")
	flag.IntVar(&lives, "lives", 3, "Life cap; both sides start full")
	flag.StringVar(&items, "items", "-", "Items handed to both sides on every load, as notation letters")
	flag.IntVar(&maxTurns, "max-turns", 0, "Turn cap before a draw (0 = default)")
	flag.Int64Var(&seed, "seed", 0, "Base seed (0 = random)")
	flag.StringVar(&label, "label", "", "Batch label stored with each match")
	flag.StringVar(&dbURL, "db", cfg.DatabaseURL, "Database URL to store matches (or use DATABASE_URL env)")
	flag.BoolVar(&jsonOut, "json", false, "Output results as JSON")
	flag.StringVar(&jsonlPath, "jsonl", "", "Write one JSON line per match to this file")

	flag.Parse()

	inv, err := roulette.DecodeItems(items)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid -items")
	}
	if label == "" {
		label = fmt.Sprintf("botmatch-%s", logger.NewMatchID())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("Shutting down...")
		cancel()
	}()

	var repo repository.MatchRepository
	if dbURL != "" {
		db, err := postgres.Connect(ctx, dbURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Database connection failed")
		}
		defer db.Close()
		repo = postgres.NewMatchRepo(db)
	}

	base := bot.MatchConfig{
		Label:         label,
		Live:          live,
		Blank:         blank,
		MaxLives:      lives,
		Items:         inv.Items(),
		Seed:          seed,
		MaxTurns:      maxTurns,
		SolverWorkers: cfg.SolverWorkers,
	}

	var batches []batch
	for _, name := range strings.Split(strategies, ",") {
		mc := base
		mc.Strategy = strings.TrimSpace(name)

		results, err := bot.RunMatches(ctx, mc, numGames, workers, repo)
		if err != nil {
			log.Fatal().Err(err).Str("strategy", mc.Strategy).Msg("Batch failed")
		}
		b := batch{Strategy: mc.Strategy, WinRate: bot.Summarize(results), Results: results}
		batches = append(batches, b)
		log.Info().
			Str("strategy", b.Strategy).
			Int("games", b.WinRate.Games).
			Float64("winRate", b.WinRate.Rate).
			Msg("Batch completed")
	}

	if jsonlPath != "" {
		if err := writeJSONL(jsonlPath, batches, base); err != nil {
			log.Fatal().Err(err).Msg("Write JSONL")
		}
	}

	if jsonOut {
		printJSON(batches, label)
	} else {
		printSummary(batches, base, label, repo != nil)
	}
}

type batch struct {
	Strategy string             `json:"strategy"`
	WinRate  bot.WinRate        `json:"summary"`
	Results  []*bot.MatchResult `json:"results,omitempty"`
}

// matchRecord is one line of the JSONL output, read back by import_selfplay.
type matchRecord struct {
	*bot.MatchResult
	Live     int    `json:"live"`
	Blank    int    `json:"blank"`
	MaxLives int    `json:"max_lives"`
	Items    string `json:"items"`
}

func writeJSONL(path string, batches []batch, cfg bot.MatchConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	items := itemsLabel(cfg.Items)
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, b := range batches {
		for _, r := range b.Results {
			rec := matchRecord{MatchResult: r, Live: cfg.Live, Blank: cfg.Blank, MaxLives: cfg.MaxLives, Items: items}
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("encode match: %w", err)
			}
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

func printSummary(batches []batch, cfg bot.MatchConfig, label string, saved bool) {
	fmt.Printf("\nResults (%d live, %d blank, %d lives, items %s):\n",
		cfg.Live, cfg.Blank, cfg.MaxLives, itemsLabel(cfg.Items))
	for _, b := range batches {
		w := b.WinRate
		fmt.Printf("  %-11s %5d games:  %5d wins, %5d losses, %3d draws  -- win rate %.3f\n",
			b.Strategy, w.Games, w.Wins, w.Losses, w.Draws, w.Rate)
	}
	if saved {
		fmt.Printf("\nMatches saved to database under label %q\n", label)
	}
}

func itemsLabel(items []roulette.Item) string {
	inv, err := roulette.NewInventory(items...)
	if err != nil {
		return "?"
	}
	return roulette.EncodeItems(inv)
}

func printJSON(batches []batch, label string) {
	out := struct {
		Label   string  `json:"label"`
		Batches []batch `json:"batches"`
	}{
		Label:   label,
		Batches: batches,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}
