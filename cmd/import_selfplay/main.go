// Command import_selfplay reads the JSONL match records written by
// botmatch -jsonl and stores them in the Postgres matches table.
//
// Usage:
//
//	go run ./cmd/import_selfplay/ --input matches.jsonl --db postgres://...
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/SafeMemoryZone/buckshot-roulette/internal/config"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/logger"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/model"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/repository"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/repository/postgres"
	"github.com/SafeMemoryZone/buckshot-roulette/pkg/roulette"
)

// jsonMatchRecord is one line of botmatch -jsonl output.
type jsonMatchRecord struct {
	MatchID     string        `json:"match_id"`
	Label       string        `json:"label"`
	Strategy    string        `json:"strategy"`
	Seed        int64         `json:"seed"`
	Outcome     string        `json:"outcome"`
	Turns       int           `json:"turns"`
	Reloads     int           `json:"reloads"`
	PlayerLives int           `json:"player_lives"`
	DealerLives int           `json:"dealer_lives"`
	Duration    time.Duration `json:"duration_ns"`
	Live        int           `json:"live"`
	Blank       int           `json:"blank"`
	MaxLives    int           `json:"max_lives"`
	Items       string        `json:"items"`
}

func main() {
	logger.Init()
	cfg := config.Load()

	inputFile := flag.String("input", "", "Path to JSONL file")
	dbURL := flag.String("db", cfg.DatabaseURL, "Postgres connection URL")
	label := flag.String("label", "", "Override the label stored with every match")
	flag.Parse()

	if *inputFile == "" {
		log.Fatal().Msg("--input is required")
	}
	if *dbURL == "" {
		log.Fatal().Msg("--db or DATABASE_URL is required")
	}

	ctx := context.Background()
	db, err := postgres.Connect(ctx, *dbURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to postgres")
	}
	defer db.Close()

	f, err := os.Open(*inputFile)
	if err != nil {
		log.Fatal().Err(err).Msg("open input")
	}
	defer f.Close()

	imported, skipped, err := importMatches(ctx, f, postgres.NewMatchRepo(db), *label)
	if err != nil {
		log.Fatal().Err(err).Msg("read input")
	}
	log.Info().Int("imported", imported).Int("skipped", skipped).Msg("done")
}

// importMatches stores every well-formed record read from r. Lines that
// fail to decode or validate are logged and skipped; a repository error
// on one match does not stop the rest.
func importMatches(ctx context.Context, r io.Reader, repo repository.MatchRepository, label string) (imported, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec jsonMatchRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			log.Warn().Err(err).Int("line", lineNo).Msg("skip line (bad JSON)")
			skipped++
			continue
		}
		if label != "" {
			rec.Label = label
		}

		m, err := toMatch(rec)
		if err != nil {
			log.Warn().Err(err).Int("line", lineNo).Msg("skip line")
			skipped++
			continue
		}

		stored, err := repo.Create(ctx, m)
		if err != nil {
			log.Error().Err(err).Int("line", lineNo).Str("matchId", rec.MatchID).Msg("import match")
			skipped++
			continue
		}
		imported++
		log.Debug().Str("from", rec.MatchID).Str("id", stored.ID).Msg("imported match")
	}
	return imported, skipped, scanner.Err()
}

var errBadRecord = errors.New("bad match record")

// toMatch validates a record and converts it to its stored form.
func toMatch(rec jsonMatchRecord) (*model.Match, error) {
	switch rec.Outcome {
	case model.OutcomeWin, model.OutcomeLoss, model.OutcomeDraw:
	default:
		return nil, fmt.Errorf("%w: outcome %q", errBadRecord, rec.Outcome)
	}
	if rec.Strategy == "" {
		return nil, fmt.Errorf("%w: missing strategy", errBadRecord)
	}
	if rec.Live < 0 || rec.Blank < 0 || rec.MaxLives < 1 {
		return nil, fmt.Errorf("%w: load %d/%d with %d lives", errBadRecord, rec.Live, rec.Blank, rec.MaxLives)
	}

	items := rec.Items
	if items == "" {
		items = "-"
	}
	inv, err := roulette.DecodeItems(items)
	if err != nil {
		return nil, err
	}

	return &model.Match{
		Label:       rec.Label,
		Strategy:    rec.Strategy,
		Seed:        rec.Seed,
		Live:        rec.Live,
		Blank:       rec.Blank,
		MaxLives:    rec.MaxLives,
		Items:       roulette.EncodeItems(inv),
		Outcome:     rec.Outcome,
		Turns:       rec.Turns,
		Reloads:     rec.Reloads,
		PlayerLives: rec.PlayerLives,
		DealerLives: rec.DealerLives,
		DurationMS:  rec.Duration.Milliseconds(),
	}, nil
}
