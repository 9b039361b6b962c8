package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SafeMemoryZone/buckshot-roulette/internal/model"
)

type memMatchRepo struct {
	matches []model.Match
	fail    bool
}

func (r *memMatchRepo) Create(_ context.Context, m *model.Match) (*model.Match, error) {
	if r.fail {
		return nil, errors.New("insert failed")
	}
	out := *m
	out.ID = "stored"
	r.matches = append(r.matches, out)
	return &out, nil
}

func (r *memMatchRepo) FindByID(context.Context, string) (*model.Match, error) { return nil, nil }

func (r *memMatchRepo) ListByLabel(context.Context, string) ([]model.Match, error) { return nil, nil }

func (r *memMatchRepo) Summarize(context.Context, string) ([]model.StrategySummary, error) {
	return nil, nil
}

const winLine = `{"match_id":"ab12cd34","label":"batch-1","strategy":"expectimax","seed":7,"outcome":"win","turns":9,"reloads":2,"player_lives":1,"dealer_lives":0,"duration_ns":2500000,"live":2,"blank":2,"max_lives":3,"items":"bcm"}`

func TestToMatch(t *testing.T) {
	rec := jsonMatchRecord{
		Strategy: "random", Outcome: model.OutcomeLoss,
		Live: 1, Blank: 3, MaxLives: 2, Items: "",
		Duration: 1500 * time.Millisecond,
	}
	m, err := toMatch(rec)
	if err != nil {
		t.Fatalf("toMatch: %v", err)
	}
	if m.Items != "-" {
		t.Errorf("expected empty items as -, got %q", m.Items)
	}
	if m.DurationMS != 1500 {
		t.Errorf("expected 1500ms, got %d", m.DurationMS)
	}
	if m.ID != "" {
		t.Errorf("expected the id to be left to the database, got %q", m.ID)
	}
}

func TestToMatch_Rejects(t *testing.T) {
	valid := jsonMatchRecord{Strategy: "random", Outcome: model.OutcomeWin, Live: 1, MaxLives: 2, Items: "-"}
	tests := []struct {
		name   string
		modify func(*jsonMatchRecord)
	}{
		{"outcome", func(r *jsonMatchRecord) { r.Outcome = "forfeit" }},
		{"strategy", func(r *jsonMatchRecord) { r.Strategy = "" }},
		{"lives", func(r *jsonMatchRecord) { r.MaxLives = 0 }},
		{"load", func(r *jsonMatchRecord) { r.Blank = -1 }},
		{"items", func(r *jsonMatchRecord) { r.Items = "bx" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid
			tt.modify(&rec)
			if _, err := toMatch(rec); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestImportMatches(t *testing.T) {
	input := strings.Join([]string{
		winLine,
		"",
		"{not json",
		`{"strategy":"random","outcome":"maybe","live":1,"blank":1,"max_lives":2}`,
		`{"strategy":"random","outcome":"draw","live":1,"blank":1,"max_lives":2,"items":"-"}`,
	}, "\n")
	repo := &memMatchRepo{}

	imported, skipped, err := importMatches(context.Background(), strings.NewReader(input), repo, "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported != 2 || skipped != 2 {
		t.Errorf("expected 2 imported and 2 skipped, got %d and %d", imported, skipped)
	}
	if len(repo.matches) != 2 {
		t.Fatalf("expected 2 stored matches, got %d", len(repo.matches))
	}
	m := repo.matches[0]
	if m.Label != "batch-1" || m.Strategy != "expectimax" || m.Seed != 7 {
		t.Errorf("unexpected match %+v", m)
	}
	if m.Outcome != model.OutcomeWin || m.Turns != 9 || m.Reloads != 2 {
		t.Errorf("unexpected result fields %+v", m)
	}
	if m.Items != "bcm" || m.DurationMS != 2 {
		t.Errorf("expected items bcm and 2ms, got %q and %d", m.Items, m.DurationMS)
	}
}

func TestImportMatches_LabelOverride(t *testing.T) {
	repo := &memMatchRepo{}
	if _, _, err := importMatches(context.Background(), strings.NewReader(winLine), repo, "imported"); err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(repo.matches) != 1 || repo.matches[0].Label != "imported" {
		t.Errorf("expected label override, got %+v", repo.matches)
	}
}

func TestImportMatches_RepoErrorSkips(t *testing.T) {
	repo := &memMatchRepo{fail: true}
	imported, skipped, err := importMatches(context.Background(), strings.NewReader(winLine+"\n"+winLine), repo, "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported != 0 || skipped != 2 {
		t.Errorf("expected 0 imported and 2 skipped, got %d and %d", imported, skipped)
	}
}
