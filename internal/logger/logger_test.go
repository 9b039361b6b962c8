package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestNewMatchID(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := NewMatchID()
		if len(id) != 8 {
			t.Fatalf("expected 8 characters, got %q", id)
		}
		seen[id] = true
	}
	if len(seen) < 95 {
		t.Errorf("expected mostly unique ids, got %d distinct of 100", len(seen))
	}
}

func TestMatchIDContext(t *testing.T) {
	ctx := context.Background()
	if id := MatchIDFromContext(ctx); id != "" {
		t.Errorf("expected empty id, got %q", id)
	}
	ctx = WithMatchID(ctx, "abc12345")
	if id := MatchIDFromContext(ctx); id != "abc12345" {
		t.Errorf("expected abc12345, got %q", id)
	}
}

func TestForMatch(t *testing.T) {
	var buf bytes.Buffer
	saved := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = saved }()

	l := ForMatch(WithMatchID(context.Background(), "m1"))
	l.Info().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["matchId"] != "m1" {
		t.Errorf("expected matchId m1, got %v", entry["matchId"])
	}
}
