//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/SafeMemoryZone/buckshot-roulette/internal/model"
	"github.com/SafeMemoryZone/buckshot-roulette/internal/testutil"
)

var testRDB *goredis.Client

func setup(t *testing.T) *Client {
	t.Helper()
	if testRDB == nil {
		testRDB = testutil.SetupRedis(t)
	}
	testutil.CleanupRedis(t, testRDB)
	return NewClientFromPool(testRDB)
}

func TestSolutionRoundTrip(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	sol := model.Solution{
		Notation: "p?/2,2/3,3,3/bcm/c",
		Action:   "shoot dealer",
		Value:    12.5,
		SolvedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if err := c.SetSolution(ctx, sol, time.Minute); err != nil {
		t.Fatalf("set solution: %v", err)
	}

	got, err := c.GetSolution(ctx, sol.Notation)
	if err != nil {
		t.Fatalf("get solution: %v", err)
	}
	if got == nil {
		t.Fatal("expected cached solution")
	}
	if got.Action != sol.Action || got.Value != sol.Value || !got.SolvedAt.Equal(sol.SolvedAt) {
		t.Errorf("expected %+v, got %+v", sol, *got)
	}
}

func TestSolutionMiss(t *testing.T) {
	c := setup(t)

	got, err := c.GetSolution(context.Background(), "p?/1,1/1,1,1/-/-")
	if err != nil {
		t.Fatalf("get solution: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestSolutionTTL(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	sol := model.Solution{Notation: "d?/1,0/1,1,1/-/-", Action: "shoot dealer"}
	if err := c.SetSolution(ctx, sol, 30*time.Second); err != nil {
		t.Fatalf("set solution: %v", err)
	}

	ttl, err := testRDB.TTL(ctx, solutionKey(sol.Notation)).Result()
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if ttl <= 0 || ttl > 30*time.Second {
		t.Errorf("expected ttl in (0,30s], got %v", ttl)
	}
}

func TestSolutionDelete(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	sol := model.Solution{Notation: "p?/1,2/2,2,2/b/-", Action: "drink beer", Value: 3}
	if err := c.SetSolution(ctx, sol, 0); err != nil {
		t.Fatalf("set solution: %v", err)
	}
	if err := c.DeleteSolution(ctx, sol.Notation); err != nil {
		t.Fatalf("delete solution: %v", err)
	}
	got, err := c.GetSolution(ctx, sol.Notation)
	if err != nil {
		t.Fatalf("get solution: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got %+v", got)
	}
}
