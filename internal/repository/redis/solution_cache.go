package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SafeMemoryZone/buckshot-roulette/internal/model"
)

func solutionKey(notation string) string { return "solution:" + notation }

// SetSolution stores a solved position. A zero ttl keeps it forever.
func (c *Client) SetSolution(ctx context.Context, sol model.Solution, ttl time.Duration) error {
	data, err := json.Marshal(sol)
	if err != nil {
		return fmt.Errorf("marshal solution: %w", err)
	}
	if err := c.rdb.Set(ctx, solutionKey(sol.Notation), data, ttl).Err(); err != nil {
		return fmt.Errorf("set solution: %w", err)
	}
	return nil
}

// GetSolution retrieves a solved position, or nil if it is not cached.
func (c *Client) GetSolution(ctx context.Context, notation string) (*model.Solution, error) {
	data, err := c.rdb.Get(ctx, solutionKey(notation)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get solution: %w", err)
	}
	var sol model.Solution
	if err := json.Unmarshal(data, &sol); err != nil {
		return nil, fmt.Errorf("unmarshal solution: %w", err)
	}
	return &sol, nil
}

// DeleteSolution removes a cached position.
func (c *Client) DeleteSolution(ctx context.Context, notation string) error {
	if err := c.rdb.Del(ctx, solutionKey(notation)).Err(); err != nil {
		return fmt.Errorf("delete solution: %w", err)
	}
	return nil
}
