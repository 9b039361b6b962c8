package model

import "time"

// Match represents one simulated game between a player strategy and the
// heuristic dealer.
type Match struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Strategy    string    `json:"strategy"`
	Seed        int64     `json:"seed"`
	Live        int       `json:"live"`
	Blank       int       `json:"blank"`
	MaxLives    int       `json:"max_lives"`
	Items       string    `json:"items"`   // item letters, "-" for none
	Outcome     string    `json:"outcome"` // win, loss, draw
	Turns       int       `json:"turns"`
	Reloads     int       `json:"reloads"`
	PlayerLives int       `json:"player_lives"`
	DealerLives int       `json:"dealer_lives"`
	DurationMS  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// Match outcomes, from the player's point of view.
const (
	OutcomeWin  = "win"
	OutcomeLoss = "loss"
	OutcomeDraw = "draw"
)

// StrategySummary aggregates stored matches for one strategy.
type StrategySummary struct {
	Strategy string  `json:"strategy"`
	Games    int     `json:"games"`
	Wins     int     `json:"wins"`
	Draws    int     `json:"draws"`
	WinRate  float64 `json:"win_rate"`
}

// Solution is a solved position: the best player action for a state in
// notation form and its expected value.
type Solution struct {
	Notation string    `json:"notation"`
	Action   string    `json:"action"`
	Value    float64   `json:"value"`
	SolvedAt time.Time `json:"solved_at"`
}
