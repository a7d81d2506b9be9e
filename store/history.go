package store

import (
	"context"
	"time"

	"monopoly/game"
	"monopoly/meta"
)

// Result is one finished game in the history list.
type Result struct {
	GameID        string         `json:"gameId,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
	WinnerName    string         `json:"winnerName"`
	WinnerIsHuman bool           `json:"isHumanWinner"`
	FinalTurn     int            `json:"turns"`
	Reason        game.WinReason `json:"winReason"`
}

// ResultFromGame summarizes a finished snapshot. ok is false while the game is still running.
func ResultFromGame(gs game.GameState, at time.Time) (Result, bool) {
	if gs.Status != game.StatusFinished {
		return Result{}, false
	}
	r := Result{
		GameID:     gs.ID,
		Timestamp:  at,
		WinnerName: "Nobody",
		FinalTurn:  gs.TurnNumber,
		Reason:     gs.WinReason,
	}
	if winner, ok := gs.Player(gs.WinnerID); ok {
		r.WinnerName = winner.Name
		r.WinnerIsHuman = !winner.IsComputer
	}
	return r, true
}

// History keeps the most recent results, newest first.
type History struct {
	v     *Versioned
	key   string
	limit int
}

func NewHistory(v *Versioned) *History {
	return &History{v: v, key: meta.LEADERBOARD_KEY, limit: meta.MAX_LEADERBOARD_ENTRIES}
}

func (h *History) List(ctx context.Context) ([]Result, error) {
	var results []Result
	if _, err := h.v.Load(ctx, h.key, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []Result{}
	}
	return results, nil
}

// Append puts r at the front and trims the list to its limit.
func (h *History) Append(ctx context.Context, r Result) ([]Result, error) {
	results, err := h.List(ctx)
	if err != nil {
		return nil, err
	}
	results = append([]Result{r}, results...)
	if len(results) > h.limit {
		results = results[:h.limit]
	}
	if err := h.v.Save(ctx, h.key, results); err != nil {
		return nil, err
	}
	return results, nil
}

// Store bundles the two logical keys over one backend.
type Store struct {
	Sessions *Sessions
	History  *History
}

func New(kv KV) *Store {
	v := NewVersioned(kv, meta.STORAGE_VERSION)
	return &Store{
		Sessions: NewSessions(v),
		History:  NewHistory(v),
	}
}
