package engine

import (
	"context"
	"fmt"

	"monopoly/experiments/metrics"
	"monopoly/game"

	"github.com/rs/zerolog/log"
)

// Decider chooses and applies the transitions of one seat's turn.
type Decider interface {
	TakeTurn(e *Engine, s game.GameState) game.GameState
}

// Runner plays a game to the end without a shell, one Decider per participant.
type Runner struct {
	Engine    *Engine
	State     game.GameState
	Deciders  map[string]Decider // keyed by participant ID
	Collector metrics.Collector
}

func NewRunner(e *Engine, initial game.GameState, deciders map[string]Decider) *Runner {
	return &Runner{
		Engine:    e,
		State:     initial,
		Deciders:  deciders,
		Collector: metrics.NewDummyCollector(),
	}
}

// Run executes turns until the game finishes, the context is cancelled, or
// MaxMoves is reached.
func (r *Runner) Run(ctx context.Context) (game.GameState, metrics.GameMetric, error) {
	r.Collector.Start()
	log.Debug().Str("game", r.State.ID).Msgf("%s is starting", r.State.Current().Name)

	for moves := 0; r.State.IsActive(); moves++ {
		if err := ctx.Err(); err != nil {
			return r.State, r.Collector.Complete(r.State), err
		}
		if moves >= MaxMoves {
			return r.State, r.Collector.Complete(r.State), fmt.Errorf("game %s: no result after %d moves", r.State.ID, MaxMoves)
		}

		current := r.State.Current()
		decider, ok := r.Deciders[current.ID]
		if !ok {
			return r.State, r.Collector.Complete(r.State), fmt.Errorf("game %s: no decider for %s", r.State.ID, current.ID)
		}

		next := decider.TakeTurn(r.Engine, r.State)
		if next.Hash() == r.State.Hash() {
			return r.State, r.Collector.Complete(r.State), fmt.Errorf("game %s: %s made no progress", r.State.ID, current.ID)
		}

		r.record(r.State, next)
		r.State = next
	}

	return r.State, r.Collector.Complete(r.State), nil
}

func (r *Runner) record(prev, next game.GameState) {
	r.Collector.AddMove()
	for i := len(prev.Ownership); i < len(next.Ownership); i++ {
		r.Collector.AddPurchase()
	}
	for i := totalHouses(prev); i < totalHouses(next); i++ {
		r.Collector.AddBuild()
	}
}

func totalHouses(s game.GameState) int {
	total := 0
	for _, n := range s.Houses {
		total += n
	}
	return total
}
