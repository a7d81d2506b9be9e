package gamemaster

import (
	"context"
	"time"

	"monopoly/player"

	"github.com/rs/zerolog/log"
)

// scheduleBot arms a delayed computer turn when a computer holds the current
// snapshot. Any earlier pending turn is cancelled. Callers hold m.mu.
func (m *Master) scheduleBot() {
	if m.cancelBot != nil {
		m.cancelBot()
		m.cancelBot = nil
	}
	if m.closed || m.state == nil || !m.state.IsActive() || !m.state.Current().IsComputer {
		return
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelBot = cancel
	generation := m.generation

	go func() {
		timer := time.NewTimer(m.botDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		m.runBotTurn(ctx, generation)
	}()
}

// runBotTurn plays the scheduled computer turn unless the session moved on or
// was torn down while it waited.
func (m *Master) runBotTurn(ctx context.Context, generation uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ctx.Err() != nil || m.closed || m.state == nil || generation != m.generation {
		log.Debug().Uint64("generation", generation).Msg("dropping stale computer turn")
		return
	}
	s := *m.state
	if !s.IsActive() || !s.Current().IsComputer {
		return
	}

	current := s.Current()
	next := player.BotFor(current).TakeTurn(m.engine, s)
	log.Debug().Str("game", s.ID).Str("player", current.ID).Int("turn", next.TurnNumber).Msg("computer turn")
	m.adopt(m.ctx, next)
}
