package gamemaster

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"monopoly/engine"
	"monopoly/game"
	"monopoly/meta"
	"monopoly/store"
	"monopoly/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrNoSession = errors.New("no game in progress")

// Master owns the current session. It serializes every transition, saves each
// adopted snapshot and schedules computer turns after a delay.
type Master struct {
	mu sync.Mutex

	engine   *engine.Engine
	store    *store.Store
	botDelay time.Duration
	newID    func() string
	now      func() time.Time

	state      *game.GameState
	generation uint64
	recorded   bool
	cancelBot  context.CancelFunc

	subscribers []chan game.GameState

	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

type Option func(*Master)

func WithStore(s *store.Store) Option {
	return func(m *Master) {
		m.store = s
	}
}

func WithBotDelay(d time.Duration) Option {
	return func(m *Master) {
		m.botDelay = d
	}
}

func WithEngine(e *engine.Engine) Option {
	return func(m *Master) {
		m.engine = e
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(m *Master) {
		m.newID = newID
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Master) {
		m.now = now
	}
}

func New(options ...Option) *Master {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Master{
		botDelay: meta.BOT_DELAY,
		newID:    uuid.NewString,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, option := range options {
		option(m)
	}
	if m.engine == nil {
		m.engine = engine.New()
	}
	if m.store == nil {
		m.store = store.New(store.NewMemoryKV())
	}
	return m
}

func (m *Master) Rules() *game.Rules {
	return m.engine.Rules()
}

func (m *Master) Board() *game.Board {
	return m.engine.Board()
}

// Start replaces any current session with a fresh one for the given profile.
func (m *Master) Start(ctx context.Context, profile Profile) (game.GameState, error) {
	if err := profile.Validate(); err != nil {
		return game.GameState{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	gs := m.engine.NewGame(m.newID(), NewParticipants(profile, m.engine.Rules()))
	m.recorded = false
	log.Info().Str("game", gs.ID).Str("player", gs.Players[0].Name).Msg("new session")
	m.adopt(ctx, gs)
	return gs, nil
}

// Resume adopts the saved session, if a valid one exists. Storage problems are
// logged and reported as no session.
func (m *Master) Resume(ctx context.Context) (game.GameState, bool) {
	gs, ok, err := m.store.Sessions.Load(ctx, m.engine.Board())
	if err != nil {
		log.Warn().Err(err).Msg("could not load saved session")
		return game.GameState{}, false
	}
	if !ok {
		return game.GameState{}, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = !gs.IsActive()
	log.Info().Str("game", gs.ID).Int("turn", gs.TurnNumber).Msg("resumed session")
	m.adopt(ctx, gs)
	return gs, true
}

func (m *Master) Snapshot() (game.GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return game.GameState{}, ErrNoSession
	}
	return *m.state, nil
}

func (m *Master) Roll(ctx context.Context) (game.GameState, error) {
	return m.humanIntent(ctx, m.engine.ExecuteRoll)
}

func (m *Master) Buy(ctx context.Context) (game.GameState, error) {
	return m.humanIntent(ctx, m.engine.ExecuteBuy)
}

func (m *Master) Decline(ctx context.Context) (game.GameState, error) {
	return m.humanIntent(ctx, m.engine.DeclineBuy)
}

func (m *Master) Build(ctx context.Context, spaceID int) (game.GameState, error) {
	return m.humanIntent(ctx, func(s game.GameState) game.GameState {
		return m.engine.ExecuteBuildHouse(s, spaceID)
	})
}

func (m *Master) PayJailFee(ctx context.Context) (game.GameState, error) {
	return m.humanIntent(ctx, m.engine.PayJailFee)
}

// Standings ranks the current session's participants by net worth.
func (m *Master) Standings() ([]game.Standing, error) {
	gs, err := m.Snapshot()
	if err != nil {
		return nil, err
	}
	return game.Rankings(gs, m.engine.Rules()), nil
}

func (m *Master) History(ctx context.Context) ([]store.Result, error) {
	results, err := m.store.History.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return results, nil
}

// humanIntent applies a transition on behalf of the human. It is ignored
// unless the game is active and the human holds the turn.
func (m *Master) humanIntent(ctx context.Context, apply func(game.GameState) game.GameState) (game.GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == nil {
		return game.GameState{}, ErrNoSession
	}
	s := *m.state
	if !s.IsActive() || s.Current().IsComputer {
		return s, nil
	}

	next := apply(s)
	if next.Hash() == s.Hash() {
		return s, nil
	}
	m.adopt(ctx, next)
	return next, nil
}

// adopt makes next the current snapshot. Callers hold m.mu.
func (m *Master) adopt(ctx context.Context, next game.GameState) {
	m.state = &next
	m.generation++

	if next.IsActive() {
		if err := m.store.Sessions.Save(ctx, next); err != nil {
			log.Warn().Err(err).Str("game", next.ID).Msg("could not save session")
		}
	} else if !m.recorded {
		m.recorded = true
		m.record(ctx, next)
	}

	m.publish(next)
	m.scheduleBot()
}

func (m *Master) record(ctx context.Context, final game.GameState) {
	result, ok := store.ResultFromGame(final, m.now())
	if !ok {
		return
	}
	if _, err := m.store.History.Append(ctx, result); err != nil {
		log.Warn().Err(err).Str("game", final.ID).Msg("could not record result")
	}
	if err := m.store.Sessions.Clear(ctx); err != nil {
		log.Warn().Err(err).Str("game", final.ID).Msg("could not clear saved session")
	}
	log.Info().Str("game", final.ID).Str("winner", result.WinnerName).Str("reason", string(result.Reason)).Msg("session finished")
}

// Subscribe streams every adopted snapshot. A slow subscriber only misses
// intermediate snapshots, never the latest one.
func (m *Master) Subscribe() (<-chan game.GameState, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan game.GameState, 16)
	if m.closed {
		close(ch)
		return ch, func() {}
	}
	m.subscribers = append(m.subscribers, ch)

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if i := utils.FindIndex(m.subscribers, ch); i >= 0 {
				m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
				close(ch)
			}
		})
	}
}

func (m *Master) publish(s game.GameState) {
	for _, ch := range m.subscribers {
		select {
		case ch <- s:
		default:
			// Drop the oldest queued snapshot to make room.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	}
}

// Close cancels any pending computer turn and ends all subscriptions.
func (m *Master) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.cancel()
	for _, ch := range m.subscribers {
		close(ch)
	}
	m.subscribers = nil
}
