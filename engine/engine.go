package engine

import (
	"time"

	"monopoly/game"

	"golang.org/x/exp/rand"
)

// MaxMoves bounds a headless run in case deciders stop making progress.
const MaxMoves = 10000

// Engine applies turn transitions to immutable snapshots. Its only state is the
// randomness it consumes, so one Engine must not be shared across goroutines.
type Engine struct {
	rules *game.Rules
	board *game.Board
	dice  game.Roller
	rng   *rand.Rand
}

type Option func(*Engine)

func WithRules(rules *game.Rules) Option {
	return func(e *Engine) {
		e.rules = rules
	}
}

func WithBoard(board *game.Board) Option {
	return func(e *Engine) {
		e.board = board
	}
}

func WithDice(dice game.Roller) Option {
	return func(e *Engine) {
		e.dice = dice
	}
}

// WithSeed makes both the dice and the deck shuffles reproducible.
// A later WithDice still takes precedence for the dice.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
		if e.dice == nil {
			e.dice = game.NewRandomRoller(seed + 1)
		}
	}
}

func New(options ...Option) *Engine {
	e := &Engine{}
	for _, option := range options {
		option(e)
	}
	if e.rules == nil {
		e.rules = game.NewStandardRules()
	}
	if e.board == nil {
		e.board = game.StandardBoard()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if e.dice == nil {
		e.dice = game.NewTimeSeededRoller()
	}
	return e
}

func (e *Engine) Rules() *game.Rules {
	return e.rules
}

func (e *Engine) Board() *game.Board {
	return e.board
}

// NewGame deals fresh decks and seats the participants in the given order.
func (e *Engine) NewGame(id string, players []game.Participant) game.GameState {
	return game.NewGameState(
		id,
		e.board,
		players,
		game.NewDeck(game.ChanceDeck, e.rng),
		game.NewDeck(game.CommunityChestDeck, e.rng),
	)
}

func (e *Engine) properties() game.Properties {
	return game.NewProperties(e.board, e.rules)
}
