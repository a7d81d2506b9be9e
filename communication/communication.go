package communication

import (
	"context"

	"monopoly/game"
	"monopoly/gamemaster"
	"monopoly/store"
)

// Session is the intent surface the transport drives. *gamemaster.Master
// implements it.
type Session interface {
	Board() *game.Board
	Start(ctx context.Context, profile gamemaster.Profile) (game.GameState, error)
	Snapshot() (game.GameState, error)
	Roll(ctx context.Context) (game.GameState, error)
	Buy(ctx context.Context) (game.GameState, error)
	Decline(ctx context.Context) (game.GameState, error)
	Build(ctx context.Context, spaceID int) (game.GameState, error)
	PayJailFee(ctx context.Context) (game.GameState, error)
	Standings() ([]game.Standing, error)
	History(ctx context.Context) ([]store.Result, error)
	Subscribe() (<-chan game.GameState, func())
}

var _ Session = (*gamemaster.Master)(nil)
