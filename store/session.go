package store

import (
	"context"
	"encoding/json"
	"fmt"

	"monopoly/game"
	"monopoly/meta"

	"github.com/mitchellh/mapstructure"
)

// Sessions persists the snapshot of the game in progress.
type Sessions struct {
	v   *Versioned
	key string
}

func NewSessions(v *Versioned) *Sessions {
	return &Sessions{v: v, key: meta.SAVED_GAME_KEY}
}

func (s *Sessions) Save(ctx context.Context, gs game.GameState) error {
	return s.v.Save(ctx, s.key, gs)
}

// Load returns the saved snapshot bound to board. ok is false when nothing
// usable is stored; invalid payloads are removed.
func (s *Sessions) Load(ctx context.Context, board *game.Board) (game.GameState, bool, error) {
	data, ok, err := s.v.LoadRaw(ctx, s.key)
	if !ok || err != nil {
		return game.GameState{}, false, err
	}

	var loose map[string]any
	if err := json.Unmarshal(data, &loose); err != nil || !ValidSession(loose) {
		return game.GameState{}, false, s.v.discard(ctx, s.key, "invalid session")
	}

	var gs game.GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		return game.GameState{}, false, s.v.discard(ctx, s.key, "undecodable session")
	}
	if reason := playable(gs, board); reason != "" {
		return game.GameState{}, false, s.v.discard(ctx, s.key, reason)
	}

	gs.Board = board
	if gs.Ownership == nil {
		gs.Ownership = map[int]string{}
	}
	if gs.Houses == nil {
		gs.Houses = map[int]int{}
	}
	for i := range gs.Players {
		if gs.Players[i].OwnedProperties == nil {
			gs.Players[i].OwnedProperties = []int{}
		}
	}
	return gs, true, nil
}

func (s *Sessions) Clear(ctx context.Context) error {
	return s.v.Remove(ctx, s.key)
}

// playable names the first reason the snapshot cannot be resumed on board,
// or returns "" when the engine can take it from here.
func playable(gs game.GameState, board *game.Board) string {
	if gs.CurrentPlayerIndex < 0 || gs.CurrentPlayerIndex >= len(gs.Players) {
		return fmt.Sprintf("seat %d out of range", gs.CurrentPlayerIndex)
	}
	if !gs.Phase.Valid() {
		return fmt.Sprintf("unknown phase %q", gs.Phase)
	}
	if !gs.ChanceDeck.Valid() || gs.ChanceDeck.Kind != game.ChanceDeck {
		return "invalid chance deck"
	}
	if !gs.CommunityChestDeck.Valid() || gs.CommunityChestDeck.Kind != game.CommunityChestDeck {
		return "invalid community chest deck"
	}
	for _, p := range gs.Players {
		if _, ok := board.Space(p.Position); !ok {
			return fmt.Sprintf("%s off the board at %d", p.ID, p.Position)
		}
	}
	if gs.Status == game.StatusActive && gs.Phase == game.PhaseBuyDecision {
		if gs.Pending == nil {
			return "buy decision without an offer"
		}
		if space, ok := board.Space(gs.Pending.SpaceID); !ok || !space.IsProperty() {
			return fmt.Sprintf("offer on space %d is not a property", gs.Pending.SpaceID)
		}
	}
	return ""
}

type sessionShape struct {
	Players            []map[string]any `mapstructure:"players"`
	CurrentPlayerIndex *int             `mapstructure:"currentPlayerIndex"`
	TurnNumber         *int             `mapstructure:"turnNumber"`
	Status             *string          `mapstructure:"gameStatus"`
}

// ValidSession checks the loose shape of a saved snapshot: at least two
// participant records, numeric seat and turn fields, and a known status.
func ValidSession(payload map[string]any) bool {
	if payload == nil {
		return false
	}
	var shape sessionShape
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &shape})
	if err != nil {
		return false
	}
	if err := decoder.Decode(payload); err != nil {
		return false
	}
	if len(shape.Players) < 2 || shape.CurrentPlayerIndex == nil || shape.TurnNumber == nil || shape.Status == nil {
		return false
	}
	switch game.Status(*shape.Status) {
	case game.StatusActive, game.StatusFinished:
		return true
	default:
		return false
	}
}
