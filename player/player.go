package player

import (
	"monopoly/engine"
	"monopoly/game"

	"github.com/rs/zerolog/log"
)

// Bot plays a computer seat with a fixed profile.
type Bot struct {
	Profile Profile
}

func NewBot(profile Profile) *Bot {
	return &Bot{Profile: profile}
}

// BotFor builds a bot from the profile name stored on the participant.
func BotFor(p game.Participant) *Bot {
	return NewBot(ProfileByName(p.Profile))
}

// TakeTurn plays the active participant's turn until control passes on, or
// until the game ends. Builds happen first, while the bot still holds its roll
// phase; then it deals with jail, rolls, and answers any buy-offer.
func (b *Bot) TakeTurn(e *engine.Engine, s game.GameState) game.GameState {
	if !s.IsActive() {
		return s
	}
	me := s.Current()

	if s.Phase == game.PhaseRoll {
		s = b.build(e, s, me.ID)
		s = b.roll(e, s, me.ID)
	}

	if s.IsActive() && s.Phase == game.PhaseBuyDecision && s.Current().ID == me.ID && s.Pending != nil {
		space, ok := e.Board().Space(s.Pending.SpaceID)
		if ok && DecidePurchase(s.Current(), space, b.Profile) {
			s = e.ExecuteBuy(s)
		} else {
			s = e.DeclineBuy(s)
		}
	}
	return s
}

func (b *Bot) build(e *engine.Engine, s game.GameState, id string) game.GameState {
	props := game.NewProperties(e.Board(), e.Rules())
	for _, spaceID := range DecideBuild(s.Current(), s, props, b.Profile) {
		next := e.ExecuteBuildHouse(s, spaceID)
		if next.Hash() == s.Hash() {
			log.Debug().Str("game", s.ID).Str("player", id).Int("space", spaceID).Msg("build rejected")
			continue
		}
		s = next
	}
	return s
}

func (b *Bot) roll(e *engine.Engine, s game.GameState, id string) game.GameState {
	me := s.Current()
	if me.InJail && DecideJail(me, e.Rules(), b.Profile) == PayFee && me.Cash >= e.Rules().JailFee {
		s = e.PayJailFee(s)
		if !s.IsActive() || s.Current().ID != id || s.Phase != game.PhaseRoll {
			return s
		}
	}
	return e.ExecuteRoll(s)
}
