package engine

import (
	"fmt"

	"monopoly/game"
	"monopoly/utils"

	"github.com/rs/zerolog/log"
)

// MovePlayer walks steps spaces around a board of the given size. passedStart is
// true only for a forward move that wrapped around.
func MovePlayer(position, steps, size int) (newPosition int, passedStart bool) {
	newPosition = utils.Mod(position+steps, size)
	return newPosition, steps > 0 && newPosition < position
}

// ExecuteRoll rolls for the active participant and resolves the whole move.
func (e *Engine) ExecuteRoll(s game.GameState) game.GameState {
	if !s.IsActive() || s.Phase != game.PhaseRoll {
		return s
	}
	p := s.Current()
	if p.IsBankrupt {
		return e.AdvanceToNextPlayer(s)
	}

	roll := e.dice.Roll()
	s.LastRoll = &roll
	if roll.IsDoubles {
		s = s.Logf("%s rolled %d + %d = %d (doubles!)", p.Name, roll.Die1, roll.Die2, roll.Total)
	} else {
		s = s.Logf("%s rolled %d + %d = %d", p.Name, roll.Die1, roll.Die2, roll.Total)
	}
	log.Debug().Str("game", s.ID).Str("player", p.ID).Int("total", roll.Total).Msg("roll")

	if p.InJail {
		return e.handleJailRoll(s, roll)
	}
	s = e.moveBy(s, p.Position, roll.Total)
	return e.ResolveLanding(s)
}

// moveBy places the active participant steps away from `from`, paying the
// passing bonus when the move wraps.
func (e *Engine) moveBy(s game.GameState, from, steps int) game.GameState {
	p := s.Current()
	pos, passed := MovePlayer(from, steps, e.board.Size())
	return e.relocate(s, p, pos, passed)
}

func (e *Engine) relocate(s game.GameState, p game.Participant, pos int, passed bool) game.GameState {
	s = s.WithPlayer(p.ID, func(q *game.Participant) {
		q.Position = pos
		if passed {
			*q = game.Credit(*q, e.rules.PassBonus)
		}
	})
	if passed {
		s = s.Logf("%s passed GO and collected $%d", p.Name, e.rules.PassBonus)
	}
	return s
}

func (e *Engine) handleJailRoll(s game.GameState, roll game.DiceRoll) game.GameState {
	p := s.Current()
	if roll.IsDoubles {
		s = s.WithPlayer(p.ID, func(q *game.Participant) {
			q.InJail = false
			q.JailTurns = 0
		})
		s = s.Logf("%s rolled doubles and escaped jail!", p.Name)
		s = e.moveBy(s, e.board.JailPosition(), roll.Total)
		return e.ResolveLanding(s)
	}

	attempts := p.JailTurns + 1
	if attempts >= e.rules.MaxJailTurns {
		s = s.WithPlayer(p.ID, func(q *game.Participant) {
			*q = game.Debit(*q, e.rules.JailFee)
			q.InJail = false
			q.JailTurns = 0
		})
		s = s.Logf("%s paid $%d to leave jail after %d failed attempts", p.Name, e.rules.JailFee, attempts)
		s = e.checkBankruptcy(s, p.ID, "went bankrupt paying jail fee!")
		return e.AdvanceToNextPlayer(s)
	}

	s = s.WithPlayer(p.ID, func(q *game.Participant) {
		q.JailTurns = attempts
	})
	s = s.Logf("%s failed to roll doubles in jail (attempt %d/%d)", p.Name, attempts, e.rules.MaxJailTurns)
	return e.AdvanceToNextPlayer(s)
}

// checkBankruptcy flags the participant once their cash is negative.
func (e *Engine) checkBankruptcy(s game.GameState, id string, message string) game.GameState {
	p, ok := s.Player(id)
	if !ok || p.IsBankrupt || !game.IsBankrupt(p) {
		return s
	}
	s = s.WithPlayer(id, func(q *game.Participant) {
		q.IsBankrupt = true
	})
	log.Debug().Str("game", s.ID).Str("player", id).Int("cash", p.Cash).Msg("bankrupt")
	return s.Logf("%s %s", p.Name, message)
}

// ResolveLanding applies the effect of the space the active participant stands on.
func (e *Engine) ResolveLanding(s game.GameState) game.GameState {
	p := s.Current()
	space, ok := e.board.Space(p.Position)
	if !ok {
		log.Warn().Str("game", s.ID).Int("position", p.Position).Msg("participant off the board")
		return e.AdvanceToNextPlayer(s)
	}

	switch space.Kind {
	case game.PropertySpace:
		return e.resolvePropertyLanding(s, space)
	case game.ChanceSpace:
		return e.drawCard(s, game.ChanceDeck)
	case game.CommunityChestSpace:
		return e.drawCard(s, game.CommunityChestDeck)
	case game.GoToJailSpace:
		return e.sendToJail(s)
	case game.StartSpace, game.JailSpace, game.FreeParkingSpace:
		return e.AdvanceToNextPlayer(s)
	default:
		panic(fmt.Sprintf("unhandled space kind %q", space.Kind))
	}
}

func (e *Engine) resolvePropertyLanding(s game.GameState, space game.Space) game.GameState {
	p := s.Current()
	ownerID, owned := game.GetOwner(s.Ownership, space.ID)

	if !owned {
		if game.CanAffordProperty(p, space) {
			s.Phase = game.PhaseBuyDecision
			s.Pending = &game.PendingAction{Type: game.BuyPropertyAction, SpaceID: space.ID}
			return s
		}
		s = s.Logf("%s can't afford %s ($%d)", p.Name, space.Name, space.Price)
		return e.AdvanceToNextPlayer(s)
	}

	if ownerID == p.ID {
		return e.AdvanceToNextPlayer(s)
	}

	owner, ok := s.Player(ownerID)
	if !ok || owner.IsBankrupt || owner.InJail {
		return e.AdvanceToNextPlayer(s)
	}

	rent := e.properties().CalculateRent(space, s.Ownership, s.Houses, ownerID)
	payer, payee := game.Transfer(p, owner, rent)
	s = s.WithReplacedPlayer(payer).WithReplacedPlayer(payee)
	s = s.Logf("%s paid $%d rent to %s for %s", p.Name, rent, owner.Name, space.Name)
	s = e.checkBankruptcy(s, p.ID, "went bankrupt!")
	return e.AdvanceToNextPlayer(s)
}

func (e *Engine) drawCard(s game.GameState, kind game.DeckKind) game.GameState {
	p := s.Current()
	var card game.Card
	switch kind {
	case game.ChanceDeck:
		card, s.ChanceDeck = s.ChanceDeck.Draw(e.rng)
	case game.CommunityChestDeck:
		card, s.CommunityChestDeck = s.CommunityChestDeck.Draw(e.rng)
	default:
		panic(fmt.Sprintf("unknown deck kind %q", kind))
	}
	s = s.Logf("%s drew: %q", p.Name, card.Text)
	return e.applyCardEffect(s, card)
}

func (e *Engine) applyCardEffect(s game.GameState, card game.Card) game.GameState {
	p := s.Current()

	switch effect := card.Effect.(type) {
	case game.Gain:
		s = s.WithReplacedPlayer(game.Credit(p, effect.Amount))
		return e.AdvanceToNextPlayer(s)

	case game.Lose:
		s = s.WithReplacedPlayer(game.Debit(p, effect.Amount))
		s = e.checkBankruptcy(s, p.ID, "went bankrupt!")
		return e.AdvanceToNextPlayer(s)

	case game.MoveTo:
		// Landing on the jail space this way is only a visit.
		passed := effect.Position < p.Position && effect.Position != e.board.JailPosition()
		s = e.relocate(s, p, effect.Position, passed)
		return e.ResolveLanding(s)

	case game.MoveRelative:
		s = e.moveBy(s, p.Position, effect.Offset)
		return e.ResolveLanding(s)

	case game.GoToJail:
		return e.sendToJail(s)

	default:
		panic(fmt.Sprintf("unhandled card effect %T", card.Effect))
	}
}

func (e *Engine) sendToJail(s game.GameState) game.GameState {
	p := s.Current()
	s = s.WithPlayer(p.ID, func(q *game.Participant) {
		q.Position = e.board.JailPosition()
		q.InJail = true
		q.JailTurns = 0
	})
	s = s.Logf("%s was sent to Jail!", p.Name)
	return e.AdvanceToNextPlayer(s)
}

// pendingSpace returns the space of an outstanding buy-offer.
func (e *Engine) pendingSpace(s game.GameState) (game.Space, bool) {
	if !s.IsActive() || s.Phase != game.PhaseBuyDecision || s.Pending == nil || s.Pending.Type != game.BuyPropertyAction {
		return game.Space{}, false
	}
	return e.board.Space(s.Pending.SpaceID)
}

// ExecuteBuy accepts the pending buy-offer.
func (e *Engine) ExecuteBuy(s game.GameState) game.GameState {
	space, ok := e.pendingSpace(s)
	if !ok {
		return s
	}
	p := s.Current()
	s.Pending = nil
	if _, owned := game.GetOwner(s.Ownership, space.ID); owned {
		return e.AdvanceToNextPlayer(s)
	}

	buyer, ownership := e.properties().BuyProperty(p, space, s.Ownership)
	s = s.WithReplacedPlayer(buyer).WithOwnership(ownership)
	s = s.Logf("%s bought %s for $%d", p.Name, space.Name, space.Price)
	log.Debug().Str("game", s.ID).Str("player", p.ID).Int("space", space.ID).Msg("buy")
	return e.AdvanceToNextPlayer(s)
}

// DeclineBuy drops the pending buy-offer.
func (e *Engine) DeclineBuy(s game.GameState) game.GameState {
	space, ok := e.pendingSpace(s)
	if !ok {
		return s
	}
	s.Pending = nil
	s = s.Logf("%s declined to buy %s", s.Current().Name, space.Name)
	return e.AdvanceToNextPlayer(s)
}

// ExecuteBuildHouse adds one house for the active participant during their roll
// phase. Rejected builds return the snapshot unchanged.
func (e *Engine) ExecuteBuildHouse(s game.GameState, spaceID int) game.GameState {
	if !s.IsActive() || s.Phase != game.PhaseRoll {
		return s
	}
	space, ok := e.board.Space(spaceID)
	if !ok {
		return s
	}
	p := s.Current()
	if p.IsBankrupt {
		return s
	}

	builder, houses, ok := e.properties().BuyHouse(p, space, s.Ownership, s.Houses)
	if !ok {
		return s
	}
	s = s.WithReplacedPlayer(builder).WithHouses(houses)
	n := houses[spaceID]
	if n >= e.rules.MaxHouses {
		return s.Logf("%s built a hotel on %s", p.Name, space.Name)
	}
	return s.Logf("%s built house #%d on %s", p.Name, n, space.Name)
}

// PayJailFee releases a jailed participant before they roll. Unless the fee
// bankrupts them they stay in the roll phase and roll normally.
func (e *Engine) PayJailFee(s game.GameState) game.GameState {
	if !s.IsActive() || s.Phase != game.PhaseRoll {
		return s
	}
	p := s.Current()
	if !p.InJail || p.IsBankrupt {
		return s
	}

	s = s.WithPlayer(p.ID, func(q *game.Participant) {
		*q = game.Debit(*q, e.rules.JailFee)
		q.InJail = false
		q.JailTurns = 0
	})
	s = s.Logf("%s paid $%d to get out of Jail", p.Name, e.rules.JailFee)

	s = e.checkBankruptcy(s, p.ID, "went bankrupt paying jail fee!")
	if cur := s.Current(); cur.IsBankrupt {
		return e.AdvanceToNextPlayer(s)
	}
	return s
}

// AdvanceToNextPlayer ends the game if it is over, otherwise hands the turn to
// the next participant who is still in the game.
func (e *Engine) AdvanceToNextPlayer(s game.GameState) game.GameState {
	over := game.CheckGameOver(s.Players, s.TurnNumber, e.rules)
	if over.IsOver {
		s.Status = game.StatusFinished
		s.Phase = game.PhaseGameOver
		s.WinnerID = over.WinnerID
		s.WinReason = over.Reason
		s.Pending = nil

		reason := "last player standing"
		if over.Reason == game.ReasonTurnLimit {
			reason = "richest at turn limit"
		}
		if winner, ok := s.Player(over.WinnerID); ok {
			s = s.Logf("%s wins! (%s)", winner.Name, reason)
		} else {
			s = s.Logf("Game over! Nobody is left standing.")
		}
		log.Info().Str("game", s.ID).Str("winner", over.WinnerID).Str("reason", string(over.Reason)).Int("turn", s.TurnNumber).Msg("game over")
		return s
	}

	n := len(s.Players)
	cur := s.CurrentPlayerIndex
	next := (cur + 1) % n
	turn := s.TurnNumber
	if next <= cur {
		turn++
	}
	for skipped := 0; skipped < n && s.Players[next].IsBankrupt; skipped++ {
		next = (next + 1) % n
		if next == 0 {
			turn++
		}
	}

	s.CurrentPlayerIndex = next
	s.TurnNumber = turn
	s.Phase = game.PhaseRoll
	s.Pending = nil
	return s
}
