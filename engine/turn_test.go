package engine

import (
	"slices"
	"strings"
	"testing"

	"monopoly/game"

	"github.com/stretchr/testify/require"
)

func roll(a, b int) game.DiceRoll {
	return game.NewDiceRoll(a, b)
}

func newTestGame(t *testing.T, rolls ...game.DiceRoll) (*Engine, game.GameState) {
	t.Helper()
	if len(rolls) == 0 {
		rolls = []game.DiceRoll{roll(1, 2)}
	}
	e := New(WithSeed(1), WithDice(game.NewSequenceRoller(rolls...)))
	rules := e.Rules()
	players := []game.Participant{
		game.NewParticipant("player-0", "Alice", false, "#DC143C", "", rules.StartingCash),
		game.NewParticipant("bot-1", "Captain Woof", true, "#0000CD", "aggressive", rules.StartingCash),
		game.NewParticipant("bot-2", "Sir Barksalot", true, "#228B22", "balanced", rules.StartingCash),
	}
	return e, e.NewGame("test", players)
}

func at(s game.GameState, id string, position int) game.GameState {
	return s.WithPlayer(id, func(p *game.Participant) { p.Position = position })
}

func own(s game.GameState, id string, spaces ...int) game.GameState {
	ownership := map[int]string{}
	for k, v := range s.Ownership {
		ownership[k] = v
	}
	for _, sp := range spaces {
		ownership[sp] = id
	}
	s = s.WithPlayer(id, func(p *game.Participant) {
		p.OwnedProperties = append(slices.Clip(p.OwnedProperties), spaces...)
	})
	return s.WithOwnership(ownership)
}

func player(t *testing.T, s game.GameState, id string) game.Participant {
	t.Helper()
	p, ok := s.Player(id)
	require.True(t, ok)
	return p
}

func logged(s game.GameState, fragment string) bool {
	for _, entry := range s.Log {
		if strings.Contains(entry.Message, fragment) {
			return true
		}
	}
	return false
}

func TestMovePlayer(t *testing.T) {
	for p := 0; p < 24; p++ {
		for steps := 0; steps <= 30; steps++ {
			pos, passed := MovePlayer(p, steps, 24)
			require.Equal(t, (p+steps)%24, pos)
			require.Equal(t, steps > 0 && pos < p, passed)
		}
	}

	pos, passed := MovePlayer(1, -3, 24)
	require.Equal(t, 22, pos, "Backwards moves should wrap")
	require.False(t, passed, "Backwards moves never pass GO")
}

func TestExecuteRoll(t *testing.T) {
	t.Run("scenario A: wrap past GO", func(t *testing.T) {
		e, s := newTestGame(t, roll(2, 3))
		s = at(s, "player-0", 22)

		next := e.ExecuteRoll(s)

		p := player(t, next, "player-0")
		require.Equal(t, 3, p.Position)
		require.Equal(t, 1700, p.Cash, "Passing GO should credit the bonus")
		require.Equal(t, game.PhaseBuyDecision, next.Phase, "Landing on Baltic Ave should offer a purchase")
		require.Equal(t, &game.PendingAction{Type: game.BuyPropertyAction, SpaceID: 3}, next.Pending)
		require.Equal(t, 0, next.CurrentPlayerIndex, "Turn should pause on the buy-offer")
		require.Equal(t, &game.DiceRoll{Die1: 2, Die2: 3, Total: 5}, next.LastRoll)
		require.True(t, logged(next, "passed GO and collected $200"))
	})

	t.Run("scenario B: monopoly rent", func(t *testing.T) {
		e, s := newTestGame(t, roll(1, 2))
		s = own(s, "bot-1", 1, 3)
		s = at(s, "player-0", 22)

		next := e.ExecuteRoll(s)

		require.Equal(t, 1500+200-8, player(t, next, "player-0").Cash)
		require.Equal(t, 1508, player(t, next, "bot-1").Cash)
		require.Equal(t, 1, next.CurrentPlayerIndex)
		require.True(t, logged(next, "Alice paid $8 rent to Captain Woof for Mediterranean Ave"))
	})

	t.Run("scenario C: rent with houses", func(t *testing.T) {
		e, s := newTestGame(t, roll(1, 2))
		s = own(s, "bot-1", 1, 3)
		s = s.WithHouses(map[int]int{1: 2})
		s = at(s, "player-0", 22)

		next := e.ExecuteRoll(s)

		require.Equal(t, 1500+200-24, player(t, next, "player-0").Cash)
	})

	t.Run("scenario D: rent bankrupts", func(t *testing.T) {
		spaces := slices.Clone(game.StandardBoard().Spaces)
		spaces[23].Group = game.Yellow // Boardwalk without the lone-property monopoly
		e := New(WithSeed(1), WithBoard(game.NewBoard(spaces)), WithDice(game.NewSequenceRoller(roll(1, 2))))
		_, base := newTestGame(t)
		s := e.NewGame("test", base.Players)
		s = own(s, "bot-1", 23)
		s = at(s, "player-0", 20)
		s = s.WithPlayer("player-0", func(p *game.Participant) { p.Cash = 30 })

		next := e.ExecuteRoll(s)

		p := player(t, next, "player-0")
		require.Equal(t, -20, p.Cash)
		require.True(t, p.IsBankrupt)
		require.True(t, logged(next, "Alice went bankrupt!"))
		require.Equal(t, game.StatusActive, next.Status, "Two players remain")
		require.Equal(t, 1, next.CurrentPlayerIndex)
	})

	t.Run("unaffordable property", func(t *testing.T) {
		e, s := newTestGame(t, roll(1, 2))
		s = at(s, "player-0", 22)
		s = s.WithPlayer("player-0", func(p *game.Participant) { p.Cash = -150 })

		next := e.ExecuteRoll(s)

		require.Equal(t, game.PhaseRoll, next.Phase)
		require.Nil(t, next.Pending)
		require.True(t, logged(next, "can't afford Mediterranean Ave ($60)"))
	})

	t.Run("rent waived for jailed owner", func(t *testing.T) {
		e, s := newTestGame(t, roll(1, 2))
		s = own(s, "bot-1", 1)
		s = s.WithPlayer("bot-1", func(p *game.Participant) { p.InJail = true; p.Position = 6 })
		s = at(s, "player-0", 22)

		next := e.ExecuteRoll(s)

		require.Equal(t, 1700, player(t, next, "player-0").Cash)
		require.Equal(t, 1500, player(t, next, "bot-1").Cash)
	})

	t.Run("own property", func(t *testing.T) {
		e, s := newTestGame(t, roll(1, 2))
		s = own(s, "player-0", 1)
		s = at(s, "player-0", 22)

		next := e.ExecuteRoll(s)

		require.Equal(t, 1700, player(t, next, "player-0").Cash)
		require.Equal(t, 1, next.CurrentPlayerIndex)
	})

	t.Run("go to jail space", func(t *testing.T) {
		e, s := newTestGame(t, roll(1, 1))
		s = at(s, "player-0", 16)

		next := e.ExecuteRoll(s)

		p := player(t, next, "player-0")
		require.Equal(t, 6, p.Position)
		require.True(t, p.InJail)
		require.Equal(t, 1500, p.Cash, "Being sent to jail never passes GO")
		require.True(t, logged(next, "Alice was sent to Jail!"))
	})

	t.Run("snapshot is not modified", func(t *testing.T) {
		e, s := newTestGame(t, roll(2, 3))
		s = own(s, "bot-1", 4)
		s = at(s, "player-0", 22)
		before := s.Copy()

		e.ExecuteRoll(s)

		require.Equal(t, before, s)
	})

	t.Run("ignored outside the roll phase", func(t *testing.T) {
		e, s := newTestGame(t, roll(2, 3))
		s = at(s, "player-0", 22)
		pending := e.ExecuteRoll(s)
		require.Equal(t, pending, e.ExecuteRoll(pending))

		finished := s
		finished.Status = game.StatusFinished
		require.Equal(t, finished, e.ExecuteRoll(finished))
	})
}

func TestJail(t *testing.T) {
	jailed := func(s game.GameState, turns int) game.GameState {
		return s.WithPlayer("player-0", func(p *game.Participant) {
			p.Position = 6
			p.InJail = true
			p.JailTurns = turns
		})
	}

	t.Run("scenario E: third failure forces the fee", func(t *testing.T) {
		e, s := newTestGame(t, roll(1, 2))
		s = jailed(s, 0)

		for attempt := 1; attempt <= 2; attempt++ {
			s = e.ExecuteRoll(s)
			p := player(t, s, "player-0")
			require.True(t, p.InJail)
			require.Equal(t, attempt, p.JailTurns)
			require.Equal(t, 6, p.Position, "Failed jail rolls never move")
			require.Equal(t, 1, s.CurrentPlayerIndex)
			s.CurrentPlayerIndex = 0
		}

		s = e.ExecuteRoll(s)
		p := player(t, s, "player-0")
		require.False(t, p.InJail)
		require.Equal(t, 0, p.JailTurns)
		require.Equal(t, 1450, p.Cash)
		require.Equal(t, 6, p.Position)
		require.Equal(t, 1, s.CurrentPlayerIndex)
		require.True(t, logged(s, "failed to roll doubles in jail (attempt 2/3)"))
	})

	t.Run("forced fee can bankrupt", func(t *testing.T) {
		e, s := newTestGame(t, roll(1, 2))
		s = jailed(s, 2)
		s = s.WithPlayer("player-0", func(p *game.Participant) { p.Cash = 10 })

		next := e.ExecuteRoll(s)

		require.True(t, player(t, next, "player-0").IsBankrupt)
		require.True(t, logged(next, "went bankrupt paying jail fee!"))
	})

	t.Run("doubles escape", func(t *testing.T) {
		e, s := newTestGame(t, roll(3, 3))
		s = jailed(s, 1)

		next := e.ExecuteRoll(s)

		p := player(t, next, "player-0")
		require.False(t, p.InJail)
		require.Equal(t, 0, p.JailTurns)
		require.Equal(t, 12, p.Position)
		require.Equal(t, 1500, p.Cash)
		require.True(t, logged(next, "rolled doubles and escaped jail!"))
	})

	t.Run("paying keeps the roll phase", func(t *testing.T) {
		e, s := newTestGame(t, roll(3, 3))
		s = jailed(s, 0)

		paid := e.PayJailFee(s)

		p := player(t, paid, "player-0")
		require.False(t, p.InJail)
		require.Equal(t, 1450, p.Cash)
		require.Equal(t, game.PhaseRoll, paid.Phase)
		require.Equal(t, 0, paid.CurrentPlayerIndex)

		rolled := e.ExecuteRoll(paid)
		require.Equal(t, 12, player(t, rolled, "player-0").Position, "Released participant should move normally")
	})

	t.Run("paying into bankruptcy advances", func(t *testing.T) {
		e, s := newTestGame(t)
		s = jailed(s, 0)
		s = s.WithPlayer("player-0", func(p *game.Participant) { p.Cash = 20 })

		next := e.PayJailFee(s)

		require.True(t, player(t, next, "player-0").IsBankrupt)
		require.Equal(t, 1, next.CurrentPlayerIndex)
	})

	t.Run("paying when free is ignored", func(t *testing.T) {
		e, s := newTestGame(t)
		require.Equal(t, s, e.PayJailFee(s))
	})
}

func TestCards(t *testing.T) {
	withChance := func(s game.GameState, ids ...string) game.GameState {
		s.ChanceDeck = game.Deck{Kind: game.ChanceDeck, Order: ids}
		return s
	}
	withChest := func(s game.GameState, ids ...string) game.GameState {
		s.CommunityChestDeck = game.Deck{Kind: game.CommunityChestDeck, Order: ids}
		return s
	}

	t.Run("gain", func(t *testing.T) {
		e, s := newTestGame(t, roll(1, 1))
		s = withChance(at(s, "player-0", 3), "ch3", "ch5")

		next := e.ExecuteRoll(s)

		require.Equal(t, 1550, player(t, next, "player-0").Cash)
		require.Equal(t, 1, next.ChanceDeck.Cursor)
		require.True(t, logged(next, `Alice drew: "Bank pays you a dividend of $50."`))
		require.Equal(t, 1, next.CurrentPlayerIndex)
	})

	t.Run("lose into bankruptcy", func(t *testing.T) {
		e, s := newTestGame(t, roll(1, 1))
		s = withChance(at(s, "player-0", 3), "ch5")
		s = s.WithPlayer("player-0", func(p *game.Participant) { p.Cash = 10 })

		next := e.ExecuteRoll(s)

		p := player(t, next, "player-0")
		require.Equal(t, -65, p.Cash)
		require.True(t, p.IsBankrupt)
		require.Equal(t, game.ChanceDeck, next.ChanceDeck.Kind)
		require.Equal(t, 0, next.ChanceDeck.Cursor, "Single-card deck should reshuffle")
	})

	t.Run("advance to GO", func(t *testing.T) {
		e, s := newTestGame(t, roll(1, 1))
		s = withChance(at(s, "player-0", 3), "ch1", "ch2")

		next := e.ExecuteRoll(s)

		p := player(t, next, "player-0")
		require.Equal(t, 0, p.Position)
		require.Equal(t, 1700, p.Cash)
	})

	t.Run("advance to Boardwalk offers it", func(t *testing.T) {
		e, s := newTestGame(t, roll(1, 1))
		s = withChance(at(s, "player-0", 15), "ch8", "ch2")

		next := e.ExecuteRoll(s)

		require.Equal(t, 23, player(t, next, "player-0").Position)
		require.Equal(t, 1500, player(t, next, "player-0").Cash, "Forward move-to should not pay the bonus")
		require.Equal(t, game.PhaseBuyDecision, next.Phase)
		require.Equal(t, 23, next.Pending.SpaceID)
	})

	t.Run("go back three chains into community chest", func(t *testing.T) {
		e, s := newTestGame(t, roll(1, 1))
		s = withChance(at(s, "player-0", 3), "ch4", "ch2")
		s = withChest(s, "cc6", "cc1")

		next := e.ExecuteRoll(s)

		p := player(t, next, "player-0")
		require.Equal(t, 2, p.Position)
		require.Equal(t, 1520, p.Cash, "Backwards move should not pay the bonus")
		require.Equal(t, 1, next.CommunityChestDeck.Cursor)
	})

	t.Run("go to jail card", func(t *testing.T) {
		e, s := newTestGame(t, roll(1, 1))
		s = withChest(at(s, "player-0", 0), "cc4", "cc1")

		next := e.ExecuteRoll(s)

		p := player(t, next, "player-0")
		require.True(t, p.InJail)
		require.Equal(t, 6, p.Position)
		require.Equal(t, 1500, p.Cash)
	})

	t.Run("move-to the jail space is a visit", func(t *testing.T) {
		e, s := newTestGame(t)
		s = at(s, "player-0", 11)

		next := e.applyCardEffect(s, game.Card{ID: "x", Text: "Visit jail", Effect: game.MoveTo{Position: 6}})

		p := player(t, next, "player-0")
		require.Equal(t, 6, p.Position)
		require.False(t, p.InJail)
		require.Equal(t, 1500, p.Cash, "Relocating to jail never pays the bonus")
		require.Equal(t, 1, next.CurrentPlayerIndex)
	})
}

func TestBuyDecision(t *testing.T) {
	offer := func(t *testing.T) (*Engine, game.GameState) {
		e, s := newTestGame(t, roll(2, 3))
		s = at(s, "player-0", 22)
		s = e.ExecuteRoll(s)
		require.Equal(t, game.PhaseBuyDecision, s.Phase)
		return e, s
	}

	t.Run("buy", func(t *testing.T) {
		e, s := offer(t)

		next := e.ExecuteBuy(s)

		p := player(t, next, "player-0")
		require.Equal(t, 1700-60, p.Cash)
		require.Equal(t, []int{3}, p.OwnedProperties)
		require.Equal(t, "player-0", next.Ownership[3])
		require.Nil(t, next.Pending)
		require.Equal(t, game.PhaseRoll, next.Phase)
		require.Equal(t, 1, next.CurrentPlayerIndex)
		require.Empty(t, s.Ownership, "Offer snapshot should not change")
		require.True(t, logged(next, "Alice bought Baltic Ave for $60"))
	})

	t.Run("decline", func(t *testing.T) {
		e, s := offer(t)

		next := e.DeclineBuy(s)

		require.Empty(t, next.Ownership)
		require.Equal(t, 1700, player(t, next, "player-0").Cash)
		require.Nil(t, next.Pending)
		require.Equal(t, 1, next.CurrentPlayerIndex)
		require.True(t, logged(next, "Alice declined to buy Baltic Ave"))
	})

	t.Run("no offer", func(t *testing.T) {
		e, s := newTestGame(t)
		require.Equal(t, s, e.ExecuteBuy(s))
		require.Equal(t, s, e.DeclineBuy(s))
	})
}

func TestBuildHouse(t *testing.T) {
	t.Run("builds one house", func(t *testing.T) {
		e, s := newTestGame(t)
		s = own(s, "player-0", 1, 3)

		next := e.ExecuteBuildHouse(s, 1)

		require.Equal(t, 1, next.Houses[1])
		require.Equal(t, 1470, player(t, next, "player-0").Cash)
		require.Equal(t, game.PhaseRoll, next.Phase)
		require.Equal(t, 0, next.CurrentPlayerIndex, "Building does not end the turn")
		require.True(t, logged(next, "Alice built house #1 on Mediterranean Ave"))
	})

	t.Run("fifth is a hotel", func(t *testing.T) {
		e, s := newTestGame(t)
		s = own(s, "player-0", 1, 3)
		s = s.WithHouses(map[int]int{1: 4})

		next := e.ExecuteBuildHouse(s, 1)

		require.Equal(t, 5, next.Houses[1])
		require.True(t, logged(next, "Alice built a hotel on Mediterranean Ave"))
		require.Equal(t, next, e.ExecuteBuildHouse(next, 1), "No building past a hotel")
	})

	t.Run("rejected builds are no-ops", func(t *testing.T) {
		e, s := newTestGame(t)
		s = own(s, "player-0", 1)
		s = own(s, "bot-1", 3)

		require.Equal(t, s, e.ExecuteBuildHouse(s, 1), "Without monopoly")
		require.Equal(t, s, e.ExecuteBuildHouse(s, 3), "Someone else's property")
		require.Equal(t, s, e.ExecuteBuildHouse(s, 0), "Not a property")
		require.Equal(t, s, e.ExecuteBuildHouse(s, 99), "Off the board")
	})
}

func TestAdvanceToNextPlayer(t *testing.T) {
	t.Run("wrap increments the turn", func(t *testing.T) {
		e, s := newTestGame(t)
		s.CurrentPlayerIndex = 2

		next := e.AdvanceToNextPlayer(s)

		require.Equal(t, 0, next.CurrentPlayerIndex)
		require.Equal(t, 2, next.TurnNumber)
	})

	t.Run("skips bankrupt seats", func(t *testing.T) {
		e, s := newTestGame(t)
		s = s.WithPlayer("bot-1", func(p *game.Participant) { p.IsBankrupt = true; p.Cash = -1 })

		next := e.AdvanceToNextPlayer(s)
		require.Equal(t, 2, next.CurrentPlayerIndex)
		require.Equal(t, 1, next.TurnNumber)

		s.CurrentPlayerIndex = 2
		s = s.WithPlayer("player-0", func(p *game.Participant) { p.IsBankrupt = true; p.Cash = -1 })
		s = s.WithPlayer("bot-1", func(p *game.Participant) { p.IsBankrupt = false; p.Cash = 5 })
		next = e.AdvanceToNextPlayer(s)
		require.Equal(t, 1, next.CurrentPlayerIndex)
		require.Equal(t, 2, next.TurnNumber)
	})

	t.Run("last survivor wins", func(t *testing.T) {
		e, s := newTestGame(t)
		for _, id := range []string{"player-0", "bot-2"} {
			s = s.WithPlayer(id, func(p *game.Participant) { p.IsBankrupt = true; p.Cash = -1 })
		}
		s.Pending = &game.PendingAction{Type: game.BuyPropertyAction, SpaceID: 1}

		next := e.AdvanceToNextPlayer(s)

		require.Equal(t, game.StatusFinished, next.Status)
		require.Equal(t, game.PhaseGameOver, next.Phase)
		require.Equal(t, "bot-1", next.WinnerID)
		require.Equal(t, game.ReasonBankruptcy, next.WinReason)
		require.Nil(t, next.Pending)
		require.True(t, logged(next, "Captain Woof wins! (last player standing)"))
	})

	t.Run("turn limit", func(t *testing.T) {
		e, s := newTestGame(t)
		s.TurnNumber = 50
		s = s.WithPlayer("bot-2", func(p *game.Participant) { p.Cash = 1600 })

		next := e.AdvanceToNextPlayer(s)

		require.Equal(t, game.StatusFinished, next.Status)
		require.Equal(t, "bot-2", next.WinnerID)
		require.Equal(t, game.ReasonTurnLimit, next.WinReason)
		require.True(t, logged(next, "Sir Barksalot wins! (richest at turn limit)"))
	})
}
