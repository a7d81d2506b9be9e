package player

import (
	"context"
	"testing"

	"monopoly/engine"
	"monopoly/experiments/metrics"
	"monopoly/game"

	"github.com/stretchr/testify/require"
)

func newBotGame(t *testing.T, options ...engine.Option) (*engine.Engine, game.GameState) {
	t.Helper()
	e := engine.New(options...)
	var players []game.Participant
	for i, b := range game.PickBots(3, "") {
		profile := ProfileForSeat(i)
		players = append(players, game.NewParticipant(
			"bot-"+string(rune('1'+i)), b.Name, true, b.Color, profile.Name, e.Rules().StartingCash,
		))
	}
	return e, e.NewGame("bots", players)
}

func TestBotTakeTurn(t *testing.T) {
	t.Run("buys what it can afford", func(t *testing.T) {
		e, s := newBotGame(t, engine.WithSeed(3), engine.WithDice(game.NewSequenceRoller(game.NewDiceRoll(1, 2))))

		next := NewBot(Aggressive).TakeTurn(e, s)

		require.Equal(t, "bot-1", next.Ownership[3])
		require.Equal(t, 1, next.CurrentPlayerIndex)
		require.Equal(t, game.PhaseRoll, next.Phase)
	})

	t.Run("declines over budget", func(t *testing.T) {
		e, s := newBotGame(t, engine.WithSeed(3), engine.WithDice(game.NewSequenceRoller(game.NewDiceRoll(1, 2))))
		s = s.WithPlayer("bot-1", func(p *game.Participant) { p.Cash = 80 })

		next := NewBot(Balanced).TakeTurn(e, s)

		require.Empty(t, next.Ownership, "60 > 80*0.70")
		require.Equal(t, 1, next.CurrentPlayerIndex)
	})

	t.Run("builds before rolling", func(t *testing.T) {
		e, s := newBotGame(t, engine.WithSeed(3), engine.WithDice(game.NewSequenceRoller(game.NewDiceRoll(6, 6))))
		s = s.WithPlayer("bot-1", func(p *game.Participant) { p.OwnedProperties = []int{1, 3} })
		s = s.WithOwnership(map[int]string{1: "bot-1", 3: "bot-1"})

		next := NewBot(Aggressive).TakeTurn(e, s)

		require.Equal(t, 1, next.Houses[1])
		require.Equal(t, 1, next.Houses[3])
		require.Equal(t, 12, next.Players[0].Position)
		require.Equal(t, 1440, next.Players[0].Cash)
	})

	t.Run("aggressive pays out of jail then rolls", func(t *testing.T) {
		e, s := newBotGame(t, engine.WithSeed(3), engine.WithDice(game.NewSequenceRoller(game.NewDiceRoll(1, 5))))
		s = s.WithPlayer("bot-1", func(p *game.Participant) { p.Position = 6; p.InJail = true })

		next := NewBot(Aggressive).TakeTurn(e, s)

		p := next.Players[0]
		require.False(t, p.InJail)
		require.Equal(t, 12, p.Position)
		require.Equal(t, 1450, p.Cash)
	})

	t.Run("cannot cover the fee so it rolls", func(t *testing.T) {
		e, s := newBotGame(t, engine.WithSeed(3), engine.WithDice(game.NewSequenceRoller(game.NewDiceRoll(1, 5))))
		s = s.WithPlayer("bot-1", func(p *game.Participant) { p.Position = 6; p.InJail = true; p.Cash = 40 })

		next := NewBot(Aggressive).TakeTurn(e, s)

		p := next.Players[0]
		require.True(t, p.InJail)
		require.Equal(t, 1, p.JailTurns)
		require.Equal(t, 40, p.Cash)
	})
}

func TestRunnerPlaysToTheEnd(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		e, s := newBotGame(t, engine.WithSeed(seed))
		deciders := map[string]engine.Decider{}
		for _, p := range s.Players {
			deciders[p.ID] = BotFor(p)
		}
		runner := engine.NewRunner(e, s, deciders)
		runner.Collector = metrics.NewCollector()

		final, metric, err := runner.Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, game.StatusFinished, final.Status)
		require.Equal(t, game.PhaseGameOver, final.Phase)
		require.LessOrEqual(t, final.TurnNumber, e.Rules().TurnLimit)
		require.NotEmpty(t, final.WinReason)
		require.LessOrEqual(t, len(final.Log), game.MaxLogEntries)
		require.Equal(t, final.TurnNumber, metric.Turns)
		require.Greater(t, metric.TotalMoves, 0)
		require.Equal(t, len(final.Ownership), metric.Purchases)

		for _, p := range final.Players {
			require.Equal(t, p.Cash < 0, p.IsBankrupt, "Bankrupt flag should track negative cash for %s", p.ID)
			for _, id := range p.OwnedProperties {
				require.Equal(t, p.ID, final.Ownership[id])
			}
		}
		for id, n := range final.Houses {
			require.LessOrEqual(t, n, 5)
			require.NotEmpty(t, final.Ownership[id])
		}
	}
}

func TestRunnerStopsOnCancel(t *testing.T) {
	e, s := newBotGame(t, engine.WithSeed(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	final, _, err := engine.NewRunner(e, s, map[string]engine.Decider{}).Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, s, final)
}
