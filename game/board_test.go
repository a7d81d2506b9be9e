package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardBoard(t *testing.T) {
	board := StandardBoard()

	t.Run("layout", func(t *testing.T) {
		require.Equal(t, 24, board.Size(), "Board should have 24 spaces")
		for i, s := range board.Spaces {
			require.Equal(t, i, s.ID, "Space id should match its position")
		}
		require.Equal(t, 6, board.JailPosition(), "Jail should be space 6")

		goToJail, ok := board.Space(18)
		require.True(t, ok)
		require.Equal(t, GoToJailSpace, goToJail.Kind)
	})

	t.Run("color groups", func(t *testing.T) {
		require.Equal(t, []int{1, 3}, board.GroupPropertyIDs(Brown))
		require.Equal(t, []int{16, 19}, board.GroupPropertyIDs(Green))
		require.Equal(t, []int{23}, board.GroupPropertyIDs(Blue), "Blue should hold only Boardwalk")
		require.Empty(t, board.GroupPropertyIDs(NoGroup), "Non-property spaces should not form a group")
		require.Equal(t, "#8B4513", Brown.Color())
		require.Len(t, board.Properties(), 13)
	})

	t.Run("out of range", func(t *testing.T) {
		_, ok := board.Space(24)
		require.False(t, ok)
		_, ok = board.Space(-1)
		require.False(t, ok)
	})
}

func TestDice(t *testing.T) {
	t.Run("random rolls stay in range", func(t *testing.T) {
		roller := NewRandomRoller(42)
		for i := 0; i < 500; i++ {
			roll := roller.Roll()
			require.GreaterOrEqual(t, roll.Die1, 1)
			require.LessOrEqual(t, roll.Die1, 6)
			require.GreaterOrEqual(t, roll.Die2, 1)
			require.LessOrEqual(t, roll.Die2, 6)
			require.Equal(t, roll.Die1+roll.Die2, roll.Total)
			require.Equal(t, roll.Die1 == roll.Die2, roll.IsDoubles)
		}
	})

	t.Run("same seed same rolls", func(t *testing.T) {
		a, b := NewRandomRoller(7), NewRandomRoller(7)
		for i := 0; i < 20; i++ {
			require.Equal(t, a.Roll(), b.Roll())
		}
	})

	t.Run("sequence cycles", func(t *testing.T) {
		roller := NewSequenceRoller(NewDiceRoll(1, 2), NewDiceRoll(3, 3))
		require.Equal(t, 3, roller.Roll().Total)
		require.True(t, roller.Roll().IsDoubles)
		require.Equal(t, 3, roller.Roll().Total, "Sequence should wrap around")
	})
}
