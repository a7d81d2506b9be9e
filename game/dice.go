package game

import (
	"time"

	"golang.org/x/exp/rand"
)

type DiceRoll struct {
	Die1      int  `json:"die1"`
	Die2      int  `json:"die2"`
	Total     int  `json:"total"`
	IsDoubles bool `json:"isDoubles"`
}

func NewDiceRoll(die1, die2 int) DiceRoll {
	return DiceRoll{
		Die1:      die1,
		Die2:      die2,
		Total:     die1 + die2,
		IsDoubles: die1 == die2,
	}
}

// Roller produces two-die rolls.
type Roller interface {
	Roll() DiceRoll
}

// RandomRoller samples both dice uniformly from [1,6]. Not safe for concurrent use.
type RandomRoller struct {
	rng *rand.Rand
}

func NewRandomRoller(seed uint64) *RandomRoller {
	return &RandomRoller{rng: rand.New(rand.NewSource(seed))}
}

// NewTimeSeededRoller seeds from the wall clock.
func NewTimeSeededRoller() *RandomRoller {
	return NewRandomRoller(uint64(time.Now().UnixNano()))
}

func (r *RandomRoller) Roll() DiceRoll {
	return NewDiceRoll(r.rng.Intn(6)+1, r.rng.Intn(6)+1)
}

// SequenceRoller replays a fixed list of rolls and then cycles back to the first one.
type SequenceRoller struct {
	rolls []DiceRoll
	next  int
}

func NewSequenceRoller(rolls ...DiceRoll) *SequenceRoller {
	if len(rolls) == 0 {
		panic("sequence roller needs at least one roll")
	}
	return &SequenceRoller{rolls: rolls}
}

func (r *SequenceRoller) Roll() DiceRoll {
	roll := r.rolls[r.next%len(r.rolls)]
	r.next++
	return roll
}
