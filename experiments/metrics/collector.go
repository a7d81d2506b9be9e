package metrics

import (
	"sync/atomic"
	"time"

	"monopoly/game"
)

type GameMetric struct {
	GameID     string
	Winner     string // Participant ID, empty when nobody survived
	Reason     game.WinReason
	Turns      int
	TotalMoves int
	Purchases  int
	Builds     int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

// Collector counts what happens during one headless game.
type Collector interface {
	Start()
	AddMove()
	AddPurchase()
	AddBuild()
	Complete(final game.GameState) GameMetric
}

type collector struct {
	startTime time.Time
	moves     atomic.Int32
	purchases atomic.Int32
	builds    atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
}

func (m *collector) AddMove() {
	m.moves.Add(1)
}

func (m *collector) AddPurchase() {
	m.purchases.Add(1)
}

func (m *collector) AddBuild() {
	m.builds.Add(1)
}

func (m *collector) Complete(final game.GameState) GameMetric {
	end := time.Now()
	return GameMetric{
		GameID:     final.ID,
		Winner:     final.WinnerID,
		Reason:     final.WinReason,
		Turns:      final.TurnNumber,
		TotalMoves: int(m.moves.Load()),
		Purchases:  int(m.purchases.Load()),
		Builds:     int(m.builds.Load()),
		StartTime:  m.startTime,
		EndTime:    end,
		Duration:   end.Sub(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()       {}
func (m *dummyCollector) AddMove()     {}
func (m *dummyCollector) AddPurchase() {}
func (m *dummyCollector) AddBuild()    {}
func (m *dummyCollector) Complete(final game.GameState) GameMetric {
	return GameMetric{GameID: final.ID, Winner: final.WinnerID, Reason: final.WinReason, Turns: final.TurnNumber}
}
