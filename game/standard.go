package game

const (
	DefaultStartingCash        = 1500
	DefaultPassBonus           = 200
	DefaultJailFee             = 50
	DefaultMaxJailTurns        = 3
	DefaultTurnLimit           = 50
	DefaultHouseCostMultiplier = 0.5
	DefaultMaxHouses           = 5 // the fifth house is a hotel

	// MaxLogEntries bounds the event log; the oldest entries are dropped first.
	MaxLogEntries = 100
)

func NewStandardRules() *Rules {
	return &Rules{
		StartingCash:        DefaultStartingCash,
		PassBonus:           DefaultPassBonus,
		JailFee:             DefaultJailFee,
		MaxJailTurns:        DefaultMaxJailTurns,
		TurnLimit:           DefaultTurnLimit,
		HouseCostMultiplier: DefaultHouseCostMultiplier,
		MaxHouses:           DefaultMaxHouses,
	}
}
