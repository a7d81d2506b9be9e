package game

import "math"

// Rules is the tunable rules configuration. Every engine operation reads its
// constants from here rather than hard-coding them.
type Rules struct {
	StartingCash        int     `mapstructure:"starting_cash" json:"startingCash"`
	PassBonus           int     `mapstructure:"pass_bonus" json:"passBonus"`
	JailFee             int     `mapstructure:"jail_fee" json:"jailFee"`
	MaxJailTurns        int     `mapstructure:"max_jail_turns" json:"maxJailTurns"`
	TurnLimit           int     `mapstructure:"turn_limit" json:"turnLimit"`
	HouseCostMultiplier float64 `mapstructure:"house_cost_multiplier" json:"houseCostMultiplier"`
	MaxHouses           int     `mapstructure:"max_houses" json:"maxHouses"`
}

// HouseCost is floor(price * multiplier).
func (r *Rules) HouseCost(price int) int {
	return int(math.Floor(float64(price) * r.HouseCostMultiplier))
}
