package player

import (
	"cmp"
	"slices"

	"monopoly/game"
)

// Profile is a named set of thresholds steering a computer participant.
type Profile struct {
	Name           string
	BuyThreshold   float64 // buy when price <= cash * BuyThreshold
	BuildThreshold float64 // spend at most cash * BuildThreshold on houses per turn
}

var (
	Aggressive = Profile{Name: "aggressive", BuyThreshold: 0.85, BuildThreshold: 0.6}
	Balanced   = Profile{Name: "balanced", BuyThreshold: 0.70, BuildThreshold: 0.4}
)

// ProfileByName falls back to Balanced for unknown names.
func ProfileByName(name string) Profile {
	if name == Aggressive.Name {
		return Aggressive
	}
	return Balanced
}

// ProfileForSeat alternates profiles by opponent seat: even seats are aggressive.
func ProfileForSeat(seat int) Profile {
	if seat%2 == 0 {
		return Aggressive
	}
	return Balanced
}

type JailChoice string

const (
	PayFee      JailChoice = "pay"
	RollDoubles JailChoice = "roll"
)

func DecidePurchase(p game.Participant, space game.Space, profile Profile) bool {
	return float64(space.Price) <= float64(p.Cash)*profile.BuyThreshold
}

// DecideBuild picks builds greedily by descending base rent. Each build must
// cost at most BuildThreshold of the cash left after the builds picked before it.
// The result is ordered and may be empty.
func DecideBuild(p game.Participant, s game.GameState, props game.Properties, profile Profile) []int {
	buildable := props.BuildableProperties(p, s.Ownership, s.Houses)
	slices.SortStableFunc(buildable, func(a, b game.Space) int {
		return cmp.Compare(b.BaseRent, a.BaseRent)
	})

	available := float64(p.Cash)
	var builds []int
	for _, space := range buildable {
		cost := float64(props.Rules.HouseCost(space.Price))
		if cost <= available*profile.BuildThreshold {
			builds = append(builds, space.ID)
			available -= cost
		}
	}
	return builds
}

// DecideJail: aggressive always pays, balanced pays only before its last attempt.
func DecideJail(p game.Participant, rules *game.Rules, profile Profile) JailChoice {
	if profile.Name == Aggressive.Name {
		return PayFee
	}
	if p.JailTurns >= rules.MaxJailTurns-1 {
		return PayFee
	}
	return RollDoubles
}
