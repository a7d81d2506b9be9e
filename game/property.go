package game

import (
	"maps"
	"slices"
)

// Properties answers ownership and construction questions against one board and rules set.
type Properties struct {
	Board *Board
	Rules *Rules
}

func NewProperties(board *Board, rules *Rules) Properties {
	return Properties{Board: board, Rules: rules}
}

func GetOwner(ownership map[int]string, spaceID int) (string, bool) {
	owner, ok := ownership[spaceID]
	return owner, ok
}

// HasMonopoly is true iff the participant owns every property of the group.
func (pr Properties) HasMonopoly(ownership map[int]string, participantID string, group ColorGroup) bool {
	for _, id := range pr.Board.GroupPropertyIDs(group) {
		if ownership[id] != participantID {
			return false
		}
	}
	return true
}

// CalculateRent: houses take precedence over the monopoly bonus.
func (pr Properties) CalculateRent(space Space, ownership map[int]string, houses map[int]int, ownerID string) int {
	if !space.IsProperty() {
		return 0
	}
	if n := houses[space.ID]; n > 0 {
		return space.BaseRent * (n + 1) * 2
	}
	if pr.HasMonopoly(ownership, ownerID, space.Group) {
		return space.BaseRent * 2
	}
	return space.BaseRent
}

// BuyProperty debits the price and records ownership. Affordability is the caller's concern.
func (pr Properties) BuyProperty(p Participant, space Space, ownership map[int]string) (Participant, map[int]string) {
	p = Debit(p, space.Price)
	p.OwnedProperties = append(slices.Clip(p.OwnedProperties), space.ID)

	next := maps.Clone(ownership)
	if next == nil {
		next = map[int]string{}
	}
	next[space.ID] = p.ID
	return p, next
}

// CanBuild reports whether one more house may go on the space.
func (pr Properties) CanBuild(p Participant, space Space, ownership map[int]string, houses map[int]int) bool {
	if !space.IsProperty() || ownership[space.ID] != p.ID {
		return false
	}
	if !pr.HasMonopoly(ownership, p.ID, space.Group) {
		return false
	}
	if houses[space.ID] >= pr.Rules.MaxHouses {
		return false
	}
	return p.Cash >= pr.Rules.HouseCost(space.Price)
}

// BuyHouse adds exactly one house. ok is false, and nothing changes, when the build is not allowed.
func (pr Properties) BuyHouse(p Participant, space Space, ownership map[int]string, houses map[int]int) (Participant, map[int]int, bool) {
	if !pr.CanBuild(p, space, ownership, houses) {
		return p, houses, false
	}
	p = Debit(p, pr.Rules.HouseCost(space.Price))

	next := maps.Clone(houses)
	if next == nil {
		next = map[int]int{}
	}
	next[space.ID]++
	return p, next, true
}

// BuildableProperties lists owned properties that pass CanBuild, in holding order.
func (pr Properties) BuildableProperties(p Participant, ownership map[int]string, houses map[int]int) []Space {
	var buildable []Space
	for _, id := range p.OwnedProperties {
		space, ok := pr.Board.Space(id)
		if ok && pr.CanBuild(p, space, ownership, houses) {
			buildable = append(buildable, space)
		}
	}
	return buildable
}

func CanAffordProperty(p Participant, space Space) bool {
	return p.Cash >= space.Price
}
