package game

import (
	"cmp"
	"slices"
)

func IsBankrupt(p Participant) bool {
	return p.Cash < 0
}

func ActivePlayers(players []Participant) []Participant {
	var active []Participant
	for _, p := range players {
		if !p.IsBankrupt {
			active = append(active, p)
		}
	}
	return active
}

type GameOver struct {
	IsOver   bool
	Reason   WinReason
	WinnerID string // empty when nobody survives
}

// CheckGameOver ends the game on a single survivor, or at the turn limit with the
// richest active participant winning. Cash ties go to the earlier seat.
func CheckGameOver(players []Participant, turnNumber int, rules *Rules) GameOver {
	active := ActivePlayers(players)
	if len(active) <= 1 {
		over := GameOver{IsOver: true, Reason: ReasonBankruptcy}
		if len(active) == 1 {
			over.WinnerID = active[0].ID
		}
		return over
	}

	if turnNumber >= rules.TurnLimit {
		richest := slices.Clone(active)
		slices.SortStableFunc(richest, func(a, b Participant) int {
			return cmp.Compare(b.Cash, a.Cash)
		})
		return GameOver{IsOver: true, Reason: ReasonTurnLimit, WinnerID: richest[0].ID}
	}

	return GameOver{}
}

// NetWorth is cash plus purchase price and house cost of every holding.
func NetWorth(p Participant, board *Board, houses map[int]int, rules *Rules) int {
	worth := p.Cash
	for _, id := range p.OwnedProperties {
		space, ok := board.Space(id)
		if !ok {
			continue
		}
		worth += space.Price + houses[id]*rules.HouseCost(space.Price)
	}
	return worth
}

type Standing struct {
	Rank        int    `json:"rank"`
	PlayerID    string `json:"playerId"`
	Name        string `json:"name"`
	IsComputer  bool   `json:"isBot"`
	IsBankrupt  bool   `json:"isBankrupt"`
	Cash        int    `json:"money"`
	NetWorth    int    `json:"netWorth"`
	AvatarColor string `json:"avatarColor"`
}

// Rankings orders every participant by net worth, highest first, for the
// end-of-game display. Ties keep seat order.
func Rankings(gs GameState, rules *Rules) []Standing {
	standings := make([]Standing, len(gs.Players))
	for i, p := range gs.Players {
		standings[i] = Standing{
			PlayerID:    p.ID,
			Name:        p.Name,
			IsComputer:  p.IsComputer,
			IsBankrupt:  p.IsBankrupt,
			Cash:        p.Cash,
			NetWorth:    NetWorth(p, gs.Board, gs.Houses, rules),
			AvatarColor: p.AvatarColor,
		}
	}
	slices.SortStableFunc(standings, func(a, b Standing) int {
		return cmp.Compare(b.NetWorth, a.NetWorth)
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}
