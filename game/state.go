package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"maps"
	"slices"

	"monopoly/utils"
)

type Phase string

const (
	PhaseRoll        Phase = "roll"
	PhaseBuyDecision Phase = "buy-decision"
	PhaseGameOver    Phase = "game-over"
)

func (p Phase) Valid() bool {
	switch p {
	case PhaseRoll, PhaseBuyDecision, PhaseGameOver:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

type WinReason string

const (
	ReasonBankruptcy WinReason = "bankruptcy"
	ReasonTurnLimit  WinReason = "turn-limit"
)

const BuyPropertyAction = "buy-property"

// PendingAction pauses the turn until the active participant decides.
type PendingAction struct {
	Type    string `json:"type"`
	SpaceID int    `json:"spaceId"`
}

type LogEntry struct {
	Message string `json:"message"`
	Turn    int    `json:"turn"`
}

type Participant struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	IsComputer      bool   `json:"isBot"`
	AvatarColor     string `json:"avatarColor"`
	Profile         string `json:"personality,omitempty"`
	Cash            int    `json:"money"`
	Position        int    `json:"position"`
	OwnedProperties []int  `json:"ownedProperties"`
	IsBankrupt      bool   `json:"isBankrupt"`
	InJail          bool   `json:"isInJail"`
	JailTurns       int    `json:"jailTurns"`
}

func NewParticipant(id, name string, isComputer bool, color, profile string, cash int) Participant {
	return Participant{
		ID:              id,
		Name:            name,
		IsComputer:      isComputer,
		AvatarColor:     color,
		Profile:         profile,
		Cash:            cash,
		OwnedProperties: []int{},
	}
}

// GameState is an immutable snapshot. Methods never modify the receiver; the
// With* helpers return a new snapshot that shares untouched slices and maps.
type GameState struct {
	ID                 string         `json:"id"`
	Players            []Participant  `json:"players"`
	Board              *Board         `json:"-"`
	Ownership          map[int]string `json:"propertyOwnership"`
	Houses             map[int]int    `json:"houseCount"`
	CurrentPlayerIndex int            `json:"currentPlayerIndex"`
	Phase              Phase          `json:"turnPhase"`
	TurnNumber         int            `json:"turnNumber"`
	Status             Status         `json:"gameStatus"`
	WinnerID           string         `json:"winnerId,omitempty"`
	WinReason          WinReason      `json:"winReason,omitempty"`
	Log                []LogEntry     `json:"log"`
	LastRoll           *DiceRoll      `json:"lastDiceRoll,omitempty"`
	ChanceDeck         Deck           `json:"chanceDeck"`
	CommunityChestDeck Deck           `json:"communityChestDeck"`
	Pending            *PendingAction `json:"pendingAction,omitempty"`
}

type StateHash uint64

func NewGameState(id string, board *Board, players []Participant, chance, communityChest Deck) GameState {
	return GameState{
		ID:                 id,
		Players:            slices.Clone(players),
		Board:              board,
		Ownership:          map[int]string{},
		Houses:             map[int]int{},
		Phase:              PhaseRoll,
		TurnNumber:         1,
		Status:             StatusActive,
		Log:                []LogEntry{},
		ChanceDeck:         chance,
		CommunityChestDeck: communityChest,
	}
}

// Current returns the participant whose turn it is.
func (gs GameState) Current() Participant {
	return gs.Players[gs.CurrentPlayerIndex]
}

func (gs GameState) PlayerIndex(id string) int {
	return utils.FindIndexFunc(gs.Players, func(p Participant) bool { return p.ID == id })
}

func (gs GameState) Player(id string) (Participant, bool) {
	i := gs.PlayerIndex(id)
	if i < 0 {
		return Participant{}, false
	}
	return gs.Players[i], true
}

// Owner returns the owning participant id of a space, "" if unowned.
func (gs GameState) Owner(spaceID int) string {
	return gs.Ownership[spaceID]
}

func (gs GameState) IsActive() bool {
	return gs.Status == StatusActive
}

// WithPlayer returns a snapshot where the participant with the given id was
// replaced by the result of update. update receives a private copy.
func (gs GameState) WithPlayer(id string, update func(p *Participant)) GameState {
	next := gs
	next.Players = slices.Clone(gs.Players)
	for i := range next.Players {
		if next.Players[i].ID == id {
			update(&next.Players[i])
		}
	}
	return next
}

// WithReplacedPlayer swaps in a whole participant record by id.
func (gs GameState) WithReplacedPlayer(p Participant) GameState {
	return gs.WithPlayer(p.ID, func(old *Participant) { *old = p })
}

func (gs GameState) WithOwnership(ownership map[int]string) GameState {
	next := gs
	next.Ownership = ownership
	return next
}

func (gs GameState) WithHouses(houses map[int]int) GameState {
	next := gs
	next.Houses = houses
	return next
}

// Logf appends a message tagged with the current turn, dropping the oldest
// entries beyond MaxLogEntries.
func (gs GameState) Logf(format string, args ...any) GameState {
	entry := LogEntry{Message: fmt.Sprintf(format, args...), Turn: gs.TurnNumber}
	log := append(slices.Clip(gs.Log), entry)
	if len(log) > MaxLogEntries {
		log = slices.Clone(log[len(log)-MaxLogEntries:])
	}
	next := gs
	next.Log = log
	return next
}

// Copy returns a snapshot that shares no slices or maps with the receiver.
func (gs GameState) Copy() GameState {
	next := gs
	next.Players = make([]Participant, len(gs.Players))
	for i, p := range gs.Players {
		p.OwnedProperties = slices.Clone(p.OwnedProperties)
		next.Players[i] = p
	}
	next.Ownership = maps.Clone(gs.Ownership)
	next.Houses = maps.Clone(gs.Houses)
	next.Log = slices.Clone(gs.Log)
	if gs.LastRoll != nil {
		roll := *gs.LastRoll
		next.LastRoll = &roll
	}
	if gs.Pending != nil {
		pending := *gs.Pending
		next.Pending = &pending
	}
	return next
}

// Hash fingerprints the parts of the snapshot that change between transitions.
func (gs GameState) Hash() StateHash {
	hasher := fnv.New64a()
	hasher.Write([]byte(gs.ID))
	hasher.Write([]byte(gs.Phase))
	hasher.Write([]byte(gs.Status))
	binary.Write(hasher, binary.LittleEndian, int64(gs.CurrentPlayerIndex))
	binary.Write(hasher, binary.LittleEndian, int64(gs.TurnNumber))
	binary.Write(hasher, binary.LittleEndian, int64(len(gs.Log)))

	for _, p := range gs.Players {
		hasher.Write([]byte(p.ID))
		binary.Write(hasher, binary.LittleEndian, int64(p.Cash))
		binary.Write(hasher, binary.LittleEndian, int64(p.Position))
		binary.Write(hasher, binary.LittleEndian, int64(p.JailTurns))
		binary.Write(hasher, binary.LittleEndian, p.InJail)
		binary.Write(hasher, binary.LittleEndian, p.IsBankrupt)
	}

	// Map iteration order is random, so walk the ids in order.
	for _, id := range slices.Sorted(maps.Keys(gs.Ownership)) {
		binary.Write(hasher, binary.LittleEndian, int64(id))
		hasher.Write([]byte(gs.Ownership[id]))
	}
	for _, id := range slices.Sorted(maps.Keys(gs.Houses)) {
		binary.Write(hasher, binary.LittleEndian, int64(id))
		binary.Write(hasher, binary.LittleEndian, int64(gs.Houses[id]))
	}
	if len(gs.Log) > 0 {
		hasher.Write([]byte(gs.Log[len(gs.Log)-1].Message))
	}

	return StateHash(hasher.Sum64())
}
