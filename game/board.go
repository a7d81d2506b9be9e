package game

// SpaceKind tags what happens when a participant lands on a space.
type SpaceKind string

const (
	StartSpace          SpaceKind = "go"
	PropertySpace       SpaceKind = "property"
	ChanceSpace         SpaceKind = "chance"
	CommunityChestSpace SpaceKind = "community-chest"
	JailSpace           SpaceKind = "jail"
	GoToJailSpace       SpaceKind = "go-to-jail"
	FreeParkingSpace    SpaceKind = "free-parking"
)

// ColorGroup is a set of properties sharing a monopoly.
type ColorGroup string

const (
	NoGroup   ColorGroup = ""
	Brown     ColorGroup = "brown"
	LightBlue ColorGroup = "lightblue"
	Pink      ColorGroup = "pink"
	Orange    ColorGroup = "orange"
	Green     ColorGroup = "green"
	Yellow    ColorGroup = "yellow"
	Blue      ColorGroup = "blue"
)

var groupColors = map[ColorGroup]string{
	Brown:     "#8B4513",
	LightBlue: "#87CEEB",
	Pink:      "#FF69B4",
	Orange:    "#FF8C00",
	Green:     "#228B22",
	Yellow:    "#FFD700",
	Blue:      "#0000CD",
}

// Color returns the display color of the group, or "" for spaces without one.
func (g ColorGroup) Color() string {
	return groupColors[g]
}

// Side of the square board a space sits on.
type Side string

const (
	Bottom Side = "bottom"
	Left   Side = "left"
	Top    Side = "top"
	Right  Side = "right"
)

type Space struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Kind      SpaceKind  `json:"type"`
	Group     ColorGroup `json:"group,omitempty"`
	Price     int        `json:"price,omitempty"`
	BaseRent  int        `json:"baseRent,omitempty"`
	Side      Side       `json:"side"`
	SideIndex int        `json:"sideIndex"`
}

// IsProperty reports whether the space can be owned.
func (s Space) IsProperty() bool {
	return s.Kind == PropertySpace
}

// Board is the static, read-only catalog of spaces. It is built once and shared
// by every snapshot; nothing in the engine writes to it.
type Board struct {
	Spaces []Space      `json:"spaces"`
	groups map[ColorGroup][]int
	jail   int
}

// NewBoard indexes the given spaces. Space ids must equal their position in the slice.
func NewBoard(spaces []Space) *Board {
	b := &Board{
		Spaces: spaces,
		groups: make(map[ColorGroup][]int),
		jail:   -1,
	}
	for _, s := range spaces {
		if s.IsProperty() {
			b.groups[s.Group] = append(b.groups[s.Group], s.ID)
		}
		if s.Kind == JailSpace && b.jail < 0 {
			b.jail = s.ID
		}
	}
	return b
}

var standardBoard = NewBoard([]Space{
	{ID: 0, Name: "GO", Kind: StartSpace, Side: Bottom, SideIndex: 0},
	{ID: 1, Name: "Mediterranean Ave", Kind: PropertySpace, Group: Brown, Price: 60, BaseRent: 4, Side: Bottom, SideIndex: 1},
	{ID: 2, Name: "Community Chest", Kind: CommunityChestSpace, Side: Bottom, SideIndex: 2},
	{ID: 3, Name: "Baltic Ave", Kind: PropertySpace, Group: Brown, Price: 60, BaseRent: 8, Side: Bottom, SideIndex: 3},
	{ID: 4, Name: "Oriental Ave", Kind: PropertySpace, Group: LightBlue, Price: 100, BaseRent: 12, Side: Bottom, SideIndex: 4},
	{ID: 5, Name: "Chance", Kind: ChanceSpace, Side: Bottom, SideIndex: 5},
	{ID: 6, Name: "Jail", Kind: JailSpace, Side: Left, SideIndex: 0},
	{ID: 7, Name: "Vermont Ave", Kind: PropertySpace, Group: LightBlue, Price: 100, BaseRent: 14, Side: Left, SideIndex: 1},
	{ID: 8, Name: "Connecticut Ave", Kind: PropertySpace, Group: Pink, Price: 140, BaseRent: 18, Side: Left, SideIndex: 2},
	{ID: 9, Name: "Community Chest", Kind: CommunityChestSpace, Side: Left, SideIndex: 3},
	{ID: 10, Name: "St. James Place", Kind: PropertySpace, Group: Pink, Price: 140, BaseRent: 20, Side: Left, SideIndex: 4},
	{ID: 11, Name: "Chance", Kind: ChanceSpace, Side: Left, SideIndex: 5},
	{ID: 12, Name: "Free Parking", Kind: FreeParkingSpace, Side: Top, SideIndex: 0},
	{ID: 13, Name: "Tennessee Ave", Kind: PropertySpace, Group: Orange, Price: 180, BaseRent: 26, Side: Top, SideIndex: 1},
	{ID: 14, Name: "Indiana Ave", Kind: PropertySpace, Group: Orange, Price: 180, BaseRent: 28, Side: Top, SideIndex: 2},
	{ID: 15, Name: "Community Chest", Kind: CommunityChestSpace, Side: Top, SideIndex: 3},
	{ID: 16, Name: "Pacific Ave", Kind: PropertySpace, Group: Green, Price: 240, BaseRent: 36, Side: Top, SideIndex: 4},
	{ID: 17, Name: "Chance", Kind: ChanceSpace, Side: Top, SideIndex: 5},
	{ID: 18, Name: "Go To Jail", Kind: GoToJailSpace, Side: Right, SideIndex: 0},
	{ID: 19, Name: "North Carolina Ave", Kind: PropertySpace, Group: Green, Price: 240, BaseRent: 40, Side: Right, SideIndex: 1},
	{ID: 20, Name: "Marvin Gardens", Kind: PropertySpace, Group: Yellow, Price: 280, BaseRent: 44, Side: Right, SideIndex: 2},
	{ID: 21, Name: "Community Chest", Kind: CommunityChestSpace, Side: Right, SideIndex: 3},
	{ID: 22, Name: "Ventnor Ave", Kind: PropertySpace, Group: Yellow, Price: 280, BaseRent: 48, Side: Right, SideIndex: 4},
	{ID: 23, Name: "Boardwalk", Kind: PropertySpace, Group: Blue, Price: 350, BaseRent: 50, Side: Right, SideIndex: 5},
})

// StandardBoard returns the shared 24-space catalog.
func StandardBoard() *Board {
	return standardBoard
}

func (b *Board) Size() int {
	return len(b.Spaces)
}

// Space returns the space with the given id.
func (b *Board) Space(id int) (Space, bool) {
	if id < 0 || id >= len(b.Spaces) {
		return Space{}, false
	}
	return b.Spaces[id], true
}

// JailPosition is the id of the jail space, -1 if the board has none.
func (b *Board) JailPosition() int {
	return b.jail
}

// GroupPropertyIDs lists the property ids of a color group in board order.
func (b *Board) GroupPropertyIDs(group ColorGroup) []int {
	return b.groups[group]
}

// Properties lists every ownable space in board order.
func (b *Board) Properties() []Space {
	var props []Space
	for _, s := range b.Spaces {
		if s.IsProperty() {
			props = append(props, s)
		}
	}
	return props
}
