package game

import "strings"

type BotIdentity struct {
	Name  string
	Color string
}

var botPool = []BotIdentity{
	{Name: "Captain Woof", Color: "#0000CD"},
	{Name: "Sir Barksalot", Color: "#228B22"},
	{Name: "Lady Fetchington", Color: "#FF8C00"},
	{Name: "Baron Von Paws", Color: "#8B008B"},
	{Name: "Duke Droolsworth", Color: "#008B8B"},
}

// AvatarColors are the colors offered to the human participant.
var AvatarColors = []string{"#DC143C", "#0000CD", "#228B22", "#FF8C00", "#8B008B", "#008B8B"}

// PickBots returns the first count identities whose color differs from excludeColor.
func PickBots(count int, excludeColor string) []BotIdentity {
	var picked []BotIdentity
	for _, b := range botPool {
		if len(picked) == count {
			break
		}
		if !strings.EqualFold(b.Color, excludeColor) {
			picked = append(picked, b)
		}
	}
	return picked
}
