package gamemaster

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"monopoly/game"
	"monopoly/meta"
	"monopoly/player"
)

var ErrInvalidProfile = errors.New("invalid player profile")

const MaxNameLength = 20

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Profile is what the human chooses before a session starts.
type Profile struct {
	Name        string `json:"name"`
	AvatarColor string `json:"avatarColor"`
}

func ValidateName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n == 0 {
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	if n > MaxNameLength {
		return fmt.Errorf("%w: name must be %d characters or fewer", ErrInvalidProfile, MaxNameLength)
	}
	return nil
}

func ValidateColor(color string) error {
	if !colorPattern.MatchString(color) {
		return fmt.Errorf("%w: color %q is not of the form #RRGGBB", ErrInvalidProfile, color)
	}
	return nil
}

func (p Profile) Validate() error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	return ValidateColor(p.AvatarColor)
}

// NewParticipants seats the human first, then the computer opponents whose
// colors differ from the human's.
func NewParticipants(profile Profile, rules *game.Rules) []game.Participant {
	players := []game.Participant{
		game.NewParticipant(meta.HUMAN_ID, strings.TrimSpace(profile.Name), false, profile.AvatarColor, "", rules.StartingCash),
	}
	for i, b := range game.PickBots(meta.NUM_BOTS, profile.AvatarColor) {
		players = append(players, game.NewParticipant(
			fmt.Sprintf("bot-%d", i+1), b.Name, true, b.Color, player.ProfileForSeat(i).Name, rules.StartingCash,
		))
	}
	return players
}
