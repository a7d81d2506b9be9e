package cmd

import (
	"fmt"
	"strings"

	"monopoly/game"
	"monopoly/store"

	"github.com/charmbracelet/lipgloss"
)

const shownLogEntries = 6

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	playersBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1)

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F25D94"))
)

func playerName(p game.Participant) string {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.AvatarColor)).Render(p.Name)
}

func renderState(gs game.GameState, board *game.Board, rules *game.Rules) string {
	title := titleStyle.Render(fmt.Sprintf("Turn %d/%d", gs.TurnNumber, rules.TurnLimit))
	if gs.LastRoll != nil {
		title += " " + infoStyle.Render(fmt.Sprintf("last roll %d + %d", gs.LastRoll.Die1, gs.LastRoll.Die2))
	}

	rows := make([]string, 0, len(gs.Players))
	for i, p := range gs.Players {
		marker := "  "
		if i == gs.CurrentPlayerIndex && gs.IsActive() {
			marker = "> "
		}
		space, _ := board.Space(p.Position)
		row := fmt.Sprintf("%s%s $%d on %s, %d properties", marker, playerName(p), p.Cash, space.Name, len(p.OwnedProperties))
		switch {
		case p.IsBankrupt:
			row += infoStyle.Render(" (bankrupt)")
		case p.InJail:
			row += infoStyle.Render(fmt.Sprintf(" (in jail, %d failed)", p.JailTurns))
		}
		rows = append(rows, row)
	}

	start := max(0, len(gs.Log)-shownLogEntries)
	entries := make([]string, 0, shownLogEntries)
	for _, entry := range gs.Log[start:] {
		entries = append(entries, fmt.Sprintf("[%d] %s", entry.Turn, entry.Message))
	}

	parts := []string{title, playersBoxStyle.Render(strings.Join(rows, "\n"))}
	if len(entries) > 0 {
		parts = append(parts, logBoxStyle.Render(strings.Join(entries, "\n")))
	}
	if prompt := renderPrompt(gs, board); prompt != "" {
		parts = append(parts, promptStyle.Render(prompt))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderPrompt(gs game.GameState, board *game.Board) string {
	if !gs.IsActive() {
		if winner, ok := gs.Player(gs.WinnerID); ok {
			return fmt.Sprintf("Game over: %s wins by %s. [n]ew game, [s]tandings or [q]uit", winner.Name, gs.WinReason)
		}
		return "Game over. [n]ew game or [q]uit"
	}
	current := gs.Current()
	if current.IsComputer {
		return ""
	}
	if gs.Phase == game.PhaseBuyDecision && gs.Pending != nil {
		space, _ := board.Space(gs.Pending.SpaceID)
		return fmt.Sprintf("Buy %s for $%d? [b]uy or [d]ecline", space.Name, space.Price)
	}
	if current.InJail {
		return "You are in jail: [r]oll for doubles or [p]ay the fee"
	}
	return "Your turn: [r]oll, build <space id>, [s]tandings, [h]elp"
}

func renderStandings(standings []game.Standing) string {
	rows := make([]string, 0, len(standings))
	for _, s := range standings {
		row := fmt.Sprintf("%d. %s  net worth $%d, cash $%d", s.Rank, playerName(game.Participant{Name: s.Name, AvatarColor: s.AvatarColor}), s.NetWorth, s.Cash)
		if s.IsBankrupt {
			row += infoStyle.Render(" (bankrupt)")
		}
		rows = append(rows, row)
	}
	return playersBoxStyle.Render(strings.Join(rows, "\n"))
}

func renderHistory(results []store.Result) string {
	if len(results) == 0 {
		return infoStyle.Render("No finished games yet.")
	}
	rows := make([]string, 0, len(results))
	for _, r := range results {
		who := "computer"
		if r.WinnerIsHuman {
			who = "you"
		}
		rows = append(rows, fmt.Sprintf("%s  %s (%s) won by %s on turn %d",
			r.Timestamp.Local().Format("2006-01-02 15:04"), r.WinnerName, who, r.Reason, r.FinalTurn))
	}
	return logBoxStyle.Render(strings.Join(rows, "\n"))
}
