package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"monopoly/game"
	"monopoly/gamemaster"

	"github.com/spf13/cobra"
)

const helpText = `commands:
  r, roll          roll the dice
  b, buy           buy the offered property
  d, decline       decline the offered property
  p, pay           pay the jail fee
  build <id>       build a house on a property of a complete color group
  s, standings     show net worth standings
  history          show finished games
  n, new           start a new game
  q, quit          leave (the game is saved)`

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Plays a game in the terminal against two computer opponents. A saved
session is resumed unless --new is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		color, _ := cmd.Flags().GetString("color")
		fresh, _ := cmd.Flags().GetBool("new")

		master, release, err := newMaster(cmd.Context())
		if err != nil {
			return err
		}
		defer release()

		s := &terminal{
			master: master,
			in:     bufio.NewScanner(cmd.InOrStdin()),
			out:    cmd.OutOrStdout(),
		}
		return s.run(cmd.Context(), gamemaster.Profile{Name: name, AvatarColor: color}, fresh)
	},
}

func init() {
	playCmd.Flags().String("name", "", "your display name (asked for when empty)")
	playCmd.Flags().String("color", game.AvatarColors[0], "your avatar color, one of "+strings.Join(game.AvatarColors, " "))
	playCmd.Flags().Bool("new", false, "start a new game instead of resuming")
	rootCmd.AddCommand(playCmd)
}

type terminal struct {
	master *gamemaster.Master
	in     *bufio.Scanner
	out    io.Writer
	mu     sync.Mutex
}

func (t *terminal) println(a ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, a...)
}

func (t *terminal) run(ctx context.Context, profile gamemaster.Profile, fresh bool) error {
	updates, unsubscribe := t.master.Subscribe()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for gs := range updates {
			t.println(renderState(gs, t.master.Board(), t.master.Rules()))
		}
	}()
	defer wg.Wait()
	defer unsubscribe()

	resumed := false
	if !fresh {
		_, resumed = t.master.Resume(ctx)
	}
	if !resumed {
		if err := t.start(ctx, &profile); err != nil {
			return err
		}
	}

	for t.in.Scan() {
		if err := t.handle(ctx, &profile, strings.Fields(t.in.Text())); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			t.println(err)
		}
	}
	return t.in.Err()
}

func (t *terminal) start(ctx context.Context, profile *gamemaster.Profile) error {
	for strings.TrimSpace(profile.Name) == "" {
		t.println("Your name:")
		if !t.in.Scan() {
			return io.ErrUnexpectedEOF
		}
		profile.Name = t.in.Text()
	}
	_, err := t.master.Start(ctx, *profile)
	return err
}

// handle runs one command line. io.EOF asks the caller to stop.
func (t *terminal) handle(ctx context.Context, profile *gamemaster.Profile, fields []string) error {
	if len(fields) == 0 {
		return nil
	}

	var err error
	switch strings.ToLower(fields[0]) {
	case "r", "roll":
		_, err = t.master.Roll(ctx)
	case "b", "buy":
		_, err = t.master.Buy(ctx)
	case "d", "decline":
		_, err = t.master.Decline(ctx)
	case "p", "pay":
		_, err = t.master.PayJailFee(ctx)
	case "build":
		if len(fields) != 2 {
			return errors.New("usage: build <space id>")
		}
		id, convErr := strconv.Atoi(fields[1])
		if convErr != nil {
			return fmt.Errorf("space id must be a number: %q", fields[1])
		}
		_, err = t.master.Build(ctx, id)
	case "s", "standings":
		standings, standingsErr := t.master.Standings()
		if standingsErr != nil {
			return standingsErr
		}
		t.println(renderStandings(standings))
	case "history":
		results, historyErr := t.master.History(ctx)
		if historyErr != nil {
			return historyErr
		}
		t.println(renderHistory(results))
	case "n", "new":
		err = t.start(ctx, profile)
	case "h", "help", "?":
		t.println(helpText)
	case "q", "quit", "exit":
		return io.EOF
	default:
		return fmt.Errorf("unknown command %q, try help", fields[0])
	}
	return err
}
