package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"monopoly/experiments"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play computer-only games and compare the profiles",
	Long: `Plays seeded games between three computer participants, rotating the
aggressive and balanced profiles across seats, and writes game_records.csv
and profile_summary.csv.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		games, _ := cmd.Flags().GetInt("games")
		workers, _ := cmd.Flags().GetInt("workers")
		seed, _ := cmd.Flags().GetUint64("seed")
		out, _ := cmd.Flags().GetString("out")

		rules, err := loadRules()
		if err != nil {
			return err
		}
		if out == "" {
			out = filepath.Join("experiments", "profiles", time.Now().UTC().Format("20060102T150405Z"))
		}

		bar := progressbar.Default(int64(games), "Simulating")
		result, err := experiments.RunProfileExperiment(cmd.Context(), experiments.Config{
			Games:      games,
			Workers:    workers,
			Seed:       seed,
			Rules:      rules,
			BaseDir:    out,
			OnGameDone: func() { bar.Add(1) },
		})
		bar.Finish()
		if err != nil {
			return err
		}

		for _, s := range result.Summaries {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %4d seats %4d wins  %5.1f%%\n", s.Profile, s.Seats, s.Wins, s.WinRate*100)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "records written to %s\n", out)
		return nil
	},
}

func init() {
	simulateCmd.Flags().Int("games", experiments.DefaultGames, "number of games")
	simulateCmd.Flags().Int("workers", 0, "parallel games (defaults to the number of CPUs)")
	simulateCmd.Flags().Uint64("seed", 1, "seed of the first game")
	simulateCmd.Flags().String("out", "", "output directory (defaults to a timestamped directory under experiments/profiles)")
	rootCmd.AddCommand(simulateCmd)
}
