package cmd

import (
	"fmt"

	"monopoly/store"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List finished games, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, release, err := openKV(cmd.Context())
		if err != nil {
			return err
		}
		defer release()

		results, err := store.New(kv).History.List(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderHistory(results))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
