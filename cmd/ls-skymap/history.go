package main

import (
	"github.com/spf13/cobra"

	"github.com/litescript/ls-skymap/internal/ephem"
	"github.com/litescript/ls-skymap/internal/report"
	"github.com/litescript/ls-skymap/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history [planet]",
	Short: "List saved positions, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "Maximum records to list (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	var planet string
	if len(args) == 1 {
		body, err := ephem.Lookup(args[0])
		if err != nil {
			return err
		}
		planet = body.DisplayName
	}

	st, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	recs, err := st.History(cmd.Context(), planet, historyLimit)
	if err != nil {
		return err
	}
	report.WriteHistory(cmd.OutOrStdout(), recs)
	return nil
}
