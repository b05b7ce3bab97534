package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-skymap/internal/ephem"
)

var bodiesCmd = &cobra.Command{
	Use:   "bodies",
	Short: "List the supported bodies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, name := range ephem.ListSupported() {
			fmt.Fprintln(out, name)
		}
		fmt.Fprintf(out, "\nReserved, not yet served: %s\n", strings.Join(ephem.Reserved, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bodiesCmd)
}
