package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prathamdarmwal/ragscope/internal/strategy"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the strategies a comparison runs, in dispatch order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, name := range strategy.DefaultNames() {
				_, _ = fmt.Fprintf(out, "%d. %s\n", i+1, name)
			}
			return nil
		},
	}
}
