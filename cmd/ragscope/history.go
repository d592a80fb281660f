package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/prathamdarmwal/ragscope/internal/store"
)

type historyOptions struct {
	limit int
}

func newHistoryCmd(st *cliState) *cobra.Command {
	var opts historyOptions

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show stored comparisons",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadState(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(cmd, st, &opts)
		},
	}

	cmd.Flags().IntVar(&opts.limit, "limit", 20, "max comparisons to list")

	cmd.AddCommand(newHistoryShowCmd(st))
	return cmd
}

func newHistoryShowCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the full results of a stored comparison",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(cmd, st, args[0])
		},
	}
}

func runHistoryList(cmd *cobra.Command, st *cliState, opts *historyOptions) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("history: missing config (internal error)")
	}
	if opts == nil {
		return fmt.Errorf("history: nil options")
	}

	stor, err := openStore(st.cfg)
	if err != nil {
		return err
	}
	defer stor.Close()

	list, err := stor.ListComparisons(cmd.Context(), opts.limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		_, _ = fmt.Fprintln(out, "No comparisons found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIMESTAMP\tSTRATEGIES\tQUERY")
	for _, c := range list {
		n := 0
		if c.Results != nil {
			n = c.Results.Len()
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", c.ID, c.Timestamp, n, truncate(c.Query, 60))
	}
	return tw.Flush()
}

func runHistoryShow(cmd *cobra.Command, st *cliState, rawID string) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("history: missing config (internal error)")
	}

	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		return fmt.Errorf("history: invalid id %q", rawID)
	}

	stor, err := openStore(st.cfg)
	if err != nil {
		return err
	}
	defer stor.Close()

	c, err := stor.GetComparison(cmd.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("history: comparison %d not found", id)
		}
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "ID: %d\n", c.ID)
	_, _ = fmt.Fprintf(out, "Query: %s\n", c.Query)
	_, _ = fmt.Fprintf(out, "Timestamp: %s\n", c.Timestamp)
	_, _ = fmt.Fprintf(out, "Saved: %s\n", c.CreatedAt.UTC().Format(time.RFC3339))

	if c.Results == nil {
		return nil
	}
	payload, err := json.MarshalIndent(c.Results, "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "\n%s\n", payload)
	return nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
