package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/prathamdarmwal/ragscope/internal/harness"
)

type compareOptions struct {
	output string
	outDir string
	save   bool
}

func newCompareCmd(st *cliState) *cobra.Command {
	var opts compareOptions

	cmd := &cobra.Command{
		Use:   "compare <query>",
		Short: "Run every strategy against one query and print the results",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadState(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, st, &opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.output, "output", "text", "output format: text|json")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "directory to write the export file into")
	cmd.Flags().BoolVar(&opts.save, "save", false, "persist the comparison to history")

	return cmd
}

func runCompare(cmd *cobra.Command, st *cliState, opts *compareOptions, query string) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("compare: missing config (internal error)")
	}
	if opts == nil {
		return fmt.Errorf("compare: nil options")
	}

	output := strings.ToLower(strings.TrimSpace(opts.output))
	if output == "" {
		output = "text"
	}
	if output != "text" && output != "json" {
		return fmt.Errorf("compare: invalid --output %q (expected text or json)", opts.output)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if st.cfg.Compare.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, st.cfg.Compare.Timeout)
		defer cancel()
	}

	resources := newResources(st.cfg)
	reg, err := resources.Registry(ctx)
	if err != nil {
		return err
	}

	d := harness.NewDispatcher(st.cfg.Compare.Pause)
	rs, err := d.Dispatch(ctx, query, reg)
	if err != nil {
		return err
	}

	record := harness.BuildRecord(strings.TrimSpace(query), rs)
	payload, err := record.Encode()
	if err != nil {
		return err
	}

	if opts.save {
		stor, err := openStore(st.cfg)
		if err != nil {
			return err
		}
		defer stor.Close()
		if _, err := stor.SaveComparison(ctx, record); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()

	if dir := strings.TrimSpace(opts.outDir); dir != "" {
		path := filepath.Join(dir, harness.ExportFilename(time.Now()))
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			return fmt.Errorf("compare: write export: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Wrote %s\n", path)
		return nil
	}

	if output == "json" {
		_, _ = fmt.Fprintln(out, string(payload))
		return nil
	}

	_, _ = fmt.Fprintf(out, "Query: %s\n", record.Query)
	_, _ = fmt.Fprintf(out, "Timestamp: %s\n", record.Timestamp)
	for _, name := range rs.Names() {
		gen, _ := rs.Generation(name)
		_, _ = fmt.Fprintf(out, "\n=== %s ===\n%s\n", name, gen)
	}
	return nil
}
