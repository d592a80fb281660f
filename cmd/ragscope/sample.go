package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSampleCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Print a random question from the QA dataset",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadState(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(cmd, st)
		},
	}
}

func runSample(cmd *cobra.Command, st *cliState) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("sample: missing config (internal error)")
	}

	resources := newResources(st.cfg)
	ds, err := resources.Dataset(cmd.Context())
	if err != nil {
		return err
	}

	question, idx, err := ds.Sample()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] %s\n", idx+1, ds.Len(), question)
	return nil
}
