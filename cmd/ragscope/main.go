package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/prathamdarmwal/ragscope/internal/config"
)

type cliState struct {
	configPath string
	cfg        *config.Config
}

var (
	osExit                 = os.Exit
	stderrWriter io.Writer = os.Stderr
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderrWriter, err)
		osExit(1)
	}
}

func newRootCmd() *cobra.Command {
	st := &cliState{configPath: config.DefaultPath}

	root := &cobra.Command{
		Use:           "ragscope",
		Short:         "Compare retrieval-augmented generation strategies side by side",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&st.configPath, "config", st.configPath, "path to config file")

	root.AddCommand(newCompareCmd(st))
	root.AddCommand(newSampleCmd(st))
	root.AddCommand(newListCmd())
	root.AddCommand(newHistoryCmd(st))
	return root
}

// loadState resolves the config once per invocation. A missing file at the
// default path falls back to built-in defaults so the CLI works without a
// configs/ directory; an explicitly passed path must exist.
func loadState(st *cliState) error {
	if st == nil {
		return errors.New("ragscope: nil cli state")
	}

	cfg, err := loadConfig(st.configPath)
	if err != nil {
		if st.configPath == config.DefaultPath && errors.Is(err, fs.ErrNotExist) {
			st.cfg = defaultConfig()
			return nil
		}
		return err
	}
	st.cfg = cfg
	return nil
}
