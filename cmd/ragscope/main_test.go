package main

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/prathamdarmwal/ragscope/internal/cache"
	"github.com/prathamdarmwal/ragscope/internal/config"
	"github.com/prathamdarmwal/ragscope/internal/dataset"
	"github.com/prathamdarmwal/ragscope/internal/harness"
	"github.com/prathamdarmwal/ragscope/internal/store"
	"github.com/prathamdarmwal/ragscope/internal/strategy"
)

type stubStrategy struct {
	name  string
	calls int
	err   error
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Run(context.Context, string) (*strategy.Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &strategy.Result{Generation: s.name + "-answer"}, nil
}

type fakeStore struct {
	saved       []*harness.ExportRecord
	comparisons []*store.Comparison
	closeCalled int
}

func (f *fakeStore) SaveComparison(_ context.Context, record *harness.ExportRecord) (int64, error) {
	f.saved = append(f.saved, record)
	return int64(len(f.saved)), nil
}

func (f *fakeStore) GetComparison(_ context.Context, id int64) (*store.Comparison, error) {
	for _, c := range f.comparisons {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) ListComparisons(_ context.Context, limit int) ([]*store.Comparison, error) {
	if limit <= 0 || limit > len(f.comparisons) {
		limit = len(f.comparisons)
	}
	return f.comparisons[:limit], nil
}

func (f *fakeStore) Close() error {
	f.closeCalled++
	return nil
}

func saveCLIGlobals(t *testing.T) func() {
	t.Helper()

	oldOsExit := osExit
	oldStderrWriter := stderrWriter
	oldLoadConfig := loadConfig
	oldDefaultConfig := defaultConfig
	oldNewResources := newResources
	oldOpenStore := openStore

	return func() {
		osExit = oldOsExit
		stderrWriter = oldStderrWriter
		loadConfig = oldLoadConfig
		defaultConfig = oldDefaultConfig
		newResources = oldNewResources
		openStore = oldOpenStore
	}
}

// stubCLI points every injectable dependency at in-memory fakes so commands
// run without network or disk.
func stubCLI(t *testing.T, st *fakeStore, stubs ...*stubStrategy) {
	t.Helper()
	restore := saveCLIGlobals(t)
	t.Cleanup(restore)

	loadConfig = func(string) (*config.Config, error) {
		return &config.Config{}, nil
	}
	newResources = func(*config.Config) *cache.Resources {
		return cache.NewWithBuilders(
			func(context.Context) (*dataset.Dataset, error) {
				return dataset.New([]dataset.Row{
					{Question: "What is gradient descent?"},
					{Question: "What is overfitting?"},
				}), nil
			},
			func(context.Context) (*strategy.Registry, error) {
				reg := strategy.NewRegistry()
				for _, s := range stubs {
					reg.Register(s)
				}
				return reg, nil
			},
		)
	}
	openStore = func(*config.Config) (store.Store, error) {
		return st, nil
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCmd_Wiring(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	want := map[string]bool{"compare": false, "sample": false, "list": false, "history": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("missing subcommand %q", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Fatalf("missing --config flag")
	}
}

func TestMain_ErrorExitsNonZero(t *testing.T) {
	restore := saveCLIGlobals(t)
	t.Cleanup(restore)

	stderrBuf := &bytes.Buffer{}
	stderrWriter = stderrBuf

	exitCode := -1
	osExit = func(code int) { exitCode = code }

	oldArgs := osArgs(t)
	setOsArgs(t, []string{"ragscope", "no-such-command"})
	t.Cleanup(func() { setOsArgs(t, oldArgs) })

	main()

	if exitCode != 1 {
		t.Fatalf("exit: got %d want %d", exitCode, 1)
	}
	if stderrBuf.Len() == 0 {
		t.Fatalf("expected error output")
	}
}

func osArgs(t *testing.T) []string {
	t.Helper()
	return append([]string(nil), os.Args...)
}

func setOsArgs(t *testing.T, args []string) {
	t.Helper()
	os.Args = args
}
