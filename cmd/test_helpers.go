package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/josephgoksu/taskman/internal/config"
	"github.com/josephgoksu/taskman/store"
)

const testDataFile = "/data/tasks.json"

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

// SetupTestStore points every command at an in-memory filesystem holding
// the task file at testDataFile, with a fixed clock. Global state is
// restored when the test ends.
func SetupTestStore(t *testing.T) afero.Fs {
	t.Helper()

	prevFs, prevOpts, prevNow, prevDir := appFs, storeOptions, now, config.GetGlobalConfigDir
	t.Cleanup(func() {
		appFs, storeOptions, now, config.GetGlobalConfigDir = prevFs, prevOpts, prevNow, prevDir
		viper.Reset()
		resetFlags(rootCmd)
	})

	fs := afero.NewMemMapFs()
	appFs = fs
	storeOptions = []store.Option{store.WithClock(func() time.Time { return testNow })}
	now = func() time.Time { return testNow }

	cfgDir := t.TempDir()
	config.GetGlobalConfigDir = func() (string, error) { return cfgDir, nil }

	t.Setenv("TASKMAN_DATA_FILE", testDataFile)
	t.Setenv("TASK_DATA_FILE", "")
	return fs
}

// runCmd executes rootCmd with args and returns everything written to stdout and stderr.
func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return runCmdContext(t, context.Background(), stdin, args...)
}

func runCmdContext(t *testing.T, ctx context.Context, stdin string, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	resetFlags(rootCmd)
	rootCmd.SetContext(ctx)
	for _, c := range rootCmd.Commands() {
		c.SetContext(ctx)
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

// resetFlags restores every flag to its default so that values do not leak between runs.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// addTestTask adds a task through the CLI and returns its ID.
func addTestTask(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCmd(t, "", append([]string{"add", "-q"}, args...)...)
	if err != nil {
		t.Fatalf("add %v: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(out)
}
