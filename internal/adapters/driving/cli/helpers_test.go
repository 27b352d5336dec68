package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ambrosestarlit/layerex/internal/core/ports/driving"
	"github.com/ambrosestarlit/layerex/internal/testenv"
)

// testEnv is the state set up by setupTestServices.
type testEnv struct {
	dir      string
	outDir   string
	settings driving.SettingsService
	fixture  *testenv.Env
}

// document writes a file for testenv.Decoder into the test directory.
// Any content other than testenv.BrokenContent decodes to the fixture tree.
func (e *testEnv) document(t *testing.T, name, content string) string {
	t.Helper()
	return e.fixture.WriteFile(t, name, content)
}

// setupTestServices installs services backed by memory stores and a
// temporary output directory. Flags are reset before and after the test.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	fixture := testenv.New(t)
	env := &testEnv{
		dir:      fixture.Dir,
		outDir:   fixture.OutDir,
		settings: fixture.Settings,
		fixture:  fixture,
	}

	resetFlags(rootCmd)
	SetServices(Services{
		Session:    fixture.Session,
		Settings:   fixture.Settings,
		History:    fixture.History,
		NewSession: fixture.NewSession,
	})

	t.Cleanup(func() {
		resetFlags(rootCmd)
		SetServices(Services{})
	})
	return env
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// execute runs the root command with args and returns its output.
// Flags start from their defaults on every run, as in a fresh process.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	buf := new(strings.Builder)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
