package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/countdown/internal/errors"
	"github.com/manav03panchal/countdown/internal/runtime"
)

// setup points the database and config at a temporary directory.
func setup(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv(runtime.EnvDatabase, filepath.Join(dir, "db"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
}

// resetFlags restores every flag to its default between runs.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI in-process and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	ctx = nil

	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w

	rootCmd.SetArgs(args)
	runErr := rootCmd.Execute()
	if runErr != nil && ctx != nil {
		_ = ctx.Close()
	}

	os.Stdout = stdout
	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String(), runErr
}

func TestStatusJSON(t *testing.T) {
	setup(t)

	out, err := run(t, "status", "--format", "json", "--at", "+2h", "--persist=false")
	require.NoError(t, err)

	var frame map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &frame))
	assert.Equal(t, "counting", frame["phase"])
	assert.Equal(t, false, frame["finished"])
	values := frame["values"].(map[string]interface{})
	assert.Equal(t, float64(0), values["days"])
	assert.InDelta(t, 1, values["hours"], 1)
}

func TestStatusPlain(t *testing.T) {
	setup(t)

	out, err := run(t, "status", "--format", "plain", "--persist=false")
	require.NoError(t, err)
	assert.Contains(t, out, "counting")
}

func TestTargetPersistsAcrossRuns(t *testing.T) {
	setup(t)

	first, err := run(t, "target", "--format", "json")
	require.NoError(t, err)
	var a map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(first), &a))
	assert.Equal(t, "default", a["source"])
	assert.Equal(t, float64(76), a["total_days"])

	second, err := run(t, "target", "--format", "json")
	require.NoError(t, err)
	var b map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(second), &b))
	assert.Equal(t, "stored", b["source"])
	assert.Equal(t, a["target"], b["target"])
}

func TestTargetSetAndReset(t *testing.T) {
	setup(t)

	out, err := run(t, "target", "set", "2099-12-31T18:00:00Z", "--format", "json")
	require.NoError(t, err)
	var set map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	assert.Equal(t, "stored", set["source"])
	assert.Equal(t, "2099-12-31T18:00:00Z", set["target"])

	out, err = run(t, "target", "reset", "--format", "json")
	require.NoError(t, err)
	var reset map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &reset))
	assert.Equal(t, true, reset["existed"])

	out, err = run(t, "target", "reset", "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &reset))
	assert.Equal(t, false, reset["existed"])
}

func TestAtDoesNotOverwriteStoredTarget(t *testing.T) {
	setup(t)

	_, err := run(t, "target", "set", "2099-12-31T18:00:00Z")
	require.NoError(t, err)

	out, err := run(t, "status", "--format", "json", "--at", "+2h")
	require.NoError(t, err)
	var frame map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &frame))
	assert.Equal(t, "counting", frame["phase"])

	out, err = run(t, "target", "--format", "json", "--at", "+3h")
	require.NoError(t, err)
	var shown map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "override", shown["source"])

	out, err = run(t, "target", "--format", "json")
	require.NoError(t, err)
	var stored map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &stored))
	assert.Equal(t, "stored", stored["source"])
	assert.Equal(t, "2099-12-31T18:00:00Z", stored["target"])
}

func TestTargetSetRejectsBadInput(t *testing.T) {
	setup(t)

	_, err := run(t, "target", "set", "not-a-date")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidTarget)
	assert.True(t, errors.IsUserError(err))

	_, err = run(t, "target", "set", "2001-01-01T00:00:00Z")
	assert.ErrorIs(t, err, errors.ErrTargetInPast)
}

func TestTargetSetNeedsPersistence(t *testing.T) {
	setup(t)

	_, err := run(t, "target", "set", "+3d", "--persist=false")
	require.Error(t, err)
	assert.True(t, errors.IsUserError(err))
	assert.ErrorIs(t, err, errors.ErrNotPersistent)
}

func TestConfigJSON(t *testing.T) {
	setup(t)

	out, err := run(t, "config", "--format", "json", "--days", "30", "--live")
	require.NoError(t, err)

	var cfg map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, float64(30), cfg["days_until_target"])
	assert.Equal(t, true, cfg["enable_live_phase"])
	assert.Equal(t, "100ms", cfg["sample_interval"])
}

func TestConfigRejectsInvalidValues(t *testing.T) {
	setup(t)

	_, err := run(t, "config", "--days", "0")
	assert.ErrorIs(t, err, errors.ErrInvalidDays)

	_, err = run(t, "status", "--denominator", "sideways")
	assert.ErrorIs(t, err, errors.ErrInvalidDenominator)
}

func TestWatchRejectsUnknownUnits(t *testing.T) {
	setup(t)

	_, err := run(t, "watch", "--units", "fortnights", "--persist=false")
	assert.ErrorIs(t, err, errors.ErrInvalidUnit)
}

func TestInvalidFormat(t *testing.T) {
	setup(t)

	_, err := run(t, "status", "--format", "xml")
	require.Error(t, err)
	assert.True(t, errors.IsUserError(err))
}

func TestCompleteUnits(t *testing.T) {
	got, _ := completeUnits(watchCmd, nil, "")
	assert.Equal(t, []string{"days", "hours", "minutes", "seconds"}, got)

	got, _ = completeUnits(watchCmd, nil, "days,h")
	assert.Equal(t, []string{"days,hours"}, got)

	got, _ = completeUnits(watchCmd, nil, "days,hours,minutes,")
	assert.Equal(t, []string{"days,hours,minutes,seconds"}, got)
}

func TestCompleteFixed(t *testing.T) {
	got, _ := completeFixed("cli", "json", "plain")(rootCmd, nil, "j")
	assert.Equal(t, []string{"json"}, got)
}
