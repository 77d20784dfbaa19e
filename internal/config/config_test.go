package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/manav03panchal/countdown/internal/errors"
	"github.com/manav03panchal/countdown/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("days", 76, "")
	fs.Duration("interval", 500*time.Millisecond, "")
	fs.Bool("persist", true, "")
	fs.Bool("live", false, "")
	fs.Bool("waiting", false, "")
	fs.String("denominator", "fixed", "")
	return fs
}

// isolate points the default config path at an empty directory.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 76, cfg.DaysUntilTarget)
	assert.Equal(t, 500*time.Millisecond, cfg.SampleInterval)
	assert.True(t, cfg.PersistTarget)
	assert.False(t, cfg.EnableLivePhase)
	assert.False(t, cfg.EnableWaitingPhase)
	assert.Equal(t, "fixed", cfg.Denominator)
	assert.Equal(t, model.KeyTarget, cfg.StorageKey)
	assert.Equal(t, 1100*time.Millisecond, cfg.Burst.FadeAfter)
	assert.Equal(t, 2300*time.Millisecond, cfg.Burst.ClearAfter)
	assert.Len(t, cfg.Rings.Radius, model.NumUnits)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, 76, cfg.DaysUntilTarget)
	assert.Equal(t, 500*time.Millisecond, cfg.SampleInterval)
	assert.Empty(t, cfg.File)
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
days_until_target: 30
sample_interval: 250ms
persist_target: false
denominator: dynamic
storage_key: launch
burst:
  fade_after: 2s
  clear_after: 3s
rings:
  radius:
    days: 6
`)

	cfg, err := Load(Options{Path: path})
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.DaysUntilTarget)
	assert.Equal(t, 250*time.Millisecond, cfg.SampleInterval)
	assert.False(t, cfg.PersistTarget)
	assert.Equal(t, "dynamic", cfg.Denominator)
	assert.Equal(t, "launch", cfg.StorageKey)
	assert.Equal(t, 2*time.Second, cfg.Burst.FadeAfter)
	assert.Equal(t, 3*time.Second, cfg.Burst.ClearAfter)
	assert.Equal(t, path, cfg.File)

	radii, err := cfg.RingRadii()
	require.NoError(t, err)
	assert.Equal(t, 6.0, radii[model.UnitDays])
	assert.Equal(t, DefaultRingRadius, radii[model.UnitSeconds])
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(Options{Path: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	assert.True(t, errors.IsSystemError(err))
}

func TestLoadPrecedence(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "days_until_target: 30\nsample_interval: 250ms\n")

	t.Run("env_over_file", func(t *testing.T) {
		t.Setenv("COUNTDOWN_DAYS_UNTIL_TARGET", "40")
		t.Setenv("COUNTDOWN_SAMPLE_INTERVAL", "1s")

		cfg, err := Load(Options{Path: path})
		require.NoError(t, err)
		assert.Equal(t, 40, cfg.DaysUntilTarget)
		assert.Equal(t, time.Second, cfg.SampleInterval)
	})

	t.Run("flag_over_env", func(t *testing.T) {
		t.Setenv("COUNTDOWN_DAYS_UNTIL_TARGET", "40")
		fs := testFlags()
		require.NoError(t, fs.Parse([]string{"--days", "50"}))

		cfg, err := Load(Options{Path: path, Flags: fs})
		require.NoError(t, err)
		assert.Equal(t, 50, cfg.DaysUntilTarget)
		assert.Equal(t, 250*time.Millisecond, cfg.SampleInterval)
	})

	t.Run("unset_flag_keeps_file", func(t *testing.T) {
		cfg, err := Load(Options{Path: path, Flags: testFlags()})
		require.NoError(t, err)
		assert.Equal(t, 30, cfg.DaysUntilTarget)
	})

	t.Run("nested_env", func(t *testing.T) {
		t.Setenv("COUNTDOWN_BURST_FADE_AFTER", "500ms")
		cfg, err := Load(Options{Path: path})
		require.NoError(t, err)
		assert.Equal(t, 500*time.Millisecond, cfg.Burst.FadeAfter)
	})
}

func TestLoadLiveInterval(t *testing.T) {
	isolate(t)

	t.Run("live_defaults_to_fast_ticks", func(t *testing.T) {
		fs := testFlags()
		require.NoError(t, fs.Parse([]string{"--live"}))
		cfg, err := Load(Options{Flags: fs})
		require.NoError(t, err)
		assert.True(t, cfg.EnableLivePhase)
		assert.Equal(t, LiveInterval, cfg.SampleInterval)
	})

	t.Run("explicit_interval_wins", func(t *testing.T) {
		fs := testFlags()
		require.NoError(t, fs.Parse([]string{"--live", "--interval", "300ms"}))
		cfg, err := Load(Options{Flags: fs})
		require.NoError(t, err)
		assert.Equal(t, 300*time.Millisecond, cfg.SampleInterval)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		sentinel error
	}{
		{"zero_days", func(c *Config) { c.DaysUntilTarget = 0 }, errors.ErrInvalidDays},
		{"negative_days", func(c *Config) { c.DaysUntilTarget = -3 }, errors.ErrInvalidDays},
		{"interval_too_short", func(c *Config) { c.SampleInterval = time.Millisecond }, errors.ErrInvalidInterval},
		{"interval_too_long", func(c *Config) { c.SampleInterval = time.Hour }, errors.ErrInvalidInterval},
		{"bad_denominator", func(c *Config) { c.Denominator = "weekly" }, errors.ErrInvalidDenominator},
		{"bad_ring_unit", func(c *Config) { c.Rings.Radius["weeks"] = 3 }, errors.ErrInvalidUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsUserError(err))
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}

	t.Run("empty_storage_key", func(t *testing.T) {
		cfg := Default()
		cfg.StorageKey = " "
		assert.True(t, errors.IsUserError(cfg.Validate()))
	})

	t.Run("clear_before_fade", func(t *testing.T) {
		cfg := Default()
		cfg.Burst.ClearAfter = time.Second
		assert.True(t, errors.IsUserError(cfg.Validate()))
	})

	t.Run("denominator_is_normalized", func(t *testing.T) {
		cfg := Default()
		cfg.Denominator = " Dynamic "
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "dynamic", cfg.Denominator)
	})

	t.Run("non_positive_radius", func(t *testing.T) {
		cfg := Default()
		cfg.Rings.Radius["hours"] = 0
		assert.True(t, errors.IsUserError(cfg.Validate()))
	})
}

func TestLoadInvalidFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("COUNTDOWN_DENOMINATOR", "weekly")

	_, err := Load(Options{})
	assert.ErrorIs(t, err, errors.ErrInvalidDenominator)
}

func TestToYAML(t *testing.T) {
	data, err := Default().ToYAML()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))

	assert.Equal(t, 76, decoded["days_until_target"])
	assert.Equal(t, "500ms", decoded["sample_interval"])
	assert.Equal(t, "countdownTarget", decoded["storage_key"])

	burst, ok := decoded["burst"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1.1s", burst["fade_after"])
	assert.Equal(t, "2.3s", burst["clear_after"])
}

func TestToYAMLRoundTripsThroughLoad(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.DaysUntilTarget = 12
	cfg.Burst.FadeAfter = 3 * time.Second
	cfg.Burst.ClearAfter = 4 * time.Second

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	path := writeConfig(t, string(data))

	loaded, err := Load(Options{Path: path})
	require.NoError(t, err)
	assert.Equal(t, 12, loaded.DaysUntilTarget)
	assert.Equal(t, 3*time.Second, loaded.Burst.FadeAfter)
}
