// Package config loads countdown settings from defaults, the config file,
// COUNTDOWN_* environment variables and command-line flags, in that order
// of increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/manav03panchal/countdown/internal/errors"
	"github.com/manav03panchal/countdown/internal/model"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "COUNTDOWN"

// Interval bounds accepted by Validate.
const (
	MinInterval = 10 * time.Millisecond
	MaxInterval = time.Minute
)

// Config keys.
const (
	KeyDays        = "days_until_target"
	KeyInterval    = "sample_interval"
	KeyPersist     = "persist_target"
	KeyLive        = "enable_live_phase"
	KeyWaiting     = "enable_waiting_phase"
	KeyDenominator = "denominator"
	KeyStorageKey  = "storage_key"
	KeyFadeAfter   = "burst.fade_after"
	KeyClearAfter  = "burst.clear_after"
	KeyRingRadius  = "rings.radius"
)

// FlagNames maps config keys to the command-line flags that override them.
var FlagNames = map[string]string{
	KeyDays:        "days",
	KeyInterval:    "interval",
	KeyPersist:     "persist",
	KeyLive:        "live",
	KeyWaiting:     "waiting",
	KeyDenominator: "denominator",
}

// Config holds every countdown setting.
type Config struct {
	// DaysUntilTarget is the distance to a freshly created target.
	// Default: 76
	DaysUntilTarget int `mapstructure:"days_until_target"`

	// SampleInterval is the engine tick period.
	// Default: 500ms
	SampleInterval time.Duration `mapstructure:"sample_interval"`

	// PersistTarget keeps the target across runs.
	// Default: true
	PersistTarget bool `mapstructure:"persist_target"`

	// EnableLivePhase counts up after the target.
	EnableLivePhase bool `mapstructure:"enable_live_phase"`

	// EnableWaitingPhase inserts one day between target and live start.
	// Only meaningful with EnableLivePhase.
	EnableWaitingPhase bool `mapstructure:"enable_waiting_phase"`

	// Denominator is "fixed" or "dynamic".
	Denominator string `mapstructure:"denominator"`

	// StorageKey is the store key for the persisted target.
	StorageKey string `mapstructure:"storage_key"`

	Burst BurstConfig `mapstructure:"burst"`
	Rings RingsConfig `mapstructure:"rings"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// BurstConfig holds the celebratory burst timings.
type BurstConfig struct {
	// FadeAfter is the delay before the burst fades.
	// Default: 1.1s
	FadeAfter time.Duration `mapstructure:"fade_after"`

	// ClearAfter is the delay before the burst marker clears.
	// Default: 2.3s
	ClearAfter time.Duration `mapstructure:"clear_after"`
}

// RingsConfig holds ring geometry.
type RingsConfig struct {
	// Radius is the ring radius in cells, per unit name.
	Radius map[string]float64 `mapstructure:"radius"`
}

// DefaultRingRadius is the radius of every ring unless configured.
const DefaultRingRadius = 4.0

// Default returns the built-in configuration.
func Default() *Config {
	radius := make(map[string]float64, model.NumUnits)
	for _, u := range model.Units {
		radius[u.String()] = DefaultRingRadius
	}
	return &Config{
		DaysUntilTarget: 76,
		SampleInterval:  500 * time.Millisecond,
		PersistTarget:   true,
		Denominator:     "fixed",
		StorageKey:      model.KeyTarget,
		Burst: BurstConfig{
			FadeAfter:  1100 * time.Millisecond,
			ClearAfter: 2300 * time.Millisecond,
		},
		Rings: RingsConfig{Radius: radius},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "countdown", "config.yaml")
}

// Options controls Load.
type Options struct {
	// Path is an explicit config file. It must exist when set.
	Path string
	// Flags are bound per FlagNames. Only flags that were set override.
	Flags *pflag.FlagSet
}

// Load builds a Config from all sources and validates it.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	if opts.Path != "" {
		v.SetConfigFile(opts.Path)
	} else {
		v.SetConfigFile(DefaultPath())
	}

	file := ""
	if err := v.ReadInConfig(); err != nil {
		if !isNotFound(err) || opts.Path != "" {
			return nil, errors.NewSystemErrorWithOp("config", "failed to read config file", err)
		}
	} else {
		file = v.ConfigFileUsed()
	}

	if opts.Flags != nil {
		for key, name := range FlagNames {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "binding flag %s", name)
				}
			}
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.NewSystemErrorWithOp("config", "failed to parse configuration", err)
	}
	cfg.File = file
	if cfg.EnableLivePhase && !v.IsSet(KeyInterval) {
		cfg.SampleInterval = LiveInterval
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyDays, d.DaysUntilTarget)
	// The interval has no default; IsSet reports explicit values only.
	_ = v.BindEnv(KeyInterval)
	v.SetDefault(KeyPersist, d.PersistTarget)
	v.SetDefault(KeyLive, d.EnableLivePhase)
	v.SetDefault(KeyWaiting, d.EnableWaitingPhase)
	v.SetDefault(KeyDenominator, d.Denominator)
	v.SetDefault(KeyStorageKey, d.StorageKey)
	v.SetDefault(KeyFadeAfter, d.Burst.FadeAfter)
	v.SetDefault(KeyClearAfter, d.Burst.ClearAfter)
	for name, r := range d.Rings.Radius {
		v.SetDefault(KeyRingRadius+"."+name, r)
	}
}

func isNotFound(err error) bool {
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return true
	}
	return os.IsNotExist(err)
}

// Validate checks every value and returns a UserError for the first
// invalid one.
func (c *Config) Validate() error {
	if c.DaysUntilTarget <= 0 {
		return errors.InvalidValue(errors.ErrInvalidDays, KeyDays, fmt.Sprint(c.DaysUntilTarget))
	}
	if c.SampleInterval < MinInterval || c.SampleInterval > MaxInterval {
		return errors.InvalidValue(errors.ErrInvalidInterval, KeyInterval, c.SampleInterval.String())
	}
	c.Denominator = strings.ToLower(strings.TrimSpace(c.Denominator))
	switch c.Denominator {
	case "fixed", "dynamic":
	default:
		return errors.InvalidValue(errors.ErrInvalidDenominator, KeyDenominator, c.Denominator)
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return errors.NewUserErrorWithField(KeyStorageKey, c.StorageKey,
			"storage key must not be empty", "Remove storage_key from the config file to use the default.")
	}
	if c.Burst.FadeAfter <= 0 || c.Burst.ClearAfter < c.Burst.FadeAfter {
		return errors.NewUserError(
			fmt.Sprintf("invalid burst timings: fade_after=%s clear_after=%s", c.Burst.FadeAfter, c.Burst.ClearAfter),
			"burst.clear_after must be at least burst.fade_after, and both positive.")
	}
	if _, err := c.RingRadii(); err != nil {
		return err
	}
	return nil
}

// RingRadii returns the configured radius per unit.
func (c *Config) RingRadii() (map[model.Unit]float64, error) {
	radii := make(map[model.Unit]float64, model.NumUnits)
	for _, u := range model.Units {
		radii[u] = DefaultRingRadius
	}
	for name, r := range c.Rings.Radius {
		u, err := model.ParseUnit(name)
		if err != nil {
			return nil, errors.InvalidValue(errors.ErrInvalidUnit, KeyRingRadius, name)
		}
		if r <= 0 {
			return nil, errors.NewUserErrorWithField(KeyRingRadius+"."+name, fmt.Sprint(r),
				"ring radius must be positive", "Use a radius such as 4.")
		}
		radii[u] = r
	}
	return radii, nil
}

// LiveInterval is the tick period when the live phase is enabled and no
// interval was configured explicitly.
const LiveInterval = 100 * time.Millisecond

// fileView is the YAML shape of a Config, with durations as strings.
type fileView struct {
	DaysUntilTarget    int       `yaml:"days_until_target"`
	SampleInterval     string    `yaml:"sample_interval"`
	PersistTarget      bool      `yaml:"persist_target"`
	EnableLivePhase    bool      `yaml:"enable_live_phase"`
	EnableWaitingPhase bool      `yaml:"enable_waiting_phase"`
	Denominator        string    `yaml:"denominator"`
	StorageKey         string    `yaml:"storage_key"`
	Burst              burstView `yaml:"burst"`
	Rings              ringsView `yaml:"rings"`
}

type burstView struct {
	FadeAfter  string `yaml:"fade_after"`
	ClearAfter string `yaml:"clear_after"`
}

type ringsView struct {
	Radius map[string]float64 `yaml:"radius"`
}

// ToYAML renders the configuration in config file form.
func (c *Config) ToYAML() ([]byte, error) {
	view := fileView{
		DaysUntilTarget:    c.DaysUntilTarget,
		SampleInterval:     c.SampleInterval.String(),
		PersistTarget:      c.PersistTarget,
		EnableLivePhase:    c.EnableLivePhase,
		EnableWaitingPhase: c.EnableWaitingPhase,
		Denominator:        c.Denominator,
		StorageKey:         c.StorageKey,
		Burst: burstView{
			FadeAfter:  c.Burst.FadeAfter.String(),
			ClearAfter: c.Burst.ClearAfter.String(),
		},
		Rings: ringsView{Radius: c.Rings.Radius},
	}
	return yaml.Marshal(view)
}
