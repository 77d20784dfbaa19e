// Package runtime provides application runtime context for countdown.
package runtime

import (
	"fmt"
	"os"
	"time"

	"github.com/manav03panchal/countdown/internal/clock"
	"github.com/manav03panchal/countdown/internal/config"
	"github.com/manav03panchal/countdown/internal/errors"
	"github.com/manav03panchal/countdown/internal/logging"
	"github.com/manav03panchal/countdown/internal/output"
	"github.com/manav03panchal/countdown/internal/storage"
	"github.com/manav03panchal/countdown/internal/target"
)

// EnvDatabase overrides the database path; ":memory:" selects an in-memory store.
const EnvDatabase = "COUNTDOWN_DATABASE"

// Context holds the application runtime context.
type Context struct {
	// DB is nil when persistence is off or the database could not be opened.
	DB         *storage.DB
	TargetRepo *storage.TargetRepo
	// StoreErr records why DB is nil despite persistence being enabled.
	StoreErr error

	Formatter *output.Formatter
	Config    *config.Config
	Clock     clock.Clock

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	DBPath    string
	InMemory  bool
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool
	Config    *config.Config
	Clock     clock.Clock
	// RequireStore opens the database even when persistence is disabled.
	RequireStore bool
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		DBPath:    storage.DefaultPath(),
		InMemory:  false,
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
		Debug:     false,
	}
}

// New creates a new runtime context. A database that cannot be opened is
// logged and leaves the context without a store; it is never fatal.
func New(opts Options) (*Context, error) {
	if envPath := os.Getenv(EnvDatabase); envPath != "" {
		if envPath == ":memory:" {
			opts.InMemory = true
		} else {
			opts.DBPath = envPath
		}
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Clock == nil {
		opts.Clock = clock.System
	}

	formatter := output.NewFormatter()
	if opts.Format != "" {
		formatter.Format = opts.Format
	}
	if opts.ColorMode != "" {
		formatter.ColorMode = opts.ColorMode
	}

	ctx := &Context{
		Formatter: formatter,
		Config:    opts.Config,
		Clock:     opts.Clock,
		Debug:     opts.Debug,
	}

	if opts.Config.PersistTarget || opts.RequireStore {
		ctx.openStore(opts)
	}
	return ctx, nil
}

func (c *Context) openStore(opts Options) {
	if !opts.InMemory && opts.DBPath == "" {
		opts.DBPath = storage.DefaultPath()
	}

	db, err := storage.Open(storage.Options{
		Path:     opts.DBPath,
		InMemory: opts.InMemory,
	})
	if err != nil {
		c.StoreErr = errors.NewSystemErrorWithOp("open", errors.ErrStoreUnavailable.Error(),
			fmt.Errorf("%w: %w", errors.ErrStoreUnavailable, err))
		logging.Warn("target store unavailable, using an ephemeral target",
			logging.KeyPath, opts.DBPath,
			logging.KeyError, err,
		)
		return
	}

	c.DB = db
	c.TargetRepo = storage.NewTargetRepo(db)
	logging.LogOperation("open_store", logging.KeyPath, db.Path())
}

// HasStore reports whether a database is open.
func (c *Context) HasStore() bool {
	return c.DB != nil
}

// Resolver builds a target resolver from the configuration and store.
func (c *Context) Resolver() *target.Resolver {
	opts := ResolverOptions(c.Config)
	if c.TargetRepo == nil {
		return target.NewResolver(opts, nil)
	}
	return target.NewResolver(opts, c.TargetRepo)
}

// ResolverOptions maps configuration onto resolver options.
func ResolverOptions(cfg *config.Config) target.Options {
	denominator, err := target.ParseDenominator(cfg.Denominator)
	if err != nil {
		logging.Warn("unknown days denominator, using fixed", logging.KeyValue, cfg.Denominator)
		denominator = target.DenominatorFixed
	}
	return target.Options{
		Days:        cfg.DaysUntilTarget,
		Persist:     cfg.PersistTarget,
		Live:        cfg.EnableLivePhase,
		Waiting:     cfg.EnableWaitingPhase,
		Denominator: denominator,
		Key:         cfg.StorageKey,
	}
}

// Now returns the current time from the context clock.
func (c *Context) Now() time.Time {
	return c.Clock.Now()
}

// CloseStore closes the database and drops the repository.
func (c *Context) CloseStore() error {
	if c.DB == nil {
		return nil
	}
	err := c.DB.Close()
	c.DB = nil
	c.TargetRepo = nil
	return err
}

// Close closes the runtime context.
func (c *Context) Close() error {
	return c.CloseStore()
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsPlain returns true if output format is plain.
func (c *Context) IsPlain() bool {
	return c.Formatter.Format == output.FormatPlain
}

// IsCLI returns true if output format is CLI.
func (c *Context) IsCLI() bool {
	return c.Formatter.Format == output.FormatCLI
}
