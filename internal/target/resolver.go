// Package target resolves the countdown target for a session, optionally
// reading and writing it through a persistent store.
package target

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/manav03panchal/countdown/internal/errors"
	"github.com/manav03panchal/countdown/internal/logging"
	"github.com/manav03panchal/countdown/internal/model"
)

// StoredLayout is the format written to the store. It matches the
// millisecond ISO-8601 form used by browsers.
const StoredLayout = "2006-01-02T15:04:05.000Z07:00"

// DefaultDays is the default distance to a freshly created target.
const DefaultDays = 76

// localLayouts carry no zone and are read as local time.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Store is the persistent key/value surface the resolver needs.
type Store interface {
	// Get returns the value under key and whether it exists.
	Get(key string) (string, bool, error)
	// Set writes value under key.
	Set(key, value string) error
}

// Denominator selects how the days ring denominator is derived.
type Denominator string

const (
	// DenominatorFixed uses the configured day count.
	DenominatorFixed Denominator = "fixed"
	// DenominatorDynamic uses the whole days remaining at resolution time.
	DenominatorDynamic Denominator = "dynamic"
)

// ParseDenominator parses "fixed" or "dynamic".
func ParseDenominator(s string) (Denominator, error) {
	switch d := Denominator(strings.ToLower(strings.TrimSpace(s))); d {
	case DenominatorFixed, DenominatorDynamic:
		return d, nil
	case "":
		return DenominatorFixed, nil
	}
	return "", errors.InvalidValue(errors.ErrInvalidDenominator, "denominator", s)
}

// Options configures target resolution.
type Options struct {
	Days        int
	Persist     bool
	Live        bool
	Waiting     bool
	Denominator Denominator
	Key         string
}

// DefaultOptions returns the persistent, countdown-only configuration.
func DefaultOptions() Options {
	return Options{
		Days:        DefaultDays,
		Persist:     true,
		Denominator: DenominatorFixed,
		Key:         model.KeyTarget,
	}
}

// Source tells where a resolved target came from.
type Source int

const (
	SourceDefault Source = iota
	SourceStored
	SourceOverride
)

func (s Source) String() string {
	switch s {
	case SourceStored:
		return "stored"
	case SourceOverride:
		return "override"
	default:
		return "default"
	}
}

// Result is the outcome of one resolution.
type Result struct {
	Spec   model.TargetSpec
	Source Source
	// Written reports whether the store was written during resolution.
	Written bool
}

// Resolver produces a TargetSpec once per session.
type Resolver struct {
	opts  Options
	store Store
}

// NewResolver creates a resolver. A nil store forces the ephemeral policy.
func NewResolver(opts Options, store Store) *Resolver {
	if opts.Days <= 0 {
		opts.Days = DefaultDays
	}
	if opts.Key == "" {
		opts.Key = model.KeyTarget
	}
	if opts.Denominator == "" {
		opts.Denominator = DenominatorFixed
	}
	return &Resolver{opts: opts, store: store}
}

// Options returns the effective options.
func (r *Resolver) Options() Options {
	return r.opts
}

// Persistent reports whether the store is consulted.
func (r *Resolver) Persistent() bool {
	return r.opts.Persist && r.store != nil
}

// Resolve determines the target at now. It never fails: unreadable or
// malformed stored values fall back to a fresh target.
func (r *Resolver) Resolve(now time.Time) Result {
	if !r.Persistent() {
		return Result{Spec: r.build(r.fresh(now), now), Source: SourceDefault}
	}

	if t, ok := r.load(); ok {
		return Result{Spec: r.build(t, now), Source: SourceStored}
	}

	t := r.fresh(now)
	return Result{Spec: r.build(t, now), Source: SourceDefault, Written: r.save(t)}
}

// ResolveAt uses an explicit target and persists it under the persistent
// policy.
func (r *Resolver) ResolveAt(now, target time.Time) Result {
	res := Result{Spec: r.build(target, now), Source: SourceOverride}
	if r.Persistent() {
		res.Written = r.save(target)
	}
	return res
}

func (r *Resolver) fresh(now time.Time) time.Time {
	return now.Add(time.Duration(r.opts.Days) * model.Day)
}

func (r *Resolver) load() (time.Time, bool) {
	raw, ok, err := r.store.Get(r.opts.Key)
	if err != nil {
		logging.Warn("failed to read stored target",
			logging.KeyKey, r.opts.Key,
			logging.KeyError, err,
		)
		return time.Time{}, false
	}
	if !ok {
		return time.Time{}, false
	}

	t, err := ParseStored(raw)
	if err != nil {
		logging.Warn("ignoring malformed stored target",
			logging.KeyKey, r.opts.Key,
			logging.KeyValue, raw,
		)
		return time.Time{}, false
	}
	return t, true
}

func (r *Resolver) save(t time.Time) bool {
	value := FormatStored(t)
	if err := r.store.Set(r.opts.Key, value); err != nil {
		logging.Warn("failed to persist target",
			logging.KeyKey, r.opts.Key,
			logging.KeyError, err,
		)
		return false
	}
	logging.DebugLog("persisted target", logging.KeyKey, r.opts.Key, logging.KeyValue, value)
	return true
}

func (r *Resolver) build(target, now time.Time) model.TargetSpec {
	spec := model.TargetSpec{
		Target:    target,
		TotalDays: r.totalDays(target, now),
	}
	switch {
	case r.opts.Live && r.opts.Waiting:
		spec.LiveStart = target.Add(model.Day)
	case r.opts.Live:
		spec.LiveStart = target
	}
	return spec
}

func (r *Resolver) totalDays(target, now time.Time) int {
	if r.opts.Denominator == DenominatorDynamic {
		days := int(math.Ceil(float64(target.Sub(now)) / float64(model.Day)))
		return max(1, days)
	}
	return r.opts.Days
}

// ParseStored parses a stored target value.
func ParseStored(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", errors.ErrInvalidTarget, raw)
}

// FormatStored formats t the way it is written to the store.
func FormatStored(t time.Time) string {
	return t.UTC().Format(StoredLayout)
}
