package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	// User input errors
	ErrInvalidTarget:      "Try formats like '+76d', 'next friday 9am', '2026-12-31' or '2026-12-31T18:00:00Z'.",
	ErrTargetInPast:       "Pick a date after now, or enable --live to count up from a past target.",
	ErrInvalidDays:        "Use a whole number of days greater than zero, e.g. --days 76.",
	ErrInvalidInterval:    "Use a duration between 10ms and 1m, e.g. --interval 250ms.",
	ErrInvalidUnit:        "Units are days, hours, minutes and seconds, e.g. --units days,hours.",
	ErrInvalidDenominator: "Use --denominator fixed or --denominator dynamic.",
	ErrNotPersistent:      "Enable persistence with --persist or persist_target: true in the config file.",

	// System errors
	ErrStoreUnavailable: "Another countdown may hold the database. Close it or set COUNTDOWN_DATABASE=:memory:.",
	ErrNoTerminal:       "Run inside a terminal, or use --plain for line output.",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Check if it's a UserError with a suggestion
	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}

// GetCategorySuggestion returns a generic suggestion based on error category.
func GetCategorySuggestion(err error) string {
	if IsUserError(err) {
		return "Check your input and try again. Use --help for usage information."
	}
	if IsSystemError(err) {
		return "This is a system error. Check system resources and try again."
	}
	return ""
}

// CommandExamples provides example commands for common errors.
var CommandExamples = map[error][]string{
	ErrInvalidTarget: {
		"countdown target set +76d",
		"countdown target set \"new year 2027\"",
		"countdown --at 2026-12-31T18:00:00Z",
	},
	ErrInvalidUnit: {
		"countdown watch --units days,hours,minutes,seconds",
		"countdown watch --units hours,minutes",
	},
}

// GetExamples returns example commands for an error.
func GetExamples(err error) []string {
	for knownErr, examples := range CommandExamples {
		if errors.Is(err, knownErr) {
			return examples
		}
	}
	return nil
}
