package runtime

import (
	"errors"
	"fmt"
	"strings"
	"syscall"

	cderrors "github.com/manav03panchal/countdown/internal/errors"
)

// ErrDiskFull reports that the target could not be written for lack of space.
var ErrDiskFull = errors.New("disk full: unable to write to database")

const diskFullSuggestion = "Free up disk space and try again, or run with --persist=false."

// Suggestion returns the most specific hint for err: a registered
// suggestion, the disk full hint, or a generic one for its category.
func Suggestion(err error) string {
	if s := cderrors.GetSuggestion(err); s != "" {
		return s
	}
	if IsDiskFullError(err) {
		return diskFullSuggestion
	}
	return cderrors.GetCategorySuggestion(err)
}

// ErrorStatus classifies err for JSON error output. For system errors the
// detail is the underlying cause.
func ErrorStatus(err error) (status, detail string) {
	if se, ok := cderrors.AsSystemError(err); ok {
		if se.Cause != nil {
			detail = se.Cause.Error()
		}
		return "system_error", detail
	}
	if cderrors.IsUserError(err) {
		return "user_error", ""
	}
	return "error", ""
}

// FormatError formats an error with its suggestion and example commands.
func FormatError(err error) string {
	msg := err.Error()
	if suggestion := Suggestion(err); suggestion != "" {
		msg += "\n" + suggestion
	}
	if examples := cderrors.GetExamples(err); len(examples) > 0 {
		msg += "\n\nExamples:\n  " + strings.Join(examples, "\n  ")
	}
	return msg
}

// DiskFullError represents a disk full condition with additional context.
type DiskFullError struct {
	Op      string // The operation that failed (e.g., "write", "sync")
	Path    string // The path involved, if known
	wrapped error  // The underlying error
}

func (e *DiskFullError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("disk full during %s on %s: %v", e.Op, e.Path, e.wrapped)
	}
	return fmt.Sprintf("disk full during %s: %v", e.Op, e.wrapped)
}

func (e *DiskFullError) Unwrap() error {
	return ErrDiskFull
}

// NewDiskFullError creates a new DiskFullError.
func NewDiskFullError(op, path string, err error) *DiskFullError {
	return &DiskFullError{
		Op:      op,
		Path:    path,
		wrapped: err,
	}
}

// IsDiskFullError checks if an error indicates a disk full condition.
// It checks for ENOSPC and common disk full error patterns.
func IsDiskFullError(err error) bool {
	if err == nil {
		return false
	}

	var diskFullErr *DiskFullError
	if errors.As(err, &diskFullErr) {
		return true
	}
	if errors.Is(err, ErrDiskFull) {
		return true
	}

	var errno syscall.Errno
	if errors.As(err, &errno) && errno == syscall.ENOSPC {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"no space left on device",
		"disk full",
		"not enough space",
		"out of disk space",
	} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// WrapStoreError classifies a failed store write. Disk full conditions
// become a DiskFullError; everything else becomes a SystemError.
func WrapStoreError(err error, op, path string) error {
	if err == nil {
		return nil
	}
	if IsDiskFullError(err) {
		return NewDiskFullError(op, path, err)
	}
	return cderrors.NewSystemErrorWithOp(op, "failed to update target store", err)
}
