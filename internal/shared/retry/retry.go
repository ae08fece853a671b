package retry

import (
	"context"
	"errors"
	"time"

	"go-timeclock/internal/shared/apperror"
)

// DefaultBackoff is the pause before the single retry attempt.
const DefaultBackoff = 200 * time.Millisecond

// Once runs fn and retries it exactly one more time after backoff when
// the failure is a transient storage outage. Every other error, and a
// second transient failure, is returned as-is.
func Once(ctx context.Context, backoff time.Duration, fn func() error) error {
	err := fn()
	if !IsTransient(err) {
		return err
	}

	select {
	case <-ctx.Done():
		return err
	case <-time.After(backoff):
	}

	return fn()
}

// IsTransient reports whether err is the storage-unavailable kind that
// is worth one more attempt.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code == apperror.CodeServiceUnavailable
	}
	return false
}
