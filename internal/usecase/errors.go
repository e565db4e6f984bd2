package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/esports-hub/internal/platform/resilience"
	"github.com/riskibarqy/esports-hub/internal/platform/validation"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrRateLimited           = errors.New("rate limited")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrStorage               = errors.New("storage failure")
)

// invalidInput wraps field errors so callers can recover them with
// validation.FromError.
func invalidInput(errs validation.Errors) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, errs)
}

// storageError classifies a repository failure. An open circuit breaker means
// the store is unavailable, everything else is a storage failure.
func storageError(op string, err error) error {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
