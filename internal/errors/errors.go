package errors

import (
	"errors"
	"fmt"
)

// Common error types for the QuickBooks connection service
var (
	// User directory errors
	ErrUserNotFound = errors.New("user not found")

	// Connection errors
	ErrNoConnection      = errors.New("no QuickBooks connection for this user")
	ErrExpiredCredential = errors.New("stored credential expired - reconnect required")

	// Authorization flow errors
	ErrMalformedCallback = errors.New("malformed OAuth callback")

	// Downstream data errors
	ErrProviderUnavailable = errors.New("QuickBooks API unavailable")
	ErrMalformedReport     = errors.New("malformed report response")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
