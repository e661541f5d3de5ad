package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Store errors
	ErrMsgDuplicateKey = "streamer already registered"

	// External gateway errors
	ErrMsgLookupFailed       = "twitch user lookup failed"
	ErrMsgSubscriptionFailed = "twitch subscription request failed"

	// Setup errors
	ErrMsgChannelUnresolved = "control channel could not be resolved"

	// Guard errors
	ErrMsgPermissionDenied = "administrator permission required"
	ErrMsgWrongChannel     = "command issued outside the control channel"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrDuplicateKey is returned when (twitch_username, guild) is already registered.
	ErrDuplicateKey = errors.New(ErrMsgDuplicateKey)

	// ErrLookupFailed means the streaming platform could not resolve a login.
	ErrLookupFailed = errors.New(ErrMsgLookupFailed)

	// ErrSubscriptionFailed covers subscribe, unsubscribe and unsubscribe-all failures.
	ErrSubscriptionFailed = errors.New(ErrMsgSubscriptionFailed)

	// ErrChannelUnresolved is a setup-time condition; while it holds no command passes the channel guard.
	ErrChannelUnresolved = errors.New(ErrMsgChannelUnresolved)

	ErrPermissionDenied = errors.New(ErrMsgPermissionDenied)
	ErrWrongChannel     = errors.New(ErrMsgWrongChannel)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
