// Package logging is the structured logger the auth server threads through
// its HTTP and gRPC servers and the auth and identity services. SlogLogger is
// the only implementation; NewDiscardLogger is what tests pass in.
package logging

import "context"

// Logger takes a message plus alternating key/value pairs:
//
//	logger.Error(ctx, "register failed", "error", err)
//
// Each server scopes its records with With("module", ...).
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn is for degraded, non-fatal conditions such as a failed store ping.
	Warn(ctx context.Context, msg string, args ...any)
	// Error is for store and signing faults that surface as 500s.
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

var _ Logger = (*SlogLogger)(nil)
