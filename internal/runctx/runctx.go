// Package runctx bundles the per-call correlation id and logger threaded
// through one Execute call, for observability only — it never influences
// matching or apply decisions.
package runctx

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Context is created once per Execute call.
type Context struct {
	ID  string
	Log zerolog.Logger
}

// New stamps a fresh correlation id and attaches it to logger.
func New(logger zerolog.Logger) Context {
	id := uuid.NewString()
	return Context{ID: id, Log: logger.With().Str("run_id", id).Logger()}
}
