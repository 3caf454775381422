package model

import "github.com/m-mizutani/goerr/v2"

// ErrHistoryDiverged is returned when the target remote holds commits
// that are not part of the source branch history. Pushing would require
// rewriting the target, which only happens when the mirror sets force.
// The remedy is to reconcile the histories manually (pull the target
// side into the source) and sync again.
var ErrHistoryDiverged = goerr.New("target history diverged from source, reconcile manually or enable force")

// ErrMirrorNotFound is returned when a named mirror is not configured
var ErrMirrorNotFound = goerr.New("mirror not found")
