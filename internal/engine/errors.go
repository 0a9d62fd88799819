package engine

import (
	"errors"
	"fmt"
)

// ErrQuit may be returned by a client's OnUpdate to stop the loop. It still
// ends the loop as an UpdateError; callers check it with errors.Is.
var ErrQuit = errors.New("engine: quit requested")

// ErrNotReady is returned by Run when the engine is not in the Ready state.
var ErrNotReady = errors.New("engine: not ready")

// InitializationError reports a failure before the frame loop could start:
// the device rejected the geometry or configuration, or OnCreate failed.
type InitializationError struct {
	Op  string // What was being done: "geometry", "open", "create"
	Err error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("engine: initialization failed: %s: %v", e.Op, e.Err)
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}

// UpdateError reports that a client's OnUpdate failed and the loop ended.
type UpdateError struct {
	Frame int // 1-based frame on which OnUpdate failed
	Err   error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("engine: update failed on frame %d: %v", e.Frame, e.Err)
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}
