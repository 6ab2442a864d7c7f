package engine

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or missing input. The operation was
// aborted before any state changed.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// PermissionError reports a capability gate failure. The operation was
// aborted before any state changed.
type PermissionError struct {
	Msg string
}

func (e *PermissionError) Error() string { return e.Msg }

func permissionf(format string, args ...any) error {
	return &PermissionError{Msg: fmt.Sprintf(format, args...)}
}

// RemoteError reports a failed call to the remote tabular store. Any local
// mutation made before the call is kept: the engine is simply ahead of the
// remote until the next successful push.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string { return fmt.Sprintf("remote %s: %v", e.Op, e.Err) }

func (e *RemoteError) Unwrap() error { return e.Err }

func remote(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RemoteError{Op: op, Err: err}
}

// IsRemote reports whether err is (or wraps) a RemoteError, i.e. whether the
// failure is non-fatal to local state.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
