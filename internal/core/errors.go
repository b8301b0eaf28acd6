package core

import (
	"errors"
	"fmt"
	"strings"

	"overlayns/internal/types"
)

// NotFoundError is the miss signal: no consulted target defines Name.
type NotFoundError struct {
	Name string

	// Consulted lists the targets that were asked, in lookup order.
	Consulted []string
}

func (e *NotFoundError) Error() string {
	if len(e.Consulted) == 0 {
		return fmt.Sprintf("no such attribute '%s'", e.Name)
	}
	return fmt.Sprintf("no such attribute '%s' in any of [%s]", e.Name, strings.Join(e.Consulted, ", "))
}

// WriteUnsupportedError reports a write or delete through a read-only view.
type WriteUnsupportedError struct {
	Name  string
	Op    string
	Owner string
}

func (e *WriteUnsupportedError) Error() string {
	return fmt.Sprintf("%s of '%s' not supported by %s", e.Op, e.Name, e.Owner)
}

// InitializationError reports that a unit could not be resolved or that
// its initialization body failed.
type InitializationError struct {
	Locator types.Locator
	Cause   error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("initialize %s: %v", e.Locator, e.Cause)
}

func (e *InitializationError) Unwrap() error {
	return e.Cause
}

// CycleError reports a resolution chain deeper than the configured limit.
type CycleError struct {
	Chain []string
	Limit int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("resolution depth %d exceeded, probable cyclic dependency: %s",
		e.Limit, strings.Join(e.Chain, " -> "))
}

// IsNotFound reports whether err carries a NotFoundError anywhere in its
// chain, including one wrapped by a failed initialization. Use IsMiss to
// decide whether a lookup may fall through.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsWriteUnsupported(err error) bool {
	var wu *WriteUnsupportedError
	return errors.As(err, &wu)
}

func IsInitializationFailure(err error) bool {
	var ie *InitializationError
	return errors.As(err, &ie)
}

func IsCycle(err error) bool {
	var ce *CycleError
	return errors.As(err, &ce)
}

// IsMiss reports whether err lets a lookup fall through to the next
// target. A NotFound raised inside a failed initialization does not.
func IsMiss(err error) bool {
	if !IsNotFound(err) {
		return false
	}
	return !IsInitializationFailure(err) && !IsCycle(err)
}

// initializationFailure wraps err for locator unless a deeper frame has
// already attributed it to a unit.
func initializationFailure(locator types.Locator, err error) error {
	var ie *InitializationError
	if errors.As(err, &ie) {
		return err
	}
	var ce *CycleError
	if errors.As(err, &ce) {
		return err
	}
	return &InitializationError{Locator: locator, Cause: err}
}
