package app

import (
	"errors"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"overlayns/internal/core"
)

// translateError gives resolution failures an errbuilder code. Errors
// that already carry one pass through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var code errbuilder.ErrCode
	var cycle *core.CycleError
	var initErr *core.InitializationError
	var writeErr *core.WriteUnsupportedError
	var notFound *core.NotFoundError
	message := err.Error()
	switch {
	case errors.As(err, &cycle):
		// the depth message leads so callers can tell cycles apart
		code = errbuilder.CodeFailedPrecondition
		message = cycle.Error()
	case errors.As(err, &initErr):
		code = errbuilder.CodeFailedPrecondition
	case errors.As(err, &writeErr):
		code = errbuilder.CodePermissionDenied
	case errors.As(err, &notFound):
		code = errbuilder.CodeNotFound
	default:
		return err
	}
	return errbuilder.New().
		WithCode(code).
		WithMsg(message).
		WithCause(err)
}
