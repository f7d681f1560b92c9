package tracking

import (
	"context"
	"errors"

	"tracking/internal/pkg/errs"
)

// ErrorKind is the stable, machine readable classification of a failed operation.
type ErrorKind string

const (
	KindOwnerNotFound      ErrorKind = "OwnerNotFound"
	KindEnterpriseNotFound ErrorKind = "EnterpriseNotFound"
	KindNotFound           ErrorKind = "NotFound"
	KindConflict           ErrorKind = "Conflict"
	KindInvalidTransition  ErrorKind = "InvalidTransition"
	KindInvalidInput       ErrorKind = "InvalidInput"
	KindInternal           ErrorKind = "Internal"
)

// Result is the envelope every operation returns. On success Data holds the
// payload; on failure ErrorKind and Message describe the problem.
type Result[T any] struct {
	Success   bool
	ErrorKind ErrorKind
	Message   string
	Data      T
}

func ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func fail[T any](kind ErrorKind, message string) Result[T] {
	return Result[T]{ErrorKind: kind, Message: message}
}

// classify maps an error to its kind and client-facing message. Only input
// errors echo the error text; everything else uses a fixed message so no
// storage detail leaks out.
func classify(err error) (ErrorKind, string) {
	ownerMissing := errors.Is(err, errs.ErrOwnerNotFound)
	enterpriseMissing := errors.Is(err, errs.ErrEnterpriseNotFound)

	switch {
	case ownerMissing && enterpriseMissing:
		return KindOwnerNotFound, "owner account and enterprise do not exist"
	case ownerMissing:
		return KindOwnerNotFound, "owner account does not exist"
	case enterpriseMissing:
		return KindEnterpriseNotFound, "enterprise does not exist"
	case errors.Is(err, errs.ErrObjectNotFound):
		return KindNotFound, "shipment not found"
	case errors.Is(err, errs.ErrConflict):
		return KindConflict, "shipment was modified concurrently, retry the request"
	case errors.Is(err, errs.ErrInvalidTransition):
		return KindInvalidTransition, invalidTransitionMessage(err)
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return KindInvalidInput, err.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindInternal, "request was cancelled"
	default:
		return KindInternal, "internal error"
	}
}

func invalidTransitionMessage(err error) string {
	var transitionErr *errs.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return "status cannot change from " + transitionErr.From + " to " + transitionErr.To
	}
	return "status transition is not allowed"
}
