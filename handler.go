package jsonrpc2

import (
	"context"

	"github.com/pkg/errors"
)

// MethodHandler is user code invoked for a registered METHOD. It returns
// the result Value on success, or an error — either a *Error carrying a
// server-defined code, or any other error, which the engine wraps as
// InternalError.
//
// The registry holds the closure; the engine composes whatever (Value,
// error) it returns into a response envelope itself, rather than handing the
// handler a reply-writer to call directly.
type MethodHandler func(ctx context.Context, params Value) (Value, error)

// NotificationHandler is user code invoked for a registered NOTIFICATION.
// It returns nothing, since notifications never produce a response; a panic
// inside it is recovered and logged by the engine.
type NotificationHandler func(ctx context.Context, params Value)

// handlerRef is the registry's non-owning reference to user handler code;
// exactly one of the two fields is populated, matching the descriptor's Kind.
type handlerRef struct {
	method       MethodHandler
	notification NotificationHandler
}

// invokeMethod calls the method handler, recovering from a panic and
// turning it into an InternalError — the engine boundary never lets a
// handler panic propagate to the caller's goroutine.
func invokeMethod(ctx context.Context, h MethodHandler, params Value) (result Value, rpcErr *Error) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.Errorf("handler panic: %v", r)
			rpcErr = Errorf(InternalError, "%s", err.Error())
		}
	}()

	v, err := h(ctx, params)
	if err != nil {
		if e, ok := AsError(err); ok {
			return Value{}, e
		}
		return Value{}, Errorf(InternalError, "%s", err.Error())
	}
	return v, nil
}

// invokeNotification calls the notification handler, recovering from a
// panic. The returned error, if any, is for logging only — a notification
// handler failure never reaches the wire; notifications never produce
// responses, even when erroneous.
func invokeNotification(ctx context.Context, h NotificationHandler, params Value) (panicErr error) {
	defer func() {
		if r := recover(); r != nil {
			panicErr = errors.Errorf("notification handler panic: %v", r)
		}
	}()
	h(ctx, params)
	return nil
}
