package jsonrpc2

import (
	"context"

	"go.uber.org/zap"
)

// engine holds the state shared by every protocol variant: the procedure
// registry and the logger. ServerV2 and ServerV1 each embed one and differ
// only in wire shape; HybridServer wraps one of each.
type engine struct {
	registry *ProcedureRegistry
	logger   *zap.Logger
}

func newEngine(registry *ProcedureRegistry, opts ...Option) *engine {
	o := newOptions(opts...)
	return &engine{registry: registry, logger: o.logger}
}

// call is one parsed, version-agnostic request: a method name, its params,
// and whether the caller intends a notification (no response expected).
type call struct {
	id                 ID
	method             string
	params             Value
	notificationIntent bool
}

// outcome is the result of dispatching a single call. For a notification
// that completed without producing a response, result and rpcErr are both
// nil and respond is false.
type outcome struct {
	id      ID
	result  Value
	rpcErr  *Error
	respond bool
}

// dispatch runs the shared lookup → kind-reconciliation → params-validation
// → handler-invocation pipeline. It is identical across protocol versions;
// only request parsing and response encoding differ, which is why wire.go
// and server_v1.go/server_v2.go own those instead of this file.
//
// A missing method always produces a MethodNotFound response, even for a
// notification-intent call: there is no registered descriptor to reconcile
// kind against, so this has to be caught before the method/notification
// mismatch checks below, and — unlike those checks — it is not suppressed
// by notification intent.
func (e *engine) dispatch(ctx context.Context, c call) outcome {
	desc, found := e.registry.Lookup(c.method)
	if !found {
		e.logger.Debug("method not found", zap.String("method", c.method))
		return outcome{id: c.id, rpcErr: NewError(MethodNotFound), respond: true}
	}

	if c.notificationIntent && desc.Kind == Method {
		return outcome{id: c.id, rpcErr: NewError(ProcedureIsMethod), respond: true}
	}
	if !c.notificationIntent && desc.Kind == Notification {
		return outcome{id: c.id, rpcErr: NewError(ProcedureIsNotification), respond: true}
	}

	if !Validate(desc, c.params) {
		if desc.Kind == Notification {
			return outcome{id: c.id, respond: false}
		}
		return outcome{id: c.id, rpcErr: NewError(InvalidParams), respond: true}
	}

	h, _ := e.registry.handlerFor(c.method)

	if desc.Kind == Notification {
		if err := invokeNotification(ctx, h.notification, c.params); err != nil {
			e.logger.Warn("notification handler error", zap.String("method", c.method), zap.Error(err))
		}
		return outcome{id: c.id, respond: false}
	}

	result, rpcErr := invokeMethod(ctx, h.method, c.params)
	if rpcErr != nil {
		return outcome{id: c.id, rpcErr: rpcErr, respond: true}
	}
	return outcome{id: c.id, result: result, respond: true}
}
