package jsonrpc2

import "go.uber.org/zap"

// Option configures an engine at construction time using the usual
// functional-options idiom.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

func newOptions(opts ...Option) *options {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the structured logger an engine uses for request/response
// diagnostics. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
