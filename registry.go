package jsonrpc2

import (
	"fmt"
	"sync"
)

// entry pairs a descriptor with its handler reference. Registry owns the
// entries; the handler closures themselves are owned externally, the
// registry just holds non-owning references to them.
type entry struct {
	descriptor *ProcedureDescriptor
	handler    handlerRef
}

// ProcedureRegistry is the mapping name → (ProcedureDescriptor, HandlerRef).
// Registration is the only mutation and is expected to happen during
// startup, before an engine begins serving; the internal RWMutex exists
// purely so a caller that registers late does not race a concurrent reader,
// not to support a documented dynamic-registration feature.
type ProcedureRegistry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewProcedureRegistry returns an empty registry.
func NewProcedureRegistry() *ProcedureRegistry {
	return &ProcedureRegistry{entries: make(map[string]*entry)}
}

// AddMethod registers a METHOD descriptor with its handler. It fails if the
// name is already registered.
func (r *ProcedureRegistry) AddMethod(d *ProcedureDescriptor, h MethodHandler) error {
	if d.Kind != Method {
		return fmt.Errorf("jsonrpc2: %q is not a METHOD descriptor", d.Name)
	}
	return r.add(d, handlerRef{method: h})
}

// AddNotification registers a NOTIFICATION descriptor with its handler. It
// fails if the name is already registered.
func (r *ProcedureRegistry) AddNotification(d *ProcedureDescriptor, h NotificationHandler) error {
	if d.Kind != Notification {
		return fmt.Errorf("jsonrpc2: %q is not a NOTIFICATION descriptor", d.Name)
	}
	return r.add(d, handlerRef{notification: h})
}

func (r *ProcedureRegistry) add(d *ProcedureDescriptor, h handlerRef) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.entries[d.Name]; dup {
		return fmt.Errorf("jsonrpc2: procedure %q already registered", d.Name)
	}
	r.entries[d.Name] = &entry{descriptor: d, handler: h}
	return nil
}

// Lookup returns the descriptor registered under name, if any.
func (r *ProcedureRegistry) Lookup(name string) (*ProcedureDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.descriptor, true
}

// handlerFor returns the handler reference registered under name.
func (r *ProcedureRegistry) handlerFor(name string) (handlerRef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return handlerRef{}, false
	}
	return e.handler, true
}

// Descriptors returns a snapshot slice of every registered descriptor, in no
// particular order.
func (r *ProcedureRegistry) Descriptors() []*ProcedureDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*ProcedureDescriptor, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.descriptor)
	}
	return out
}
