package adapter

import (
	"sync"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
)

// Hook function types for remote writes
type (
	// ComponentCreatedHook is called when a component is created remotely
	ComponentCreatedHook func(workspace ardoq.Workspace, component ardoq.ResolvedDependency)

	// ReferenceCreatedHook is called when a reference is created remotely
	ReferenceCreatedHook func(body ardoq.ReferenceBody)

	// ReferenceUpdatedHook is called when a reference version is updated remotely
	ReferenceUpdatedHook func(id string, body ardoq.ReferenceBody)
)

// Observer receives every resolution and reconciliation, including no-ops.
type Observer interface {
	ComponentResolved(status ardoq.ComponentStatus)
	ReferenceReconciled(outcome ardoq.ReferenceOutcome, err error)
}

// hooks manages event callbacks for remote writes
type hooks struct {
	mu                 sync.RWMutex
	onComponentCreated []ComponentCreatedHook
	onReferenceCreated []ReferenceCreatedHook
	onReferenceUpdated []ReferenceUpdatedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnComponentCreated registers a callback for when components are created
func (h *hooks) OnComponentCreated(fn ComponentCreatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onComponentCreated = append(h.onComponentCreated, fn)
}

// OnReferenceCreated registers a callback for when references are created
func (h *hooks) OnReferenceCreated(fn ReferenceCreatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReferenceCreated = append(h.onReferenceCreated, fn)
}

// OnReferenceUpdated registers a callback for when references are updated
func (h *hooks) OnReferenceUpdated(fn ReferenceUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReferenceUpdated = append(h.onReferenceUpdated, fn)
}

func (h *hooks) componentCreated(w ardoq.Workspace, dep ardoq.ResolvedDependency) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onComponentCreated {
		hook(w, dep)
	}
}

// referenceWritten triggers the hooks matching an executed operation
func (h *hooks) referenceWritten(op ardoq.Operation) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch op := op.(type) {
	case ardoq.BatchCreate:
		for _, hook := range h.onReferenceCreated {
			hook(op.Body)
		}
	case ardoq.BatchUpdate:
		for _, hook := range h.onReferenceUpdated {
			hook(op.ID, op.Body)
		}
	}
}
