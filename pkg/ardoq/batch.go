package ardoq

import (
	"sync"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/constants"
)

// Operation is a reference write decided but not yet executed.
// It is either a BatchCreate or a BatchUpdate; a nil Operation means no write.
type Operation interface {
	isOperation()
}

// BatchCreate creates a reference.
type BatchCreate struct {
	Body ReferenceBody `json:"body"`
}

// BatchUpdate updates a reference under an optimistic-concurrency precondition.
type BatchUpdate struct {
	ID             string        `json:"id"`
	IfVersionMatch string        `json:"ifVersionMatch"`
	Body           ReferenceBody `json:"body"`
}

func (BatchCreate) isOperation() {}
func (BatchUpdate) isOperation() {}

// Decide returns the write needed to bring the edge from source to target up
// to date, given the existing reference (nil when absent). It performs no I/O.
//
// An absent edge is created. An existing edge is updated only when version is
// non-empty and differs from the stored version, including an empty one.
func Decide(existing *Reference, source, target string, rel Relationship, version string) Operation {
	body := ReferenceBody{
		Source:  source,
		Target:  target,
		Type:    rel,
		Version: version,
	}
	if existing == nil {
		return BatchCreate{Body: body}
	}
	if version != "" && existing.Version != version {
		return BatchUpdate{
			ID:             existing.ID,
			IfVersionMatch: constants.IfVersionMatchLatest,
			Body:           body,
		}
	}
	return nil
}

// Batch accumulates operations for a single submission.
type Batch struct {
	mu      sync.Mutex
	creates []BatchCreate
	updates []BatchUpdate
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// Add queues op. It reports false for a nil operation.
func (b *Batch) Add(op Operation) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch op := op.(type) {
	case BatchCreate:
		b.creates = append(b.creates, op)
	case BatchUpdate:
		b.updates = append(b.updates, op)
	default:
		return false
	}
	return true
}

// Len returns the number of queued operations.
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.creates) + len(b.updates)
}

// Creates returns a copy of the queued creates.
func (b *Batch) Creates() []BatchCreate {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]BatchCreate(nil), b.creates...)
}

// Updates returns a copy of the queued updates.
func (b *Batch) Updates() []BatchUpdate {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]BatchUpdate(nil), b.updates...)
}
