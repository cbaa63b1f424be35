package ardoq

import (
	"context"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/logging"
)

// Reconciler keeps remote references in line with the local graph.
type Reconciler struct {
	store Store
}

// NewReconciler creates a reconciler backed by store.
func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store}
}

// Plan searches for the edge from source to target and returns the write
// needed, without executing it. The relationship is not part of the search;
// at most one edge per ordered pair is assumed.
func (r *Reconciler) Plan(ctx context.Context, source, target string, rel Relationship, version string) (Operation, error) {
	refs, err := r.store.SearchReference(ctx, source, target)
	if err != nil {
		return nil, errors.WrapResource("search", "reference", source+"->"+target, err)
	}

	var existing *Reference
	if len(refs) > 0 {
		existing = &refs[0]
	}
	return Decide(existing, source, target, rel, version), nil
}

// Reconcile creates, updates or leaves alone the edge from source to target.
// Store failures, including a rejected precondition, are returned unretried.
func (r *Reconciler) Reconcile(ctx context.Context, source, target string, rel Relationship, version string) (ReferenceOutcome, error) {
	op, err := r.Plan(ctx, source, target, rel, version)
	if err != nil {
		return ReferenceUnchanged, err
	}
	return r.Execute(ctx, op)
}

// Execute applies a single operation against the store.
func (r *Reconciler) Execute(ctx context.Context, op Operation) (ReferenceOutcome, error) {
	logger := logging.FromContext(ctx)

	switch op := op.(type) {
	case nil:
		return ReferenceUnchanged, nil
	case BatchCreate:
		if _, err := r.store.CreateReference(ctx, op.Body); err != nil {
			return ReferenceUnchanged, errors.WrapResource("create", "reference", op.Body.Source+"->"+op.Body.Target, err)
		}
		logger.Debug().
			Str("source", op.Body.Source).
			Str("target", op.Body.Target).
			Stringer("relationship", op.Body.Type).
			Msg("Created reference")
		return ReferenceCreated, nil
	case BatchUpdate:
		if err := r.store.UpdateReferenceVersion(ctx, op.ID, op.Body.Version); err != nil {
			return ReferenceUnchanged, errors.WrapResource("update", "reference", op.ID, err)
		}
		logger.Debug().
			Str("reference_id", op.ID).
			Str("version", op.Body.Version).
			Msg("Updated reference version")
		return ReferenceUpdated, nil
	default:
		return ReferenceUnchanged, errors.NewValidationError("operation", op, "unsupported operation")
	}
}
