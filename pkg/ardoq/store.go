package ardoq

import "context"

// Component is a node in the remote graph.
type Component struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ComponentBody describes a component to create.
type ComponentBody struct {
	RootWorkspace string `json:"rootWorkspace"`
	Name          string `json:"name"`
	TypeID        string `json:"typeId"`
}

// Reference is an edge stored remotely.
type Reference struct {
	ID      string `json:"id"`
	Source  string `json:"source,omitempty"`
	Target  string `json:"target,omitempty"`
	Version string `json:"version,omitempty"`
}

// ReferenceBody describes the fields of a reference to create or update.
type ReferenceBody struct {
	Source  string       `json:"source"`
	Target  string       `json:"target"`
	Type    Relationship `json:"type"`
	Version string       `json:"version,omitempty"`
}

// Store is the remote component and reference store.
//
// Searches return an empty slice when nothing matches and an error only when
// the search itself failed, so the two are never confused.
type Store interface {
	// SearchComponent lists components named name in the root workspace.
	SearchComponent(ctx context.Context, rootWorkspace, name string) ([]Component, error)

	// CreateComponent creates a component and returns it with its new id.
	CreateComponent(ctx context.Context, body ComponentBody) (Component, error)

	// SearchReference lists references from source to target of any type.
	SearchReference(ctx context.Context, source, target string) ([]Reference, error)

	// CreateReference creates a reference.
	CreateReference(ctx context.Context, body ReferenceBody) (Reference, error)

	// UpdateReferenceVersion sets the version field of reference id,
	// provided the remote copy is still at its latest revision.
	// A rejected precondition satisfies errors.IsPreconditionFailed.
	UpdateReferenceVersion(ctx context.Context, id, version string) error
}

// ComponentFinder is implemented by stores that can find or create a
// component in one atomic step. The resolver prefers it when available.
type ComponentFinder interface {
	// FindOrCreateComponent returns StatusExisting or StatusCreated with the
	// component, or StatusError when the create was rejected. An error means
	// the lookup failed.
	FindOrCreateComponent(ctx context.Context, body ComponentBody) (Component, ComponentStatus, error)
}

// BatchSubmitter is implemented by stores that accept several reference
// writes in one request.
type BatchSubmitter interface {
	SubmitBatch(ctx context.Context, batch *Batch) (BatchResult, error)
}

// BatchResult counts the writes a batch submission applied.
type BatchResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}
