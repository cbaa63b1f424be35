package ardoq

import (
	"context"
	"sync"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/logging"
)

// Resolution is the result of resolving one dependency.
type Resolution struct {
	ResolvedDependency
	Status ComponentStatus `json:"status"`
}

// Cache holds resolved dependencies by key. Implementations must be safe for
// concurrent use. The resolver does not hold a lock across get and set, so
// two concurrent resolutions of an unseen name may both reach the store.
type Cache interface {
	Get(key string) (ResolvedDependency, bool)
	Set(key string, dep ResolvedDependency)
}

// Resolver finds or creates remote components for dependencies.
type Resolver struct {
	store      Store
	workspaces Workspaces
	cache      Cache
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCache sets the resolver cache.
func WithCache(c Cache) ResolverOption {
	return func(r *Resolver) {
		if c != nil {
			r.cache = c
		}
	}
}

// NewResolver creates a resolver backed by store.
func NewResolver(store Store, workspaces Workspaces, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		store:      store,
		workspaces: workspaces,
		cache:      NewMapCache(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the remote component for dep in workspace w.
//
// A cached entry is used only when its name and version both equal dep.
// A rejected create yields StatusError with a nil error and nothing cached.
// A failed search is returned as an error and no create is attempted.
func (r *Resolver) Resolve(ctx context.Context, dep Dependency, w Workspace) (Resolution, error) {
	cfg, ok := r.workspaces.Lookup(w)
	if !ok {
		return Resolution{}, errors.NewConfigError("workspaces", "unknown workspace "+w.String(), nil)
	}

	key := cacheKey(w, dep.Name)
	if cached, ok := r.cache.Get(key); ok && cached.Dependency.Equal(dep) {
		logging.FromContext(ctx).Debug().
			Str("dependency", dep.Name).
			Str("component_id", cached.ComponentID).
			Msg("Found cached component")
		return Resolution{ResolvedDependency: cached, Status: StatusExisting}, nil
	}

	body := ComponentBody{RootWorkspace: cfg.ID, Name: dep.Name, TypeID: cfg.ComponentType}

	var (
		component Component
		status    ComponentStatus
		err       error
	)
	if finder, ok := r.store.(ComponentFinder); ok {
		component, status, err = finder.FindOrCreateComponent(ctx, body)
	} else {
		component, status, err = r.findOrCreate(ctx, body)
	}
	if err != nil {
		return Resolution{ResolvedDependency: ResolvedDependency{Dependency: dep}, Status: StatusError}, err
	}
	if status == StatusError || component.ID == "" {
		return Resolution{ResolvedDependency: ResolvedDependency{Dependency: dep}, Status: StatusError}, nil
	}

	resolved := ResolvedDependency{Dependency: dep, ComponentID: component.ID}
	r.cache.Set(key, resolved)
	return Resolution{ResolvedDependency: resolved, Status: status}, nil
}

// findOrCreate searches and then creates. The two steps are not atomic.
func (r *Resolver) findOrCreate(ctx context.Context, body ComponentBody) (Component, ComponentStatus, error) {
	logger := logging.FromContext(ctx)

	matches, err := r.store.SearchComponent(ctx, body.RootWorkspace, body.Name)
	if err != nil {
		return Component{}, StatusError, errors.WrapResource("search", "component", body.Name, err)
	}
	if len(matches) > 0 {
		logger.Debug().Str("dependency", body.Name).Str("component_id", matches[0].ID).Msg("Found component")
		return matches[0], StatusExisting, nil
	}

	created, err := r.store.CreateComponent(ctx, body)
	if err != nil {
		logger.Error().Err(err).Str("dependency", body.Name).Msg("Unable to create component")
		return Component{}, StatusError, nil
	}
	logger.Debug().Str("dependency", body.Name).Str("component_id", created.ID).Msg("Created component")
	return created, StatusCreated, nil
}

// VCSHostingComponent resolves a hosting location and returns its id,
// or "" when it could not be created.
func (r *Resolver) VCSHostingComponent(ctx context.Context, name string) (string, error) {
	return r.componentID(ctx, name, VCSHosting)
}

// CodeRepositoryComponent resolves a code repository and returns its id,
// or "" when it could not be created.
func (r *Resolver) CodeRepositoryComponent(ctx context.Context, name string) (string, error) {
	return r.componentID(ctx, name, CodeRepository)
}

func (r *Resolver) componentID(ctx context.Context, name string, w Workspace) (string, error) {
	res, err := r.Resolve(ctx, Dependency{Name: name}, w)
	if err != nil {
		return "", err
	}
	if res.Status == StatusError {
		return "", nil
	}
	return res.ComponentID, nil
}

func cacheKey(w Workspace, name string) string {
	return w.String() + "/" + name
}

// MapCache is an unbounded Cache guarded by a read-write mutex.
type MapCache struct {
	mu      sync.RWMutex
	entries map[string]ResolvedDependency
}

// NewMapCache creates an empty MapCache.
func NewMapCache() *MapCache {
	return &MapCache{entries: make(map[string]ResolvedDependency)}
}

// Get implements Cache.
func (c *MapCache) Get(key string) (ResolvedDependency, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dep, ok := c.entries[key]
	return dep, ok
}

// Set implements Cache.
func (c *MapCache) Set(key string, dep ResolvedDependency) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = dep
}
