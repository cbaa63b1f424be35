// Package adapter mirrors build-tool dependency reports into Ardoq.
//
// An Adapter resolves the hosting location, the code repository and every
// dependency of a report to remote components, then reconciles the
// references between them:
//
//	a, err := adapter.New(
//		adapter.WithAPI("https://org.ardoq.com", apiKey),
//		adapter.WithWorkspaces(workspaces),
//	)
//	summary, err := a.Process(ctx, adapter.Report{
//		Repository:   "my-service",
//		VCSHost:      "github.com/hmcts",
//		Dependencies: deps,
//	})
package adapter

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hmcts/dtsse-ardoq-adapter/internal/ardoqapi"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/transport"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/logging"
)

// Adapter mirrors dependency graphs into the remote store
type Adapter interface {
	// ResolveComponent finds or creates the component for dep in workspace w
	ResolveComponent(ctx context.Context, dep ardoq.Dependency, w ardoq.Workspace) (ardoq.Resolution, error)

	// CreateVcsHostingComponent returns the id of the hosting location, or "" if it could not be created
	CreateVcsHostingComponent(ctx context.Context, name string) (string, error)

	// CreateCodeRepoComponent returns the id of the code repository, or "" if it could not be created
	CreateCodeRepoComponent(ctx context.Context, name string) (string, error)

	// ReconcileReference creates or updates the edge from source to target
	ReconcileReference(ctx context.Context, source, target string, rel ardoq.Relationship, version string) (ardoq.ReferenceOutcome, error)

	// Process mirrors a whole report
	Process(ctx context.Context, report Report) (Summary, error)

	// OnComponentCreated registers a callback for when components are created
	OnComponentCreated(ComponentCreatedHook)

	// OnReferenceCreated registers a callback for when references are created
	OnReferenceCreated(ReferenceCreatedHook)

	// OnReferenceUpdated registers a callback for when references are updated
	OnReferenceUpdated(ReferenceUpdatedHook)
}

// adapter is the internal implementation of the Adapter interface
type adapter struct {
	*hooks

	store      ardoq.Store
	resolver   *ardoq.Resolver
	reconciler *ardoq.Reconciler
	batch      bool
	vcsHost    string
	logger     *zerolog.Logger
	observer   Observer
}

// New creates a new Adapter with the given options
func New(opts ...Option) (Adapter, error) {
	cfg := &config{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errors.NewConfigError("adapter", "applying options", err)
		}
	}

	if cfg.workspaces == nil {
		return nil, errors.NewConfigError("adapter", "workspaces are required", nil)
	}

	store := cfg.store
	if store == nil {
		if cfg.apiURL == "" {
			return nil, errors.NewConfigError("adapter", "either a store or an API URL is required", nil)
		}
		client, err := transport.New(cfg.apiURL, cfg.apiKey,
			transport.WithTimeout(cfg.httpTimeout),
			transport.WithAuthenticator(cfg.auth),
		)
		if err != nil {
			return nil, err
		}
		store = ardoqapi.New(client)
	}

	logger := cfg.logger
	if logger == nil {
		logger = logging.Default()
	}

	return &adapter{
		hooks:      newHooks(),
		store:      store,
		resolver:   ardoq.NewResolver(store, *cfg.workspaces, ardoq.WithCache(cfg.cache)),
		reconciler: ardoq.NewReconciler(store),
		batch:      cfg.batch,
		vcsHost:    cfg.vcsHost,
		logger:     logger,
		observer:   cfg.observer,
	}, nil
}

// withLogger attaches the adapter logger unless the caller already did
func (a *adapter) withLogger(ctx context.Context) context.Context {
	if logging.FromContext(ctx) == logging.Default() {
		return logging.WithLogger(ctx, a.logger)
	}
	return ctx
}

// ResolveComponent implements Adapter
func (a *adapter) ResolveComponent(ctx context.Context, dep ardoq.Dependency, w ardoq.Workspace) (ardoq.Resolution, error) {
	ctx = logging.WithWorkspace(a.withLogger(ctx), w.String())
	ctx = logging.WithDependency(ctx, dep.Name, dep.Version)

	res, err := a.resolver.Resolve(ctx, dep, w)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Component search failed")
		return res, err
	}

	if a.observer != nil {
		a.observer.ComponentResolved(res.Status)
	}
	if res.Status == ardoq.StatusCreated {
		a.componentCreated(w, res.ResolvedDependency)
	}
	return res, nil
}

// CreateVcsHostingComponent implements Adapter
func (a *adapter) CreateVcsHostingComponent(ctx context.Context, name string) (string, error) {
	return a.componentID(ctx, name, ardoq.VCSHosting)
}

// CreateCodeRepoComponent implements Adapter
func (a *adapter) CreateCodeRepoComponent(ctx context.Context, name string) (string, error) {
	return a.componentID(ctx, name, ardoq.CodeRepository)
}

func (a *adapter) componentID(ctx context.Context, name string, w ardoq.Workspace) (string, error) {
	res, err := a.ResolveComponent(ctx, ardoq.Dependency{Name: name}, w)
	if err != nil || res.Status == ardoq.StatusError {
		return "", err
	}
	return res.ComponentID, nil
}

// ReconcileReference implements Adapter
func (a *adapter) ReconcileReference(ctx context.Context, source, target string, rel ardoq.Relationship, version string) (ardoq.ReferenceOutcome, error) {
	ctx = a.withLogger(ctx)

	op, err := a.reconciler.Plan(ctx, source, target, rel, version)
	if err != nil {
		a.referenceReconciled(ardoq.ReferenceUnchanged, err)
		return ardoq.ReferenceUnchanged, err
	}

	outcome, err := a.reconciler.Execute(ctx, op)
	a.referenceReconciled(outcome, err)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).
			Str("source", source).
			Str("target", target).
			Msg("Reference reconciliation failed")
		return outcome, err
	}
	a.referenceWritten(op)
	return outcome, nil
}

func (a *adapter) referenceReconciled(outcome ardoq.ReferenceOutcome, err error) {
	if a.observer != nil {
		a.observer.ReferenceReconciled(outcome, err)
	}
}
