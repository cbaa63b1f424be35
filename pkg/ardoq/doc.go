// Package ardoq mirrors a dependency graph into the Ardoq architecture store.
//
// The package owns reconciliation: deciding, for a component or a reference,
// whether a remote record already exists, must be created, or needs its
// version field updated. Transport is not part of this package; callers inject
// a Store.
//
//	resolver := ardoq.NewResolver(store, workspaces)
//	res, err := resolver.Resolve(ctx, ardoq.Dependency{Name: "lodash", Version: "4.17.21"}, ardoq.SoftwareFrameworks)
//	if err != nil {
//		return err // the search itself failed
//	}
//	if res.Status == ardoq.StatusError {
//		// the create was rejected; nothing was cached
//	}
//
//	reconciler := ardoq.NewReconciler(store)
//	outcome, err := reconciler.Reconcile(ctx, repoID, res.ComponentID, ardoq.DependsOn, "4.17.21")
package ardoq
