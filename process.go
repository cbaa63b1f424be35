package adapter

import (
	"context"

	"github.com/agentstation/utc"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/logging"
)

// Report is one parsed dependency report for a code repository
type Report struct {
	// Repository is the code repository the report was produced for
	Repository string `json:"repository" yaml:"repository"`

	// VCSHost is where the repository is hosted; empty uses the configured default
	VCSHost string `json:"vcsHost,omitempty" yaml:"vcs_host,omitempty"`

	// Parser names the report format, for reporting only
	Parser string `json:"parser,omitempty" yaml:"parser,omitempty"`

	// Dependencies found in the report
	Dependencies []ardoq.Dependency `json:"dependencies" yaml:"dependencies"`
}

// Summary reports what Process did
type Summary struct {
	Repository   string               `json:"repository" yaml:"repository"`
	RepositoryID string               `json:"repositoryId" yaml:"repository_id"`
	VCSHostID    string               `json:"vcsHostId,omitempty" yaml:"vcs_host_id,omitempty"`
	Components   ardoq.Tally          `json:"components" yaml:"components"`
	References   ardoq.ReferenceTally `json:"references" yaml:"references"`
	Dependencies []ardoq.Resolution   `json:"dependencies" yaml:"dependencies"`
	Errors       []string             `json:"errors,omitempty" yaml:"errors,omitempty"`
	Batched      bool                 `json:"batched" yaml:"batched"`
	ProcessedAt  utc.Time             `json:"processedAt" yaml:"processed_at"`
}

// edge is a reference to reconcile
type edge struct {
	source, target string
	rel            ardoq.Relationship
	version        string
}

// Process mirrors a report: the repository is hosted in its VCS host and
// depends on every dependency. A failed repository resolution or a failed
// component search aborts the report. Failed references are counted and the
// report continues.
func (a *adapter) Process(ctx context.Context, report Report) (Summary, error) {
	if report.Repository == "" {
		return Summary{}, errors.NewValidationError("repository", "", "is required")
	}

	ctx = logging.WithRepository(a.withLogger(ctx), report.Repository)
	logger := logging.FromContext(ctx)

	summary := Summary{
		Repository:   report.Repository,
		Dependencies: make([]ardoq.Resolution, 0, len(report.Dependencies)),
		ProcessedAt:  utc.Now(),
	}
	var agg ardoq.Aggregator

	vcsHost := report.VCSHost
	if vcsHost == "" {
		vcsHost = a.vcsHost
	}
	if vcsHost != "" {
		res, err := a.ResolveComponent(ctx, ardoq.Dependency{Name: vcsHost}, ardoq.VCSHosting)
		if err != nil {
			return summary, err
		}
		if res.Status == ardoq.StatusError {
			summary.Errors = append(summary.Errors, "unable to create VCS hosting component "+vcsHost)
		}
		summary.VCSHostID = res.ComponentID
	}

	repo, err := a.ResolveComponent(ctx, ardoq.Dependency{Name: report.Repository}, ardoq.CodeRepository)
	if err != nil {
		return summary, err
	}
	if repo.Status == ardoq.StatusError {
		return summary, errors.NewResourceError("create", "component", report.Repository,
			errors.New("code repository component could not be created"))
	}
	summary.RepositoryID = repo.ComponentID

	edges := make([]edge, 0, len(report.Dependencies)+1)
	if summary.VCSHostID != "" {
		edges = append(edges, edge{source: repo.ComponentID, target: summary.VCSHostID, rel: ardoq.HostedIn})
	}

	for _, dep := range report.Dependencies {
		res, err := a.ResolveComponent(ctx, dep, ardoq.SoftwareFrameworks)
		if err != nil {
			summary.Components = agg.Components()
			return summary, err
		}
		agg.RecordComponent(res.Status)
		summary.Dependencies = append(summary.Dependencies, res)

		if res.Status == ardoq.StatusError {
			summary.Errors = append(summary.Errors, "unable to create component "+dep.FullName())
			continue
		}
		edges = append(edges, edge{source: repo.ComponentID, target: res.ComponentID, rel: ardoq.DependsOn, version: dep.Version})
	}

	if submitter, ok := a.store.(ardoq.BatchSubmitter); ok && a.batch {
		summary.Batched = true
		a.reconcileBatch(ctx, submitter, edges, &agg, &summary)
	} else {
		for _, e := range edges {
			outcome, err := a.ReconcileReference(ctx, e.source, e.target, e.rel, e.version)
			agg.RecordReference(outcome, err)
			if err != nil {
				summary.Errors = append(summary.Errors, err.Error())
			}
		}
	}

	summary.Components = agg.Components()
	summary.References = agg.References()

	logger.Info().
		Int("created", summary.Components.Created).
		Int("existing", summary.Components.Existing).
		Int("error", summary.Components.Error).
		Int("references_created", summary.References.Created).
		Int("references_updated", summary.References.Updated).
		Int("references_failed", summary.References.Failed).
		Msg("Processed dependency report")

	return summary, nil
}

// reconcileBatch plans every edge and submits the writes in one request
func (a *adapter) reconcileBatch(ctx context.Context, submitter ardoq.BatchSubmitter, edges []edge, agg *ardoq.Aggregator, summary *Summary) {
	batch := ardoq.NewBatch()
	var planned []ardoq.Operation

	edges, dropped := uniqueEdges(edges)
	for range dropped {
		agg.RecordReference(ardoq.ReferenceUnchanged, nil)
		a.referenceReconciled(ardoq.ReferenceUnchanged, nil)
	}

	for _, e := range edges {
		op, err := a.reconciler.Plan(ctx, e.source, e.target, e.rel, e.version)
		if err != nil {
			agg.RecordReference(ardoq.ReferenceUnchanged, err)
			a.referenceReconciled(ardoq.ReferenceUnchanged, err)
			summary.Errors = append(summary.Errors, err.Error())
			continue
		}
		if !batch.Add(op) {
			agg.RecordReference(ardoq.ReferenceUnchanged, nil)
			a.referenceReconciled(ardoq.ReferenceUnchanged, nil)
			continue
		}
		planned = append(planned, op)
	}

	if batch.Len() == 0 {
		return
	}

	_, err := submitter.SubmitBatch(ctx, batch)
	if err != nil {
		err = errors.WrapResource("submit", "batch", "", err)
		logging.FromContext(ctx).Error().Err(err).Int("operations", batch.Len()).Msg("Batch submission failed")
		summary.Errors = append(summary.Errors, err.Error())
	}

	for _, op := range planned {
		outcome := ardoq.ReferenceCreated
		if _, ok := op.(ardoq.BatchUpdate); ok {
			outcome = ardoq.ReferenceUpdated
		}
		agg.RecordReference(outcome, err)
		a.referenceReconciled(outcome, err)
		if err == nil {
			a.referenceWritten(op)
		}
	}
}

// uniqueEdges collapses edges sharing a source and target into one, keeping
// the position of the first and the version of the last. Planning runs before
// any write, so duplicates would otherwise each plan a create.
func uniqueEdges(edges []edge) ([]edge, int) {
	type key struct{ source, target string }
	index := make(map[key]int, len(edges))
	unique := make([]edge, 0, len(edges))
	for _, e := range edges {
		k := key{e.source, e.target}
		if i, ok := index[k]; ok {
			unique[i] = e
			continue
		}
		index[k] = len(unique)
		unique = append(unique, e)
	}
	return unique, len(edges) - len(unique)
}
