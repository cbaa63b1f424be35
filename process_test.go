package adapter_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "github.com/hmcts/dtsse-ardoq-adapter"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq/ardoqtest"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
)

func report() adapter.Report {
	return adapter.Report{
		Repository: "my-service",
		VCSHost:    "github.com/hmcts",
		Parser:     "gradle",
		Dependencies: []ardoq.Dependency{
			{Name: "org.slf4j:slf4j-api", Version: "2.0.9"},
			{Name: "com.google.guava:guava", Version: "31.1-jre"},
		},
	}
}

func TestProcess(t *testing.T) {
	store := ardoqtest.NewStore()
	guava := store.AddComponent(frameworksWS, "com.google.guava:guava")
	a := newAdapter(t, store)

	summary, err := a.Process(context.Background(), report())
	require.NoError(t, err)

	assert.Equal(t, "my-service", summary.Repository)
	assert.NotEmpty(t, summary.RepositoryID)
	assert.NotEmpty(t, summary.VCSHostID)
	assert.Equal(t, ardoq.Tally{Created: 1, Existing: 1}, summary.Components)
	assert.Equal(t, ardoq.ReferenceTally{Created: 3}, summary.References)
	assert.False(t, summary.Batched)
	assert.Empty(t, summary.Errors)
	assert.False(t, summary.ProcessedAt.IsZero())

	_, rel, ok := store.Reference(summary.RepositoryID, summary.VCSHostID)
	require.True(t, ok)
	assert.Equal(t, ardoq.HostedIn, rel)

	ref, rel, ok := store.Reference(summary.RepositoryID, guava)
	require.True(t, ok)
	assert.Equal(t, ardoq.DependsOn, rel)
	assert.Equal(t, "31.1-jre", ref.Version)
}

func TestProcessIsIdempotent(t *testing.T) {
	store := ardoqtest.NewStore()
	a := newAdapter(t, store)
	ctx := context.Background()

	_, err := a.Process(ctx, report())
	require.NoError(t, err)

	second, err := a.Process(ctx, report())
	require.NoError(t, err)
	assert.Equal(t, ardoq.Tally{Existing: 2}, second.Components)
	assert.Equal(t, ardoq.ReferenceTally{Unchanged: 3}, second.References)
	assert.Equal(t, 3, store.ReferenceCount())
}

func TestProcessVersionBump(t *testing.T) {
	store := ardoqtest.NewStore()
	a := newAdapter(t, store)
	ctx := context.Background()

	_, err := a.Process(ctx, report())
	require.NoError(t, err)

	bumped := report()
	bumped.Dependencies[0].Version = "2.0.10"
	summary, err := a.Process(ctx, bumped)
	require.NoError(t, err)
	assert.Equal(t, ardoq.ReferenceTally{Updated: 1, Unchanged: 2}, summary.References)
	require.Len(t, store.Updates, 1)
	assert.Contains(t, store.Updates[0], "=2.0.10")
}

func TestProcessUsesDefaultVCSHost(t *testing.T) {
	store := ardoqtest.NewStore()
	a := newAdapter(t, store, adapter.WithVCSHost("github.com/hmcts"))

	r := report()
	r.VCSHost = ""
	summary, err := a.Process(context.Background(), r)
	require.NoError(t, err)
	assert.NotEmpty(t, summary.VCSHostID)
}

func TestProcessWithoutVCSHost(t *testing.T) {
	store := ardoqtest.NewStore()
	a := newAdapter(t, store)

	r := report()
	r.VCSHost = ""
	summary, err := a.Process(context.Background(), r)
	require.NoError(t, err)
	assert.Empty(t, summary.VCSHostID)
	assert.Equal(t, 2, summary.References.Created)
}

func TestProcessComponentCreateFailure(t *testing.T) {
	store := ardoqtest.NewStore()
	store.AddComponent(hostingWS, "github.com/hmcts")
	store.AddComponent(repoWS, "my-service")
	store.CreateComponentErr = errors.NewAPIError("ardoq", 400, "rejected")
	a := newAdapter(t, store)

	summary, err := a.Process(context.Background(), report())
	require.NoError(t, err)
	assert.Equal(t, ardoq.Tally{Error: 2}, summary.Components)
	assert.Equal(t, ardoq.ReferenceTally{Created: 1}, summary.References)
	assert.Len(t, summary.Errors, 2)
}

func TestProcessRepositoryFailureAborts(t *testing.T) {
	store := ardoqtest.NewStore()
	store.CreateComponentErr = errors.New("rejected")
	a := newAdapter(t, store)

	r := report()
	r.VCSHost = ""
	_, err := a.Process(context.Background(), r)
	require.Error(t, err)
	assert.Zero(t, store.Calls().SearchReference)
}

func TestProcessSearchFailureAborts(t *testing.T) {
	store := ardoqtest.NewStore()
	store.SearchComponentErr = errors.NewAPIError("ardoq", 500, "down")
	a := newAdapter(t, store)

	_, err := a.Process(context.Background(), report())
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
	assert.Zero(t, store.Calls().CreateComponent)
}

func TestProcessReferenceFailuresAreCounted(t *testing.T) {
	store := ardoqtest.NewStore()
	store.CreateReferenceErr = errors.NewAPIError("ardoq", 400, "bad reference")
	a := newAdapter(t, store)

	summary, err := a.Process(context.Background(), report())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.References.Failed)
	assert.Len(t, summary.Errors, 3)
}

func TestProcessBatch(t *testing.T) {
	store := ardoqtest.NewBatchStore()
	obs := newCountingObserver()
	a := newAdapter(t, store, adapter.WithBatch(true), adapter.WithObserver(obs))

	var created int
	a.OnReferenceCreated(func(ardoq.ReferenceBody) { created++ })

	summary, err := a.Process(context.Background(), report())
	require.NoError(t, err)
	assert.True(t, summary.Batched)
	assert.Equal(t, ardoq.ReferenceTally{Created: 3}, summary.References)
	assert.Zero(t, store.Calls().CreateReference)
	assert.Equal(t, 1, store.Calls().SubmitBatch)
	assert.Equal(t, 3, store.ReferenceCount())
	assert.Equal(t, 3, created)
	assert.Equal(t, 3, obs.references["created"])

	// Nothing changed, so nothing is submitted.
	summary, err = a.Process(context.Background(), report())
	require.NoError(t, err)
	assert.Equal(t, ardoq.ReferenceTally{Unchanged: 3}, summary.References)
	assert.Equal(t, 1, store.Calls().SubmitBatch)
}

func TestProcessBatchCollapsesDuplicateDependencies(t *testing.T) {
	duplicated := adapter.Report{
		Repository: "my-service",
		Dependencies: []ardoq.Dependency{
			{Name: "lodash", Version: "1.0.0"},
			{Name: "lodash", Version: "1.0.0"},
		},
	}

	sequential := ardoqtest.NewStore()
	seqSummary, err := newAdapter(t, sequential).Process(context.Background(), duplicated)
	require.NoError(t, err)

	store := ardoqtest.NewBatchStore()
	summary, err := newAdapter(t, store, adapter.WithBatch(true)).Process(context.Background(), duplicated)
	require.NoError(t, err)

	assert.True(t, summary.Batched)
	assert.Equal(t, sequential.ReferenceCount(), store.ReferenceCount())
	assert.Equal(t, seqSummary.References, summary.References)
	require.Len(t, store.Submitted, 1)
	assert.Len(t, store.Submitted[0].Creates(), 1)
}

func TestProcessBatchDuplicateKeepsLastVersion(t *testing.T) {
	store := ardoqtest.NewBatchStore()
	a := newAdapter(t, store, adapter.WithBatch(true))

	summary, err := a.Process(context.Background(), adapter.Report{
		Repository: "my-service",
		Dependencies: []ardoq.Dependency{
			{Name: "lodash", Version: "1.0.0"},
			{Name: "lodash", Version: "2.0.0"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, ardoq.ReferenceTally{Created: 1, Unchanged: 1}, summary.References)
	require.Len(t, summary.Dependencies, 2)
	ref, _, ok := store.Reference(summary.RepositoryID, summary.Dependencies[0].ComponentID)
	require.True(t, ok)
	assert.Equal(t, "2.0.0", ref.Version)
}

func TestProcessBatchIgnoredWithoutSubmitter(t *testing.T) {
	store := ardoqtest.NewStore()
	a := newAdapter(t, store, adapter.WithBatch(true))

	summary, err := a.Process(context.Background(), report())
	require.NoError(t, err)
	assert.False(t, summary.Batched)
	assert.Equal(t, 3, store.Calls().CreateReference)
}

func TestProcessRequiresRepository(t *testing.T) {
	a := newAdapter(t, ardoqtest.NewStore())
	_, err := a.Process(context.Background(), adapter.Report{})
	assert.True(t, errors.IsValidationError(err))
}

func TestSummaryJSON(t *testing.T) {
	a := newAdapter(t, ardoqtest.NewStore())
	summary, err := a.Process(context.Background(), report())
	require.NoError(t, err)

	data, err := json.Marshal(summary)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, map[string]any{"created": 2.0, "existing": 0.0, "error": 0.0}, decoded["components"])

	deps, ok := decoded["dependencies"].([]any)
	require.True(t, ok)
	first := deps[0].(map[string]any)
	assert.Equal(t, "org.slf4j:slf4j-api", first["name"])
	assert.Equal(t, "created", first["status"])
}
