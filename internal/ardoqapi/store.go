// Package ardoqapi implements ardoq.Store against the Ardoq REST API.
package ardoqapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hmcts/dtsse-ardoq-adapter/internal/transport"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/ardoq"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/constants"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/logging"
)

const (
	componentsPath = constants.APIVersionPath + "/components"
	referencesPath = constants.APIVersionPath + "/references"
	batchPath      = constants.APIVersionPath + "/batch"
)

// Store talks to the Ardoq API.
type Store struct {
	client *transport.Client
}

// New creates a Store using client.
func New(client *transport.Client) *Store {
	return &Store{client: client}
}

var (
	_ ardoq.Store          = (*Store)(nil)
	_ ardoq.BatchSubmitter = (*Store)(nil)
)

type componentJSON struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

type customFields struct {
	Version string `json:"version,omitempty"`
}

type referenceJSON struct {
	ID           string        `json:"_id"`
	Source       string        `json:"source,omitempty"`
	Target       string        `json:"target,omitempty"`
	CustomFields *customFields `json:"customFields,omitempty"`
}

type listResponse[T any] struct {
	Values []T `json:"values"`
}

// referenceBodyJSON is the wire shape of a reference to create or update.
type referenceBodyJSON struct {
	Source       string        `json:"source"`
	Target       string        `json:"target"`
	Type         int           `json:"type"`
	CustomFields *customFields `json:"customFields,omitempty"`
}

func toWire(body ardoq.ReferenceBody) referenceBodyJSON {
	out := referenceBodyJSON{
		Source: body.Source,
		Target: body.Target,
		Type:   int(body.Type),
	}
	if body.Version != "" {
		out.CustomFields = &customFields{Version: body.Version}
	}
	return out
}

// SearchComponent implements ardoq.Store.
func (s *Store) SearchComponent(ctx context.Context, rootWorkspace, name string) ([]ardoq.Component, error) {
	logging.FromContext(ctx).Debug().
		Str("root_workspace", rootWorkspace).
		Str("name", name).
		Msg("GET " + componentsPath)

	resp, err := s.client.Request(ctx, http.MethodGet, componentsPath, url.Values{
		"rootWorkspace": {rootWorkspace},
		"name":          {name},
	}, nil)
	if err != nil {
		return nil, err
	}

	var out listResponse[componentJSON]
	if err := transport.DecodeResponse(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	components := make([]ardoq.Component, 0, len(out.Values))
	for _, v := range out.Values {
		if v.ID == "" {
			return nil, errors.NewAPIError("ardoq", http.StatusOK, "component search returned a match without an id")
		}
		components = append(components, ardoq.Component{ID: v.ID, Name: v.Name})
	}
	return components, nil
}

// CreateComponent implements ardoq.Store.
func (s *Store) CreateComponent(ctx context.Context, body ardoq.ComponentBody) (ardoq.Component, error) {
	resp, err := s.client.Request(ctx, http.MethodPost, componentsPath, nil, body)
	if err != nil {
		return ardoq.Component{}, err
	}

	var out componentJSON
	if err := transport.DecodeResponse(resp, &out, http.StatusCreated); err != nil {
		return ardoq.Component{}, err
	}
	if out.ID == "" {
		return ardoq.Component{}, errors.NewAPIError("ardoq", http.StatusCreated, "component created without an id")
	}
	return ardoq.Component{ID: out.ID, Name: body.Name}, nil
}

// SearchReference implements ardoq.Store.
func (s *Store) SearchReference(ctx context.Context, source, target string) ([]ardoq.Reference, error) {
	logging.FromContext(ctx).Debug().
		Str("source", source).
		Str("target", target).
		Msg("GET " + referencesPath)

	resp, err := s.client.Request(ctx, http.MethodGet, referencesPath, url.Values{
		"source": {source},
		"target": {target},
	}, nil)
	if err != nil {
		return nil, err
	}

	var out listResponse[referenceJSON]
	if err := transport.DecodeResponse(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	refs := make([]ardoq.Reference, 0, len(out.Values))
	for _, v := range out.Values {
		ref := ardoq.Reference{ID: v.ID, Source: v.Source, Target: v.Target}
		if v.CustomFields != nil {
			ref.Version = v.CustomFields.Version
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// CreateReference implements ardoq.Store.
func (s *Store) CreateReference(ctx context.Context, body ardoq.ReferenceBody) (ardoq.Reference, error) {
	resp, err := s.client.Request(ctx, http.MethodPost, referencesPath, nil, toWire(body))
	if err != nil {
		return ardoq.Reference{}, err
	}

	var out referenceJSON
	if err := transport.DecodeResponse(resp, &out, http.StatusOK, http.StatusCreated); err != nil {
		return ardoq.Reference{}, err
	}
	return ardoq.Reference{ID: out.ID, Source: body.Source, Target: body.Target, Version: body.Version}, nil
}

// UpdateReferenceVersion implements ardoq.Store.
func (s *Store) UpdateReferenceVersion(ctx context.Context, id, version string) error {
	resp, err := s.client.Request(ctx, http.MethodPatch, referencesPath+"/"+url.PathEscape(id), url.Values{
		"ifVersionMatch": {constants.IfVersionMatchLatest},
	}, map[string]any{
		"customFields": customFields{Version: version},
	})
	if err != nil {
		return err
	}
	return transport.DecodeResponse(resp, nil, http.StatusOK)
}

type batchUpdateJSON struct {
	ID             string            `json:"id"`
	IfVersionMatch string            `json:"ifVersionMatch"`
	Body           referenceBodyJSON `json:"body"`
}

type batchCreateJSON struct {
	Body referenceBodyJSON `json:"body"`
}

type batchRequest struct {
	References struct {
		Create []batchCreateJSON `json:"create"`
		Update []batchUpdateJSON `json:"update"`
	} `json:"references"`
}

type batchResponse struct {
	References struct {
		Created []idJSON `json:"created"`
		Updated []idJSON `json:"updated"`
	} `json:"references"`
}

type idJSON struct {
	ID string `json:"_id"`
}

// SubmitBatch implements ardoq.BatchSubmitter.
func (s *Store) SubmitBatch(ctx context.Context, batch *ardoq.Batch) (ardoq.BatchResult, error) {
	var req batchRequest
	req.References.Create = []batchCreateJSON{}
	req.References.Update = []batchUpdateJSON{}
	for _, c := range batch.Creates() {
		req.References.Create = append(req.References.Create, batchCreateJSON{Body: toWire(c.Body)})
	}
	for _, u := range batch.Updates() {
		req.References.Update = append(req.References.Update, batchUpdateJSON{
			ID:             u.ID,
			IfVersionMatch: u.IfVersionMatch,
			Body:           toWire(u.Body),
		})
	}

	resp, err := s.client.Request(ctx, http.MethodPost, batchPath, nil, req)
	if err != nil {
		return ardoq.BatchResult{}, err
	}

	var out batchResponse
	if err := transport.DecodeResponse(resp, &out, http.StatusOK, http.StatusCreated); err != nil {
		return ardoq.BatchResult{}, err
	}

	result := ardoq.BatchResult{
		Created: len(out.References.Created),
		Updated: len(out.References.Updated),
	}
	// Older API versions answer with an empty body.
	if result.Created == 0 && result.Updated == 0 {
		result = ardoq.BatchResult{Created: len(req.References.Create), Updated: len(req.References.Update)}
	}
	return result, nil
}
