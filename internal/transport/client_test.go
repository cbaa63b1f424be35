package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
)

func TestClientRequest(t *testing.T) {
	var gotAuth, gotContentType, gotPath, gotQuery, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"c1"}`))
	}))
	defer server.Close()

	client, err := New(server.URL+"/", "secret")
	require.NoError(t, err)

	resp, err := client.Request(context.Background(), http.MethodPost, "/api/v2/components",
		url.Values{"name": {"lodash"}}, map[string]string{"name": "lodash"})
	require.NoError(t, err)

	var out struct {
		ID string `json:"_id"`
	}
	require.NoError(t, DecodeResponse(resp, &out, http.StatusCreated))

	assert.Equal(t, "c1", out.ID)
	assert.Equal(t, "Token token=secret", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "/api/v2/components", gotPath)
	assert.Equal(t, "name=lodash", gotQuery)
	assert.JSONEq(t, `{"name":"lodash"}`, gotBody)
}

func TestDecodeResponseStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPreconditionFailed)
		_, _ = w.Write([]byte("stale"))
	}))
	defer server.Close()

	client, err := New(server.URL, "")
	require.NoError(t, err)

	resp, err := client.Request(context.Background(), http.MethodPatch, "/api/v2/references/r1", nil, map[string]any{})
	require.NoError(t, err)

	err = DecodeResponse(resp, nil)
	require.Error(t, err)
	assert.True(t, errors.IsPreconditionFailed(err))

	var apiErr *errors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "stale", apiErr.Message)
	assert.Equal(t, "PATCH /api/v2/references/r1", apiErr.Endpoint)
}

func TestClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := New(server.URL, "", WithTimeout(20*time.Millisecond))
	require.NoError(t, err)

	_, err = client.Request(context.Background(), http.MethodGet, "/slow", nil, nil)
	assert.Error(t, err)
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New("", "key")
	assert.Error(t, err)
}
