package transport

import "net/http"

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request, apiKey string)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request, _ string) {}

// TokenAuth implements the Ardoq "Token token=<key>" scheme.
type TokenAuth struct{}

// Apply implements the Authenticator interface for TokenAuth.
func (a *TokenAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Token token="+apiKey)
}

// BearerAuth implements Bearer token authentication.
type BearerAuth struct{}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
}

// HeaderAuth implements custom header authentication.
type HeaderAuth struct {
	Header string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set(a.Header, apiKey)
}

// QueryAuth implements API key as query parameter authentication.
type QueryAuth struct {
	Param string
}

// Apply implements the Authenticator interface for QueryAuth.
func (a *QueryAuth) Apply(req *http.Request, apiKey string) {
	if req.URL == nil {
		return
	}

	query := req.URL.Query()
	query.Set(a.Param, apiKey)
	req.URL.RawQuery = query.Encode()
}

// ParseAuthenticator returns the authenticator for a scheme name:
// token (default), bearer, none, header:<name> or query:<param>.
func ParseAuthenticator(scheme string) Authenticator {
	switch {
	case scheme == "" || scheme == "token":
		return &TokenAuth{}
	case scheme == "bearer":
		return &BearerAuth{}
	case scheme == "none":
		return &NoAuth{}
	case len(scheme) > len("header:") && scheme[:len("header:")] == "header:":
		return &HeaderAuth{Header: scheme[len("header:"):]}
	case len(scheme) > len("query:") && scheme[:len("query:")] == "query:":
		return &QueryAuth{Param: scheme[len("query:"):]}
	default:
		return &TokenAuth{}
	}
}
