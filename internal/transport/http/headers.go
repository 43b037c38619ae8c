package http

import (
	"net/http"

	"github.com/oshokin/soundcloud-grabber/internal/utils"
)

// userAgentHeader is the HTTP header name for User-Agent.
const userAgentHeader = "User-Agent"

// HeaderInjector is a http.RoundTripper that fills in headers missing from a request:
// the User-Agent from its provider and any static defaults such as Origin.
// Headers already set on the request are left untouched.
type HeaderInjector struct {
	next              http.RoundTripper
	userAgentProvider utils.UserAgentProvider
	defaults          http.Header
}

// NewHeaderInjector creates a HeaderInjector.
func NewHeaderInjector(
	next http.RoundTripper,
	userAgentProvider utils.UserAgentProvider,
	defaults http.Header,
) http.RoundTripper {
	return &HeaderInjector{
		next:              next,
		userAgentProvider: userAgentProvider,
		defaults:          defaults.Clone(),
	}
}

// RoundTrip implements the http.RoundTripper interface.
func (t *HeaderInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(req.Context())

	if req.Header.Get(userAgentHeader) == "" {
		req.Header.Set(userAgentHeader, t.userAgentProvider.GetUserAgent())
	}

	for name, values := range t.defaults {
		if req.Header.Get(name) != "" || len(values) == 0 {
			continue
		}

		req.Header[name] = append([]string(nil), values...)
	}

	return t.next.RoundTrip(req)
}
