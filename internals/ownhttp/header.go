package ownhttp

import "net/http"

// AddHeaderTransport sets the User-Agent and additional headers on every request
type AddHeaderTransport struct {
	T       http.RoundTripper
	Headers http.Header
}

// RoundTrip implements http.RoundTripper
func (adt *AddHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrip must not modify the original request
	req = req.Clone(req.Context())
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", UserAgent)
	}
	for key, values := range adt.Headers {
		if req.Header.Get(key) != "" {
			continue
		}
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	return adt.T.RoundTrip(req)
}

// NewAddHeaderTransport wraps T (or http.DefaultTransport)
func NewAddHeaderTransport(T http.RoundTripper, headers http.Header) *AddHeaderTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &AddHeaderTransport{T, headers}
}
