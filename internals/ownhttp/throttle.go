package ownhttp

import (
	"net/http"

	"golang.org/x/time/rate"
)

// ThrottleTransport limits the request rate of a client.
// Used to stay polite when syncing thousands of assets.
type ThrottleTransport struct {
	T       http.RoundTripper
	limiter *rate.Limiter
}

func (tt *ThrottleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	err := tt.limiter.Wait(req.Context())
	if err != nil {
		return nil, err
	}

	return tt.T.RoundTrip(req)
}

func NewThrottleTransport(T http.RoundTripper, limiter *rate.Limiter) *ThrottleTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &ThrottleTransport{T, limiter}
}

// Throttled returns a copy of client that sends at most rps requests per second.
// rps <= 0 returns the client unchanged.
func Throttled(client *http.Client, rps float64) *http.Client {
	if rps <= 0 {
		return client
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	throttled := *client
	throttled.Transport = NewThrottleTransport(client.Transport, rate.NewLimiter(rate.Limit(rps), burst))
	return &throttled
}
