package ownhttp

import (
	"net/http"

	"golang.org/x/time/rate"
)

// ThrottleTransport waits for the limiter before every request.
// The asset host does not like tens of thousands of requests in a burst
type ThrottleTransport struct {
	T       http.RoundTripper
	limiter *rate.Limiter
}

func (tt *ThrottleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if tt.limiter != nil {
		if err := tt.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}

	return tt.T.RoundTrip(req)
}

// NewThrottleTransport wraps T (http.DefaultTransport if nil). A nil limiter does not throttle
func NewThrottleTransport(T http.RoundTripper, limiter *rate.Limiter) *ThrottleTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &ThrottleTransport{T, limiter}
}
