package ownhttp

import (
	"context"
	"io"
	"net/http"
	"time"
)

// ReadTimeoutTransport aborts a response when its body stalls for longer than Timeout.
// A slow but steady body is never aborted.
type ReadTimeoutTransport struct {
	T       http.RoundTripper
	Timeout time.Duration
}

// RoundTrip implements http.RoundTripper
func (rt *ReadTimeoutTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, cancel := context.WithCancel(req.Context())
	res, err := rt.T.RoundTrip(req.WithContext(ctx))
	if err != nil {
		cancel()
		return nil, err
	}
	res.Body = &idleTimeoutBody{
		rc:      res.Body,
		timeout: rt.Timeout,
		timer:   time.AfterFunc(rt.Timeout, cancel),
		cancel:  cancel,
	}
	return res, nil
}

// NewReadTimeoutTransport wraps T (or http.DefaultTransport)
func NewReadTimeoutTransport(T http.RoundTripper, timeout time.Duration) *ReadTimeoutTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &ReadTimeoutTransport{T, timeout}
}

type idleTimeoutBody struct {
	rc      io.ReadCloser
	timeout time.Duration
	timer   *time.Timer
	cancel  context.CancelFunc
}

func (b *idleTimeoutBody) Read(p []byte) (int, error) {
	b.timer.Reset(b.timeout)
	return b.rc.Read(p)
}

func (b *idleTimeoutBody) Close() error {
	b.timer.Stop()
	err := b.rc.Close()
	b.cancel()
	return err
}
