package ownhttp

import (
	"net"
	"net/http"
	"time"
)

// UserAgent is sent with every request
const UserAgent = "minepkg-mcjar/1.0 (+https://github.com/minepkg/mcjar)"

// Options configure the transport returned by NewWithOptions
type Options struct {
	// ConnectTimeout limits dialing and the TLS handshake
	ConnectTimeout time.Duration
	// ReadTimeout limits waiting for response headers and every body read
	ReadTimeout time.Duration
	// Headers are added to every request (if not already set)
	Headers http.Header
}

// DefaultOptions are used by New. The read timeout is an idle timeout,
// large jars still download as long as data keeps coming
var DefaultOptions = Options{
	ConnectTimeout: 10 * time.Second,
	ReadTimeout:    10 * time.Second,
}

// New returns a new http.Client with the AddHeaderTransport (setting the User-Agent header)
// and the timeouts of DefaultOptions
func New() *http.Client {
	return NewWithOptions(DefaultOptions)
}

// NewWithOptions returns a http.Client with connect and read timeouts.
// The timeouts apply to a single exchange, there is no overall deadline.
func NewWithOptions(opts Options) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.ConnectTimeout > 0 {
		transport.DialContext = (&net.Dialer{
			Timeout:   opts.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext
		transport.TLSHandshakeTimeout = opts.ConnectTimeout
	}

	var rt http.RoundTripper = transport
	if opts.ReadTimeout > 0 {
		transport.ResponseHeaderTimeout = opts.ReadTimeout
		rt = NewReadTimeoutTransport(transport, opts.ReadTimeout)
	}

	return &http.Client{Transport: NewAddHeaderTransport(rt, opts.Headers)}
}

// NewAssetClient returns the client used for bulk asset downloads
// (5 second connect and read timeouts)
func NewAssetClient() *http.Client {
	headers := http.Header{}
	headers.Set("Accept", "*/*")
	headers.Set("Accept-Encoding", "gzip, deflate")
	return NewWithOptions(Options{
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    5 * time.Second,
		Headers:        headers,
	})
}
