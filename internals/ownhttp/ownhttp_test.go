package ownhttp

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
)

func TestAddHeaderTransport(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
	}))
	defer srv.Close()

	res, err := NewAssetClient().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()

	if gotUA != UserAgent {
		t.Fatalf("expected user agent %q, got %q", UserAgent, gotUA)
	}
	if gotAccept != "*/*" {
		t.Fatalf("expected Accept */*, got %q", gotAccept)
	}
}

func TestDecodedBodyGzip(t *testing.T) {
	buf := &bytes.Buffer{}
	zw := gzip.NewWriter(buf)
	zw.Write([]byte("compressed asset"))
	zw.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	res, err := NewAssetClient().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	body, err := DecodedBody(res)
	if err != nil {
		t.Fatal(err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "compressed asset" {
		t.Fatalf("unexpected body %q", data)
	}
}

func TestReadTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("a"))
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewWithOptions(Options{ReadTimeout: 100 * time.Millisecond})
	res, err := client.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	if _, err := io.ReadAll(res.Body); err == nil {
		t.Fatal("expected stalled body to fail")
	}
}

func TestNewHasTimeouts(t *testing.T) {
	if DefaultOptions.ConnectTimeout <= 0 || DefaultOptions.ReadTimeout <= 0 {
		t.Fatal("default client has no timeouts")
	}

	previous := DefaultOptions
	DefaultOptions.ReadTimeout = 100 * time.Millisecond
	defer func() { DefaultOptions = previous }()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "10")
		w.Write([]byte("ab"))
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	res, err := New().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	done := make(chan error, 1)
	go func() {
		_, err := io.ReadAll(res.Body)
		done <- err
	}()
	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected stalled body to fail")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("stalled body is still blocking")
	}
}
