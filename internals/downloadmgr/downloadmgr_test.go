package downloadmgr

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/minepkg/mcjar/internals/merrors"
	"github.com/minepkg/mcjar/internals/minecraft"
)

var content = []byte("minecraft is a game about placing blocks")

func sum(b []byte) string {
	s := sha1.Sum(b)
	return hex.EncodeToString(s[:])
}

// countingServer serves body on every path and counts requests
func countingServer(t *testing.T, body []byte) (*httptest.Server, *int32) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(body)
	}))
	t.Cleanup(ts.Close)
	return ts, &hits
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	if Verify(-1, "", path) {
		t.Fatal("missing file must not verify")
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		size int64
		sha1 string
		want bool
	}{
		{"exists", -1, "", true},
		{"size", int64(len(content)), "", true},
		{"wrong size", 3, "", false},
		{"hash", -1, sum(content), true},
		{"wrong hash", int64(len(content)), sum([]byte("nope")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Verify(tt.size, tt.sha1, path); got != tt.want {
				t.Fatalf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaterializeTwice(t *testing.T) {
	ts, hits := countingServer(t, content)
	path := filepath.Join(t.TempDir(), "a", "b.jar")
	d := minecraft.Download{URL: ts.URL + "/b.jar", Sha1: sum(content), Size: int64(len(content))}

	for i := 0; i < 2; i++ {
		if err := Materialize(context.Background(), ts.Client(), d, path); err != nil {
			t.Fatal(err)
		}
	}
	if *hits != 1 {
		t.Fatalf("expected 1 request, got %d", *hits)
	}
}

func TestMaterializeCorrupted(t *testing.T) {
	ts, hits := countingServer(t, content)
	path := filepath.Join(t.TempDir(), "b.jar")
	if err := os.WriteFile(path, []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}
	d := minecraft.Download{URL: ts.URL + "/b.jar", Sha1: sum(content), Size: -1}

	if err := Materialize(context.Background(), ts.Client(), d, path); err != nil {
		t.Fatal(err)
	}
	if *hits != 1 || !Verify(-1, d.Sha1, path) {
		t.Fatal("corrupted file was not replaced")
	}
}

func TestMaterializeIntegrityError(t *testing.T) {
	ts, _ := countingServer(t, content)
	dir := t.TempDir()
	path := filepath.Join(dir, "b.jar")
	d := minecraft.Download{URL: ts.URL + "/b.jar", Sha1: sum([]byte("something else")), Size: -1}

	err := Materialize(context.Background(), ts.Client(), d, path)
	var integrityErr *merrors.IntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
	if integrityErr.URL != d.URL {
		t.Fatalf("error does not name the url: %s", integrityErr.URL)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("partial files were left behind: %v", entries)
	}
}

func TestMaterializeNotFound(t *testing.T) {
	ts, _ := countingServer(t, content)
	path := filepath.Join(t.TempDir(), "b.jar")
	err := Materialize(context.Background(), ts.Client(), minecraft.Download{URL: ts.URL + "/missing", Size: -1}, path)

	var netErr *merrors.NetworkError
	if !errors.As(err, &netErr) || !netErr.NotFound() {
		t.Fatalf("expected 404 NetworkError, got %v", err)
	}
}

func TestFetcherOffline(t *testing.T) {
	ts, hits := countingServer(t, content)
	f := &Fetcher{Client: ts.Client(), Offline: true}
	path := filepath.Join(t.TempDir(), "b.jar")

	err := f.Fetch(context.Background(), minecraft.Download{URL: ts.URL + "/b.jar", Size: -1}, path)
	var offlineErr *merrors.OfflineError
	if !errors.As(err, &offlineErr) {
		t.Fatalf("expected OfflineError, got %v", err)
	}
	if *hits != 0 {
		t.Fatal("offline fetch made a request")
	}
}

func TestFetcherRefresh(t *testing.T) {
	ts, hits := countingServer(t, content)
	path := filepath.Join(t.TempDir(), "b.jar")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	d := minecraft.Download{URL: ts.URL + "/b.jar", Size: -1}

	f := &Fetcher{Client: ts.Client()}
	if err := f.Fetch(context.Background(), d, path); err != nil {
		t.Fatal(err)
	}
	if *hits != 0 {
		t.Fatal("existing file without hash should be trusted")
	}

	f.Refresh = true
	if err := f.Fetch(context.Background(), d, path); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(path)
	if *hits != 1 || string(got) != string(content) {
		t.Fatal("refresh did not replace the file")
	}
}

func TestFetcherMissingURL(t *testing.T) {
	f := &Fetcher{}
	err := f.Fetch(context.Background(), minecraft.Download{Size: -1}, filepath.Join(t.TempDir(), "x"))
	var missing *merrors.MissingArtifactError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingArtifactError, got %v", err)
	}
}

func TestManagerProgress(t *testing.T) {
	mgr := New(4)
	for i := 0; i < 50; i++ {
		mgr.Add(DownloaderFunc(func(ctx context.Context) error { return nil }))
	}

	last := 0
	calls := 0
	mgr.OnProgress = func(done, total int) {
		calls++
		if done <= last || total != 50 {
			t.Errorf("progress is not monotonic: %d after %d", done, last)
		}
		last = done
	}
	if err := mgr.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if calls != 50 || last != 50 {
		t.Fatalf("expected 50 progress calls ending at 50, got %d calls, last %d", calls, last)
	}
}

func TestManagerError(t *testing.T) {
	mgr := New(2)
	boom := errors.New("boom")
	mgr.Add(DownloaderFunc(func(ctx context.Context) error { return nil }))
	mgr.Add(DownloaderFunc(func(ctx context.Context) error { return boom }))
	mgr.Add(DownloaderFunc(func(ctx context.Context) error { return nil }))

	if err := mgr.Start(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
