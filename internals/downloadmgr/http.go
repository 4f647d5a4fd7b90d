package downloadmgr

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dchest/uniuri"
	"github.com/minepkg/mcjar/internals/merrors"
	"github.com/minepkg/mcjar/internals/minecraft"
	"github.com/minepkg/mcjar/internals/ownhttp"
)

var defaultClient = ownhttp.New()

// HTTPItem is a URL, target pair with optional properties that will be downloaded
// using http(s)
type HTTPItem struct {
	Client *http.Client
	URL    string
	Target string
	// Size is checked after the download if it is not -1
	Size int64
	// Sha1 is checked after the download if it is set
	Sha1 string
}

// Download downloads the item to the defined target using http.
// The file is written next to the target and only renamed over it
// after the size and hash checks passed
func (i *HTTPItem) Download(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(i.Target), os.ModePerm); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", i.URL, nil)
	if err != nil {
		return err
	}

	client := i.Client
	if client == nil {
		client = defaultClient
	}

	res, err := client.Do(req)
	if err != nil {
		return &merrors.NetworkError{URL: i.URL, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return &merrors.NetworkError{URL: i.URL, StatusCode: res.StatusCode, Status: res.Status}
	}

	body, err := ownhttp.DecodedBody(res)
	if err != nil {
		return &merrors.NetworkError{URL: i.URL, Err: err}
	}
	defer body.Close()

	tmpPath := filepath.Join(filepath.Dir(i.Target), "."+filepath.Base(i.Target)+"."+uniuri.NewLen(8)+".tmp")
	dest, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	// no-op after the rename
	defer os.Remove(tmpPath)

	hasher := sha1.New()
	written, err := io.Copy(io.MultiWriter(dest, hasher), body)
	if err != nil {
		dest.Close()
		return &merrors.NetworkError{URL: i.URL, Err: err}
	}
	if err := dest.Sync(); err != nil {
		dest.Close()
		return err
	}
	if err := dest.Close(); err != nil {
		return err
	}

	actualSha1 := hex.EncodeToString(hasher.Sum(nil))
	sizeMismatch := i.Size >= 0 && written != i.Size
	shaMismatch := i.Sha1 != "" && !strings.EqualFold(actualSha1, i.Sha1)
	if sizeMismatch || shaMismatch {
		return &merrors.IntegrityError{
			URL:          i.URL,
			Path:         i.Target,
			ExpectedSha1: i.Sha1,
			ActualSha1:   actualSha1,
			ExpectedSize: i.Size,
			ActualSize:   written,
		}
	}

	if err := os.Rename(tmpPath, i.Target); err != nil {
		return fmt.Errorf("could not move download into place: %w", err)
	}
	return nil
}

// Materialize makes sure path contains the verified content of d.
// No request is made if the local file already passes Verify
func Materialize(ctx context.Context, client *http.Client, d minecraft.Download, path string) error {
	if Verify(d.Size, d.Sha1, path) {
		return nil
	}
	return download(ctx, client, d, path)
}

// download fetches d unconditionally and verifies the result
func download(ctx context.Context, client *http.Client, d minecraft.Download, path string) error {
	item := &HTTPItem{Client: client, URL: d.URL, Target: path, Size: d.Size, Sha1: d.Sha1}
	if err := item.Download(ctx); err != nil {
		return err
	}
	if !Verify(d.Size, d.Sha1, path) {
		actual, _ := HashFile(path)
		return &merrors.IntegrityError{
			URL:          d.URL,
			Path:         path,
			ExpectedSha1: d.Sha1,
			ActualSha1:   actual,
			ExpectedSize: d.Size,
			ActualSize:   fileSize(path),
		}
	}
	return nil
}

func fileSize(path string) int64 {
	stat, err := os.Stat(path)
	if err != nil {
		return -1
	}
	return stat.Size()
}
