package downloadmgr

import (
	"context"
	"net/http"

	"github.com/minepkg/mcjar/internals/cmdlog"
	"github.com/minepkg/mcjar/internals/merrors"
	"github.com/minepkg/mcjar/internals/minecraft"
)

// Fetcher materializes downloads while honoring the offline and refresh settings
type Fetcher struct {
	Client *http.Client
	// Offline forbids all network access. Missing files are an error
	Offline bool
	// Refresh re-downloads files that can not be validated by hash
	Refresh bool
	Logger  *cmdlog.Logger
}

// Fetch makes sure path contains the content of d
func (f *Fetcher) Fetch(ctx context.Context, d minecraft.Download, path string) error {
	logger := cmdlog.OrDiscard(f.Logger)

	valid := Verify(d.Size, d.Sha1, path)
	// without a hash, existence is all we can check. refresh forces a new copy
	if valid && f.Refresh && d.Sha1 == "" && d.URL != "" && !f.Offline {
		logger.Debugf("refreshing %s", path)
		valid = false
	}
	if valid {
		return nil
	}

	if f.Offline {
		return &merrors.OfflineError{What: path, URL: d.URL}
	}
	if d.URL == "" {
		return &merrors.MissingArtifactError{Artifact: "download url for " + path}
	}

	logger.Debugf("downloading %s", d.URL)
	client := f.Client
	if client == nil {
		client = defaultClient
	}
	return download(ctx, client, d, path)
}
