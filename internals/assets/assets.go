// Package assets downloads the many small objects referenced by an asset index
package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dchest/uniuri"
	"github.com/dustin/go-humanize"
	"github.com/minepkg/mcjar/internals/cmdlog"
	"github.com/minepkg/mcjar/internals/downloadmgr"
	"github.com/minepkg/mcjar/internals/merrors"
	"github.com/minepkg/mcjar/internals/minecraft"
	"github.com/minepkg/mcjar/internals/ownhttp"
	"github.com/shirou/gopsutil/v3/disk"
)

// DefaultAttempts is how often an object is tried before the sync fails
const DefaultAttempts = 3

// Synchronizer makes sure all objects of an asset index are present and verified
type Synchronizer struct {
	// Dir is the asset root containing indexes/ and objects/
	Dir string
	// Fetcher is used for the index itself
	Fetcher *downloadmgr.Fetcher
	// Client is used for the objects. Defaults to ownhttp.NewAssetClient()
	Client *http.Client
	// BaseURL of the object store. Defaults to minecraft.DefaultAssetBaseURL
	BaseURL string
	// Workers is the number of parallel downloads
	Workers int
	// Attempts per object
	Attempts int
	// ResourceDir receives a copy of every object (by name) for indexes
	// with map_to_resources. Defaults to <Dir>/virtual/<index id>
	ResourceDir string
	// OnProgress is called after every verified object
	OnProgress func(done int, total int)
	Logger     *cmdlog.Logger
}

// Sync downloads the index and all objects. It returns the asset root
func (s *Synchronizer) Sync(ctx context.Context, index *minecraft.AssetIndexRef) (string, error) {
	logger := cmdlog.OrDiscard(s.Logger)
	fetcher := s.Fetcher
	if fetcher == nil {
		fetcher = &downloadmgr.Fetcher{Logger: logger}
	}
	client := s.Client
	if client == nil {
		client = ownhttp.NewAssetClient()
	}

	indexPath := filepath.Join(s.Dir, "indexes", index.ID+".json")
	if err := fetcher.Fetch(ctx, index.Download(), indexPath); err != nil {
		return "", err
	}

	manifest, err := readIndex(indexPath)
	if err != nil {
		return "", err
	}

	objectsDir := filepath.Join(s.Dir, "objects")
	if err := os.MkdirAll(objectsDir, os.ModePerm); err != nil {
		return "", err
	}
	s.checkFreeSpace(logger, objectsDir, index.TotalSize)

	resourceDir := ""
	if manifest.MapToResources || manifest.Virtual {
		resourceDir = s.ResourceDir
		if resourceDir == "" {
			resourceDir = filepath.Join(s.Dir, "virtual", index.ID)
		}
	}

	attempts := s.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}

	mgr := downloadmgr.New(s.Workers)
	mgr.OnProgress = s.OnProgress
	for key, obj := range manifest.Objects {
		u := &unit{
			key:         key,
			download:    obj.Download(s.BaseURL),
			target:      filepath.Join(objectsDir, filepath.FromSlash(obj.UnixPath())),
			resourceDir: resourceDir,
			attempts:    attempts,
			offline:     fetcher.Offline,
			client:      client,
			logger:      logger,
		}
		mgr.Add(u)
	}

	logger.Debugf("syncing %d assets of index %s", mgr.Len(), index.ID)
	if err := mgr.Start(ctx); err != nil {
		return "", err
	}
	return s.Dir, nil
}

func (s *Synchronizer) checkFreeSpace(logger *cmdlog.Logger, dir string, needed int64) {
	if needed <= 0 {
		return
	}
	usage, err := disk.Usage(dir)
	if err != nil {
		logger.Debugf("could not check free disk space: %s", err)
		return
	}
	if usage.Free < uint64(needed) {
		logger.Warnf(
			"Assets need up to %s but only %s are free on %s",
			humanize.Bytes(uint64(needed)),
			humanize.Bytes(usage.Free),
			dir,
		)
	}
}

// unit is a single asset object
type unit struct {
	key         string
	download    minecraft.Download
	target      string
	resourceDir string
	attempts    int
	offline     bool
	client      *http.Client
	logger      *cmdlog.Logger
}

func (u *unit) Download(ctx context.Context) error {
	if err := u.fetch(ctx); err != nil {
		return err
	}
	if u.resourceDir == "" {
		return nil
	}
	dst := filepath.Join(u.resourceDir, filepath.FromSlash(u.key))
	if downloadmgr.Verify(u.download.Size, u.download.Sha1, dst) {
		return nil
	}
	return copyFile(u.target, dst)
}

func (u *unit) fetch(ctx context.Context) error {
	d := u.download
	if downloadmgr.Verify(d.Size, d.Sha1, u.target) {
		return nil
	}
	if u.offline {
		return &merrors.OfflineError{What: "asset " + u.key, URL: d.URL}
	}

	var lastErr error
	for attempt := 1; attempt <= u.attempts; attempt++ {
		if attempt > 1 {
			u.logger.Warnf("Retrying asset %s (attempt %d of %d): %s", u.key, attempt, u.attempts, lastErr)
		}
		lastErr = downloadmgr.Materialize(ctx, u.client, d, u.target)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return &merrors.IncompleteSyncError{Key: u.key, URL: d.URL, Attempts: u.attempts, Err: lastErr}
}

// copyFile copies src to dst, replacing dst atomically
func copyFile(src string, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dst + "." + uniuri.NewLen(8) + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, dst)
}
