package mojang

import (
	"context"
	"encoding/json"
	"os"

	"github.com/minepkg/mcjar/internals/downloadmgr"
	"github.com/minepkg/mcjar/internals/merrors"
	"github.com/minepkg/mcjar/internals/minecraft"
	"github.com/pkg/errors"
)

// Manifest returns the version manifest. It is fetched at most once per Resolver.
// In offline mode only the cached copy is used
func (r *Resolver) Manifest(ctx context.Context) (*minecraft.VersionManifest, error) {
	r.manifestMu.Lock()
	defer r.manifestMu.Unlock()

	if r.manifest != nil {
		return r.manifest, nil
	}

	path := r.manifestPath()
	if r.opts.Offline {
		if _, err := os.Stat(path); err != nil {
			return nil, &merrors.OfflineError{What: "the version manifest", URL: r.opts.ManifestURL}
		}
	} else {
		item := &downloadmgr.HTTPItem{
			Client: r.opts.Client,
			URL:    r.opts.ManifestURL,
			Target: path,
			Size:   minecraft.UnknownSize,
		}
		if err := item.Download(ctx); err != nil {
			if _, statErr := os.Stat(path); statErr != nil {
				return nil, err
			}
			r.logger.Warnf("Could not fetch version manifest, using cached copy: %s", err)
		}
	}

	manifest := &minecraft.VersionManifest{}
	if err := readJSON(path, manifest); err != nil {
		return nil, err
	}
	r.manifest = manifest
	return manifest, nil
}

func readJSON(path string, v interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrapf(err, "could not parse %s", path)
	}
	return nil
}
