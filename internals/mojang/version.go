package mojang

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/minepkg/mcjar/internals/merrors"
	"github.com/minepkg/mcjar/internals/minecraft"
)

// ResolveVersion returns the parsed version.json of id.
// Synthetic versions ("empty-" prefix) are resolved without any network access
func (r *Resolver) ResolveVersion(ctx context.Context, id string) (*minecraft.VersionData, error) {
	if minecraft.IsSynthetic(id) {
		return minecraft.SyntheticVersionData(id), nil
	}

	r.versionsMu.Lock()
	defer r.versionsMu.Unlock()
	if data, ok := r.versions[id]; ok {
		return data, nil
	}

	path := filepath.Join(r.VersionDir(id), "version.json")
	manifest, err := r.Manifest(ctx)
	switch {
	case err == nil:
		// the cached copy is only used if it matches the manifest's hash
		entry, ok := manifest.Find(id)
		if !ok {
			return nil, &merrors.UnknownVersionError{Version: id}
		}
		if err := r.fetcher.Fetch(ctx, entry.Download(), path); err != nil {
			return nil, err
		}
	case errors.As(err, new(*merrors.OfflineError)) && fileExists(path):
		r.logger.Debugf("no cached version manifest, using %s unverified", path)
	default:
		return nil, err
	}

	data := &minecraft.VersionData{}
	if err := readJSON(path, data); err != nil {
		return nil, err
	}
	r.versions[id] = data
	return data, nil
}

// Compare compares two versions by their release order.
// The result is > 0 if a is newer than b, < 0 if it is older and 0 if they are the same.
// Equal ids are never looked up
func (r *Resolver) Compare(ctx context.Context, a string, b string) (int, error) {
	a = minecraft.NormalizeVersion(a)
	b = minecraft.NormalizeVersion(b)
	if a == b {
		return 0, nil
	}

	manifest, err := r.Manifest(ctx)
	if err != nil {
		return 0, err
	}
	ia := manifest.IndexOf(a)
	if ia == -1 {
		return 0, &merrors.UnknownVersionError{Version: a}
	}
	ib := manifest.IndexOf(b)
	if ib == -1 {
		return 0, &merrors.UnknownVersionError{Version: b}
	}

	// the manifest lists newer versions first
	if ia < ib {
		return 1, nil
	}
	return -1, nil
}

// IsCombined reports whether the version predates separate client and server jars
func (r *Resolver) IsCombined(ctx context.Context, id string) (bool, error) {
	threshold := r.opts.CombinedThreshold
	if threshold == "" {
		return false, nil
	}
	cmp, err := r.Compare(ctx, id, threshold)
	if err != nil {
		return false, err
	}
	return cmp < 0, nil
}

func fileExists(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && !stat.IsDir()
}
