package mojang

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/minepkg/mcjar/internals/merrors"
	"github.com/minepkg/mcjar/internals/minecraft"
)

// fetchServer tries the server download of the version.json and falls back
// to the legacy server archive
func (r *Resolver) fetchServer(ctx context.Context, data *minecraft.VersionData, path string) error {
	attempts := []string{}

	if d, ok := data.Download(minecraft.DownloadServer); ok && d.URL != "" {
		return r.fetcher.Fetch(ctx, d, path)
	}
	attempts = append(attempts, "version.json server download")

	legacyID := r.serverVersion(ctx, data.ID)
	url := LegacyServerURL(r.opts.LegacyServerBaseURL, data.ID, legacyID)
	attempts = append(attempts, url)
	r.logger.Debugf("no server download for %s, trying %s", data.ID, url)

	err := r.fetcher.Fetch(ctx, minecraft.Download{URL: url, Size: minecraft.UnknownSize}, path)
	var netErr *merrors.NetworkError
	if errors.As(err, &netErr) && netErr.NotFound() {
		return &merrors.MissingArtifactError{
			Version:  data.ID,
			Artifact: "server jar",
			Attempts: attempts,
			Err:      err,
		}
	}
	return err
}

// serverVersion maps a version to the id used by the legacy archive
func (r *Resolver) serverVersion(ctx context.Context, id string) string {
	serverID := id
	overrides, err := r.serverOverrides(ctx)
	if err != nil {
		r.logger.Warnf("Could not load server version overrides: %s", err)
	}
	if v, ok := overrides[id]; ok {
		serverID = v
	}
	if v, ok := r.opts.ServerVersionOverrides[serverID]; ok {
		serverID = v
	}
	return serverID
}

// serverOverrides returns the remote override table. It is downloaded once and then only read from disk
func (r *Resolver) serverOverrides(ctx context.Context) (map[string]string, error) {
	r.overridesMu.Lock()
	defer r.overridesMu.Unlock()

	if r.overrides != nil {
		return r.overrides, nil
	}

	path := r.overridesPath()
	err := r.fetcher.Fetch(ctx, minecraft.Download{URL: r.opts.OverridesURL, Size: minecraft.UnknownSize}, path)
	if err != nil {
		return nil, err
	}

	overrides := map[string]string{}
	if err := readJSON(path, &overrides); err != nil {
		// a broken table is fetched again next time
		os.Remove(path)
		return nil, err
	}
	r.overrides = overrides
	return overrides, nil
}

// LegacyServerURL returns the legacy archive location of a server jar.
// version decides the channel, serverID is the file name
func LegacyServerURL(base string, version string, serverID string) string {
	base = strings.TrimSuffix(base, "/") + "/"
	switch {
	case strings.HasPrefix(version, "b"):
		return base + "beta/" + serverID + ".jar"
	case strings.HasPrefix(version, "a"):
		return base + "alpha/" + serverID + ".jar"
	default:
		return base + "release/" + majorMinor(version) + "/" + serverID + ".jar"
	}
}

func majorMinor(version string) string {
	if v, err := semver.NewVersion(version); err == nil {
		return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
	}
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return version
	}
	return parts[0] + "." + parts[1]
}
