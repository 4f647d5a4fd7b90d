package mojang

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dchest/uniuri"
	"github.com/minepkg/mcjar/internals/merrors"
	"github.com/minepkg/mcjar/internals/minecraft"
)

// Jar returns the (downloaded and verified) jar of a version for env.
//
// Versions older than the combined threshold only have one jar. It is returned
// as an EnvCombined jar for every env.
// Requesting EnvCombined for a version with separate jars is a ConfigurationError,
// the jars need to be merged instead
func (r *Resolver) Jar(ctx context.Context, id string, env minecraft.Env) (minecraft.Jar, error) {
	dir := r.VersionDir(id)

	if minecraft.IsSynthetic(id) {
		jar := minecraft.NewJar(dir, id, env)
		if err := writeEmptyJar(jar.Path, r.opts.Refresh); err != nil {
			return minecraft.Jar{}, err
		}
		return jar, nil
	}

	combined, err := r.IsCombined(ctx, id)
	if err != nil {
		return minecraft.Jar{}, err
	}

	data, err := r.ResolveVersion(ctx, id)
	if err != nil {
		return minecraft.Jar{}, err
	}

	switch {
	case combined:
		jar := minecraft.NewJar(dir, id, minecraft.EnvCombined)
		return jar, r.fetchComponent(ctx, data, minecraft.DownloadClient, "jar", jar.Path)
	case env == minecraft.EnvClient:
		jar := minecraft.NewJar(dir, id, minecraft.EnvClient)
		return jar, r.fetchComponent(ctx, data, minecraft.DownloadClient, "client jar", jar.Path)
	case env == minecraft.EnvServer:
		jar := minecraft.NewJar(dir, id, minecraft.EnvServer)
		return jar, r.fetchServer(ctx, data, jar.Path)
	default:
		return minecraft.Jar{}, &merrors.ConfigurationError{
			Err:      fmt.Sprintf("version %s has separate client and server jars, a combined jar has to be merged", id),
			HelpText: "Request the client or server jar, or let the provider merge them",
		}
	}
}

// Mappings returns the path to the official mappings of a version. EnvCombined uses the client mappings
func (r *Resolver) Mappings(ctx context.Context, id string, env minecraft.Env) (string, error) {
	data, err := r.ResolveVersion(ctx, id)
	if err != nil {
		return "", err
	}
	key := minecraft.DownloadClientMappings
	if env == minecraft.EnvServer {
		key = minecraft.DownloadServerMappings
	}
	path := filepath.Join(r.VersionDir(id), key+".txt")
	if err := r.fetchComponent(ctx, data, key, key, path); err != nil {
		return "", err
	}
	return path, nil
}

// AssetIndex returns the asset index reference of a version
func (r *Resolver) AssetIndex(ctx context.Context, id string) (*minecraft.AssetIndexRef, error) {
	data, err := r.ResolveVersion(ctx, id)
	if err != nil {
		return nil, err
	}
	if data.AssetIndex.URL == "" {
		return nil, &merrors.MissingArtifactError{Version: id, Artifact: "asset index"}
	}
	index := data.AssetIndex
	return &index, nil
}

func (r *Resolver) fetchComponent(ctx context.Context, data *minecraft.VersionData, key string, name string, path string) error {
	d, ok := data.Download(key)
	if !ok || d.URL == "" {
		return &merrors.MissingArtifactError{
			Version:  data.ID,
			Artifact: name,
			Attempts: []string{"version.json " + key + " download"},
		}
	}
	return r.fetcher.Fetch(ctx, d, path)
}

// writeEmptyJar writes an empty zip file to path
func writeEmptyJar(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}

	tmpPath := path + "." + uniuri.NewLen(8) + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	defer os.Remove(tmpPath)

	if err := zip.NewWriter(f).Close(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
