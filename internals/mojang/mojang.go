// Package mojang resolves minecraft version metadata and the jars described by it.
// All results are cached on disk and memoized for the lifetime of a Resolver
package mojang

import (
	"net/http"
	"path/filepath"
	"sync"

	"github.com/minepkg/mcjar/internals/cmdlog"
	"github.com/minepkg/mcjar/internals/downloadmgr"
	"github.com/minepkg/mcjar/internals/minecraft"
	"github.com/minepkg/mcjar/internals/ownhttp"
)

const (
	// DefaultOverridesURL maps versions without a server download to the id used by the legacy archive
	DefaultOverridesURL = "https://maven.wagyourtail.xyz/releases/mc-c2s.json"
	// DefaultLegacyServerBaseURL hosts server jars of old versions
	DefaultLegacyServerBaseURL = "http://files.betacraft.uk/server-archive/"
	// DefaultCombinedThreshold is the first version with separate client and server jars
	DefaultCombinedThreshold = "1.3.1"
)

// Options configure a Resolver
type Options struct {
	// CacheDir is the root of the on-disk cache. It is created on first write
	CacheDir string
	// Offline forbids all network access
	Offline bool
	// Refresh ignores cached metadata and re-validates cached files
	Refresh bool
	// Client is the http client to use. Defaults to ownhttp.New()
	Client *http.Client
	// ManifestURL defaults to minecraft.DefaultVersionManifestURL
	ManifestURL string
	// OverridesURL defaults to DefaultOverridesURL
	OverridesURL string
	// LegacyServerBaseURL defaults to DefaultLegacyServerBaseURL
	LegacyServerBaseURL string
	// CombinedThreshold: versions older than this have one jar for client and server.
	// An empty threshold disables the check. See DefaultOptions
	CombinedThreshold string
	// ServerVersionOverrides are applied on top of the remote override table
	ServerVersionOverrides map[string]string
	Logger                 *cmdlog.Logger
}

// DefaultOptions returns Options with the default threshold and endpoints
func DefaultOptions(cacheDir string) Options {
	return Options{
		CacheDir:            cacheDir,
		ManifestURL:         minecraft.DefaultVersionManifestURL,
		OverridesURL:        DefaultOverridesURL,
		LegacyServerBaseURL: DefaultLegacyServerBaseURL,
		CombinedThreshold:   DefaultCombinedThreshold,
	}
}

// Resolver resolves versions to metadata and jars.
// It is safe for concurrent use
type Resolver struct {
	opts    Options
	logger  *cmdlog.Logger
	fetcher *downloadmgr.Fetcher

	manifestMu sync.Mutex
	manifest   *minecraft.VersionManifest

	overridesMu sync.Mutex
	overrides   map[string]string

	versionsMu sync.Mutex
	versions   map[string]*minecraft.VersionData
}

// New returns a new Resolver
func New(opts Options) *Resolver {
	if opts.Client == nil {
		opts.Client = ownhttp.New()
	}
	if opts.ManifestURL == "" {
		opts.ManifestURL = minecraft.DefaultVersionManifestURL
	}
	if opts.OverridesURL == "" {
		opts.OverridesURL = DefaultOverridesURL
	}
	if opts.LegacyServerBaseURL == "" {
		opts.LegacyServerBaseURL = DefaultLegacyServerBaseURL
	}
	logger := cmdlog.OrDiscard(opts.Logger)

	return &Resolver{
		opts:   opts,
		logger: logger,
		fetcher: &downloadmgr.Fetcher{
			Client:  opts.Client,
			Offline: opts.Offline,
			Refresh: opts.Refresh,
			Logger:  logger,
		},
		versions: make(map[string]*minecraft.VersionData),
	}
}

// Fetcher returns the fetcher used by this resolver
func (r *Resolver) Fetcher() *downloadmgr.Fetcher {
	return r.fetcher
}

// Options returns the options of this resolver (with defaults applied)
func (r *Resolver) Options() Options {
	return r.opts
}

// VersionDir is the directory containing all files of a version
func (r *Resolver) VersionDir(version string) string {
	return filepath.Join(r.opts.CacheDir, "net", "minecraft", "minecraft", version)
}

// AssetsDir is the root of the shared asset store
func (r *Resolver) AssetsDir() string {
	return filepath.Join(r.opts.CacheDir, "assets")
}

func (r *Resolver) manifestPath() string {
	return filepath.Join(r.opts.CacheDir, "version_manifest_v2.json")
}

func (r *Resolver) overridesPath() string {
	return filepath.Join(r.opts.CacheDir, "server-version-overrides.json")
}
