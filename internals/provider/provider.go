// Package provider ties version resolution, merging, transforms and assets together
package provider

import (
	"context"
	"os"

	"github.com/minepkg/mcjar/internals/assets"
	"github.com/minepkg/mcjar/internals/cmdlog"
	"github.com/minepkg/mcjar/internals/minecraft"
	"github.com/minepkg/mcjar/internals/mojang"
	"github.com/minepkg/mcjar/internals/transform"
)

// Provider provides minecraft jars, mappings and assets
type Provider struct {
	Resolver *mojang.Resolver
	// Pipeline is optional. Without it Provide returns vanilla jars
	Pipeline *transform.Pipeline
	// Assets is optional. It defaults to a synchronizer in the resolver cache
	Assets *assets.Synchronizer
	Logger *cmdlog.Logger
}

// New returns a Provider using the resolver's cache and settings
func New(resolver *mojang.Resolver, pipeline *transform.Pipeline, logger *cmdlog.Logger) *Provider {
	return &Provider{
		Resolver: resolver,
		Pipeline: pipeline,
		Assets: &assets.Synchronizer{
			Dir:     resolver.AssetsDir(),
			Fetcher: resolver.Fetcher(),
			Logger:  logger,
		},
		Logger: logger,
	}
}

// Minecraft returns the vanilla jar of version for env.
// Combined jars of versions with separate client and server jars are merged
func (p *Provider) Minecraft(ctx context.Context, version string, env minecraft.Env) (minecraft.Jar, error) {
	if env != minecraft.EnvCombined || minecraft.IsSynthetic(version) {
		return p.Resolver.Jar(ctx, version, env)
	}

	combined, err := p.Resolver.IsCombined(ctx, version)
	if err != nil {
		return minecraft.Jar{}, err
	}
	if combined {
		return p.Resolver.Jar(ctx, version, env)
	}
	return p.merged(ctx, version)
}

func (p *Provider) merged(ctx context.Context, version string) (minecraft.Jar, error) {
	logger := cmdlog.OrDiscard(p.Logger)
	target := minecraft.NewJar(p.Resolver.VersionDir(version), version, minecraft.EnvCombined)

	client, err := p.Resolver.Jar(ctx, version, minecraft.EnvClient)
	if err != nil {
		return minecraft.Jar{}, err
	}
	server, err := p.Resolver.Jar(ctx, version, minecraft.EnvServer)
	if err != nil {
		return minecraft.Jar{}, err
	}

	if _, err := os.Stat(target.Path); err == nil && !p.Resolver.Options().Refresh {
		return target, nil
	}

	logger.Infof("Merging client and server jar of %s", version)
	if err := transform.Merge(ctx, client.Path, server.Path, target.Path, logger); err != nil {
		return minecraft.Jar{}, err
	}
	return target, nil
}

// Provide returns the jar of version for env with all transforms applied
func (p *Provider) Provide(ctx context.Context, version string, env minecraft.Env) (minecraft.Jar, error) {
	jar, err := p.Minecraft(ctx, version, env)
	if err != nil {
		return minecraft.Jar{}, err
	}
	if p.Pipeline == nil {
		return jar, nil
	}
	return p.Pipeline.Apply(ctx, jar)
}

// ProvideDependency is Provide for a dependency notation
func (p *Provider) ProvideDependency(ctx context.Context, dep *Dependency) (minecraft.Jar, error) {
	return p.Provide(ctx, dep.Version, dep.Env())
}

// Mappings returns the path of the official mappings
func (p *Provider) Mappings(ctx context.Context, version string, env minecraft.Env) (string, error) {
	return p.Resolver.Mappings(ctx, version, env)
}

// SyncAssets downloads all assets of a version and returns the asset root
func (p *Provider) SyncAssets(ctx context.Context, version string) (string, error) {
	index, err := p.Resolver.AssetIndex(ctx, version)
	if err != nil {
		return "", err
	}
	return p.Assets.Sync(ctx, index)
}
