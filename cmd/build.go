package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/mcjar/internals/commands"
	"github.com/minepkg/mcjar/internals/downloadmgr"
	"github.com/minepkg/mcjar/internals/globals"
	"github.com/minepkg/mcjar/internals/minecraft"
	"github.com/minepkg/mcjar/internals/provider"
	"github.com/minepkg/mcjar/internals/transform"
	"github.com/minepkg/mcjar/internals/utils"
	"github.com/minepkg/mcjar/pkg/manifest"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	runner := &buildRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "build",
		Short: "Builds the jar described by a mcjar.toml file",
		Long: `Resolves the minecraft jar selected in the build file, merges the listed
archives into it and applies all patches. The result is recorded in mcjar.lock`,
		Args: cobra.NoArgs,
	}, runner)

	cmd.Flags().StringVarP(&runner.file, "file", "f", manifest.DefaultFilename, "path to the build file")
	cmd.Flags().BoolVar(&runner.noLock, "no-lock", false, "do not write a lockfile")

	rootCmd.AddCommand(cmd.Command)
}

type buildRunner struct {
	file   string
	noLock bool
}

func (b *buildRunner) RunE(cmd *cobra.Command, args []string) error {
	startTime := time.Now()
	logger := globals.Logger

	m, err := manifest.Load(b.file)
	if err != nil {
		return err
	}
	problems := m.Validate()
	for _, problem := range problems {
		if problem.Level == manifest.ErrorLevelWarn {
			logger.Warnf("%s: %s", problem.Path, problem.Error())
		}
	}
	if err := problems.Fatal(); err != nil {
		return fmt.Errorf("%s is invalid: %w", b.file, err)
	}

	dep, err := provider.ParseCoordinate(m.Minecraft.Dependency)
	if err != nil {
		return err
	}

	baseDir := filepath.Dir(b.file)
	registry, err := buildRegistry(m.Transforms, baseDir)
	if err != nil {
		return err
	}

	opts := resolverOptions()
	if m.Minecraft.CombinedThreshold != "" {
		opts.CombinedThreshold = m.Minecraft.CombinedThreshold
	}
	opts.ServerVersionOverrides = m.Minecraft.ServerVersionOverrides

	pipeline := &transform.Pipeline{
		Registry: registry,
		Refresh:  viper.GetBool("refresh"),
		Logger:   logger,
	}
	p := newProvider(opts, pipeline)
	ctx := context.Background()

	spinner := utils.NewMaybeSpinner(interactive())
	spinner.Start(fmt.Sprintf("Resolving %s", dep))
	vanilla, err := p.Minecraft(ctx, dep.Version, dep.Env())
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.Update(fmt.Sprintf("Applying %d transforms", registry.Len()))
	output, err := pipeline.Apply(ctx, vanilla)
	spinner.Stop()
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", gchalk.Bold(output.Path), gchalk.Gray("("+output.Env.String()+")"))
	logger.Info("Finished build in " + time.Since(startTime).Round(time.Millisecond).String())

	if b.noLock {
		return nil
	}
	lock, err := newLockfile(vanilla, output, registry)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(baseDir, manifest.LockFilename), lock.Buffer().Bytes(), 0644)
}

// buildRegistry turns the transforms of a build file into pipeline steps
func buildRegistry(transforms []manifest.Transform, baseDir string) (*transform.Registry, error) {
	builder := transform.NewRegistryBuilder()
	for _, t := range transforms {
		step := transform.Step{
			Name:   t.Name,
			PerEnv: map[minecraft.Env][]transform.Coordinate{},
		}
		for _, a := range t.Archives {
			path := a.Path
			if !filepath.IsAbs(path) {
				path = filepath.Join(baseDir, path)
			}
			coord := transform.Coordinate{Name: a.Name, Version: a.Version, Path: path}
			if a.Env == "" {
				step.Shared = append(step.Shared, coord)
				continue
			}
			env, err := minecraft.ParseEnv(a.Env)
			if err != nil {
				return nil, err
			}
			step.PerEnv[env] = append(step.PerEnv[env], coord)
		}

		if t.StripSignatures {
			step.Patches = append(step.Patches, transform.StripSignatures())
		}
		if len(t.RemovePrefixes) != 0 {
			step.Patches = append(step.Patches, transform.RemovePrefixes(t.RemovePrefixes...))
		}
		if t.MainClass != "" {
			step.Patches = append(step.Patches, transform.SetMainClass(t.MainClass))
		}
		builder.Add(step)
	}
	return builder.Build()
}

func newLockfile(vanilla minecraft.Jar, output minecraft.Jar, registry *transform.Registry) (*manifest.Lockfile, error) {
	lock := manifest.NewLockfile(vanilla.Version, vanilla.Env.String())

	var err error
	lock.Vanilla.Path = vanilla.Path
	if lock.Vanilla.Sha1, err = downloadmgr.HashFile(vanilla.Path); err != nil {
		return nil, err
	}
	lock.Output.Path = output.Path
	if lock.Output.Sha1, err = downloadmgr.HashFile(output.Path); err != nil {
		return nil, err
	}

	for _, step := range registry.Steps() {
		id := step.TransformID(vanilla.Env)
		if id == "" {
			continue
		}
		lock.Transforms = append(lock.Transforms, manifest.LockedTransform{Name: step.Name, ID: id})
	}
	return lock, nil
}
