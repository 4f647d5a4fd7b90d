// Package transform derives new jars from existing ones by merging in
// supplementary archives and applying patches
package transform

import (
	"context"
	"fmt"
	"github.com/klauspost/compress/zip"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/hashicorp/go-multierror"
	"github.com/mholt/archiver/v3"
	"github.com/minepkg/mcjar/internals/cmdlog"
	"github.com/minepkg/mcjar/internals/minecraft"
)

const lockRetryDelay = 100 * time.Millisecond

// Pipeline applies the steps of a registry to jars
type Pipeline struct {
	Registry *Registry
	// Refresh rebuilds derived jars even if they exist
	Refresh bool
	Logger  *cmdlog.Logger
}

// Apply runs every registered step in order
func (p *Pipeline) Apply(ctx context.Context, src minecraft.Jar) (minecraft.Jar, error) {
	if p.Registry == nil {
		return src, nil
	}
	jar := src
	for _, step := range p.Registry.steps {
		var err error
		jar, err = p.Derive(ctx, jar, step)
		if err != nil {
			return minecraft.Jar{}, fmt.Errorf("transform %s failed: %w", step.Name, err)
		}
	}
	return jar, nil
}

// Derive applies a single step to src. A step without contributing
// archives returns src unchanged
func (p *Pipeline) Derive(ctx context.Context, src minecraft.Jar, step Step) (minecraft.Jar, error) {
	logger := cmdlog.OrDiscard(p.Logger)

	transformID := step.TransformID(src.Env)
	if transformID == "" || src.HasTransform(transformID) {
		return src, nil
	}
	target := src.Derive(transformID)

	if !p.Refresh && exists(target.Path) {
		logger.Debugf("using cached %s", target.Path)
		return target, nil
	}

	lock := flock.New(target.Path + ".lock")
	if err := ensureDir(target.Path); err != nil {
		return minecraft.Jar{}, err
	}
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return minecraft.Jar{}, err
	}
	if !locked {
		return minecraft.Jar{}, fmt.Errorf("could not lock %s", target.Path)
	}
	defer lock.Unlock()

	// someone else might have built it while we waited
	if !p.Refresh && exists(target.Path) {
		return target, nil
	}

	logger.Debugf("deriving %s from %s", target.Path, src.Path)
	if err := build(ctx, src.Path, target.Path, step.Contributing(src.Env), step.Patches); err != nil {
		if rmErr := os.Remove(target.Path); rmErr != nil && !os.IsNotExist(rmErr) {
			err = multierror.Append(err, rmErr)
		}
		return minecraft.Jar{}, err
	}
	return target, nil
}

func build(ctx context.Context, src string, target string, contributing []Coordinate, patches []Patch) error {
	archive, err := OpenArchive(src)
	if err != nil {
		return err
	}
	defer archive.Close()

	archive.RemoveDir("META-INF")

	for _, c := range contributing {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := mergeArchive(archive, c.Path); err != nil {
			return fmt.Errorf("could not merge %s: %w", c.Key(), err)
		}
	}

	for _, patch := range patches {
		if err := patch.Apply(archive); err != nil {
			return fmt.Errorf("patch %s failed: %w", patch.Name, err)
		}
	}

	return archive.CommitTo(target)
}

// mergeArchive copies every entry of the zip at path into archive.
// Directories are created, files replace existing ones
func mergeArchive(archive *Archive, path string) error {
	return archiver.NewZip().Walk(path, func(f archiver.File) error {
		name := entryName(f)
		if name == "" {
			return nil
		}
		if f.IsDir() {
			return archive.Mkdir(name)
		}
		data, err := io.ReadAll(f)
		if err != nil {
			return err
		}
		return archive.WriteFile(name, data)
	})
}

func entryName(f archiver.File) string {
	switch h := f.Header.(type) {
	case zip.FileHeader:
		return h.Name
	case *zip.FileHeader:
		return h.Name
	default:
		return f.Name()
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), os.ModePerm)
}
