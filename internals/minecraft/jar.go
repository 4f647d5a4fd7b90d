package minecraft

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
)

// maxSuffixLength is the longest transform suffix that is kept readable in a file name
const maxSuffixLength = 120

// Jar is a minecraft jar for one version and environment with a set of applied transforms.
// It is a value: deriving a new jar never changes the original
type Jar struct {
	Version    string
	Env        Env
	Transforms []string
	Path       string
}

// NewJar returns the jar for the given triple. The path is computed with JarPath
func NewJar(dir string, version string, env Env, transforms ...string) Jar {
	sorted := normalizeTransforms(transforms)
	return Jar{
		Version:    version,
		Env:        env,
		Transforms: sorted,
		Path:       JarPath(dir, version, env, sorted),
	}
}

// Derive returns a new jar in the same directory with transformID added
func (j Jar) Derive(transformID string) Jar {
	transforms := make([]string, 0, len(j.Transforms)+1)
	transforms = append(transforms, j.Transforms...)
	transforms = append(transforms, transformID)
	return NewJar(filepath.Dir(j.Path), j.Version, j.Env, transforms...)
}

// HasTransform reports whether id was already applied to this jar
func (j Jar) HasTransform(id string) bool {
	return slices.Contains(j.Transforms, id)
}

// JarPath returns the location of a jar. It only depends on its arguments
// and the order of transforms is irrelevant.
// Format: <dir>/minecraft-<version>[-<classifier>][_<t1>_<t2>].jar
// Other characters than A-Z a-z 0-9 . + - are percent encoded, so different
// transform sets never share a path
func JarPath(dir string, version string, env Env, transforms []string) string {
	name := "minecraft-" + escape(version)
	if classifier := env.Classifier(); classifier != "" {
		name += "-" + classifier
	}
	sorted := normalizeTransforms(transforms)
	if len(sorted) != 0 {
		parts := make([]string, len(sorted))
		for i, t := range sorted {
			parts[i] = escape(t)
		}
		suffix := strings.Join(parts, "_")
		if len(suffix) > maxSuffixLength {
			sum := sha1.Sum([]byte(strings.Join(sorted, "\x00")))
			suffix = "t" + hex.EncodeToString(sum[:])[:16]
		}
		name += "_" + suffix
	}
	return filepath.Join(dir, name+".jar")
}

func normalizeTransforms(transforms []string) []string {
	sorted := make([]string, 0, len(transforms))
	for _, t := range transforms {
		if t != "" && !slices.Contains(sorted, t) {
			sorted = append(sorted, t)
		}
	}
	slices.Sort(sorted)
	return sorted
}

// escape percent encodes every byte that is not safe in a file name.
// '%' and '_' are encoded too, which keeps the encoding reversible
func escape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isSafe(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isSafe(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '.', c == '+', c == '-':
		return true
	}
	return false
}
