package transform

import (
	"strings"

	"github.com/minepkg/mcjar/internals/minecraft"
	"golang.org/x/exp/slices"
)

// Patch modifies an archive in place
type Patch struct {
	Name  string
	Apply func(a *Archive) error
}

// Step merges supplementary archives into a jar and then applies its patches.
// A step without contributing archives for an env does nothing
type Step struct {
	Name string
	// Shared archives are used for every env
	Shared []Coordinate
	// PerEnv archives are only used for one env. Archives for
	// EnvCombined only end up in combined jars
	PerEnv  map[minecraft.Env][]Coordinate
	Patches []Patch
}

// Contributing returns the archives used for env: the env specific ones and the
// shared ones, deduplicated and sorted by key
func (s *Step) Contributing(env minecraft.Env) []Coordinate {
	seen := map[string]bool{}
	result := []Coordinate{}
	add := func(coords []Coordinate) {
		for _, c := range coords {
			if seen[c.Key()] {
				continue
			}
			seen[c.Key()] = true
			result = append(result, c)
		}
	}
	add(s.PerEnv[env])
	add(s.Shared)

	slices.SortFunc(result, func(a, b Coordinate) bool {
		return a.Key() < b.Key()
	})
	return result
}

// TransformID is the combined name of all contributing archives ("a-1+b-2").
// It is empty if nothing contributes
func (s *Step) TransformID(env minecraft.Env) string {
	contributing := s.Contributing(env)
	keys := make([]string, len(contributing))
	for i, c := range contributing {
		keys[i] = c.Key()
	}
	return strings.Join(keys, "+")
}
