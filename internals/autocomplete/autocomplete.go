// Package autocomplete completes minecraft versions in the shell
package autocomplete

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/minepkg/mcjar/internals/minecraft"
	"github.com/minepkg/mcjar/internals/mojang"
	"github.com/spf13/cobra"
)

// coordinate prefix that is also completed
const dependencyPrefix = "net.minecraft:minecraft:"

// VersionCompleter completes version ids from the cached version manifest.
// It never uses the network, completions have to be fast
type VersionCompleter struct {
	Resolver *mojang.Resolver
	// Types limits the completed versions. Empty means all types
	Types []string
	// MaxArgs is the number of positional args that are completed
	MaxArgs int
}

// NewVersionCompleter returns a completer reading the manifest from cacheDir
func NewVersionCompleter(cacheDir string) *VersionCompleter {
	opts := mojang.DefaultOptions(cacheDir)
	opts.Offline = true
	return &VersionCompleter{Resolver: mojang.New(opts), MaxArgs: 1}
}

// ValidArgs can be used as cobra.Command.ValidArgsFunction
func (v *VersionCompleter) ValidArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if v.MaxArgs > 0 && len(args) >= v.MaxArgs {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return v.Complete(toComplete)
}

// Complete returns all matching versions, newest first
func (v *VersionCompleter) Complete(toComplete string) ([]string, cobra.ShellCompDirective) {
	// error is ignored on purpose, there is just nothing to complete without a cache
	manifest, _ := v.Resolver.Manifest(context.TODO())
	if manifest == nil {
		return []string{}, cobra.ShellCompDirectiveNoFileComp
	}
	return completeVersions(manifest, toComplete, v.Types), cobra.ShellCompDirectiveNoFileComp
}

func completeVersions(manifest *minecraft.VersionManifest, toComplete string, types []string) []string {
	prefix := ""
	if strings.HasPrefix(toComplete, dependencyPrefix) {
		prefix = dependencyPrefix
		toComplete = strings.TrimPrefix(toComplete, dependencyPrefix)
	}

	allowed := map[string]bool{}
	for _, t := range types {
		allowed[t] = true
	}

	typeStyle := lipgloss.NewStyle().Width(9)
	matches := []string{}
	for _, version := range manifest.Versions {
		if len(allowed) != 0 && !allowed[version.Type] {
			continue
		}
		if !strings.HasPrefix(version.ID, toComplete) {
			continue
		}

		description := typeStyle.Render(version.Type)
		if len(version.ReleaseTime) >= 10 {
			description += " " + version.ReleaseTime[:10]
		}
		if version.ID == manifest.Latest.Release || version.ID == manifest.Latest.Snapshot {
			description += " (latest)"
		}
		matches = append(matches, fmt.Sprintf("%s%s\t%s", prefix, version.ID, description))
	}
	return matches
}
