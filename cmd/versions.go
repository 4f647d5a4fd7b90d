package cmd

import (
	"context"
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/mcjar/internals/commands"
	"github.com/minepkg/mcjar/internals/minecraft"
	"github.com/minepkg/mcjar/internals/mojang"
	"github.com/minepkg/mcjar/internals/utils"
	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:     "versions",
	Short:   "Lists and compares minecraft versions",
	Aliases: []string{"version"},
}

func init() {
	list := &versionsListRunner{}
	listCmd := commands.New(&cobra.Command{
		Use:   "list",
		Short: "Lists all known minecraft versions, newest first",
		Args:  cobra.NoArgs,
	}, list)
	listCmd.Flags().StringVar(&list.releaseType, "type", "release", "release, snapshot, old_beta, old_alpha or all")
	listCmd.Flags().IntVar(&list.limit, "limit", 0, "only list the newest n versions")

	compareCmd := commands.New(&cobra.Command{
		Use:     "compare <a> <b>",
		Short:   "Compares the release order of two versions",
		Example: "  mcjar versions compare 1.12.2 b1.7.3",
		Args:    cobra.ExactArgs(2),

		ValidArgsFunction: versionCompletion(2),
	}, &versionsCompareRunner{})

	versionsCmd.AddCommand(listCmd.Command, compareCmd.Command)
	rootCmd.AddCommand(versionsCmd)
}

type versionsListRunner struct {
	releaseType string
	limit       int
}

func (v *versionsListRunner) RunE(cmd *cobra.Command, args []string) error {
	resolver := mojang.New(resolverOptions())
	manifest, err := resolver.Manifest(context.Background())
	if err != nil {
		return err
	}

	latest := map[string]bool{
		manifest.Latest.Release:  true,
		manifest.Latest.Snapshot: true,
	}

	listed := 0
	for _, version := range manifest.Versions {
		if v.releaseType != "all" && version.Type != v.releaseType {
			continue
		}
		if v.limit > 0 && listed >= v.limit {
			break
		}
		listed++

		line := utils.PrettyVersion(version.ID, version.Type)
		if latest[version.ID] {
			line += gchalk.Gray(" (latest)")
		}
		fmt.Println(line)
	}
	return nil
}

type versionsCompareRunner struct{}

func (v *versionsCompareRunner) RunE(cmd *cobra.Command, args []string) error {
	resolver := mojang.New(resolverOptions())
	a, b := minecraft.NormalizeVersion(args[0]), minecraft.NormalizeVersion(args[1])

	result, err := resolver.Compare(context.Background(), a, b)
	if err != nil {
		return err
	}

	switch {
	case result > 0:
		fmt.Printf("%s is newer than %s\n", gchalk.Bold(a), gchalk.Bold(b))
	case result < 0:
		fmt.Printf("%s is older than %s\n", gchalk.Bold(a), gchalk.Bold(b))
	default:
		fmt.Printf("%s and %s are the same version\n", gchalk.Bold(a), gchalk.Bold(b))
	}
	return nil
}
