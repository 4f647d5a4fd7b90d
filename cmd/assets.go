package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/minepkg/mcjar/internals/commands"
	"github.com/minepkg/mcjar/internals/globals"
	"github.com/spf13/cobra"
)

func init() {
	runner := &assetsRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "assets <version>",
		Short: "Downloads all assets of a minecraft version",
		Long: `Downloads the asset index and all objects of a minecraft version.
Objects are verified by hash and only missing or broken ones are fetched.`,
		Example: `
  mcjar assets 1.19.2
  mcjar assets 1.5.2 --resources ./resources`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: versionCompletion(1),
	}, runner)

	cmd.Flags().StringVar(&runner.resources, "resources", "", "target directory for legacy assets (defaults to the cache)")

	rootCmd.AddCommand(cmd.Command)
}

type assetsRunner struct {
	resources string
}

func (a *assetsRunner) RunE(cmd *cobra.Command, args []string) error {
	version := args[0]
	p := newProvider(resolverOptions(), nil)
	p.Assets.ResourceDir = a.resources
	ctx := context.Background()

	if !interactive() {
		last := -1
		p.Assets.OnProgress = func(done int, total int) {
			// about every 10 percent
			step := done * 10 / total
			if step != last || done == total {
				last = step
				globals.Logger.Infof("%d/%d assets", done, total)
			}
		}
		root, err := p.SyncAssets(ctx, version)
		if err != nil {
			return err
		}
		fmt.Println(root)
		return nil
	}

	tracker := &syncTracker{}
	p.Assets.OnProgress = tracker.OnProgress
	m := newModel(ctx, version, tracker, func(ctx context.Context) (string, error) {
		return p.SyncAssets(ctx, version)
	})

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	result := final.(model).result
	if result.err != nil {
		return result.err
	}
	fmt.Println(result.root)
	return nil
}
