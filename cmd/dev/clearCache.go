package dev

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/manifoldco/promptui"
	"github.com/minepkg/mcjar/internals/commands"
	"github.com/minepkg/mcjar/internals/globals"
	"github.com/minepkg/mcjar/internals/utils"
	"github.com/spf13/cobra"
)

func init() {
	runner := &clearCacheRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "clear-cache",
		Short: "Clears the mcjar cache",
	}, runner)

	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "do not ask for confirmation")

	SubCmd.AddCommand(cmd.Command)
}

type clearCacheRunner struct {
	yes bool
}

func (c *clearCacheRunner) RunE(cmd *cobra.Command, args []string) error {
	cacheDir := globals.CacheDir
	if cacheDir == "" {
		return fmt.Errorf("no cache directory is configured")
	}

	size, err := dirSize(cacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("Cache is already empty")
			return nil
		}
		return err
	}

	if !c.yes {
		ok := utils.BoolPrompt(&promptui.Prompt{
			Label:   fmt.Sprintf("Delete %s (%s)", cacheDir, humanize.Bytes(uint64(size))),
			Default: "N",
		})
		if !ok {
			return nil
		}
	}

	if err := os.RemoveAll(cacheDir); err != nil {
		return err
	}
	globals.Logger.Infof("Removed %s", humanize.Bytes(uint64(size)))
	return os.MkdirAll(cacheDir, os.ModePerm)
}
