package dev

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/minepkg/mcjar/internals/commands"
	"github.com/minepkg/mcjar/internals/globals"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SubCmd holds commands for debugging mcjar itself
var SubCmd = &cobra.Command{
	Use:    "dev",
	Short:  "Commands for debugging mcjar",
	Hidden: true,
}

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "info",
		Short: "Prints the cache location and the used config",
	}, &infoRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type infoRunner struct{}

func (i *infoRunner) RunE(cmd *cobra.Command, args []string) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = "(none)"
	}

	fmt.Printf("  version:   %s\n", cmd.Root().Version)
	fmt.Printf("  platform:  %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("  config:    %s\n", configFile)
	fmt.Printf("  cache:     %s\n", globals.CacheDir)

	if size, err := dirSize(globals.CacheDir); err == nil {
		fmt.Printf("  cached:    %s\n", humanize.Bytes(uint64(size)))
	}
	if usage, err := disk.Usage(globals.CacheDir); err == nil {
		fmt.Printf("  disk free: %s\n", humanize.Bytes(usage.Free))
	}
	fmt.Printf("  offline:   %v\n", viper.GetBool("offline"))
	fmt.Printf("  workers:   %d\n", viper.GetInt("workers"))
	return nil
}

// dirSize sums the size of all regular files in dir
func dirSize(dir string) (int64, error) {
	var size int64
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			size += info.Size()
		}
		return nil
	})
	return size, err
}
