package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minepkg/mcjar/cmd/config"
	"github.com/minepkg/mcjar/cmd/dev"
	"github.com/minepkg/mcjar/internals/cmdlog"
	"github.com/minepkg/mcjar/internals/commands"
	"github.com/minepkg/mcjar/internals/globals"
	"github.com/minepkg/mcjar/internals/ownhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set by main (goreleaser)
var Version = "dev"

// Commit is set by main (goreleaser)
var Commit = ""

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mcjar",
	Short: "Resolves, downloads and transforms Minecraft jars",
	Long:  "Fetch verified Minecraft client and server jars, their assets and mappings, and derive modded jars from them",

	Example: `
  mcjar resolve 1.19.2 --env client
  mcjar assets 1.12.2
  mcjar build --file mcjar.toml`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = Version
	if Commit != "" {
		rootCmd.Version += " (" + Commit + ")"
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	defaultCache := ""
	if cacheDir, err := os.UserCacheDir(); err == nil {
		defaultCache = filepath.Join(cacheDir, "mcjar")
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/mcjar/config.toml)")
	flags.String("cache-dir", defaultCache, "directory for downloaded and derived files")
	flags.Bool("offline", false, "never access the network, only use cached files")
	flags.Bool("refresh", false, "ignore cached metadata and rebuild derived jars")
	flags.Int("workers", 16, "number of parallel downloads")
	flags.Float64("rate-limit", 0, "maximum requests per second (0 means unlimited)")
	flags.BoolP("verbose", "v", false, "print debug output")
	flags.Bool("no-color", false, "disable color output")

	viper.BindPFlag("cacheDir", flags.Lookup("cache-dir"))
	viper.BindPFlag("offline", flags.Lookup("offline"))
	viper.BindPFlag("refresh", flags.Lookup("refresh"))
	viper.BindPFlag("workers", flags.Lookup("workers"))
	viper.BindPFlag("rateLimit", flags.Lookup("rate-limit"))
	viper.BindPFlag("verbose", flags.Lookup("verbose"))
	viper.BindPFlag("noColor", flags.Lookup("no-color"))

	rootCmd.AddCommand(config.SubCmd)
	rootCmd.AddCommand(dev.SubCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else if configDir, err := os.UserConfigDir(); err == nil {
		viper.SetConfigFile(filepath.Join(configDir, "mcjar", "config.toml"))
	}

	viper.SetEnvPrefix("MCJAR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// a missing config file is fine
	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			globals.Logger.Warnf("Could not read config file: %s", err)
		}
	}

	if viper.GetBool("noColor") {
		globals.Logger.DisableColor()
		commands.EmojiEnabled = false
	}
	if viper.GetBool("verbose") {
		globals.Logger.SetLevel(cmdlog.DebugLevel)
		if viper.ConfigFileUsed() != "" {
			globals.Logger.Debugf("Using config file: %s", viper.ConfigFileUsed())
		}
	}

	globals.CacheDir = viper.GetString("cacheDir")
	if rps := viper.GetFloat64("rateLimit"); rps > 0 {
		globals.HTTPClient = ownhttp.Throttled(globals.HTTPClient, rps)
	}
}
