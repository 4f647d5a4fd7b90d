package cmd

import (
	"net/http"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/minepkg/mcjar/internals/autocomplete"
	"github.com/minepkg/mcjar/internals/globals"
	"github.com/minepkg/mcjar/internals/mojang"
	"github.com/minepkg/mcjar/internals/ownhttp"
	"github.com/minepkg/mcjar/internals/provider"
	"github.com/minepkg/mcjar/internals/transform"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resolverOptions returns the resolver options from the global config
func resolverOptions() mojang.Options {
	opts := mojang.DefaultOptions(globals.CacheDir)
	opts.Offline = viper.GetBool("offline")
	opts.Refresh = viper.GetBool("refresh")
	opts.Client = globals.HTTPClient
	opts.Logger = globals.Logger
	if viper.IsSet("combinedThreshold") {
		opts.CombinedThreshold = viper.GetString("combinedThreshold")
	}
	return opts
}

// newProvider returns a provider configured from the global config
func newProvider(opts mojang.Options, pipeline *transform.Pipeline) *provider.Provider {
	p := provider.New(mojang.New(opts), pipeline, globals.Logger)
	p.Assets.Workers = viper.GetInt("workers")
	p.Assets.Client = assetClient(viper.GetFloat64("rateLimit"))
	return p
}

// assetClient returns the client for asset objects, throttled to rps requests per second if rps > 0
func assetClient(rps float64) *http.Client {
	return ownhttp.Throttled(ownhttp.NewAssetClient(), rps)
}

// interactive reports whether stdout is a terminal
func interactive() bool {
	return os.Getenv("CI") == "" && isatty.IsTerminal(os.Stdout.Fd())
}

// versionCompletion completes up to maxArgs version args from the cached manifest
func versionCompletion(maxArgs int) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		completer := autocomplete.NewVersionCompleter(globals.CacheDir)
		completer.MaxArgs = maxArgs
		return completer.ValidArgs(cmd, args, toComplete)
	}
}
