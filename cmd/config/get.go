package config

import (
	"fmt"
	"strings"

	"github.com/minepkg/mcjar/internals/commands"
	"github.com/minepkg/mcjar/internals/merrors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "get [key]",
		Short: "Gets a global config value. Lists all values without a key",
		Args:  cobra.MaximumNArgs(1),
	}, &getRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type getRunner struct{}

func (i *getRunner) RunE(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		keys := maps.Keys(config)
		slices.Sort(keys)
		for _, key := range keys {
			entry := config[key]
			fmt.Printf("  %s: %v\t# %s\n", key, viper.Get(entry.key), entry.help)
		}
		return nil
	}

	key := strings.ToLower(args[0])
	entry, ok := config[key]
	if !ok {
		return unknownKey(key)
	}

	fmt.Println("Printing config entry:")
	fmt.Printf("  %s: %v\n", key, viper.Get(entry.key))

	return nil
}

func unknownKey(key string) error {
	keys := maps.Keys(config)
	slices.Sort(keys)
	return &merrors.ConfigurationError{
		Err:      fmt.Sprintf("config key \"%s\" does not exist", key),
		HelpText: "Available keys: " + strings.Join(keys, ", "),
	}
}
