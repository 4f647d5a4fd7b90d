package config

import (
	"github.com/spf13/cobra"
)

const (
	configKindString = iota
	configKindBool
	configKindInt
	configKindFloat
)

type configEntry struct {
	// key is the viper key
	key  string
	kind int
	help string
}

var config = map[string]configEntry{
	"cachedir":          {"cacheDir", configKindString, "directory for downloaded and derived files"},
	"offline":           {"offline", configKindBool, "never access the network"},
	"refresh":           {"refresh", configKindBool, "always refetch metadata and rebuild derived jars"},
	"workers":           {"workers", configKindInt, "number of parallel downloads"},
	"ratelimit":         {"rateLimit", configKindFloat, "maximum requests per second"},
	"verbose":           {"verbose", configKindBool, "print debug output"},
	"nocolor":           {"noColor", configKindBool, "disable color output"},
	"combinedthreshold": {"combinedThreshold", configKindString, "first version with separate client and server jars"},
}

var SubCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global config options",
}
