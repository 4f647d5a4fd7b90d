package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/mcjar/internals/commands"
	"github.com/minepkg/mcjar/internals/downloadmgr"
	"github.com/minepkg/mcjar/internals/merrors"
	"github.com/minepkg/mcjar/internals/minecraft"
	"github.com/minepkg/mcjar/internals/provider"
	"github.com/minepkg/mcjar/internals/utils"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	runner := &resolveRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "resolve <version|dependency>",
		Short: "Downloads and verifies the jar of a minecraft version",
		Long: `Downloads and verifies the jar of a minecraft version.
A full dependency notation like "net.minecraft:minecraft:1.19.2:client" can be used instead of a version.`,
		Example: `
  mcjar resolve 1.19.2 --env server
  mcjar resolve net.minecraft:minecraft:b1.7.3:client --format json
  mcjar resolve 1.19.2 --mappings`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: versionCompletion(1),
	}, runner)

	cmd.Flags().StringVar(&runner.env, "env", "client", "client, server or combined")
	cmd.Flags().BoolVar(&runner.mappings, "mappings", false, "also download the official mappings")
	cmd.Flags().StringVar(&runner.format, "format", "text", "output format: text, json or yaml")

	rootCmd.AddCommand(cmd.Command)
}

type resolveRunner struct {
	env      string
	mappings bool
	format   string
}

type resolveResult struct {
	Version  string `json:"version" yaml:"version"`
	Env      string `json:"env" yaml:"env"`
	Path     string `json:"path" yaml:"path"`
	Sha1     string `json:"sha1" yaml:"sha1"`
	Mappings string `json:"mappings,omitempty" yaml:"mappings,omitempty"`
}

func (r *resolveRunner) dependency(arg string) (*provider.Dependency, error) {
	if strings.Contains(arg, ":") {
		return provider.ParseCoordinate(arg)
	}
	env, err := minecraft.ParseEnv(r.env)
	if err != nil {
		return nil, err
	}
	return &provider.Dependency{
		Group:      provider.Group,
		Name:       provider.Artifact,
		Version:    arg,
		Classifier: env.Classifier(),
	}, nil
}

func (r *resolveRunner) RunE(cmd *cobra.Command, args []string) error {
	switch r.format {
	case "text", "json", "yaml":
	default:
		return &merrors.ConfigurationError{
			Err:      fmt.Sprintf("unknown format \"%s\"", r.format),
			HelpText: "Use text, json or yaml",
		}
	}

	dep, err := r.dependency(args[0])
	if err != nil {
		return err
	}

	p := newProvider(resolverOptions(), nil)
	ctx := context.Background()

	spinner := utils.NewMaybeSpinner(r.format == "text" && interactive())
	spinner.Start(fmt.Sprintf("Resolving %s", dep))
	jar, err := p.ProvideDependency(ctx, dep)
	if err != nil {
		spinner.Stop()
		return err
	}

	result := resolveResult{
		Version: jar.Version,
		Env:     jar.Env.String(),
		Path:    jar.Path,
	}
	if r.mappings {
		spinner.Update("Fetching mappings")
		result.Mappings, err = p.Mappings(ctx, jar.Version, jar.Env)
		if err != nil {
			spinner.Stop()
			return err
		}
	}
	spinner.Stop()

	result.Sha1, err = downloadmgr.HashFile(jar.Path)
	if err != nil {
		return err
	}

	switch r.format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(result)
	}

	fmt.Printf("%s %s\n", gchalk.Bold(dep.String()), gchalk.Gray("("+result.Env+")"))
	fmt.Printf("  jar:      %s\n", result.Path)
	fmt.Printf("  sha1:     %s\n", result.Sha1)
	if result.Mappings != "" {
		fmt.Printf("  mappings: %s\n", result.Mappings)
	}
	return nil
}
