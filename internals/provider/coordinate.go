package provider

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/minepkg/mcjar/internals/merrors"
	"github.com/minepkg/mcjar/internals/minecraft"
)

const (
	// Group of the minecraft dependency
	Group = "net.minecraft"
	// Artifact of the minecraft dependency
	Artifact = "minecraft"
)

// Dependency is a parsed "net.minecraft:minecraft:<version>[:client|server]" notation
type Dependency struct {
	Group      string
	Name       string
	Version    string
	Classifier string
}

// Env returns the env selected by the classifier
func (d *Dependency) Env() minecraft.Env {
	env, _ := minecraft.ParseEnv(d.Classifier)
	return env
}

func (d *Dependency) String() string {
	s := d.Group + ":" + d.Name + ":" + d.Version
	if d.Classifier != "" {
		s += ":" + d.Classifier
	}
	return s
}

// ParseCoordinate parses a dependency notation. The version is URL decoded
func ParseCoordinate(notation string) (*Dependency, error) {
	parts := strings.Split(strings.TrimSpace(notation), ":")
	if len(parts) < 3 || len(parts) > 4 {
		return nil, &merrors.ConfigurationError{
			Err:      fmt.Sprintf("invalid dependency %q", notation),
			HelpText: "Use net.minecraft:minecraft:<version>[:client|server]",
		}
	}
	if parts[0] != Group {
		return nil, &merrors.ConfigurationError{
			Err:      fmt.Sprintf("invalid dependency group for minecraft, expected %s but got %s", Group, parts[0]),
			HelpText: "Use net.minecraft:minecraft:<version>[:client|server]",
		}
	}
	if parts[1] != Artifact {
		return nil, &merrors.ConfigurationError{
			Err: fmt.Sprintf("dependency %s is not a minecraft dependency", notation),
		}
	}

	version, err := url.QueryUnescape(parts[2])
	if err != nil || version == "" {
		return nil, &merrors.ConfigurationError{Err: fmt.Sprintf("invalid version in dependency %q", notation)}
	}

	dep := &Dependency{Group: parts[0], Name: parts[1], Version: version}
	if len(parts) == 4 {
		switch parts[3] {
		case "client", "server":
			dep.Classifier = parts[3]
		default:
			return nil, &merrors.ConfigurationError{
				Err:      fmt.Sprintf("unknown classifier %q in dependency %q", parts[3], notation),
				HelpText: "The classifier can be client or server. Leave it out for a combined jar",
			}
		}
	}
	return dep, nil
}

// SelectDependency returns the single minecraft dependency of notations
func SelectDependency(notations []string) (*Dependency, error) {
	if len(notations) == 0 {
		return nil, &merrors.ConfigurationError{
			Err:      "no dependencies found for minecraft",
			HelpText: "Add net.minecraft:minecraft:<version> to your build file",
		}
	}
	if len(notations) > 1 {
		return nil, &merrors.ConfigurationError{
			Err:      fmt.Sprintf("multiple dependencies found for minecraft: %s", strings.Join(notations, ", ")),
			HelpText: "Only one minecraft dependency is supported",
		}
	}
	return ParseCoordinate(notations[0])
}
