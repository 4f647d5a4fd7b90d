package manifest

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	ErrorLevelWarn = iota
	ErrorLevelFatal
)

type ValidationError struct {
	message string
	Path    string
	Level   int
}

func (e ValidationError) Error() string {
	return e.message
}

var (
	// ErrUnsupportedManifestVersion is returned when the manifest version is not supported.
	ErrUnsupportedManifestVersion = ValidationError{
		message: "version is not supported",
		Path:    "manifestVersion",
		Level:   ErrorLevelWarn,
	}
	// ErrNoDependency is returned when the manifest does not select a minecraft version.
	ErrNoDependency = ValidationError{
		message: "does not contain a minecraft dependency",
		Path:    "minecraft.dependency",
		Level:   ErrorLevelFatal,
	}
	// ErrInvalidDependency is returned when the dependency is not a minecraft dependency.
	ErrInvalidDependency = ValidationError{
		message: "dependency has to look like net.minecraft:minecraft:<version>[:client|server]",
		Path:    "minecraft.dependency",
		Level:   ErrorLevelFatal,
	}
)

// helper regexes
var (
	validDependency = regexp.MustCompile(`^net\.minecraft:minecraft:[^:]+(:(client|server))?$`)
	validName       = regexp.MustCompile(`^[A-Za-z0-9-_ ]+$`)
)

type Problems []ValidationError

// Fatal returns the first fatal error in the list. If there are no fatal errors, it returns nil.
func (p *Problems) Fatal() error {
	for _, problem := range *p {
		if problem.Level == ErrorLevelFatal {
			return problem
		}
	}
	return nil
}

func validateTransform(i int, t Transform, seen map[string]bool) Problems {
	problems := Problems{}
	path := fmt.Sprintf("transform[%d]", i)

	switch {
	case t.Name == "":
		problems = append(problems, ValidationError{"transform has no name", path + ".name", ErrorLevelFatal})
	case !validName.MatchString(t.Name):
		problems = append(problems, ValidationError{"transform name is invalid", path + ".name", ErrorLevelFatal})
	case seen[strings.ToLower(t.Name)]:
		problems = append(problems, ValidationError{"transform " + t.Name + " is defined twice", path + ".name", ErrorLevelFatal})
	}
	seen[strings.ToLower(t.Name)] = true

	if len(t.Archives) == 0 {
		problems = append(problems, ValidationError{
			"transform has no archives and will never be applied",
			path + ".archive",
			ErrorLevelWarn,
		})
	}

	for j, a := range t.Archives {
		archivePath := fmt.Sprintf("%s.archive[%d]", path, j)
		if a.Name == "" || a.Version == "" {
			problems = append(problems, ValidationError{"archive needs a name and a version", archivePath, ErrorLevelFatal})
		}
		if a.Path == "" {
			problems = append(problems, ValidationError{"archive has no path", archivePath + ".path", ErrorLevelFatal})
		}
		switch a.Env {
		case "", "client", "server", "combined":
		default:
			problems = append(problems, ValidationError{
				"archive env has to be client, server or combined",
				archivePath + ".env",
				ErrorLevelFatal,
			})
		}
	}
	return problems
}

// Validate checks the manifest for correctness.
func (m *Manifest) Validate() Problems {
	problems := Problems{}

	// manifest version
	if m.ManifestVersion != 0 {
		problems = append(problems, ErrUnsupportedManifestVersion)
	}

	switch {
	case m.Minecraft.Dependency == "":
		problems = append(problems, ErrNoDependency)
	case !validDependency.MatchString(m.Minecraft.Dependency):
		problems = append(problems, ErrInvalidDependency)
	}

	seen := map[string]bool{}
	for i, t := range m.Transforms {
		problems = append(problems, validateTransform(i, t, seen)...)
	}
	return problems
}
