/*
Package manifest defines the build file format of mcjar.
The "mcjar.toml" file selects a minecraft version and describes the transforms
that are applied to its jar.

	manifestVersion = 0

	[minecraft]
	dependency = "net.minecraft:minecraft:1.2.5:client"

	[[transform]]
	name = "jarmods"
	stripSignatures = true

	  [[transform.archive]]
	  name = "modloader"
	  version = "1.2.5"
	  path = "libs/ModLoader.zip"
*/
package manifest

import (
	"bytes"
	"log"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// DefaultFilename is the name of the build file
const DefaultFilename = "mcjar.toml"

// Manifest describes what jar to build
type Manifest struct {
	// ManifestVersion specifies the format version
	// This field is REQUIRED
	ManifestVersion int       `toml:"manifestVersion" comment:"Preview of the mcjar.toml format! Could break anytime!" json:"manifestVersion"`
	Minecraft       Minecraft `toml:"minecraft" json:"minecraft"`
	// Transforms are applied in the listed order
	Transforms []Transform `toml:"transform,omitempty" json:"transform,omitempty"`
}

// Minecraft selects the version to build
type Minecraft struct {
	// Dependency is a notation like "net.minecraft:minecraft:1.19.2[:client|server]".
	// Without classifier a combined jar is built
	// This field is REQUIRED
	Dependency string `toml:"dependency" json:"dependency"`
	// CombinedThreshold overwrites the first version with separate client and server jars
	CombinedThreshold string `toml:"combinedThreshold,omitempty" json:"combinedThreshold,omitempty"`
	// ServerVersionOverrides maps versions to the file name used by the legacy server archive
	ServerVersionOverrides map[string]string `toml:"serverVersionOverrides,omitempty" json:"serverVersionOverrides,omitempty"`
}

// Transform merges archives into the jar and patches it
type Transform struct {
	// Name has to be unique
	Name string `toml:"name" json:"name"`
	// StripSignatures removes signature files from META-INF
	StripSignatures bool `toml:"stripSignatures,omitempty" json:"stripSignatures,omitempty"`
	// MainClass writes a new manifest with this Main-Class
	MainClass string `toml:"mainClass,omitempty" json:"mainClass,omitempty"`
	// RemovePrefixes removes all entries starting with one of these
	RemovePrefixes []string `toml:"removePrefixes,omitempty" json:"removePrefixes,omitempty"`
	Archives       []Archive `toml:"archive,omitempty" json:"archive,omitempty"`
}

// Archive is a supplementary zip merged into the jar
type Archive struct {
	Name    string `toml:"name" json:"name"`
	Version string `toml:"version" json:"version"`
	// Path is relative to the build file
	Path string `toml:"path" json:"path"`
	// Env is "client", "server" or "combined". Empty means every env
	Env string `toml:"env,omitempty" json:"env,omitempty"`
}

// Buffer returns the manifest as toml in Buffer form
func (m *Manifest) Buffer() *bytes.Buffer {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Order(toml.OrderPreserve).Encode(m); err != nil {
		log.Fatal(err)
	}
	return buf
}

func (m *Manifest) String() string {
	return m.Buffer().String()
}

// New returns a new manifest for version
func New(version string) *Manifest {
	manifest := Manifest{}
	manifest.Minecraft.Dependency = "net.minecraft:minecraft:" + version
	return &manifest
}

// Parse parses a toml build file
func Parse(raw []byte) (*Manifest, error) {
	manifest := &Manifest{}
	if err := toml.Unmarshal(raw, manifest); err != nil {
		return nil, errors.Wrap(err, "invalid build file")
	}
	return manifest, nil
}

// Load reads and parses the build file at path
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	manifest, err := Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load %s", path)
	}
	return manifest, nil
}
