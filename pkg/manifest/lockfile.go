package manifest

import (
	"bytes"
	"log"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// LockfileVersion is the current version of the lockfile template
const LockfileVersion = 1

// LockFilename is the name of the lockfile next to the build file
const LockFilename = "mcjar.lock"

// Lockfile records what a build produced
type Lockfile struct {
	LockfileVersion int    `toml:"lockfileVersion" json:"lockfileVersion"`
	Version         string `toml:"version" json:"version"`
	Env             string `toml:"env" json:"env"`
	// Vanilla is the jar before any transforms
	Vanilla LockedJar `toml:"vanilla" json:"vanilla"`
	// Output is the final jar
	Output     LockedJar        `toml:"output" json:"output"`
	Transforms []LockedTransform `toml:"transform,omitempty" json:"transform,omitempty"`
}

// LockedJar is a built jar
type LockedJar struct {
	Path string `toml:"path" json:"path"`
	Sha1 string `toml:"sha1" json:"sha1"`
}

// LockedTransform is an applied transform
type LockedTransform struct {
	Name string `toml:"name" json:"name"`
	ID   string `toml:"id" json:"id"`
}

// NewLockfile returns a new lockfile
func NewLockfile(version string, env string) *Lockfile {
	return &Lockfile{LockfileVersion: LockfileVersion, Version: version, Env: env}
}

// Buffer returns the lockfile as toml in Buffer form
func (l *Lockfile) Buffer() *bytes.Buffer {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Order(toml.OrderPreserve).Encode(l); err != nil {
		log.Fatal(err)
	}
	return buf
}

func (l *Lockfile) String() string {
	return l.Buffer().String()
}

// LoadLockfile reads the lockfile at path
func LoadLockfile(path string) (*Lockfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lock := &Lockfile{}
	if err := toml.Unmarshal(raw, lock); err != nil {
		return nil, errors.Wrapf(err, "invalid lockfile %s", path)
	}
	return lock, nil
}
