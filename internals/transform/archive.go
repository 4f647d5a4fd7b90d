package transform

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dchest/uniuri"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// modTime is used for all written entries so derived jars are reproducible
var modTime = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

type entry struct {
	// file is set for unchanged entries of the opened archive
	file *zip.File
	data []byte
	dir  bool
}

// Archive is a zip file that can be modified in memory and then
// written to a new location. Unchanged entries are copied without recompression
type Archive struct {
	reader  *zip.ReadCloser
	entries map[string]*entry
}

// NewArchive returns an empty archive
func NewArchive() *Archive {
	return &Archive{entries: make(map[string]*entry)}
}

// OpenArchive opens the zip file at path
func OpenArchive(path string) (*Archive, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("could not open archive %s: %w", path, err)
	}
	a := &Archive{reader: reader, entries: make(map[string]*entry, len(reader.File))}
	for _, f := range reader.File {
		name := cleanName(f.Name)
		if name == "" {
			continue
		}
		a.entries[name] = &entry{file: f, dir: strings.HasSuffix(f.Name, "/")}
	}
	return a, nil
}

func cleanName(name string) string {
	name = strings.TrimLeft(filepath.ToSlash(name), "/")
	return strings.TrimSuffix(name, "/")
}

// Entries returns all entry names, sorted. Directories have no trailing slash
func (a *Archive) Entries() []string {
	names := maps.Keys(a.entries)
	slices.Sort(names)
	return names
}

// Has reports whether the archive contains the file or directory name
func (a *Archive) Has(name string) bool {
	_, ok := a.entries[cleanName(name)]
	return ok
}

// IsDir reports whether name is a directory entry
func (a *Archive) IsDir(name string) bool {
	e, ok := a.entries[cleanName(name)]
	return ok && e.dir
}

// ReadFile returns the content of a file entry
func (a *Archive) ReadFile(name string) ([]byte, error) {
	e, ok := a.entries[cleanName(name)]
	if !ok || e.dir {
		return nil, fmt.Errorf("%s: %w", name, os.ErrNotExist)
	}
	if e.file == nil {
		return e.data, nil
	}
	rc, err := e.file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// WriteFile replaces (or creates) the file name with data
func (a *Archive) WriteFile(name string, data []byte) error {
	name = cleanName(name)
	if name == "" {
		return fmt.Errorf("invalid entry name")
	}
	if e, ok := a.entries[name]; ok && e.dir {
		return fmt.Errorf("%s is a directory", name)
	}
	a.entries[name] = &entry{data: data}
	return nil
}

// Mkdir adds a directory entry. Existing directories are left alone
func (a *Archive) Mkdir(name string) error {
	name = cleanName(name)
	if name == "" {
		return nil
	}
	if e, ok := a.entries[name]; ok {
		if !e.dir {
			return fmt.Errorf("%s is a file", name)
		}
		return nil
	}
	a.entries[name] = &entry{dir: true}
	return nil
}

// Remove removes a single entry
func (a *Archive) Remove(name string) error {
	name = cleanName(name)
	if _, ok := a.entries[name]; !ok {
		return fmt.Errorf("%s: %w", name, os.ErrNotExist)
	}
	delete(a.entries, name)
	return nil
}

// RemoveDir removes a directory and everything in it. It returns the number of removed entries
func (a *Archive) RemoveDir(name string) int {
	name = cleanName(name)
	prefix := name + "/"
	removed := 0
	for entryName := range a.entries {
		if entryName == name || strings.HasPrefix(entryName, prefix) {
			delete(a.entries, entryName)
			removed++
		}
	}
	return removed
}

// CommitTo writes the archive to target. The file is written next to target
// and renamed over it when complete
func (a *Archive) CommitTo(target string) error {
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return err
	}
	tmp := filepath.Join(filepath.Dir(target), "."+filepath.Base(target)+"."+uniuri.NewLen(8)+".tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	if err := a.writeTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

func (a *Archive) writeTo(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, name := range a.Entries() {
		e := a.entries[name]
		switch {
		case e.file != nil && !e.dir:
			if err := zw.Copy(e.file); err != nil {
				return err
			}
		case e.dir:
			header := &zip.FileHeader{Name: name + "/", Method: zip.Store, Modified: modTime}
			if _, err := zw.CreateHeader(header); err != nil {
				return err
			}
		default:
			header := &zip.FileHeader{Name: name, Method: zip.Deflate, Modified: modTime}
			fw, err := zw.CreateHeader(header)
			if err != nil {
				return err
			}
			if _, err := io.Copy(fw, bytes.NewReader(e.data)); err != nil {
				return err
			}
		}
	}
	return zw.Close()
}

// Close releases the underlying file. Commit before closing
func (a *Archive) Close() error {
	if a.reader == nil {
		return nil
	}
	err := a.reader.Close()
	a.reader = nil
	return err
}
