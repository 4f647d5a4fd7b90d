package downloadmgr

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"os"
	"strings"
)

// Verify reports whether the file at path exists and matches the given size and sha1.
// A size of -1 or an empty sha1 skip the respective check.
// It never modifies the file
func Verify(size int64, sha1 string, path string) bool {
	stat, err := os.Stat(path)
	if err != nil || stat.IsDir() {
		return false
	}
	if size >= 0 && stat.Size() != size {
		return false
	}
	if sha1 == "" {
		return true
	}
	actual, err := HashFile(path)
	if err != nil {
		return false
	}
	return strings.EqualFold(actual, sha1)
}

// HashFile returns the hex encoded sha1 of the file at path
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := sha1.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
