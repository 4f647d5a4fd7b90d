package assets

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path"
	"strings"

	"github.com/minepkg/mcjar/internals/minecraft"
	"github.com/pkg/errors"
)

func readIndex(indexPath string) (*minecraft.AssetManifest, error) {
	raw, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, err
	}
	manifest := &minecraft.AssetManifest{}
	if err := json.Unmarshal(raw, manifest); err != nil {
		return nil, errors.Wrapf(err, "invalid asset index %s", indexPath)
	}
	for key, obj := range manifest.Objects {
		if !validKey(key) {
			return nil, errors.Errorf("invalid asset index %s: object key %q leaves the asset directory", indexPath, key)
		}
		if !validHash(obj.Hash) {
			return nil, errors.Errorf("invalid asset index %s: object %s has the invalid hash %q", indexPath, key, obj.Hash)
		}
	}
	return manifest, nil
}

// validHash reports whether h is a hex encoded sha1
func validHash(h string) bool {
	if len(h) != 40 {
		return false
	}
	_, err := hex.DecodeString(h)
	return err == nil
}

// validKey reports whether key is a relative path that stays below its root
func validKey(key string) bool {
	if key == "" || strings.ContainsAny(key, "\\:\x00") || path.IsAbs(key) {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
