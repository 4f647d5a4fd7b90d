package minecraft

import (
	"encoding/json"
	"strconv"
)

// Download is an object describing a "thing" that can be downloaded.
// It is used for the game jars, mappings, the version.json and asset indexes
type Download struct {
	// URL to download the file from. Can be empty for synthetic versions
	URL string `json:"url"`
	// Sha1 is the expected hex sha1 of the file. Empty skips the hash check
	Sha1 string `json:"sha1"`
	// Size in bytes. -1 if unknown (skips the size check)
	Size int64 `json:"size"`
}

// UnknownSize marks a download without a known size
const UnknownSize int64 = -1

// UnmarshalJSON defaults the size to UnknownSize if it is missing
func (d *Download) UnmarshalJSON(data []byte) error {
	var raw struct {
		URL  string       `json:"url"`
		Sha1 string       `json:"sha1"`
		Size *json.Number `json:"size"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.URL = raw.URL
	d.Sha1 = raw.Sha1
	d.Size = UnknownSize
	if raw.Size != nil {
		size, err := strconv.ParseInt(raw.Size.String(), 10, 64)
		if err != nil {
			return err
		}
		d.Size = size
	}
	return nil
}
