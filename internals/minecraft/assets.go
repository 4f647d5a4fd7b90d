package minecraft

import "strings"

// DefaultAssetBaseURL is where all asset objects are hosted
const DefaultAssetBaseURL = "https://resources.download.minecraft.net/"

// AssetIndexRef points to an asset index (a manifest of many small assets)
type AssetIndexRef struct {
	ID        string `json:"id"`
	Sha1      string `json:"sha1"`
	Size      int64  `json:"size"`
	TotalSize int64  `json:"totalSize"`
	URL       string `json:"url"`
}

// Download returns the index itself as a Download
func (a *AssetIndexRef) Download() Download {
	return Download{URL: a.URL, Sha1: a.Sha1, Size: a.Size}
}

// AssetManifest is just a map containing AssetObjects
type AssetManifest struct {
	Objects map[string]AssetObject `json:"objects"`
	// MapToResources is set for very old versions that read their assets
	// from a flat resources directory
	MapToResources bool `json:"map_to_resources"`
	Virtual        bool `json:"virtual"`
}

// AssetObject is one minecraft asset
type AssetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// UnixPath returns the path including the folder
// example: fe/fe32f3b8…
func (a *AssetObject) UnixPath() string {
	if len(a.Hash) < 2 {
		return a.Hash
	}
	return a.Hash[:2] + "/" + a.Hash
}

// DownloadURL returns the download url for this asset
func (a *AssetObject) DownloadURL(base string) string {
	if base == "" {
		base = DefaultAssetBaseURL
	}
	return strings.TrimSuffix(base, "/") + "/" + a.UnixPath()
}

// Download returns the asset as a Download
func (a *AssetObject) Download(base string) Download {
	return Download{URL: a.DownloadURL(base), Sha1: a.Hash, Size: a.Size}
}
