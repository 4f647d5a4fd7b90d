package minecraft

import "strings"

// DefaultVersionManifestURL is the launcher metadata endpoint listing all versions
const DefaultVersionManifestURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"

var (
	// TypeSnapshot is a snapshot release
	TypeSnapshot = "snapshot"
	// TypeRelease is a full "normal" release
	TypeRelease = "release"
	// TypeOldBeta is a "old_beta" release
	TypeOldBeta = "old_beta"
	// TypeOldAlpha is a "old_alpha" release
	TypeOldAlpha = "old_alpha"
)

// SyntheticPrefix marks placeholder versions that resolve to an empty jar
// without any network access (e.g. "empty-1.19.2")
const SyntheticPrefix = "empty-"

// IsSynthetic reports whether id is a placeholder version
func IsSynthetic(id string) bool {
	return strings.HasPrefix(id, SyntheticPrefix)
}

// NormalizeVersion strips the synthetic prefix
func NormalizeVersion(id string) string {
	return strings.TrimPrefix(id, SyntheticPrefix)
}

// VersionEntry is a released minecraft version
type VersionEntry struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Sha1        string `json:"sha1"`
	Time        string `json:"time"`
	ReleaseTime string `json:"releaseTime"`
}

// Download returns the version.json of this entry as a Download
func (v *VersionEntry) Download() Download {
	return Download{URL: v.URL, Sha1: v.Sha1, Size: UnknownSize}
}

// VersionManifest is the response from the "launchermeta" mojang api.
// Versions are ordered newest first, the order is only meaningful relative to other entries
type VersionManifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []VersionEntry `json:"versions"`
}

// IndexOf returns the position of the (normalized) id in the manifest or -1
func (m *VersionManifest) IndexOf(id string) int {
	id = NormalizeVersion(id)
	for i, v := range m.Versions {
		if v.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the entry for the (normalized) id
func (m *VersionManifest) Find(id string) (*VersionEntry, bool) {
	i := m.IndexOf(id)
	if i == -1 {
		return nil, false
	}
	return &m.Versions[i], true
}
