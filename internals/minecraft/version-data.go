package minecraft

// Download keys used in the version.json
const (
	DownloadClient         = "client"
	DownloadServer         = "server"
	DownloadClientMappings = "client_mappings"
	DownloadServerMappings = "server_mappings"
)

// VersionData is the parsed version.json of a single version.
// Only the parts needed to fetch and transform the jars are included.
// It is not modified after parsing
type VersionData struct {
	ID          string              `json:"id"`
	Type        string              `json:"type"`
	MainClass   string              `json:"mainClass"`
	ReleaseTime string              `json:"releaseTime"`
	Assets      string              `json:"assets"`
	AssetIndex  AssetIndexRef       `json:"assetIndex"`
	Downloads   map[string]Download `json:"downloads"`
	// Synthetic is set for placeholder versions. Its downloads point at an empty jar
	Synthetic bool `json:"-"`
}

// Download returns the download for key (see DownloadClient etc.)
func (v *VersionData) Download(key string) (Download, bool) {
	d, ok := v.Downloads[key]
	return d, ok
}

// SyntheticVersionData returns the VersionData of a placeholder version.
// All jar downloads have no URL and point to an empty archive
func SyntheticVersionData(id string) *VersionData {
	empty := Download{Size: UnknownSize}
	return &VersionData{
		ID:        id,
		Type:      "synthetic",
		Synthetic: true,
		Downloads: map[string]Download{
			DownloadClient: empty,
			DownloadServer: empty,
		},
	}
}
