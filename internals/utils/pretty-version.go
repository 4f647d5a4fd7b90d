package utils

import (
	"github.com/jwalton/gchalk"
	"github.com/minepkg/mcjar/internals/minecraft"
)

// PrettyVersion returns a version id colored by its release type for terminal printing
func PrettyVersion(id string, releaseType string) string {
	// we trim first to avoid broken colors
	if len(id) >= 22 {
		id = id[:18] + " …"
	}

	switch releaseType {
	case minecraft.TypeRelease:
		return gchalk.Bold(id)
	case minecraft.TypeSnapshot:
		return gchalk.Yellow(id)
	case minecraft.TypeOldBeta, minecraft.TypeOldAlpha:
		return gchalk.Gray(id)
	default:
		return id
	}
}
