package utils

import (
	"strings"

	"github.com/jwalton/gchalk"
)

// PrettyVersion returns a pretty colored minecraft version for terminal printing.
// Pre-release suffixes like "-pre1" or "-rc2" are grayed out
func PrettyVersion(version string) string {
	// we trim first to avoid broken colors
	if len(version) >= 22 {
		version = version[:18] + " …"
	}

	versionParts := strings.SplitN(version, "-", 2)
	prettyVersion := versionParts[0]

	if len(versionParts) == 2 {
		prettyVersion += gchalk.Gray("-" + versionParts[1])
	}

	return prettyVersion
}
