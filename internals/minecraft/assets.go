package minecraft

import (
	"path/filepath"
	"strings"
)

// DefaultResourcesURL is the host serving asset objects
const DefaultResourcesURL = "https://resources.download.minecraft.net"

// AssetIndex is just a map containing AssetObjects
type AssetIndex struct {
	Objects map[string]AssetObject `json:"objects"`
}

// AssetObject is one minecraft asset
type AssetObject struct {
	Hash string `json:"hash"`
	Size int    `json:"size"`
}

// Valid returns false for hashes too short to be sharded
func (a *AssetObject) Valid() bool {
	return len(a.Hash) > 2 && !strings.ContainsAny(a.Hash, `/\.`)
}

// UnixPath returns the path including the folder
// example: fe/fe32f3b8…
func (a *AssetObject) UnixPath() string {
	return a.Hash[:2] + "/" + a.Hash
}

// Filepath returns UnixPath with the separator of the running OS
func (a *AssetObject) Filepath() string {
	return filepath.FromSlash(a.UnixPath())
}

// DownloadURL returns the download url for this asset on the given host.
// An empty host means DefaultResourcesURL
func (a *AssetObject) DownloadURL(host string) string {
	if host == "" {
		host = DefaultResourcesURL
	}
	return strings.TrimSuffix(host, "/") + "/" + a.UnixPath()
}
