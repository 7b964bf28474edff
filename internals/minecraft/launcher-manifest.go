package minecraft

import (
	"encoding/json"

	"github.com/minepkg/mclaunch/internals/merrors"
	"github.com/pkg/errors"
)

// LaunchManifest is the version.json document describing one minecraft version:
// what to download and how to launch it
type LaunchManifest struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	MainClass string `json:"mainClass"`
	Downloads struct {
		Client Artifact `json:"client"`
		Server Artifact `json:"server"`
	} `json:"downloads"`
	Libraries  []Library `json:"libraries"`
	Assets     string    `json:"assets"`
	AssetIndex struct {
		ID        string `json:"id"`
		Sha1      string `json:"sha1"`
		Size      int    `json:"size"`
		TotalSize int    `json:"totalSize"`
		URL       string `json:"url"`
	} `json:"assetIndex"`
	// JavaVersion is informational, the configured java binary is always used
	JavaVersion struct {
		Component    string `json:"component"`
		MajorVersion int    `json:"majorVersion"`
	} `json:"javaVersion"`
}

// ParseLaunchManifest interprets a version.json document.
// It fails with merrors.ErrMalformedMetadata if the document is not valid json
// or misses the main class or the client download
func ParseLaunchManifest(data []byte) (*LaunchManifest, error) {
	man := &LaunchManifest{}
	if err := json.Unmarshal(data, man); err != nil {
		return nil, merrors.Wrap(merrors.ErrMalformedMetadata, "", err)
	}

	switch {
	case man.MainClass == "":
		return nil, merrors.Wrap(merrors.ErrMalformedMetadata, "", errors.New("mainClass is missing"))
	case man.Downloads.Client.URL == "":
		return nil, merrors.Wrap(merrors.ErrMalformedMetadata, "", errors.New("downloads.client.url is missing"))
	}

	return man, nil
}

// NativeLibraries returns the number of libraries that come with native classifiers
func (l *LaunchManifest) NativeLibraries() int {
	count := 0
	for _, lib := range l.Libraries {
		if lib.HasNatives() {
			count++
		}
	}
	return count
}
