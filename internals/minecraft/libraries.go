package minecraft

import (
	"path"
	"strings"
)

// Library is a minecraft library. It contributes at most one generic artifact
// and at most one native artifact for the running platform
type Library struct {
	// Name can be used to identify the library, but is not required otherwise.
	Name      string `json:"name"`
	Downloads struct {
		Artifact *Artifact `json:"artifact,omitempty"`
		// Classifiers is a list of additional artifacts.
		// It is used to download native libraries (natives-windows, natives-linux, …)
		// This field is no longer used after 1.19
		Classifiers map[string]Artifact `json:"classifiers,omitempty"`
	} `json:"downloads,omitempty"`
}

// HasArtifact returns true if the library has a generic artifact with a download url
func (l *Library) HasArtifact() bool {
	return l.Downloads.Artifact != nil && l.Downloads.Artifact.URL != ""
}

// HasNatives returns true if the library has any classifiers
func (l *Library) HasNatives() bool {
	return len(l.Downloads.Classifiers) != 0
}

// Native returns the native artifact for the given GOOS value
func (l *Library) Native(goos string) (Artifact, bool) {
	key := NativesKey(goos)
	if key == "" {
		return Artifact{}, false
	}
	native, ok := l.Downloads.Classifiers[key]
	if !ok || native.URL == "" {
		return Artifact{}, false
	}
	return native, true
}

// ArtifactPath returns the slash separated path of the generic artifact relative to
// the libraries folder. It falls back to the maven path derived from the name
func (l *Library) ArtifactPath() string {
	if l.Downloads.Artifact != nil && l.Downloads.Artifact.Path != "" {
		return l.Downloads.Artifact.Path
	}
	return mavenPath(l.Name, "")
}

// NativePath returns the slash separated path of a native artifact relative to
// the libraries folder
func (l *Library) NativePath(native Artifact, goos string) string {
	if native.Path != "" {
		return native.Path
	}
	return mavenPath(l.Name, NativesKey(goos))
}

// mavenPath turns "group:name:version" into group/name/version/name-version[-classifier].jar
func mavenPath(name string, classifier string) string {
	grouped := strings.Split(name, ":")
	if len(grouped) < 3 {
		return ""
	}
	basePath := path.Join(strings.Split(grouped[0], ".")...)
	artifact := grouped[1]
	version := grouped[2]

	file := artifact + "-" + version
	if classifier != "" {
		file += "-" + classifier
	}
	return path.Join(basePath, artifact, version, file+".jar")
}
