package instances

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/minepkg/mclaunch/internals/archive"
	"github.com/minepkg/mclaunch/internals/downloadmgr"
	"github.com/minepkg/mclaunch/internals/logsink"
	"github.com/minepkg/mclaunch/internals/minecraft"
)

// Layout is the directory tree of one installed minecraft version
type Layout struct {
	// Root is the version specific base directory
	Root string
}

// LibrariesDir returns the path to the libraries directory
func (l Layout) LibrariesDir() string { return filepath.Join(l.Root, "libraries") }

// NativesDir returns the directory native libraries get extracted to
func (l Layout) NativesDir() string { return filepath.Join(l.Root, "natives") }

// GameDir returns the game directory (saves, options, screenshots …)
func (l Layout) GameDir() string { return filepath.Join(l.Root, "game") }

// AssetsDir returns the path to the assets directory
func (l Layout) AssetsDir() string { return filepath.Join(l.Root, "assets") }

// ClientJar returns the path of the minecraft client. Its existence marks the
// instance as installed
func (l Layout) ClientJar() string { return filepath.Join(l.Root, "client.jar") }

// AssetIndexPath returns where the asset index with the given id is stored
func (l Layout) AssetIndexPath(id string) string {
	return filepath.Join(l.AssetsDir(), "indexes", id+".json")
}

// AssetObjectPath returns where the given asset is stored
func (l Layout) AssetObjectPath(obj minecraft.AssetObject) string {
	return filepath.Join(l.AssetsDir(), "objects", obj.Filepath())
}

// Installed returns true if the client jar exists
func (l Layout) Installed() bool {
	_, err := os.Stat(l.ClientJar())
	return err == nil
}

// MetadataSource resolves the version.json of a version
type MetadataSource interface {
	LaunchManifestFor(ctx context.Context, versionID string) (*minecraft.LaunchManifest, error)
}

// Instance describes a locally installed minecraft version
type Instance struct {
	// Version is the minecraft version id
	Version string
	Layout  Layout
	// GOOS selects which natives get installed. Defaults to runtime.GOOS
	GOOS string

	Metadata MetadataSource
	Fetcher  downloadmgr.Fetcher
	// Extract unpacks natives. Defaults to archive.Extract
	Extract func(archivePath string, destDir string) error
	Log     logsink.Sink
	Verbose bool
}

// New returns an instance for version in dir
func New(version string, dir string, metadata MetadataSource, fetcher downloadmgr.Fetcher, log logsink.Sink) *Instance {
	return &Instance{
		Version:  version,
		Layout:   Layout{Root: dir},
		GOOS:     runtime.GOOS,
		Metadata: metadata,
		Fetcher:  fetcher,
		Extract:  archive.Extract,
		Log:      log,
	}
}

func (i *Instance) goos() string {
	if i.GOOS == "" {
		return runtime.GOOS
	}
	return i.GOOS
}

func (i *Instance) log() logsink.Sink {
	if i.Log == nil {
		return logsink.Discard
	}
	return i.Log
}

func (i *Instance) extract(archivePath string, destDir string) error {
	if i.Extract == nil {
		return archive.Extract(archivePath, destDir)
	}
	return i.Extract(archivePath, destDir)
}
