package instances

import (
	"context"
	"os"
	"path/filepath"

	"github.com/minepkg/mclaunch/internals/logsink"
	"github.com/minepkg/mclaunch/internals/merrors"
	"github.com/minepkg/mclaunch/internals/minecraft"
)

// InstallReport summarizes an EnsureInstalled run
type InstallReport struct {
	// Skipped is true if the instance was already installed. Nothing was fetched then
	Skipped bool
	// Manifest is the version.json used for the install. It is nil if Skipped is true
	Manifest *minecraft.LaunchManifest
	// Artifacts is the number of artifacts (client, libraries, natives) processed
	Artifacts int
	// Failures contains every failed download or extraction
	Failures []error
}

func (r *InstallReport) fail(log logsink.Sink, err error) {
	logsink.Printf(log, "Error: %s", err)
	r.Failures = append(r.Failures, err)
}

// EnsureInstalled downloads the client, libraries and natives of the instance.
// If the client jar exists, the instance counts as installed and nothing happens.
// Failing to resolve the version.json aborts with an error. Failing single
// artifacts does not, they are logged and returned in the report.
func (i *Instance) EnsureInstalled(ctx context.Context) (*InstallReport, error) {
	log := i.log()
	layout := i.Layout

	if layout.Installed() {
		logsink.Printf(log, "Instance for version %s already exists. Skipping installation.", i.Version)
		return &InstallReport{Skipped: true}, nil
	}

	if err := os.MkdirAll(layout.Root, os.ModePerm); err != nil {
		return nil, err
	}

	logsink.Printf(log, "Fetching version metadata for %s", i.Version)
	man, err := i.Metadata.LaunchManifestFor(ctx, i.Version)
	if err != nil {
		return nil, err
	}

	report := &InstallReport{Manifest: man}
	logsink.Printf(log, "Installing %d libraries (%d with natives)", len(man.Libraries), man.NativeLibraries())

	i.fetch(ctx, report, man.Downloads.Client.URL, layout.ClientJar())

	goos := i.goos()
	libDir := layout.LibrariesDir()
	for _, lib := range man.Libraries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if lib.HasArtifact() {
			if libPath := lib.ArtifactPath(); libPath == "" {
				report.fail(log, merrors.Wrap(merrors.ErrMalformedMetadata, "library without path: "+lib.Name, nil))
			} else {
				i.fetch(ctx, report, lib.Downloads.Artifact.URL, filepath.Join(libDir, filepath.FromSlash(libPath)))
			}
		}

		if !lib.HasNatives() {
			continue
		}
		native, ok := lib.Native(goos)
		if !ok {
			// libraries with classifiers for other platforms only are fine,
			// a platform without any natives mapping is not
			if minecraft.NativesKey(goos) == "" {
				report.fail(log, merrors.Wrap(merrors.ErrUnsupportedPlatform, lib.Name+" on "+goos, nil))
			}
			continue
		}

		nativePath := lib.NativePath(native, goos)
		if nativePath == "" {
			report.fail(log, merrors.Wrap(merrors.ErrMalformedMetadata, "native without path: "+lib.Name, nil))
			continue
		}
		target := filepath.Join(libDir, filepath.FromSlash(nativePath))
		if !i.fetch(ctx, report, native.URL, target) {
			continue
		}
		logsink.Printf(log, "Extracting natives from %s", target)
		if err := i.extract(target, layout.NativesDir()); err != nil {
			report.fail(log, err)
		}
	}

	return report, ctx.Err()
}

// fetch downloads one artifact and records a failure. It returns false if the download failed
func (i *Instance) fetch(ctx context.Context, report *InstallReport, url string, target string) bool {
	report.Artifacts++
	if i.Verbose {
		logsink.Printf(i.log(), "Downloading %s -> %s", url, target)
	}
	if err := i.Fetcher.Fetch(ctx, url, target); err != nil {
		report.fail(i.log(), err)
		return false
	}
	return true
}
