// Package autocomplete provides shell completion for minecraft versions
package autocomplete

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/spf13/cobra"
)

// VersionLister fetches the version manifest
type VersionLister interface {
	VersionManifest(ctx context.Context) (*minecraft.VersionManifest, error)
}

type AutoCompleter struct {
	Client  VersionLister
	storage struct {
		LastFetch time.Time
		Manifest  *minecraft.VersionManifest
	}
	CacheDir string
	// MaxAge is the time after which the cache is refreshed. Defaults to one hour
	MaxAge time.Duration
}

func (a *AutoCompleter) cacheFile() string {
	return filepath.Join(a.CacheDir, "versions.json")
}

func (a *AutoCompleter) isOutdated() bool {
	maxAge := a.MaxAge
	if maxAge == 0 {
		maxAge = time.Hour
	}
	return time.Since(a.storage.LastFetch) > maxAge
}

// GetVersions tries to read the versions from the local cache
// if that fails it will fetch them from the api
func (a *AutoCompleter) GetVersions(ctx context.Context) (*minecraft.VersionManifest, error) {
	// already in memory
	if a.storage.Manifest != nil && !a.isOutdated() {
		return a.storage.Manifest, nil
	}

	cached, err := os.ReadFile(a.cacheFile())
	if err != nil {
		// if the file doesn't exist, fetch the versions from the api
		return a.fetchVersions(ctx)
	}

	if err := json.Unmarshal(cached, &a.storage); err != nil || a.storage.Manifest == nil {
		// corrupted cache
		return a.fetchVersions(ctx)
	}

	if a.isOutdated() {
		manifest, err := a.fetchVersions(ctx)
		if err == nil {
			return manifest, nil
		}
		// if the api is down, we still want to return the cached versions
	}

	return a.storage.Manifest, nil
}

func (a *AutoCompleter) fetchVersions(ctx context.Context) (*minecraft.VersionManifest, error) {
	manifest, err := a.Client.VersionManifest(ctx)
	if err != nil {
		return nil, err
	}

	a.storage.Manifest = manifest
	a.storage.LastFetch = time.Now()

	cached, err := json.Marshal(&a.storage)
	if err != nil {
		return manifest, err
	}
	if err := os.MkdirAll(a.CacheDir, os.ModePerm); err != nil {
		return manifest, err
	}
	err = os.WriteFile(a.cacheFile(), cached, 0644)
	return manifest, err
}

// Complete returns all versions starting with toComplete. Releases come first
func (a *AutoCompleter) Complete(toComplete string) ([]string, cobra.ShellCompDirective) {
	// error is ignored on purpose
	manifest, _ := a.GetVersions(context.TODO())
	if manifest == nil {
		// we can't error here, so just return an empty list
		return []string{}, cobra.ShellCompDirectiveNoFileComp
	}

	return shellAutocomplete(manifest, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func shellAutocomplete(manifest *minecraft.VersionManifest, toComplete string) []string {
	var releases, others []string
	for _, v := range manifest.Versions {
		if !strings.HasPrefix(v.ID, toComplete) {
			continue
		}

		icon := ""
		switch v.ID {
		case manifest.Latest.Release:
			icon = "⭐ "
		case manifest.Latest.Snapshot:
			icon = "🧪 "
		}
		released := v.ReleaseTime
		if t, err := time.Parse(time.RFC3339, v.ReleaseTime); err == nil {
			released = t.Format("2006-01-02")
		}

		line := fmt.Sprintf("%s\t%s%s %s", v.ID, icon, v.Type, released)
		if v.Type == minecraft.TypeRelease {
			releases = append(releases, line)
		} else {
			others = append(others, line)
		}
	}
	return append(releases, others...)
}
