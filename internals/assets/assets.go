// Package assets downloads the asset index of a version and every object it references
package assets

import (
	"context"
	"sort"

	"github.com/minepkg/mclaunch/internals/downloadmgr"
	"github.com/minepkg/mclaunch/internals/instances"
	"github.com/minepkg/mclaunch/internals/logsink"
	"github.com/minepkg/mclaunch/internals/merrors"
	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/minepkg/mclaunch/internals/utils"
)

// Synchronizer makes sure all asset objects of an index exist locally
type Synchronizer struct {
	Layout  instances.Layout
	Fetcher downloadmgr.Fetcher
	// ResourcesURL is the object host, minecraft.DefaultResourcesURL if empty
	ResourcesURL string
	// Workers is the number of parallel object downloads
	Workers int
	Log     logsink.Sink
	// OnProgress is called after every processed object
	OnProgress func(done int, total int)
}

// Report summarizes a Sync
type Report struct {
	// Objects is the number of distinct objects in the index
	Objects int
	// Failures contains every object that could not be downloaded
	Failures []error
}

// Sync fetches the asset index to assets/indexes/<indexID>.json and downloads every
// object to assets/objects/<hash[:2]>/<hash>. Objects that exist are skipped.
// A missing or unparseable index is returned as merrors.ErrAssetIndex,
// failing objects are only collected in the report
func (s *Synchronizer) Sync(ctx context.Context, indexURL string, indexID string) (*Report, error) {
	log := s.Log
	if log == nil {
		log = logsink.Discard
	}

	indexPath := s.Layout.AssetIndexPath(indexID)
	if err := s.Fetcher.Fetch(ctx, indexURL, indexPath); err != nil {
		return nil, merrors.Wrap(merrors.ErrAssetIndex, indexPath, err)
	}

	index, err := readIndex(indexPath)
	if err != nil {
		return nil, merrors.Wrap(merrors.ErrAssetIndex, indexPath, err)
	}

	report := &Report{}
	mgr := downloadmgr.New(s.Workers)
	mgr.OnProgress = s.OnProgress

	// many names point to the same hash, download each object once
	seen := make(map[string]bool, len(index.Objects))
	names := make([]string, 0, len(index.Objects))
	for name := range index.Objects {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		obj := index.Objects[name]
		if !obj.Valid() {
			report.Failures = append(report.Failures, merrors.Wrap(merrors.ErrAssetIndex, "invalid hash for "+name, nil))
			continue
		}
		if seen[obj.Hash] {
			continue
		}
		seen[obj.Hash] = true
		mgr.Add(&downloadmgr.FetchItem{
			Fetcher: s.Fetcher,
			URL:     obj.DownloadURL(s.ResourcesURL),
			Target:  s.Layout.AssetObjectPath(obj),
		})
	}
	report.Objects = mgr.Len()

	logsink.Printf(log, "Syncing %d assets (index %s)", report.Objects, indexID)
	failures, err := mgr.Start(ctx)
	for _, failure := range failures {
		logsink.Printf(log, "Error: %s", failure)
	}
	report.Failures = append(report.Failures, failures...)
	return report, err
}

func readIndex(path string) (*minecraft.AssetIndex, error) {
	index := &minecraft.AssetIndex{}
	if err := utils.ReadJSONFile(path, index); err != nil {
		return nil, err
	}
	return index, nil
}
