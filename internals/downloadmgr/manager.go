package downloadmgr

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DownloadManager includes a queue to download
type DownloadManager struct {
	queue []Downloader
	// Workers is the number of parallel downloads. Values below 1 download sequentially
	Workers int
	// OnProgress is called after every finished item (successful or not)
	OnProgress func(done int, total int)
}

// Add adds a new item to the queue
func (d *DownloadManager) Add(i Downloader) {
	d.queue = append(d.queue, i)
}

// Len returns the number of queued items
func (d *DownloadManager) Len() int {
	return len(d.queue)
}

// Start downloads every queued item. A failing item does not stop the others,
// all failures are returned. err is only set if ctx was canceled before every
// item was processed.
func (d *DownloadManager) Start(ctx context.Context) (failures []error, err error) {
	workers := d.Workers
	if workers < 1 {
		workers = 1
	}

	var (
		g    errgroup.Group
		mu   sync.Mutex
		done int
	)
	g.SetLimit(workers)
	total := len(d.queue)

	for _, item := range d.queue {
		if ctx.Err() != nil {
			break
		}
		item := item
		g.Go(func() error {
			itemErr := item.Download(ctx)

			mu.Lock()
			defer mu.Unlock()
			done++
			if itemErr != nil {
				failures = append(failures, itemErr)
			}
			if d.OnProgress != nil {
				d.OnProgress(done, total)
			}
			return nil
		})
	}
	g.Wait()

	if done < total {
		return failures, ctx.Err()
	}
	return failures, nil
}

// Downloader allows downloadmgr to download the file
type Downloader interface {
	Download(ctx context.Context) error
}

// FetchItem queues a download through a Fetcher
type FetchItem struct {
	Fetcher Fetcher
	URL     string
	Target  string
}

// Download calls the fetcher
func (f *FetchItem) Download(ctx context.Context) error {
	return f.Fetcher.Fetch(ctx, f.URL, f.Target)
}

// New creates a new downloadmgr
func New(workers int) *DownloadManager {
	return &DownloadManager{Workers: workers}
}
