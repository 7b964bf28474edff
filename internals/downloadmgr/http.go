package downloadmgr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/minepkg/mclaunch/internals/merrors"
)

// HTTPItem is a URL, target pair that will be downloaded using http(s).
// Download does nothing if the target already exists.
type HTTPItem struct {
	Client *http.Client
	URL    string
	Target string

	written int64
	skipped bool
}

// Download downloads the item to the defined target using http
func (i *HTTPItem) Download(ctx context.Context) error {
	if _, err := os.Stat(i.Target); err == nil {
		i.skipped = true
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.URL, nil)
	if err != nil {
		return merrors.Wrap(merrors.ErrFetch, i.URL, err)
	}

	client := i.Client
	if client == nil {
		client = http.DefaultClient
	}

	fileRes, err := client.Do(req)
	if err != nil {
		return merrors.Wrap(merrors.ErrFetch, i.URL, err)
	}
	defer fileRes.Body.Close()

	if fileRes.StatusCode < 200 || fileRes.StatusCode > 299 {
		return merrors.Wrap(merrors.ErrFetch, i.URL, fmt.Errorf("invalid status code: %s", fileRes.Status))
	}

	if err := os.MkdirAll(filepath.Dir(i.Target), os.ModePerm); err != nil {
		return merrors.Wrap(merrors.ErrFetch, i.URL, err)
	}

	// only complete files ever end up at Target, the existence check above relies on it
	partial := i.Target + ".part"
	dest, err := os.Create(partial)
	if err != nil {
		return merrors.Wrap(merrors.ErrFetch, i.URL, err)
	}

	written, err := io.Copy(dest, fileRes.Body)
	if err == nil {
		err = dest.Sync()
	}
	if closeErr := dest.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(partial)
		return merrors.Wrap(merrors.ErrFetch, i.URL, err)
	}

	if err := os.Rename(partial, i.Target); err != nil {
		os.Remove(partial)
		return merrors.Wrap(merrors.ErrFetch, i.URL, err)
	}
	i.written = written
	return nil
}

// Written returns the number of bytes transferred by the last Download
func (i *HTTPItem) Written() int64 { return i.written }

// Skipped returns true if the last Download found the target already present
func (i *HTTPItem) Skipped() bool { return i.skipped }

// NewHTTPItem creates a Item to be queued that will download the file using HTTP(S)
func NewHTTPItem(client *http.Client, URL string, Target string) *HTTPItem {
	if URL == "" {
		panic("Download URL can not be empty")
	}
	if Target == "" {
		panic("Target can not be empty")
	}
	return &HTTPItem{Client: client, URL: URL, Target: Target}
}

// Fetcher downloads a single url to a local file, skipping files that exist
type Fetcher interface {
	Fetch(ctx context.Context, url string, target string) error
}

// HTTPFetcher is the Fetcher used outside of tests
type HTTPFetcher struct {
	Client *http.Client
	// OnWritten is called with the size of every completed (not skipped) download
	OnWritten func(n int64)
}

// Fetch downloads url to target
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, target string) error {
	item := NewHTTPItem(f.Client, url, target)
	if err := item.Download(ctx); err != nil {
		return err
	}
	if !item.Skipped() && f.OnWritten != nil {
		f.OnWritten(item.Written())
	}
	return nil
}
