package downloadmgr

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/minepkg/mclaunch/internals/merrors"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, "content of %s", r.URL.Path)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPItemIsIdempotent(t *testing.T) {
	var hits int32
	srv := countingServer(t, &hits)
	target := filepath.Join(t.TempDir(), "deep", "dir", "client.jar")

	first := NewHTTPItem(srv.Client(), srv.URL+"/client.jar", target)
	require.NoError(t, first.Download(context.Background()))
	assert.False(t, first.Skipped())
	assert.EqualValues(t, len("content of /client.jar"), first.Written())

	second := NewHTTPItem(srv.Client(), srv.URL+"/client.jar", target)
	require.NoError(t, second.Download(context.Background()))
	assert.True(t, second.Skipped())

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "content of /client.jar", string(content))
}

func TestHTTPItemBadStatus(t *testing.T) {
	var hits int32
	srv := countingServer(t, &hits)
	target := filepath.Join(t.TempDir(), "missing.jar")

	err := NewHTTPItem(srv.Client(), srv.URL+"/missing", target).Download(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, merrors.ErrFetch))

	// neither the target nor the partial file is left behind
	assert.NoFileExists(t, target)
	assert.NoFileExists(t, target+".part")
}

func TestHTTPItemTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewHTTPItem(nil, url+"/a.jar", filepath.Join(t.TempDir(), "a.jar")).Download(context.Background())
	assert.True(t, errors.Is(err, merrors.ErrFetch))
}

func TestManagerCollectsFailures(t *testing.T) {
	var hits int32
	srv := countingServer(t, &hits)
	dir := t.TempDir()
	fetcher := &HTTPFetcher{Client: srv.Client()}

	for _, workers := range []int{0, 1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			mgr := New(workers)
			progress := 0
			mgr.OnProgress = func(done, total int) {
				progress = done
				assert.Equal(t, 5, total)
			}
			for i := 0; i < 4; i++ {
				name := fmt.Sprintf("w%d-%d", workers, i)
				mgr.Add(&FetchItem{fetcher, srv.URL + "/" + name, filepath.Join(dir, name)})
			}
			mgr.Add(&FetchItem{fetcher, srv.URL + "/missing", filepath.Join(dir, fmt.Sprintf("missing-%d", workers))})

			failures, err := mgr.Start(context.Background())
			require.NoError(t, err)
			require.Len(t, failures, 1)
			assert.True(t, errors.Is(failures[0], merrors.ErrFetch))
			assert.Equal(t, 5, progress)
		})
	}
}

func TestManagerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mgr := New(2)
	mgr.Add(&FetchItem{&HTTPFetcher{}, "http://127.0.0.1:1/a", filepath.Join(t.TempDir(), "a")})
	_, err := mgr.Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPFetcherReportsWritten(t *testing.T) {
	var hits int32
	srv := countingServer(t, &hits)
	var total int64
	fetcher := &HTTPFetcher{Client: srv.Client(), OnWritten: func(n int64) { atomic.AddInt64(&total, n) }}
	target := filepath.Join(t.TempDir(), "x")

	require.NoError(t, fetcher.Fetch(context.Background(), srv.URL+"/x", target))
	require.NoError(t, fetcher.Fetch(context.Background(), srv.URL+"/x", target))
	assert.EqualValues(t, len("content of /x"), atomic.LoadInt64(&total))
}
