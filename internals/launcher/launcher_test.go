package launcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/minepkg/mclaunch/internals/config"
	"github.com/minepkg/mclaunch/internals/logsink"
	"github.com/minepkg/mclaunch/internals/merrors"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const assetHash = "abcdef0123456789abcdef0123456789abcdef01"

// metaServer serves a version manifest with one version, its metadata and all downloads
type metaServer struct {
	srv  *httptest.Server
	docs map[string]string

	mu   sync.Mutex
	hits map[string]int
}

func newMetaServer(t *testing.T) *metaServer {
	t.Helper()
	m := &metaServer{hits: map[string]int{}}
	m.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.hits[r.URL.Path]++
		m.mu.Unlock()

		doc, ok := m.docs[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(strings.ReplaceAll(doc, "{{host}}", m.srv.URL)))
	}))
	t.Cleanup(m.srv.Close)

	m.docs = map[string]string{
		"/manifest.json": `{
  "latest": {"release": "1.21.1", "snapshot": "1.21.1"},
  "versions": [{"id": "1.21.1", "type": "release", "url": "{{host}}/1.21.1.json"}]
}`,
		"/1.21.1.json": `{
  "id": "1.21.1",
  "mainClass": "M",
  "downloads": {"client": {"url": "{{host}}/u1"}},
  "libraries": [{"name": "a:libA:1", "downloads": {"artifact": {"url": "{{host}}/u2", "path": "libA.jar"}}}],
  "assetIndex": {"id": "idx", "url": "{{host}}/u3"}
}`,
		"/u1": "client",
		"/u2": "library",
		"/u3": `{"objects": {"icon.png": {"hash": "` + assetHash + `", "size": 1}}}`,
		"/objects/ab/" + assetHash: "asset",
	}
	return m
}

func (m *metaServer) hitsFor(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits[path]
}

func (m *metaServer) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits = map[string]int{}
}

func (m *metaServer) config(t *testing.T) config.Config {
	return config.Config{
		Version:      "1.21.1",
		FastMode:     true,
		InstancesDir: t.TempDir(),
		Username:     "Player",
		UUID:         "00000000-0000-0000-0000-000000000000",
		AccessToken:  "0",
		UserType:     "mojang",
		Java:         "java",
		Heap:         "2G",
		Workers:      4,
		ManifestURL:  m.srv.URL + "/manifest.json",
		ResourcesURL: m.srv.URL + "/objects",
	}
}

// recordingRunner replaces the java process
type recordingRunner struct {
	invocations []*Invocation
	code        int
	err         error
}

func (r *recordingRunner) run(ctx context.Context, inv *Invocation, sink logsink.Sink) (int, error) {
	r.invocations = append(r.invocations, inv)
	sink.Write("[12:00:00] [Render thread/INFO]: Setting user: Player")
	return r.code, r.err
}

func argAfter(t *testing.T, args []string, flag string) string {
	t.Helper()
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatalf("%s not found in %v", flag, args)
	return ""
}

func TestLaunchFastMode(t *testing.T) {
	server := newMetaServer(t)
	cfg := server.config(t)
	sink := &logsink.Memory{}
	runner := &recordingRunner{}

	l := New(cfg, server.srv.Client(), sink)
	l.GOOS = "linux"
	l.Runner = runner.run

	status := l.Launch(context.Background())
	require.NoError(t, status.Err)
	assert.Equal(t, StateOK, status.State)
	assert.Equal(t, 0, status.ProcessExitCode())

	assert.Equal(t, 1, server.hitsFor("/u1"))
	assert.Equal(t, 1, server.hitsFor("/u2"))
	assert.Equal(t, 0, server.hitsFor("/u3"))
	assert.Equal(t, 0, server.hitsFor("/objects/ab/"+assetHash))

	require.Len(t, runner.invocations, 1)
	inv := runner.invocations[0]
	layout := l.Instance.Layout
	assert.Equal(t, "java", inv.Path)
	assert.Contains(t, inv.Args, "M")
	assert.Equal(t,
		filepath.Join(layout.LibrariesDir(), "libA.jar")+":"+layout.ClientJar(),
		argAfter(t, inv.Args, "-cp"),
	)
	assert.Equal(t, "idx", argAfter(t, inv.Args, "--assetIndex"))
	assert.DirExists(t, layout.GameDir())
	assert.Contains(t, sink.Lines(), "[12:00:00] [Render thread/INFO]: Setting user: Player")
}

func TestLaunchWithAssets(t *testing.T) {
	server := newMetaServer(t)
	cfg := server.config(t)
	cfg.FastMode = false
	runner := &recordingRunner{}

	l := New(cfg, server.srv.Client(), nil)
	l.Runner = runner.run

	status := l.Launch(context.Background())
	assert.Equal(t, StateOK, status.State)
	assert.Equal(t, 1, server.hitsFor("/u3"))
	assert.Equal(t, 1, server.hitsFor("/objects/ab/"+assetHash))
	assert.FileExists(t, filepath.Join(cfg.InstanceDir(), "assets", "indexes", "idx.json"))
	assert.FileExists(t, filepath.Join(cfg.InstanceDir(), "assets", "objects", "ab", assetHash))
}

func TestLaunchAlreadyInstalled(t *testing.T) {
	server := newMetaServer(t)
	cfg := server.config(t)
	runner := &recordingRunner{}

	l := New(cfg, server.srv.Client(), nil)
	l.Runner = runner.run
	require.Equal(t, StateOK, l.Launch(context.Background()).State)

	server.reset()
	sink := &logsink.Memory{}
	l = New(cfg, server.srv.Client(), sink)
	l.Runner = runner.run
	status := l.Launch(context.Background())

	assert.Equal(t, StateOK, status.State)
	assert.Contains(t, sink.Lines(), "Instance for version 1.21.1 already exists. Skipping installation.")
	// metadata is fetched again for the launch, downloads are not
	assert.Equal(t, 1, server.hitsFor("/1.21.1.json"))
	assert.Equal(t, 0, server.hitsFor("/u1"))
	assert.Equal(t, 0, server.hitsFor("/u2"))
	require.Len(t, runner.invocations, 2)
	assert.Equal(t, "M", runner.invocations[1].Args[4])
}

func TestLaunchDegraded(t *testing.T) {
	server := newMetaServer(t)
	delete(server.docs, "/u2")
	cfg := server.config(t)
	runner := &recordingRunner{code: 1}

	l := New(cfg, server.srv.Client(), nil)
	l.Runner = runner.run

	status := l.Launch(context.Background())
	assert.Equal(t, StateDegraded, status.State)
	require.Len(t, status.Failures, 1)
	assert.True(t, errors.Is(status.Failures[0], merrors.ErrFetch))
	assert.Equal(t, 1, status.ExitCode)
	assert.Equal(t, 1, status.ProcessExitCode())
	// the launch happens anyway
	assert.Len(t, runner.invocations, 1)
}

func TestLaunchUnknownVersion(t *testing.T) {
	server := newMetaServer(t)
	cfg := server.config(t)
	cfg.Version = "0.0.1"
	runner := &recordingRunner{}

	l := New(cfg, server.srv.Client(), nil)
	l.Runner = runner.run

	status := l.Launch(context.Background())
	assert.Equal(t, StateInstallAborted, status.State)
	assert.True(t, errors.Is(status.Err, merrors.ErrVersionNotFound))
	assert.Equal(t, 2, status.ProcessExitCode())
	assert.Empty(t, runner.invocations)
	assert.NoFileExists(t, filepath.Join(cfg.InstanceDir(), "client.jar"))
}

func TestLaunchBrokenAssetIndex(t *testing.T) {
	server := newMetaServer(t)
	server.docs["/u3"] = "not json"
	cfg := server.config(t)
	cfg.FastMode = false
	runner := &recordingRunner{}

	l := New(cfg, server.srv.Client(), nil)
	l.Runner = runner.run

	status := l.Launch(context.Background())
	assert.Equal(t, StateDegraded, status.State)
	require.Len(t, status.Failures, 1)
	assert.True(t, errors.Is(status.Failures[0], merrors.ErrAssetIndex))
	assert.Len(t, runner.invocations, 1)
}

func TestLaunchSpawnFailure(t *testing.T) {
	server := newMetaServer(t)
	cfg := server.config(t)
	cfg.Java = "this-java-does-not-exist-anywhere"
	sink := &logsink.Memory{}

	l := New(cfg, server.srv.Client(), sink)
	status := l.Launch(context.Background())

	assert.Equal(t, StateLaunchFailed, status.State)
	assert.True(t, errors.Is(status.Err, merrors.ErrLaunchSpawn))
	assert.Equal(t, -1, status.ExitCode)
	assert.Equal(t, 3, status.ProcessExitCode())
}

func TestLaunchDryRun(t *testing.T) {
	server := newMetaServer(t)
	cfg := server.config(t)
	cfg.Java = "this-java-does-not-exist-anywhere"
	sink := &logsink.Memory{}

	l := New(cfg, server.srv.Client(), sink)
	l.DryRun = true
	status := l.Launch(context.Background())

	assert.Equal(t, StateOK, status.State)
	lines := sink.Lines()
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "this-java-does-not-exist-anywhere -Xmx2G"))
}

func TestInstall(t *testing.T) {
	server := newMetaServer(t)
	cfg := server.config(t)
	cfg.FastMode = false

	l := New(cfg, server.srv.Client(), nil)
	prepared, err := l.Install(context.Background())
	require.NoError(t, err)
	assert.True(t, prepared.Installed)
	assert.Equal(t, 1, prepared.Assets)
	assert.Empty(t, prepared.Failures)
	assert.Equal(t, "M", prepared.Manifest.MainClass)
	assert.NoDirExists(t, filepath.Join(cfg.InstanceDir(), "game"))

	prepared, err = l.Install(context.Background())
	require.NoError(t, err)
	assert.False(t, prepared.Installed)
	assert.Equal(t, 1, server.hitsFor("/u1"))
	assert.Equal(t, 1, server.hitsFor("/objects/ab/"+assetHash))
}

func TestTask(t *testing.T) {
	server := newMetaServer(t)
	cfg := server.config(t)
	runner := &recordingRunner{code: 0}

	l := New(cfg, server.srv.Client(), nil)
	l.Runner = runner.run

	task := l.Start(context.Background())
	select {
	case <-task.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("task did not finish")
	}
	assert.Equal(t, StateOK, task.Wait().State)
}

func TestTaskCancel(t *testing.T) {
	server := newMetaServer(t)
	cfg := server.config(t)

	l := New(cfg, server.srv.Client(), nil)
	started := make(chan struct{})
	l.Runner = func(ctx context.Context, inv *Invocation, sink logsink.Sink) (int, error) {
		close(started)
		<-ctx.Done()
		return -1, ctx.Err()
	}

	task := l.Start(context.Background())
	<-started
	task.Cancel()

	status := task.Wait()
	assert.Equal(t, StateCanceled, status.State)
	assert.Equal(t, 130, status.ProcessExitCode())
}

func TestTaskCanceledBeforeInstall(t *testing.T) {
	server := newMetaServer(t)
	cfg := server.config(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(cfg, server.srv.Client(), nil)
	status := l.Start(ctx).Wait()
	assert.Equal(t, StateCanceled, status.State)
	_, err := os.Stat(filepath.Join(cfg.InstanceDir(), "client.jar"))
	assert.True(t, os.IsNotExist(err))
}
