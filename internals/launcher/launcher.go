// Package launcher installs a minecraft version and starts it
package launcher

import (
	"context"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/minepkg/mclaunch/internals/assets"
	"github.com/minepkg/mclaunch/internals/config"
	"github.com/minepkg/mclaunch/internals/downloadmgr"
	"github.com/minepkg/mclaunch/internals/instances"
	"github.com/minepkg/mclaunch/internals/logsink"
	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/minepkg/mclaunch/internals/utils"
	"github.com/pkg/errors"
)

// Launcher installs and launches the configured minecraft version
type Launcher struct {
	Config config.Config
	// Instance is the instance of Config.Version
	Instance *instances.Instance
	Metadata instances.MetadataSource
	Fetcher  downloadmgr.Fetcher
	Log      logsink.Sink

	// GOOS is used for the classpath separator. Defaults to runtime.GOOS
	GOOS string
	// DryRun only logs the java command instead of running it
	DryRun bool
	// OnAssetProgress is called after every processed asset object
	OnAssetProgress func(done int, total int)
	// Runner starts the composed command. Defaults to Run
	Runner func(ctx context.Context, inv *Invocation, sink logsink.Sink) (int, error)

	written int64
}

// New returns a launcher for cfg that downloads everything with client
func New(cfg config.Config, client *http.Client, log logsink.Sink) *Launcher {
	if log == nil {
		log = logsink.Discard
	}
	api := minecraft.New(client)
	if cfg.ManifestURL != "" {
		api.ManifestURL = cfg.ManifestURL
	}

	l := &Launcher{
		Config:   cfg,
		Metadata: api,
		Log:      log,
	}
	l.Fetcher = &downloadmgr.HTTPFetcher{
		Client:    client,
		OnWritten: func(n int64) { atomic.AddInt64(&l.written, n) },
	}
	l.Instance = instances.New(cfg.Version, cfg.InstanceDir(), l.Metadata, l.Fetcher, log)
	l.Instance.Verbose = cfg.Verbose

	return l
}

// Prepared is the result of Install
type Prepared struct {
	// Manifest is the launch manifest of the version
	Manifest *minecraft.LaunchManifest
	// Installed is false if the instance already existed
	Installed bool
	// Assets is the number of asset objects that were synced
	Assets int
	// Failures are all artifacts and assets that could not be installed
	Failures []error
}

// Install makes sure the instance is installed and, unless fast mode is set,
// all assets are downloaded. Errors resolving the version abort the install.
// Failing artifacts do not, they are collected in Prepared.Failures
func (l *Launcher) Install(ctx context.Context) (*Prepared, error) {
	atomic.StoreInt64(&l.written, 0)

	report, err := l.Instance.EnsureInstalled(ctx)
	if err != nil {
		return nil, err
	}

	prepared := &Prepared{
		Manifest:  report.Manifest,
		Installed: !report.Skipped,
		Failures:  report.Failures,
	}

	if prepared.Manifest == nil {
		// the install was skipped, launching still needs the metadata
		man, err := l.Metadata.LaunchManifestFor(ctx, l.Config.Version)
		if err != nil {
			return nil, err
		}
		prepared.Manifest = man
	}

	if !report.Skipped {
		logsink.Printf(
			l.Log,
			"Installed %s for %s (%d failed)",
			utils.Count(report.Artifacts, "artifact"),
			l.Config.Version,
			len(report.Failures),
		)
	}

	if l.Config.FastMode {
		logsink.Printf(l.Log, "Fast mode: skipping assets")
	} else if err := l.syncAssets(ctx, prepared); err != nil {
		return nil, err
	}

	if written := atomic.LoadInt64(&l.written); written > 0 {
		logsink.Printf(l.Log, "Downloaded %s", humanize.Bytes(uint64(written)))
	}

	return prepared, nil
}

func (l *Launcher) syncAssets(ctx context.Context, prepared *Prepared) error {
	index := prepared.Manifest.AssetIndex
	sync := &assets.Synchronizer{
		Layout:       l.Instance.Layout,
		Fetcher:      l.Fetcher,
		ResourcesURL: l.Config.ResourcesURL,
		Workers:      l.Config.Workers,
		Log:          l.Log,
		OnProgress:   l.OnAssetProgress,
	}

	report, err := sync.Sync(ctx, index.URL, index.ID)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		// minecraft starts without assets, just without sounds and translations
		logsink.Printf(l.Log, "Error: %s", err)
		prepared.Failures = append(prepared.Failures, err)
		return nil
	}

	prepared.Assets = report.Objects
	prepared.Failures = append(prepared.Failures, report.Failures...)
	logsink.Printf(
		l.Log,
		"Synced %s (%d failed)",
		utils.Count(report.Objects, "asset"),
		len(report.Failures),
	)
	return nil
}

// Launch runs the whole pipeline: install, asset sync, compose and run.
// It blocks until minecraft exited and never panics on failures,
// everything is reported in the returned Status
func (l *Launcher) Launch(ctx context.Context) Status {
	prepared, err := l.Install(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Status{State: StateCanceled, ExitCode: -1, Err: ctx.Err()}
		}
		logsink.Printf(l.Log, "Error: %s", err)
		return Status{State: StateInstallAborted, ExitCode: -1, Err: err}
	}

	status := Status{Failures: prepared.Failures, ExitCode: -1}
	launchFailed := func(err error) Status {
		logsink.Printf(l.Log, "Error: %s", err)
		status.State = StateLaunchFailed
		status.Err = err
		return status
	}

	layout := l.Instance.Layout
	if err := os.MkdirAll(layout.GameDir(), os.ModePerm); err != nil {
		return launchFailed(errors.Wrap(err, "could not create game directory"))
	}

	opts := OptionsFromConfig(l.Config)
	opts.GOOS = l.GOOS
	inv, err := Compose(layout, prepared.Manifest, opts)
	if err != nil {
		return launchFailed(err)
	}

	logsink.Printf(l.Log, "Launching Minecraft:")
	l.Log.Write(inv.String())

	if l.DryRun {
		status.ExitCode = 0
		return l.finish(status)
	}

	runner := l.Runner
	if runner == nil {
		runner = Run
	}
	code, err := runner(ctx, inv, l.Log)
	if ctx.Err() != nil {
		return Status{State: StateCanceled, Failures: status.Failures, ExitCode: -1, Err: ctx.Err()}
	}
	if err != nil {
		// Run already logged spawn errors
		status.State = StateLaunchFailed
		status.Err = err
		return status
	}

	status.ExitCode = code
	return l.finish(status)
}

func (l *Launcher) finish(status Status) Status {
	if len(status.Failures) == 0 {
		status.State = StateOK
	} else {
		status.State = StateDegraded
	}
	return status
}
