package cmd

import (
	"net/http"
	"os"

	"github.com/jwalton/gchalk"
	"github.com/mattn/go-isatty"
	"github.com/minepkg/mclaunch/internals/commands"
	"github.com/minepkg/mclaunch/internals/config"
	"github.com/minepkg/mclaunch/internals/logsink"
	"github.com/minepkg/mclaunch/internals/ownhttp"
	"github.com/spf13/viper"
)

// loadConfig builds the configuration from defaults, config file, env and flags
func loadConfig() (config.Config, error) {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return cfg, &commands.CliError{
			Text: err.Error(),
			Help: "Check your config file (" + viper.ConfigFileUsed() + "), MCLAUNCH_* environment variables and flags",
		}
	}
	return cfg, nil
}

// checkMemory rejects heaps larger than the system memory. Only needed by
// commands that install or start the game
func checkMemory(cfg config.Config) error {
	if err := cfg.CheckMemory(); err != nil {
		return &commands.CliError{
			Text:        err.Error(),
			Help:        "Java would not be able to reserve the configured heap.",
			Suggestions: []string{"Pass a smaller heap with --heap, for example --heap 2G", "mclaunch config set heap 2G"},
		}
	}
	return nil
}

// httpClient returns http.DefaultClient, throttled if configured
func httpClient(cfg config.Config) *http.Client {
	if cfg.RequestsPerSecond > 0 {
		return ownhttp.NewThrottled(cfg.RequestsPerSecond, cfg.Workers)
	}
	return http.DefaultClient
}

// interactive reports if spinners can be used
func interactive(cfg config.Config) bool {
	return !cfg.NonInteractive &&
		(isatty.IsTerminal(os.Stdout.Fd()) ||
			isatty.IsCygwinTerminal(os.Stdout.Fd()))
}

// outputSink writes to the terminal and, if configured, the log file.
// The returned close func has to be called after the last write
func outputSink(cfg config.Config) (logsink.Sink, func(), error) {
	console := logsink.NewConsole(os.Stdout, gchalk.GetLevel() != gchalk.LevelNone)
	if cfg.LogFile == "" {
		return console, func() {}, nil
	}

	file, err := logsink.OpenFile(cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}
	return logsink.Multi{console, file}, func() { file.Close() }, nil
}
