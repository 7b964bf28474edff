package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/mclaunch/internals/commands"
	"github.com/minepkg/mclaunch/internals/config"
	"github.com/minepkg/mclaunch/internals/launcher"
	"github.com/spf13/cobra"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "install",
		Short: "Installs the configured Minecraft version without launching it",
		Args:  cobra.NoArgs,
	}, &installRunner{})

	cmd.Flags().Bool("fast", false, "skip downloading assets")
	bindLocalFlag(cmd.Command, config.KeyFastMode, "fast")

	rootCmd.AddCommand(cmd.Command)
}

type installRunner struct{}

func (i *installRunner) RunE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := checkMemory(cfg); err != nil {
		return err
	}

	sink, closeSink, err := outputSink(cfg)
	if err != nil {
		return err
	}
	defer closeSink()

	fmt.Println(commands.Headline("📦 ", "Installing Minecraft "+cfg.Version))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mc := launcher.New(cfg, httpClient(cfg), sink)
	mc.OnAssetProgress = launcher.NewMaybeSpinner(interactive(cfg)).Progress("Downloading assets")

	prepared, err := mc.Install(ctx)
	switch {
	case ctx.Err() != nil:
		return &commands.ExitCodeError{Code: launcher.Status{State: launcher.StateCanceled}.ProcessExitCode()}
	case err != nil:
		return err
	}

	if len(prepared.Failures) != 0 {
		fmt.Println(gchalk.Yellow(fmt.Sprintf("Installed with %d failures", len(prepared.Failures))))
		return &commands.ExitCodeError{Code: 1}
	}
	fmt.Println(gchalk.Green("Minecraft " + cfg.Version + " is installed in " + cfg.InstanceDir()))
	return nil
}
