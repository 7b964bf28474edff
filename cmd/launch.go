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
	"github.com/minepkg/mclaunch/internals/logsink"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	runner := &launchRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "launch",
		Short: "Installs and launches the configured Minecraft version",
		Long: `Installs the configured Minecraft version (if it is not installed yet),
downloads all assets and starts the game. Minecraft's output is shown until it exits.`,
		Example: `
  mclaunch launch
  mclaunch launch -m 1.20.4 --fast
  mclaunch launch --dry-run`,
		Args:    cobra.NoArgs,
		Aliases: []string{"start", "run"},
	}, runner)

	cmd.Flags().BoolVar(&runner.dryRun, "dry-run", false, "only print the java command")
	cmd.Flags().Bool("fast", false, "skip downloading assets")
	cmd.Flags().String("java", "", "java binary to use")
	cmd.Flags().String("heap", "", "maximum java heap, for example 4G")
	cmd.Flags().String("log-file", "", "also write all output to this file")

	bindLocalFlag(cmd.Command, config.KeyFastMode, "fast")
	bindLocalFlag(cmd.Command, config.KeyJava, "java")
	bindLocalFlag(cmd.Command, config.KeyHeap, "heap")
	bindLocalFlag(cmd.Command, config.KeyLogFile, "log-file")

	rootCmd.AddCommand(cmd.Command)
}

// bindLocalFlag binds flag when cmd runs. Binding in init would let
// the last registered command win for keys shared by multiple commands
func bindLocalFlag(cmd *cobra.Command, key string, flag string) {
	prev := cmd.PreRunE
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
		if prev != nil {
			return prev(cmd, args)
		}
		return nil
	}
}

type launchRunner struct {
	dryRun bool
}

func (l *launchRunner) RunE(cmd *cobra.Command, args []string) error {
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

	fmt.Println(commands.Headline("⛏  ", "Minecraft "+cfg.Version))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the launch writes from its own goroutine, this one owns the terminal
	queue := logsink.NewChannel(256)
	mc := launcher.New(cfg, httpClient(cfg), queue)
	mc.DryRun = l.dryRun
	mc.OnAssetProgress = launcher.NewMaybeSpinner(interactive(cfg)).Progress("Downloading assets")

	task := mc.Start(ctx)
	go func() {
		<-task.Done()
		queue.Close()
	}()
	queue.Drain(sink)

	status := task.Wait()
	printStatus(status)

	if code := status.ProcessExitCode(); code != 0 {
		return &commands.ExitCodeError{Code: code}
	}
	return nil
}

func printStatus(status launcher.Status) {
	fmt.Println()
	switch status.State {
	case launcher.StateOK:
		fmt.Println(gchalk.Green(status.Summary()))
	case launcher.StateDegraded:
		fmt.Println(gchalk.Yellow(status.Summary()))
		for _, group := range status.FailuresByKind() {
			title := "other errors"
			if group.Kind != nil {
				title = group.Kind.Error()
			}
			fmt.Println(gchalk.Bold(fmt.Sprintf("  %s (%d)", title, len(group.Failures))))
			for _, failure := range group.Failures {
				fmt.Println(gchalk.Gray("    ⦁ " + failure.Error()))
			}
		}
	default:
		if cliErr := commands.FromKind(status.Err); cliErr != nil {
			cliErr.Text = status.Summary()
			fmt.Println(cliErr.RichError())
			return
		}
		fmt.Println(commands.ErrorBox(status.Summary(), ""))
	}
}
