package cmd

import (
	"fmt"

	"github.com/minepkg/mclaunch/internals/commands"
	"github.com/minepkg/mclaunch/internals/instances"
	"github.com/minepkg/mclaunch/internals/logsink"
	"github.com/spf13/cobra"
)

func init() {
	runner := &cleanRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "clean",
		Short: "Removes the downloaded files of the configured Minecraft version",
		Long: `Removes the client, libraries, natives and assets of the configured version.
The game directory (saves, options, screenshots) is kept unless --all is set.`,
		Args: cobra.NoArgs,
	}, runner)

	cmd.Flags().BoolVar(&runner.all, "all", false, "also remove the game directory")

	rootCmd.AddCommand(cmd.Command)
}

type cleanRunner struct {
	all bool
}

func (c *cleanRunner) RunE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sink, closeSink, err := outputSink(cfg)
	if err != nil {
		return err
	}
	defer closeSink()

	instance := instances.New(cfg.Version, cfg.InstanceDir(), nil, nil, sink)
	if c.all {
		logsink.Printf(sink, "Removing %s", instance.Layout.Root)
		err = instance.Remove()
	} else {
		err = instance.Clean()
	}
	if err != nil {
		return err
	}

	fmt.Println("Cleaned " + cfg.Version)
	return nil
}
