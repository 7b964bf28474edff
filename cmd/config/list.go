package config

import (
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/mclaunch/internals/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "list",
		Short: "Lists all config values",
		Args:  cobra.NoArgs,
	}, &listRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type listRunner struct{}

func (i *listRunner) RunE(cmd *cobra.Command, args []string) error {
	if File != "" {
		fmt.Println(gchalk.Gray("# " + File))
	}
	for _, key := range sortedKeys() {
		entry, _ := lookup(key)
		fmt.Printf("%-18s %v  %s\n", key, viper.Get(key), gchalk.Gray(entry.help))
	}
	return nil
}
