package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/mclaunch/internals/commands"
	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/minepkg/mclaunch/internals/utils"
	"github.com/spf13/cobra"
)

func init() {
	runner := &versionsRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "versions",
		Short: "Lists all available Minecraft versions",
		Args:  cobra.NoArgs,
	}, runner)

	cmd.Flags().StringVar(&runner.kind, "type", minecraft.TypeRelease, "only list versions of this type (release, snapshot, old_beta, old_alpha or all)")
	cmd.Flags().IntVarP(&runner.limit, "limit", "n", 20, "maximum number of versions to list (0 lists all)")

	rootCmd.AddCommand(cmd.Command)
}

type versionsRunner struct {
	kind  string
	limit int
}

func (v *versionsRunner) RunE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	api := minecraft.New(httpClient(cfg))
	api.ManifestURL = cfg.ManifestURL
	manifest, err := api.VersionManifest(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Latest release: %s, latest snapshot: %s\n\n", manifest.Latest.Release, manifest.Latest.Snapshot)

	listed := 0
	for _, release := range manifest.Versions {
		if v.kind != "all" && release.Type != v.kind {
			continue
		}
		if v.limit > 0 && listed >= v.limit {
			break
		}
		listed++

		// pad by the raw id, the pretty one contains color codes
		padding := strings.Repeat(" ", max(1, 25-len(release.ID)))
		line := utils.PrettyVersion(release.ID) + padding +
			fmt.Sprintf("%-10s %s", release.Type, gchalk.Gray(release.ReleaseTime))
		if release.ID == cfg.Version {
			line = gchalk.Bold(line) + " (configured)"
		}
		fmt.Println(line)
	}
	if listed == 0 {
		fmt.Println("No versions of type " + v.kind)
	}
	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
