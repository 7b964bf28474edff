package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/mclaunch/cmd/config"
	"github.com/minepkg/mclaunch/internals/autocomplete"
	"github.com/minepkg/mclaunch/internals/commands"
	mconfig "github.com/minepkg/mclaunch/internals/config"
	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// set by main
var (
	Version string
	Commit  string
)

var (
	cfgFile       string
	disableColors bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mclaunch",
	Short: "Installs and launches vanilla Minecraft",
	Long:  "Downloads a Minecraft version with all its libraries and assets and starts it",

	Example: `
  mclaunch launch
  mclaunch launch -m 1.20.4 --fast
  mclaunch versions --type snapshot`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = Version
	if Commit != "" {
		rootCmd.Version += " (" + Commit + ")"
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	mconfig.SetDefaults(viper.GetViper())

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $CONFIG_DIR/mclaunch/config.toml)")
	flags.BoolVarP(&disableColors, "no-color", "", false, "disable color output")
	flags.StringP("minecraft", "m", "", "Minecraft version to use")
	flags.String("instances-dir", "", "directory containing all instances")
	flags.Bool("verbose", false, "log every download and the full java command")
	flags.Bool("non-interactive", false, "disable spinners")
	flags.Int("workers", 0, "number of parallel asset downloads")

	bindFlag(mconfig.KeyVersion, "minecraft")
	bindFlag(mconfig.KeyInstancesDir, "instances-dir")
	bindFlag(mconfig.KeyVerbose, "verbose")
	bindFlag(mconfig.KeyNonInteractive, "non-interactive")
	bindFlag(mconfig.KeyWorkers, "workers")

	if err := rootCmd.RegisterFlagCompletionFunc("minecraft", completeVersions); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(config.SubCmd)
}

func completeVersions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	api := minecraft.New(http.DefaultClient)
	api.ManifestURL = viper.GetString(mconfig.KeyManifestURL)

	completer := &autocomplete.AutoCompleter{
		Client:   api,
		CacheDir: filepath.Join(cacheDir, "mclaunch"),
	}
	return completer.Complete(toComplete)
}

// bindFlag binds a persistent flag to a config key
func bindFlag(key string, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// ConfigPath is the config file used when no --config flag is set
func ConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "mclaunch", "config.toml")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if disableColors || os.Getenv("CI") != "" || os.Getenv("NO_COLOR") != "" {
		gchalk.SetLevel(gchalk.LevelNone)
		commands.EmojiEnabled = false
	}

	if cfgFile == "" {
		cfgFile = ConfigPath()
	}
	config.File = cfgFile
	viper.SetConfigFile(cfgFile)

	viper.SetEnvPrefix("MCLAUNCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && viper.GetBool(mconfig.KeyVerbose) {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
