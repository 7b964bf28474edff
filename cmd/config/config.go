package config

import (
	"sort"
	"strings"

	mconfig "github.com/minepkg/mclaunch/internals/config"
	"github.com/spf13/cobra"
)

const (
	configKindString = iota
	configKindBool
	configKindInt
	configKindFloat
	configKindList
)

type configEntry struct {
	key  string
	kind int
	help string
}

var entries = map[string]configEntry{}

func register(key string, kind int, help string) {
	entries[strings.ToLower(key)] = configEntry{key, kind, help}
}

func init() {
	register(mconfig.KeyVersion, configKindString, "Minecraft version to install and launch")
	register(mconfig.KeyFastMode, configKindBool, "skip downloading assets")
	register(mconfig.KeyInstancesDir, configKindString, "directory containing all instances")
	register(mconfig.KeyUsername, configKindString, "player name")
	register(mconfig.KeyUUID, configKindString, "player uuid")
	register(mconfig.KeyAccessToken, configKindString, "session access token")
	register(mconfig.KeyUserType, configKindString, "user type passed to minecraft")
	register(mconfig.KeyJava, configKindString, "java binary")
	register(mconfig.KeyHeap, configKindString, "maximum java heap (-Xmx)")
	register(mconfig.KeyJVMArgs, configKindList, "additional java arguments, comma separated")
	register(mconfig.KeyWorkers, configKindInt, "number of parallel asset downloads")
	register(mconfig.KeyRequestsPerSecond, configKindFloat, "http request limit (0 is unlimited)")
	register(mconfig.KeyManifestURL, configKindString, "version manifest url")
	register(mconfig.KeyResourcesURL, configKindString, "asset object host")
	register(mconfig.KeyLogFile, configKindString, "file that receives a copy of all output")
	register(mconfig.KeyNonInteractive, configKindBool, "disable spinners")
	register(mconfig.KeyVerbose, configKindBool, "log every download")
}

// File is the config file written by "config set"
var File string

var SubCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global config options",
}

func sortedKeys() []string {
	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		keys = append(keys, entry.key)
	}
	sort.Strings(keys)
	return keys
}

func lookup(key string) (configEntry, bool) {
	entry, ok := entries[strings.ToLower(key)]
	return entry, ok
}
