// Package config holds the launcher configuration. A Config is built once at startup
// (defaults, config file, environment, flags) and passed around by value.
package config

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/pbnjay/memory"
	"github.com/spf13/viper"
)

// Config keys
const (
	KeyVersion           = "version"
	KeyFastMode          = "fastMode"
	KeyInstancesDir      = "instancesDir"
	KeyUsername          = "username"
	KeyUUID              = "uuid"
	KeyAccessToken       = "accessToken"
	KeyUserType          = "userType"
	KeyJava              = "java"
	KeyHeap              = "heap"
	KeyJVMArgs           = "jvmArgs"
	KeyWorkers           = "workers"
	KeyRequestsPerSecond = "requestsPerSecond"
	KeyManifestURL       = "manifestURL"
	KeyResourcesURL      = "resourcesURL"
	KeyLogFile           = "logFile"
	KeyNonInteractive    = "nonInteractive"
	KeyVerbose           = "verbose"
)

// Config is the immutable launcher configuration
type Config struct {
	// Version is the minecraft version to install and launch
	Version string
	// FastMode skips the asset download
	FastMode bool
	// InstancesDir contains one directory per version
	InstancesDir string

	Username    string
	UUID        string
	AccessToken string
	UserType    string

	// Java is the java binary to launch minecraft with
	Java string
	// Heap is passed as -Xmx (for example "2G")
	Heap    string
	JVMArgs []string

	// Workers is the number of parallel asset downloads
	Workers int
	// RequestsPerSecond limits http requests. 0 means unlimited
	RequestsPerSecond float64

	ManifestURL  string
	ResourcesURL string

	LogFile        string
	NonInteractive bool
	Verbose        bool
}

// SetDefaults registers the default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyVersion, "1.21.1")
	v.SetDefault(KeyFastMode, false)
	v.SetDefault(KeyInstancesDir, "instances")
	v.SetDefault(KeyUsername, "Player")
	v.SetDefault(KeyUUID, "00000000-0000-0000-0000-000000000000")
	v.SetDefault(KeyAccessToken, "0")
	v.SetDefault(KeyUserType, "mojang")
	v.SetDefault(KeyJava, "java")
	v.SetDefault(KeyHeap, "2G")
	v.SetDefault(KeyJVMArgs, []string{})
	v.SetDefault(KeyWorkers, 8)
	v.SetDefault(KeyRequestsPerSecond, 0)
	v.SetDefault(KeyManifestURL, minecraft.DefaultManifestURL)
	v.SetDefault(KeyResourcesURL, minecraft.DefaultResourcesURL)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyNonInteractive, false)
	v.SetDefault(KeyVerbose, false)
}

// Default returns the configuration without any file, env or flag applied
func Default() (Config, error) {
	v := viper.New()
	SetDefaults(v)
	return FromViper(v)
}

// FromViper reads and validates the configuration
func FromViper(v *viper.Viper) (Config, error) {
	instancesDir, err := filepath.Abs(v.GetString(KeyInstancesDir))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Version:           strings.TrimSpace(v.GetString(KeyVersion)),
		FastMode:          v.GetBool(KeyFastMode),
		InstancesDir:      instancesDir,
		Username:          v.GetString(KeyUsername),
		UUID:              v.GetString(KeyUUID),
		AccessToken:       v.GetString(KeyAccessToken),
		UserType:          v.GetString(KeyUserType),
		Java:              v.GetString(KeyJava),
		Heap:              v.GetString(KeyHeap),
		JVMArgs:           v.GetStringSlice(KeyJVMArgs),
		Workers:           v.GetInt(KeyWorkers),
		RequestsPerSecond: v.GetFloat64(KeyRequestsPerSecond),
		ManifestURL:       v.GetString(KeyManifestURL),
		ResourcesURL:      v.GetString(KeyResourcesURL),
		LogFile:           v.GetString(KeyLogFile),
		NonInteractive:    v.GetBool(KeyNonInteractive),
		Verbose:           v.GetBool(KeyVerbose),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// InstanceDir is the directory of the configured version
func (c Config) InstanceDir() string {
	return filepath.Join(c.InstancesDir, c.Version)
}

// Validate checks the configuration for obvious mistakes
func (c Config) Validate() error {
	switch {
	case c.Version == "":
		return fmt.Errorf("no minecraft version configured")
	case strings.ContainsAny(c.Version, `/\`) || c.Version == "." || c.Version == "..":
		return fmt.Errorf("invalid minecraft version %q", c.Version)
	case c.Java == "":
		return fmt.Errorf("no java binary configured")
	case c.Workers < 1:
		return fmt.Errorf("workers has to be at least 1, got %d", c.Workers)
	case c.RequestsPerSecond < 0:
		return fmt.Errorf("requestsPerSecond can not be negative")
	}

	_, err := HeapBytes(c.Heap)
	return err
}

// totalMemory is replaced in tests
var totalMemory = memory.TotalMemory

// CheckMemory fails if the configured heap does not fit into the system memory.
// Only commands that start or prepare the game need this
func (c Config) CheckMemory() error {
	heap, err := HeapBytes(c.Heap)
	if err != nil {
		return err
	}
	if total := totalMemory(); total != 0 && heap > total {
		return fmt.Errorf(
			"heap of %s is more than the available system memory (%s)",
			humanize.IBytes(heap),
			humanize.IBytes(total),
		)
	}
	return nil
}

var heapRegexp = regexp.MustCompile(`^(\d+)([kKmMgG]?)$`)

// HeapBytes converts a java heap size like "2G" or "512m" to bytes
func HeapBytes(heap string) (uint64, error) {
	found := heapRegexp.FindStringSubmatch(heap)
	if found == nil {
		return 0, fmt.Errorf("invalid heap size %q (examples: 2G, 1536M)", heap)
	}
	num, err := strconv.ParseUint(found[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid heap size %q: %w", heap, err)
	}
	if num == 0 {
		return 0, fmt.Errorf("heap size can not be 0")
	}
	var multiplier uint64 = 1
	switch strings.ToLower(found[2]) {
	case "k":
		multiplier = 1 << 10
	case "m":
		multiplier = 1 << 20
	case "g":
		multiplier = 1 << 30
	}
	if num > math.MaxUint64/multiplier {
		return 0, fmt.Errorf("heap size %q is too large", heap)
	}
	return num * multiplier, nil
}
