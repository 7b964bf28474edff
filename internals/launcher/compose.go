package launcher

import (
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/minepkg/mclaunch/internals/config"
	"github.com/minepkg/mclaunch/internals/instances"
	"github.com/minepkg/mclaunch/internals/merrors"
	"github.com/minepkg/mclaunch/internals/minecraft"
	"github.com/pkg/errors"
)

// LaunchOptions are the user settable parts of the java command line
type LaunchOptions struct {
	// Java is the java binary, "java" if empty
	Java string
	// Heap is used for -Xmx, "2G" if empty
	Heap    string
	JVMArgs []string
	// Version is passed as --version. Defaults to the id of the launch manifest
	Version string

	Username    string
	UUID        string
	AccessToken string
	UserType    string

	// GOOS selects the classpath separator. Defaults to runtime.GOOS
	GOOS string
}

// OptionsFromConfig returns the launch options of cfg
func OptionsFromConfig(cfg config.Config) LaunchOptions {
	return LaunchOptions{
		Java:        cfg.Java,
		Heap:        cfg.Heap,
		JVMArgs:     cfg.JVMArgs,
		Version:     cfg.Version,
		Username:    cfg.Username,
		UUID:        cfg.UUID,
		AccessToken: cfg.AccessToken,
		UserType:    cfg.UserType,
	}
}

// Invocation is a fully composed command
type Invocation struct {
	Path string
	Args []string
}

// String returns the command line separated by spaces
func (i *Invocation) String() string {
	return strings.Join(append([]string{i.Path}, i.Args...), " ")
}

// ClasspathSeparator returns the separator java expects on goos
func ClasspathSeparator(goos string) string {
	if goos == "windows" {
		return ";"
	}
	return ":"
}

// Classpath collects every .jar below librariesDir in walk order and appends clientJar.
// A missing libraries directory results in just the client jar
func Classpath(librariesDir string, clientJar string, goos string) (string, error) {
	librariesDir, err := filepath.Abs(librariesDir)
	if err != nil {
		return "", err
	}
	clientJar, err = filepath.Abs(clientJar)
	if err != nil {
		return "", err
	}

	jars := []string{}
	err = filepath.WalkDir(librariesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == librariesDir && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".jar") {
			jars = append(jars, path)
		}
		return nil
	})
	if err != nil {
		return "", errors.Wrap(err, "could not read libraries")
	}

	jars = append(jars, clientJar)
	return strings.Join(jars, ClasspathSeparator(goos)), nil
}

// Compose builds the java command that starts the instance in layout
func Compose(layout instances.Layout, man *minecraft.LaunchManifest, opts LaunchOptions) (*Invocation, error) {
	if man == nil || man.MainClass == "" {
		return nil, merrors.Wrap(merrors.ErrMalformedMetadata, "no main class", nil)
	}

	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	java := opts.Java
	if java == "" {
		java = "java"
	}
	heap := opts.Heap
	if heap == "" {
		heap = "2G"
	}
	version := opts.Version
	if version == "" {
		version = man.ID
	}

	classpath, err := Classpath(layout.LibrariesDir(), layout.ClientJar(), goos)
	if err != nil {
		return nil, err
	}

	args := []string{
		"-Xmx" + heap,
		"-Djava.library.path=" + layout.NativesDir(),
	}
	args = append(args, opts.JVMArgs...)
	args = append(args,
		"-cp", classpath,
		man.MainClass,
		"--username", opts.Username,
		"--version", version,
		"--gameDir", layout.GameDir(),
		"--assetsDir", layout.AssetsDir(),
		"--assetIndex", man.AssetIndex.ID,
		"--uuid", opts.UUID,
		"--accessToken", opts.AccessToken,
		"--userType", opts.UserType,
		"--versionType", "release",
		"--userProperties", "{}",
	)

	return &Invocation{Path: java, Args: args}, nil
}
