package instances

import (
	"os"
	"path/filepath"

	"github.com/minepkg/mclaunch/internals/logsink"
)

var excludeFromClean = []string{
	// saves, options, screenshots and so on
	"game",
}

func isExcluded(name string) bool {
	for _, exclude := range excludeFromClean {
		if name == exclude {
			return true
		}
	}
	return false
}

// Clean removes everything that was downloaded for this instance but keeps the
// game directory. The next launch installs everything again
func (i *Instance) Clean() error {
	directory := i.Layout.Root

	dirs, err := os.ReadDir(directory)

	// dir does not exist. this is fine it is "clean" then
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		if isExcluded(dir.Name()) {
			continue
		}
		logsink.Printf(i.log(), "Removing %s", dir.Name())
		if err := os.RemoveAll(filepath.Join(directory, dir.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes the whole instance directory including the game directory
func (i *Instance) Remove() error {
	return os.RemoveAll(i.Layout.Root)
}
