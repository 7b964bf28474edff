package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/minepkg/mclaunch/internals/merrors"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "lwjgl-natives-linux.jar")
	writeZip(t, jar, map[string]string{
		"liblwjgl.so":          "elf",
		"linux/x64/libglfw.so": "elf2",
		"META-INF/MANIFEST.MF": "Manifest-Version: 1.0",
	})

	dest := filepath.Join(dir, "natives")
	require.NoError(t, Extract(jar, dest))

	content, err := os.ReadFile(filepath.Join(dest, "liblwjgl.so"))
	require.NoError(t, err)
	assert.Equal(t, "elf", string(content))
	assert.FileExists(t, filepath.Join(dest, "linux", "x64", "libglfw.so"))

	assert.NoDirExists(t, filepath.Join(dest, "META-INF"))

	// extracting again overwrites
	require.NoError(t, os.WriteFile(filepath.Join(dest, "liblwjgl.so"), []byte("old"), 0644))
	require.NoError(t, Extract(jar, dest))
	content, err = os.ReadFile(filepath.Join(dest, "liblwjgl.so"))
	require.NoError(t, err)
	assert.Equal(t, "elf", string(content))
}

func TestExtractRejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "evil.jar")
	writeZip(t, jar, map[string]string{"../../escaped.so": "elf"})

	err := Extract(jar, filepath.Join(dir, "natives"))
	assert.True(t, errors.Is(err, merrors.ErrBadArchive))
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dir), "escaped.so"))
}

func TestExtractBadArchive(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "broken.jar")
	require.NoError(t, os.WriteFile(jar, []byte("this is not a zip file"), 0644))

	err := Extract(jar, filepath.Join(dir, "natives"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, merrors.ErrBadArchive))
}

func TestExtractMissingArchive(t *testing.T) {
	dir := t.TempDir()
	err := Extract(filepath.Join(dir, "nope.jar"), filepath.Join(dir, "natives"))
	assert.True(t, errors.Is(err, merrors.ErrBadArchive))
}
