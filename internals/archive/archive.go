// Package archive extracts native library archives
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	archiver "github.com/mholt/archiver/v3"
	"github.com/minepkg/mclaunch/internals/merrors"
)

// entries starting with one of these prefixes are not extracted
var skipPrefixes = []string{"META-INF/"}

func skipped(name string) bool {
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Extract unpacks the zip (or jar) archive at archivePath into destDir.
// destDir is created if needed and existing files are overwritten because
// natives of different libraries share one directory. Signature files in META-INF/
// are skipped.
// Any failure is returned as merrors.ErrBadArchive
func Extract(archivePath string, destDir string) error {
	if err := os.MkdirAll(destDir, os.ModePerm); err != nil {
		return merrors.Wrap(merrors.ErrBadArchive, archivePath, err)
	}

	z := archiver.Zip{}
	err := z.Walk(archivePath, func(f archiver.File) error {
		// archiver reads zips with klauspost/compress, not archive/zip
		header, ok := f.Header.(zip.FileHeader)
		if !ok {
			return fmt.Errorf("unexpected header type %T", f.Header)
		}
		if f.IsDir() || skipped(header.Name) {
			return nil
		}
		return writeEntry(destDir, header.Name, f)
	})
	if err != nil {
		return merrors.Wrap(merrors.ErrBadArchive, archivePath, err)
	}
	return nil
}

func writeEntry(destDir string, name string, r io.Reader) error {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal file path in archive: %s", name)
	}
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return err
	}

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
