package merrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds. Use errors.Is to check which kind an error is.
var (
	// ErrManifestFetch is returned when the version manifest could not be fetched or read
	ErrManifestFetch = errors.New("could not fetch version manifest")
	// ErrVersionNotFound is returned when the manifest does not list the requested version
	ErrVersionNotFound = errors.New("version not found in manifest")
	// ErrMetadataFetch is returned when the version metadata could not be fetched
	ErrMetadataFetch = errors.New("could not fetch version metadata")
	// ErrMalformedMetadata is returned when the version metadata can not be interpreted
	ErrMalformedMetadata = errors.New("malformed version metadata")
	// ErrFetch is returned when a single artifact could not be downloaded
	ErrFetch = errors.New("download failed")
	// ErrBadArchive is returned when an archive can not be extracted
	ErrBadArchive = errors.New("bad archive")
	// ErrAssetIndex is returned when the asset index is missing or unparseable
	ErrAssetIndex = errors.New("unusable asset index")
	// ErrLaunchSpawn is returned when the java process could not be started
	ErrLaunchSpawn = errors.New("could not start minecraft")
	// ErrUnsupportedPlatform is returned for native libraries that have no
	// variant for the running platform
	ErrUnsupportedPlatform = errors.New("no natives for this platform")
)

// Error ties a cause to one of the error kinds above and the thing (url, path, version)
// that failed
type Error struct {
	Kind    error
	Subject string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Subject != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Subject)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}
	return msg
}

// Unwrap returns the cause
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the kind of this error
func (e *Error) Is(target error) bool { return target == e.Kind }

// Wrap returns a new *Error. err may be nil
func Wrap(kind error, subject string, err error) error {
	return &Error{Kind: kind, Subject: subject, Err: err}
}

// Kinds lists every error kind in pipeline order
var Kinds = []error{
	ErrManifestFetch,
	ErrVersionNotFound,
	ErrMetadataFetch,
	ErrMalformedMetadata,
	ErrFetch,
	ErrBadArchive,
	ErrAssetIndex,
	ErrLaunchSpawn,
	ErrUnsupportedPlatform,
}

// KindOf returns the kind of err or nil if err is not one of the known kinds
func KindOf(err error) error {
	for _, kind := range Kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
