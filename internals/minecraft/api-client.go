package minecraft

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/minepkg/mclaunch/internals/merrors"
	"github.com/tidwall/gjson"
)

// DefaultManifestURL lists all released minecraft versions
const DefaultManifestURL = "https://launchermeta.mojang.com/mc/game/version_manifest.json"

// Release types as they appear in the version manifest
var (
	// TypeSnapshot is a snapshot release
	TypeSnapshot = "snapshot"
	// TypeRelease is a full "normal" release
	TypeRelease = "release"
	// TypeOldBeta is a "old_beta" release
	TypeOldBeta = "old_beta"
	// TypeOldAlpha is a "old_alpha" release
	TypeOldAlpha = "old_alpha"
)

// Release is a released minecraft version
type Release struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Time        string `json:"time"`
	ReleaseTime string `json:"releaseTime"`
}

// VersionManifest is the response from the "launchermeta" mojang api
type VersionManifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []Release `json:"versions"`
}

// APIClient talks to the mojang launcher meta api. Nothing is cached,
// every call fetches fresh documents
type APIClient struct {
	*http.Client
	// ManifestURL defaults to DefaultManifestURL
	ManifestURL string
}

// New returns a client using httpClient (http.DefaultClient if nil)
func New(httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &APIClient{
		Client:      httpClient,
		ManifestURL: DefaultManifestURL,
	}
}

func (a *APIClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := a.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invalid status code: %s", res.Status)
	}
	return io.ReadAll(res.Body)
}

func (a *APIClient) manifestURL() string {
	if a.ManifestURL == "" {
		return DefaultManifestURL
	}
	return a.ManifestURL
}

// VersionManifest returns the full list of minecraft versions
func (a *APIClient) VersionManifest(ctx context.Context) (*VersionManifest, error) {
	buf, err := a.get(ctx, a.manifestURL())
	if err != nil {
		return nil, merrors.Wrap(merrors.ErrManifestFetch, a.manifestURL(), err)
	}
	parsed := VersionManifest{}
	if err := json.Unmarshal(buf, &parsed); err != nil {
		return nil, merrors.Wrap(merrors.ErrManifestFetch, a.manifestURL(), err)
	}

	return &parsed, nil
}

// ResolveVersionURL returns the url of the version.json for versionID.
// The first manifest entry with a matching id wins
func (a *APIClient) ResolveVersionURL(ctx context.Context, versionID string) (string, error) {
	buf, err := a.get(ctx, a.manifestURL())
	if err != nil {
		return "", merrors.Wrap(merrors.ErrManifestFetch, a.manifestURL(), err)
	}
	if !gjson.ValidBytes(buf) {
		return "", merrors.Wrap(merrors.ErrManifestFetch, a.manifestURL(), fmt.Errorf("response is not valid json"))
	}

	url := ""
	gjson.GetBytes(buf, "versions").ForEach(func(_, version gjson.Result) bool {
		if version.Get("id").String() == versionID {
			url = version.Get("url").String()
			return false
		}
		return true
	})

	if url == "" {
		return "", merrors.Wrap(merrors.ErrVersionNotFound, versionID, nil)
	}
	return url, nil
}

// FetchLaunchManifest downloads and parses the version.json at url
func (a *APIClient) FetchLaunchManifest(ctx context.Context, url string) (*LaunchManifest, error) {
	buf, err := a.get(ctx, url)
	if err != nil {
		return nil, merrors.Wrap(merrors.ErrMetadataFetch, url, err)
	}
	return ParseLaunchManifest(buf)
}

// LaunchManifestFor resolves versionID in the manifest and fetches its version.json
func (a *APIClient) LaunchManifestFor(ctx context.Context, versionID string) (*LaunchManifest, error) {
	url, err := a.ResolveVersionURL(ctx, versionID)
	if err != nil {
		return nil, err
	}
	return a.FetchLaunchManifest(ctx, url)
}
