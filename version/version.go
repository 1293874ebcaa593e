// Package version checks for newer releases.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/poolsuite-cli/poolsuite/filesystem"
	"github.com/poolsuite-cli/poolsuite/network"
	"github.com/poolsuite-cli/poolsuite/util"
	"github.com/poolsuite-cli/poolsuite/where"
)

// Repository hosts the releases.
const Repository = "poolsuite-cli/poolsuite"

var releasesAPI = "https://api.github.com/repos/" + Repository + "/releases/latest"

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest returns the newest released version, without the v prefix.
// Results are cached for two days.
func Latest(ctx context.Context) (string, error) {
	cached, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && cached != "" {
		return cached, nil
	}

	version, err := fetchLatest(ctx, network.Client, releasesAPI)
	if err != nil {
		return "", err
	}

	_ = versionCacher.Set(version)
	return version, nil
}

func fetchLatest(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", errors.New("releases: " + resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	return strings.TrimPrefix(release.TagName, "v"), nil
}
