// Package version provides unified mechanisms for application version tracking, update discovery, and compatibility validation.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/echodl/echodl/filesystem"
	"github.com/echodl/echodl/network"
	"github.com/echodl/echodl/util"
	"github.com/echodl/echodl/where"
	"github.com/metafates/gache"
)

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// githubAPI serves the release lookups.
var githubAPI = "https://api.github.com"

// ErrNoReleaseRepo is returned when cli.release_repo is empty.
var ErrNoReleaseRepo = errors.New("no release repository configured")

// Latest retrieves the most recent release version of repo ("owner/name"),
// cached for two days.
func Latest(ctx context.Context, repo string) (version string, err error) {
	if repo == "" {
		return "", ErrNoReleaseRepo
	}

	ver, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	url := fmt.Sprintf("%s/repos/%s/releases/latest", githubAPI, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := network.Client.Do(req)
	if err != nil {
		return
	}

	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("release lookup: %s", resp.Status)
		return
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	err = json.NewDecoder(resp.Body).Decode(&release)
	if err != nil {
		return
	}

	if release.TagName == "" {
		err = errors.New("empty tag name")
		return
	}

	version = strings.TrimPrefix(release.TagName, "v")
	_ = versionCacher.Set(version)
	return
}
