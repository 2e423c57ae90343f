// Package version checks for newer releases of the application.
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

	"github.com/dlive-cli/dlive/constant"
	"github.com/dlive-cli/dlive/filesystem"
	"github.com/dlive-cli/dlive/network"
	"github.com/dlive-cli/dlive/where"
)

// releasesURL is the GitHub endpoint describing the latest release.
var releasesURL = fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", constant.Repository)

var versionCacher = filesystem.Persisted[string](filepath.Join(where.Cache(), "version.json"), 48*time.Hour)

// Latest returns the newest released version without its "v" prefix.
// The answer is cached for two days.
func Latest(ctx context.Context) (string, error) {
	cached, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && cached != "" {
		return cached, nil
	}

	latest, err := fetchLatest(ctx, network.Client)
	if err != nil {
		return "", err
	}

	_ = versionCacher.Set(latest)
	return latest, nil
}

func fetchLatest(ctx context.Context, client *http.Client) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releasesURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release check: %s", resp.Status)
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
