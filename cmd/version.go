package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-version"
	"go.uber.org/zap"
)

// AppVersion is overridden at build time with -ldflags "-X ...cmd.AppVersion=v1.2.3".
var AppVersion = "v0.0.0"

// releaseURL is a var so tests can point it at a local server.
var releaseURL = "https://api.github.com/repos/%s/releases/latest"

type GitHubRelease struct {
	TagName string `json:"tag_name"`
}

// CheckForUpdates compares AppVersion with the latest release of repo
// ("owner/name") and warns when a newer one exists. Any failure is silent.
func CheckForUpdates(ctx context.Context, repo string, logger *zap.Logger) {
	latest, err := latestRelease(ctx, repo)
	if err != nil {
		logger.Debug("Release check skipped", zap.Error(err))
		return
	}

	outdated, err := isOutdated(AppVersion, latest)
	if err != nil || !outdated {
		return
	}

	logger.Warn("You are running an outdated version",
		zap.String("current", AppVersion),
		zap.String("latest", latest),
	)
}

func latestRelease(ctx context.Context, repo string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(releaseURL, repo), nil)
	if err != nil {
		return "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release lookup returned %d", resp.StatusCode)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}
	return release.TagName, nil
}

func isOutdated(current, latest string) (bool, error) {
	cur, err := version.NewVersion(current)
	if err != nil {
		return false, err
	}
	lat, err := version.NewVersion(latest)
	if err != nil {
		return false, err
	}
	return cur.LessThan(lat), nil
}
