// Package update checks GitHub Releases for new launcher builds and applies them.
package update

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/sirupsen/logrus"
	"github.com/vstratful/openrouter-launcher/internal/logging"
)

const (
	repoOwner = "vstratful"
	repoName  = "openrouter-launcher"

	// ReleasesURL is where release binaries can be downloaded by hand.
	ReleasesURL = "https://github.com/" + repoOwner + "/" + repoName + "/releases"
)

// DevVersion is the version string of builds made without release ldflags.
const DevVersion = "dev"

// ErrDevVersion is returned when trying to update a development build.
var ErrDevVersion = errors.New("cannot update development builds")

// ErrNoRelease is returned by ApplyUpdate when given nothing to apply.
var ErrNoRelease = errors.New("no release to apply")

// Release contains information about an available update.
type Release struct {
	Version     string
	ReleaseURL  string
	ReleaseDate string
	Description string
	AssetName   string

	release *selfupdate.Release
}

func newUpdater() (*selfupdate.Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub source: %w", err)
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source:    source,
		Validator: &selfupdate.ChecksumValidator{UniqueFilename: "checksums.txt"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}

	return updater, nil
}

// NormalizeVersion strips a leading "v" and surrounding space.
func NormalizeVersion(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), "v")
}

// CheckForUpdate returns the newest release if it is newer than
// currentVersion, or nil when already up to date.
func CheckForUpdate(ctx context.Context, currentVersion string) (*Release, error) {
	currentVersion = NormalizeVersion(currentVersion)
	if currentVersion == "" || currentVersion == DevVersion {
		return nil, ErrDevVersion
	}

	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}

	release, found, err := updater.DetectLatest(ctx, selfupdate.NewRepositorySlug(repoOwner, repoName))
	if err != nil {
		return nil, fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found || !release.GreaterThan(currentVersion) {
		logging.Logger.WithField("current", currentVersion).Debug("no newer release")
		return nil, nil
	}

	releaseDate := ""
	if !release.PublishedAt.IsZero() {
		releaseDate = release.PublishedAt.Format("2006-01-02")
	}

	logging.Logger.WithFields(logrus.Fields{
		"current": currentVersion,
		"latest":  release.Version(),
	}).Debug("newer release found")

	return &Release{
		Version:     release.Version(),
		ReleaseURL:  release.URL,
		ReleaseDate: releaseDate,
		Description: release.ReleaseNotes,
		AssetName:   release.AssetName,
		release:     release,
	}, nil
}

// ApplyUpdate downloads the release and replaces the running binary.
func ApplyUpdate(ctx context.Context, rel *Release) error {
	if rel == nil || rel.release == nil {
		return ErrNoRelease
	}

	updater, err := newUpdater()
	if err != nil {
		return err
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	if err := updater.UpdateTo(ctx, rel.release, exe); err != nil {
		return fmt.Errorf("failed to apply update: %w", err)
	}

	return nil
}

// FailureHint suggests a next step for an ApplyUpdate error on goos.
// go-selfupdate does not export typed errors for these cases, so the
// message text is matched.
func FailureHint(err error, goos string) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "permission denied"), strings.Contains(msg, "access is denied"):
		if goos == "windows" {
			return "Permission denied. Run as Administrator."
		}
		return "Permission denied. Try: sudo orl update"
	case strings.Contains(msg, "checksum"):
		return "Checksum verification failed; the download may be corrupted. Download manually from " + ReleasesURL
	}
	return ""
}

// GetPlatformInfo returns the current OS and architecture.
func GetPlatformInfo() (os, arch string) {
	return runtime.GOOS, runtime.GOARCH
}
