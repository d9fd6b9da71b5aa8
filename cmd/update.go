package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vstratful/openrouter-launcher/internal/update"
)

var (
	checkOnly     bool
	forceUpdate   bool
	updateTimeout time.Duration
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the launcher to the latest version",
	Long: `Check for and install updates from GitHub Releases.

Examples:
  orl update               # Check and install update interactively
  orl update --check       # Only check for updates
  orl update --force       # Update without confirmation
  orl update --timeout 60s # Set network timeout`,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().BoolVarP(&checkOnly, "check", "c", false, "Only check for updates, don't install")
	updateCmd.Flags().BoolVarP(&forceUpdate, "force", "f", false, "Update without confirmation")
	updateCmd.Flags().DurationVar(&updateTimeout, "timeout", 30*time.Second, "Timeout for network operations")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), updateTimeout)
	defer cancel()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Checking for updates...")
	fmt.Fprintf(out, "Current version: %s\n", version)

	release, err := update.CheckForUpdate(ctx, version)
	if err != nil {
		if errors.Is(err, update.ErrDevVersion) {
			fmt.Fprintln(out, "\nYou are running a development build.")
			fmt.Fprintln(out, "Auto-update is only available for released versions.")
			fmt.Fprintf(out, "Install a release from: %s\n", update.ReleasesURL)
			return nil
		}
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	if release == nil {
		fmt.Fprintln(out, "\nYou are running the latest version.")
		return nil
	}

	fmt.Fprintf(out, "Latest version:  %s\n", release.Version)

	if release.Description != "" {
		fmt.Fprintf(out, "\nRelease notes:\n")
		for _, line := range strings.Split(release.Description, "\n") {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}

	if checkOnly {
		fmt.Fprintf(out, "\nRun 'orl update' to install the update.\n")
		return nil
	}

	if !forceUpdate {
		fmt.Fprintf(out, "\nDo you want to update? [y/N]: ")
		response, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Update cancelled.")
			return nil
		}
	}

	fmt.Fprintf(out, "\nDownloading %s...\n", release.AssetName)

	// The download gets its own, longer deadline.
	cancel()
	downloadCtx, downloadCancel := context.WithTimeout(cmd.Context(), updateTimeout*2)
	defer downloadCancel()

	if err := update.ApplyUpdate(downloadCtx, release); err != nil {
		goos, _ := update.GetPlatformInfo()
		if hint := update.FailureHint(err, goos); hint != "" {
			fmt.Fprintf(out, "\n%s\n", hint)
		}
		return err
	}

	fmt.Fprintf(out, "\nSuccessfully updated to v%s!\n", release.Version)
	return nil
}
