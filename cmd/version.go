package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vstratful/openrouter-launcher/internal/update"
)

// version is set at build time with -ldflags "-X .../cmd.version=1.2.3".
var version = update.DevVersion

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the launcher version",
	Run: func(cmd *cobra.Command, args []string) {
		goos, arch := update.GetPlatformInfo()
		fmt.Fprintf(cmd.OutOrStdout(), "orl %s (%s/%s)\n", version, goos, arch)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
