package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/poolsuite-cli/poolsuite/constant"
	"github.com/poolsuite-cli/poolsuite/style"
	"github.com/poolsuite-cli/poolsuite/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version number")
}

// buildInfo lists the version and build metadata as label/value pairs.
func buildInfo() [][2]string {
	return [][2]string{
		{"Version", constant.Version},
		{"Git Commit", constant.Revision},
		{"Build Date", strings.TrimSpace(constant.BuiltAt)},
		{"Built By", constant.BuiltBy},
		{"Platform", runtime.GOOS + "/" + runtime.GOARCH},
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		defer version.Notify()

		accent := style.Fg(style.AccentColor)
		cmd.Printf("%s %s\n\n", accent("▇▇▇"), accent(constant.Poolsuite))
		for _, row := range buildInfo() {
			cmd.Printf("  %s %s\n", style.Faint(fmt.Sprintf("%-15s", row[0])), style.Bold(row[1]))
		}
	},
}
