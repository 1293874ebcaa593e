// Package cmd implements the command-line interface.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/poolsuite-cli/poolsuite/catalogue"
	"github.com/poolsuite-cli/poolsuite/constant"
	"github.com/poolsuite-cli/poolsuite/icon"
	"github.com/poolsuite-cli/poolsuite/key"
	"github.com/poolsuite-cli/poolsuite/log"
	"github.com/poolsuite-cli/poolsuite/style"
	"github.com/poolsuite-cli/poolsuite/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")
	rootCmd.Flags().BoolP("list", "l", false, "List the available playlists")

	rootCmd.Flags().BoolP("shuffle", "s", false, "Shuffle the play order")
	lo.Must0(viper.BindPFlag(key.PlaylistShuffle, rootCmd.Flags().Lookup("shuffle")))

	rootCmd.Flags().BoolP("mini", "m", false, "Use the one-line interface")
	lo.Must0(viper.BindPFlag(key.TUIMini, rootCmd.Flags().Lookup("mini")))

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

var rootCmd = &cobra.Command{
	Use:   constant.Poolsuite + " [playlist]",
	Short: "Poolsuite FM in your terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(style.HighlightColor).Render("    - Poolsuite FM in your terminal"),
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return catalogue.Keys(), cobra.ShellCompDirectiveNoFileComp
	},
	Example: "  " + constant.Poolsuite + " tokyo --shuffle",
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if lo.Must(cmd.Flags().GetBool("list")) {
			listCmd.Run(listCmd, nil)
			return
		}

		name := viper.GetString(key.PlaylistDefault)
		if len(args) > 0 {
			name = args[0]
		}

		playlist, err := catalogue.Get(name)
		handleErr(err)

		CheckDependencies()
		handleErr(play(cmd.Context(), playlist.Key))
	},
}

// Execute runs the command line.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
