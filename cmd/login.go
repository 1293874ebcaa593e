package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/poolsuite-cli/poolsuite/auth"
	"github.com/poolsuite-cli/poolsuite/color"
	"github.com/poolsuite-cli/poolsuite/icon"
	"github.com/poolsuite-cli/poolsuite/open"
	"github.com/poolsuite-cli/poolsuite/soundcloud"
	"github.com/poolsuite-cli/poolsuite/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringP("token", "t", "", "OAuth token to store instead of prompting for it")

	rootCmd.AddCommand(logoutCmd)
}

// loginCmd stores a SoundCloud OAuth token in the system keyring.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a SoundCloud OAuth token",
	Long: `Store a SoundCloud OAuth token in the system keyring.
Some playlists require a signed in account. The token is the value of the
oauth_token cookie of soundcloud.com.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		token := lo.Must(cmd.Flags().GetString("token"))

		if token == "" {
			signin := soundcloud.DefaultWebBase + "/signin"
			confirm := survey.Confirm{
				Message: "Open browser to sign in to SoundCloud?",
				Default: false,
			}

			var openInBrowser bool
			err := survey.AskOne(&confirm, &openInBrowser)
			if err == nil && openInBrowser {
				err = open.Start(signin)
			}

			if err != nil || !openInBrowser {
				fmt.Println("Please sign in at the following URL:")
				fmt.Println(signin)
			}

			input := survey.Password{
				Message: "Paste the oauth_token cookie value:",
				Help:    "Developer tools > Storage > Cookies > soundcloud.com",
			}

			handleErr(survey.AskOne(&input, &token, survey.WithValidator(survey.Required)))
		}

		handleErr(auth.SetToken(token))
		fmt.Printf("%s token saved\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

// logoutCmd forgets the stored token.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored SoundCloud OAuth token",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteToken())
		fmt.Printf("%s token removed\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
