package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/poolsuite-cli/poolsuite/catalogue"
	"github.com/poolsuite-cli/poolsuite/color"
	"github.com/poolsuite-cli/poolsuite/key"
	"github.com/poolsuite-cli/poolsuite/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	listCmd.Flags().Bool("schema", false, "Print the JSON schema of the JSON output")
	listCmd.MarkFlagsMutuallyExclusive("json", "schema")

	listCmd.SetOut(os.Stdout)
}

// listCmd prints the catalogue.
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List the available playlists",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		playlists := catalogue.All()

		if lo.Must(cmd.Flags().GetBool("schema")) {
			reflector := new(jsonschema.Reflector)
			reflector.Anonymous = true
			reflector.Namer = func(t reflect.Type) string {
				return "catalogue." + t.Name()
			}

			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(reflector.Reflect([]*catalogue.Playlist{})))
			return
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(playlists))
			return
		}

		width := lo.Max(lo.Map(playlists, func(p *catalogue.Playlist, _ int) int {
			return len(p.Key)
		}))
		current := viper.GetString(key.PlaylistDefault)

		for _, p := range playlists {
			marker := " "
			if p.Key == current {
				marker = style.Fg(color.Green)("*")
			}

			line := fmt.Sprintf("%s %s  %s", marker, style.Fg(color.Purple)(fmt.Sprintf("%-*s", width, p.Key)), p.Name)
			if p.Custom {
				line += " " + style.Faint("(custom)")
			}

			cmd.Println(line)
		}
	},
}
