package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/poolsuite-cli/poolsuite/icon"
	"github.com/poolsuite-cli/poolsuite/util"
	"github.com/poolsuite-cli/poolsuite/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), where.Cache},
	{"track lists", "tracks", mo.Some("t"), where.Tracks},
	{"client id", "client-id", mo.None[string](), where.ClientID},
	{"player sockets", "sockets", mo.Some("s"), where.Temp},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := "Clear the " + target.name
		if short, ok := target.argShort.Get(); ok {
			clearCmd.Flags().BoolP(target.argLong, short, false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached track lists and leftover player sockets",
	Run: func(cmd *cobra.Command, args []string) {
		selected := lo.Filter(clearTargets, func(t clearTarget, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(t.argLong))
		})

		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, target := range selected {
			name := util.Capitalize(target.name)
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), name))
			err := util.Delete(target.location())
			erase()

			if err != nil && !errors.Is(err, os.ErrNotExist) {
				handleErr(err)
			}

			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), name)
		}
	},
}
