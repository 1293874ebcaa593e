package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/poolsuite-cli/poolsuite/auth"
	"github.com/poolsuite-cli/poolsuite/catalogue"
	"github.com/poolsuite-cli/poolsuite/config"
	"github.com/poolsuite-cli/poolsuite/key"
	"github.com/poolsuite-cli/poolsuite/log"
	"github.com/poolsuite-cli/poolsuite/mini"
	"github.com/poolsuite-cli/poolsuite/orchestrator"
	"github.com/poolsuite-cli/poolsuite/player"
	"github.com/poolsuite-cli/poolsuite/session"
	"github.com/poolsuite-cli/poolsuite/soundcloud"
	"github.com/poolsuite-cli/poolsuite/tui"
	"github.com/spf13/viper"
)

// play runs the playlist named playlist until the user quits or nothing
// more can be played.
func play(parent context.Context, playlist string) error {
	if parent == nil {
		parent = context.Background()
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	token, err := auth.GetToken()
	if err != nil {
		log.Warnf("read token: %s", err)
	}

	options := soundcloud.DefaultOptions()
	options.Token = token
	client := soundcloud.New(options)

	controller := player.NewMPV(player.DefaultOptions())
	seek := viper.GetInt(key.PlayerSeekSeconds)

	run := func(ctx context.Context, keys <-chan string, r session.Renderer) error {
		return orchestrator.New(orchestrator.Options{
			Provider:        catalogue.NewProvider(client),
			Resolver:        client,
			Controller:      controller,
			Renderer:        r,
			Keys:            keys,
			AvailableKeys:   catalogue.Keys(),
			Shuffle:         viper.GetBool(key.PlaylistShuffle),
			SeekSeconds:     float64(seek),
			RefreshInterval: config.Millis(key.TUIRefreshInterval),
		}).Run(ctx, playlist)
	}

	log.Infof("playing %s", playlist)

	if viper.GetBool(key.TUIMini) {
		return mini.Run(ctx, run)
	}

	return tui.Run(ctx, &tui.Options{SeekSeconds: seek}, run)
}
