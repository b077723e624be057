package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kanthai/launchpad/internal/config"
	"github.com/kanthai/launchpad/internal/notify"
	"github.com/kanthai/launchpad/internal/notify/discord"
	"github.com/kanthai/launchpad/internal/notify/slack"
	"github.com/spf13/cobra"
)

func newDigestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Launch digest commands",
	}

	cmd.AddCommand(newDigestOnceCmd())
	cmd.AddCommand(newDigestDaemonCmd())
	return cmd
}

// newPoster builds the platform Poster from notify config.
func newPoster(cfg *config.Config) (notify.Poster, error) {
	switch cfg.Notify.Platform {
	case "slack":
		return slack.New(slack.PosterOpts{
			BotToken:  cfg.Notify.Token,
			ChannelID: cfg.Notify.Channel,
		})
	case "discord":
		return discord.New(discord.PosterOpts{
			BotToken:  cfg.Notify.Token,
			ChannelID: cfg.Notify.Channel,
		})
	case "":
		return nil, fmt.Errorf("notify.platform is not configured")
	default:
		return nil, fmt.Errorf("notify.platform %q not supported", cfg.Notify.Platform)
	}
}

func newDigestOnceCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "once",
		Short: "Build and post a single digest now",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			poster, err := newPoster(cfg)
			if err != nil {
				return err
			}
			defer poster.Close()

			daemon, err := notify.NewDaemon(notify.DaemonOpts{
				DB:     gormDB,
				Poster: poster,
				Cron:   cfg.Notify.DigestCron,
				Out:    cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}
			return daemon.RunOnce(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "launchpad.yaml", "path to Launchpad config file")
	return cmd
}

func newDigestDaemonCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the digest scheduler",
		Long:  "Posts a launch digest to the configured chat channel on the configured cron schedule.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			poster, err := newPoster(cfg)
			if err != nil {
				return err
			}

			daemon, err := notify.NewDaemon(notify.DaemonOpts{
				DB:     gormDB,
				Poster: poster,
				Cron:   cfg.Notify.DigestCron,
				Out:    cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				sig := <-sigCh
				fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
				cancel()
			}()

			return daemon.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "launchpad.yaml", "path to Launchpad config file")
	return cmd
}
