// Package setup is the one-off bot administration CLI: webhook
// registration and the profile texts shown by Telegram.
package setup

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"checkbot/config"
	"checkbot/pkg/telegram"
)

type App struct {
	ConfigPath string
	APIURL     string

	cfg *config.Config
	bot *telegram.Bot
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "setup",
		Short:        "Configure the checklist bot on Telegram",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Register the webhook from config.yaml
  setup webhook set

  # Update commands, name, descriptions and admin rights
  setup profile --all
`),
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config.yaml (default: search ./config, ., /etc/app/)")
	cmd.PersistentFlags().StringVar(&app.APIURL, "api-url", "", "Bot API base URL (overrides telegram.api_url)")

	cmd.AddCommand(newWebhookCmd(app))
	cmd.AddCommand(newProfileCmd(app))

	return cmd
}

// load reads the configuration and builds the Bot API client once.
func (app *App) load() error {
	if app.bot != nil {
		return nil
	}
	var (
		cfg *config.Config
		err error
	)
	if app.ConfigPath != "" {
		cfg, err = config.LoadFile(app.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	bot := telegram.NewBot(cfg.Telegram.BotToken)
	apiURL := cfg.Telegram.APIURL
	if app.APIURL != "" {
		apiURL = app.APIURL
	}
	if apiURL != "" {
		bot.SetAPIURL(strings.TrimRight(apiURL, "/") + "/bot" + cfg.Telegram.BotToken)
	}
	app.cfg, app.bot = cfg, bot
	return nil
}

func writeOut(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
