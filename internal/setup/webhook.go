package setup

import (
	"errors"

	"github.com/spf13/cobra"

	"checkbot/pkg/ngrok"
)

const webhookPath = "/webhook/telegram"

var errNoWebhookURL = errors.New("no webhook URL: pass one, set telegram.webhook_url or telegram.ngrok_api_url")

func newWebhookCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Manage the Telegram webhook registration",
	}
	cmd.AddCommand(newWebhookSetCmd(app))
	cmd.AddCommand(newWebhookDeleteCmd(app))
	return cmd
}

func newWebhookSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set [url]",
		Short: "Point Telegram at this deployment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.load(); err != nil {
				return writeErr(cmd, err)
			}
			ctx := ctxOf(cmd)

			url := app.cfg.Telegram.WebhookURL
			if len(args) == 1 {
				url = args[0]
			}
			if url == "" && app.cfg.Telegram.NgrokAPIURL != "" {
				base, err := ngrok.DetectURL(ctx, app.cfg.Telegram.NgrokAPIURL, ngrok.Options{})
				if err != nil {
					return writeErr(cmd, err)
				}
				url = base + webhookPath
			}
			if url == "" {
				return writeErr(cmd, errNoWebhookURL)
			}

			if err := app.bot.SetWebhook(ctx, url, app.cfg.Telegram.WebhookSecret); err != nil {
				return writeErr(cmd, err)
			}
			writeOut(cmd, "Webhook set to %s", url)
			if app.cfg.Telegram.WebhookSecret == "" {
				writeOut(cmd, "Warning: telegram.webhook_secret is empty, anyone can post updates")
			}
			return nil
		},
	}
}

func newWebhookDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Stop update delivery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.load(); err != nil {
				return writeErr(cmd, err)
			}
			if err := app.bot.DeleteWebhook(ctxOf(cmd)); err != nil {
				return writeErr(cmd, err)
			}
			writeOut(cmd, "Webhook deleted")
			return nil
		},
	}
}
