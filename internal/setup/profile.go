package setup

import (
	"github.com/spf13/cobra"

	"checkbot/pkg/telegram"
)

const (
	botName             = "Checklist Bot"
	botDescription      = "Turn any message into a checklist anyone in the chat can tick.\n\nSend a list with ⬜ boxes, tag a group message with #check, or type @ and my name in any chat."
	botShortDescription = "Shared checklists for chats, groups and channels"
)

var botCommands = []telegram.BotCommand{
	{Command: "help", Description: "How to create and edit checklists"},
	{Command: "config", Description: "Choose your default checkboxes"},
	{Command: "check", Description: "Turn the text after the command into a checklist"},
}

var furtherSetup = []string{
	"Update the bot picture",
	"Toggle inline mode on",
	"Edit the inline placeholder",
	"Turn inline feedback to 100%",
}

type profileOptions struct {
	name, commands, description, shortDescription, rights, all bool
}

func newProfileCmd(app *App) *cobra.Command {
	opts := profileOptions{}

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the bot name, commands, descriptions and admin rights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.all {
				opts = profileOptions{true, true, true, true, true, true}
			}
			if !opts.name && !opts.commands && !opts.description && !opts.shortDescription && !opts.rights {
				return cmd.Help()
			}
			if err := app.load(); err != nil {
				return writeErr(cmd, err)
			}
			ctx := ctxOf(cmd)

			if opts.name {
				if err := app.bot.SetMyName(ctx, botName); err != nil {
					return writeErr(cmd, err)
				}
				writeOut(cmd, "Updated name")
			}
			if opts.commands {
				if err := app.bot.SetMyCommands(ctx, botCommands); err != nil {
					return writeErr(cmd, err)
				}
				writeOut(cmd, "Updated commands")
			}
			if opts.description {
				if err := app.bot.SetMyDescription(ctx, botDescription); err != nil {
					return writeErr(cmd, err)
				}
				writeOut(cmd, "Updated description")
			}
			if opts.shortDescription {
				if err := app.bot.SetMyShortDescription(ctx, botShortDescription); err != nil {
					return writeErr(cmd, err)
				}
				writeOut(cmd, "Updated short description")
			}
			if opts.rights {
				if err := setAdministratorRights(cmd, app); err != nil {
					return writeErr(cmd, err)
				}
				writeOut(cmd, "Updated default administrator rights")
			}

			writeOut(cmd, "To complete the setup, if you haven't already done it:")
			for _, step := range furtherSetup {
				writeOut(cmd, "- %s", step)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.name, "name", false, "Update the name of the bot")
	cmd.Flags().BoolVar(&opts.commands, "commands", false, "Update the bot commands")
	cmd.Flags().BoolVar(&opts.description, "description", false, "Update the description of the bot")
	cmd.Flags().BoolVar(&opts.shortDescription, "short-description", false, "Update the short description of the bot")
	cmd.Flags().BoolVar(&opts.rights, "rights", false, "Update the requested rights in channels and groups")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Update everything")

	return cmd
}

// setAdministratorRights requests the minimum rights needed to edit
// checklists, nothing else.
func setAdministratorRights(cmd *cobra.Command, app *App) error {
	ctx := ctxOf(cmd)
	if err := app.bot.SetMyDefaultAdministratorRights(ctx, telegram.ChatAdministratorRights{
		CanEditMessages: true,
	}, true); err != nil {
		return err
	}
	return app.bot.SetMyDefaultAdministratorRights(ctx, telegram.ChatAdministratorRights{
		CanEditMessages: true,
		CanPostMessages: true,
	}, false)
}
