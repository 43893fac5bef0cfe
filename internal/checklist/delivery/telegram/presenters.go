package telegram

import (
	"encoding/json"
	"fmt"
	"strings"

	"checkbot/internal/checkbox"
	"checkbot/internal/userconfig"
	"checkbot/pkg/deeplink"
	pkgTelegram "checkbot/pkg/telegram"
)

// Callback data is "<prefix>:<action>[:<arg>...]".
const (
	cbMenu       = "menu"
	cbConfig     = "chk-conf"
	cbMain       = "main"
	cbHelp       = "help"
	cbInfo       = "info"
	cbOpen       = "open"
	cbDefCheck   = "def-check"
	cbDefUncheck = "def-uncheck"
	cbEditConf   = "edit-conf"

	neverShowAgain = "never"
)

const (
	msgWelcome = "👋 Hi! I turn your messages into checklists anyone in the chat can tick.\n\n" +
		"Write lines starting with <code>- [ ]</code>, use <code>/check</code> or add <code>#check</code> to a message."
	msgHelp = "<b>❓ Help</b>\n" +
		"Each box of a checklist is a link: press it, then press <i>Start</i> to tick it.\n" +
		"In groups use <code>/check</code> or <code>#check</code>, in channels add <code>#check</code> to a post."
	msgInfo = "<b>ℹ️ Info</b>\n" +
		"Checklists are never stored: the bot reads the message itself every time a box is pressed."
	msgCheckUsage        = "Usage: <code>/check - [ ] first item</code>"
	msgAnonymousAdmin    = "This bot does not work in a group with protected content when used by an anonymous admin"
	msgDonePressBack     = "done, press back"
	msgNeverShowAgain    = "🙈 Never show again"
	msgWillNotShowAgain  = "I will not show this message again"
	msgShowAgainInConfig = "You can enable it again from /config"
	msgShowConfirmation  = "👀 Show edit confirmation"
	msgInvalidChoice     = "Invalid choice"
	msgAlreadySet        = "This is already your default"
	msgUpdatedPreference = "Preference updated"
	msgGeneratingLinks   = "💭 generating links... 🔗"
	msgSharedChecklist   = "Shared checklist"
	msgPersonalChecklist = "Personal checklist"
	msgQueryTooLong      = "Warning, inline query is too long!"
	msgPreferBox         = "If a box is already present in the message, the bot will prefer it"

	btnAddToGroup   = "➕ Add to group"
	btnInfo         = "ℹ️ Info"
	btnUseInline    = "💬 Use inline"
	btnConfig       = "⚙️ Config"
	btnHelp         = "❓ Help"
	btnBackToMenu   = "🔙 Back to menu"
	btnNewChecklist = "📝 New checklist"
)

const (
	resultShared   = "checklist-shared"
	resultPersonal = "checklist-personal"

	inlineQueryTooLong = 250
	startInlineTooLong = "inline-too-long"
)

func callbackData(prefix, action string, args ...string) string {
	return strings.Join(append([]string{prefix, action}, args...), ":")
}

func parseCallbackData(data string) (prefix, action string, args []string) {
	parts := strings.Split(data, ":")
	if len(parts) < 2 {
		return "", "", nil
	}
	return parts[0], parts[1], parts[2:]
}

func selectedText(text string, selected bool) string {
	if selected {
		return "» " + text + " «"
	}
	return text
}

// mainMenu builds the private-chat welcome. draftParam, when set, adds a
// mini app button that creates a new checklist.
func (h *handler) mainMenu(draftParam string) (string, *pkgTelegram.InlineKeyboardMarkup) {
	inline := ""
	rows := [][]pkgTelegram.InlineKeyboardButton{
		{{Text: btnAddToGroup, URL: fmt.Sprintf("https://t.me/%s?startgroup=", h.cfg.BotUsername)}},
		{
			{Text: btnInfo, CallbackData: callbackData(cbMenu, cbInfo)},
			{Text: btnUseInline, SwitchInlineQuery: &inline},
		},
		{
			{Text: btnConfig, CallbackData: callbackData(cbConfig, cbOpen)},
			{Text: btnHelp, CallbackData: callbackData(cbMenu, cbHelp)},
		},
	}
	if draftParam != "" && h.cfg.WebAppURL != "" {
		empty, _ := json.Marshal(checkbox.Data{Lines: []checkbox.Line{}})
		rows = append(rows, []pkgTelegram.InlineKeyboardButton{{
			Text:   btnNewChecklist,
			WebApp: &pkgTelegram.WebAppInfo{URL: deeplink.WebAppURL(h.cfg.WebAppURL, draftParam, string(empty))},
		}})
	}
	return msgWelcome, pkgTelegram.NewKeyboard(rows...)
}

func backToMenu() *pkgTelegram.InlineKeyboardMarkup {
	return pkgTelegram.NewKeyboard([]pkgTelegram.InlineKeyboardButton{
		{Text: btnBackToMenu, CallbackData: callbackData(cbMenu, cbMain)},
	})
}

// configMenu renders the preferences of cfg. The back button is only
// useful where the main menu lives, in the private chat.
func (h *handler) configMenu(cfg userconfig.UserConfig, private bool) (string, *pkgTelegram.InlineKeyboardMarkup) {
	checked := make([]pkgTelegram.InlineKeyboardButton, len(checkbox.SuggestedCheckedBoxes))
	for i, box := range checkbox.SuggestedCheckedBoxes {
		checked[i] = pkgTelegram.InlineKeyboardButton{
			Text:         selectedText(box, box == cfg.DefaultCheckedBox),
			CallbackData: callbackData(cbConfig, cbDefCheck, fmt.Sprint(i)),
		}
	}
	unchecked := make([]pkgTelegram.InlineKeyboardButton, len(checkbox.SuggestedUncheckedBoxes))
	for i, box := range checkbox.SuggestedUncheckedBoxes {
		unchecked[i] = pkgTelegram.InlineKeyboardButton{
			Text:         selectedText(box, box == cfg.DefaultUncheckedBox),
			CallbackData: callbackData(cbConfig, cbDefUncheck, fmt.Sprint(i)),
		}
	}

	rows := [][]pkgTelegram.InlineKeyboardButton{checked, unchecked}
	if private {
		if !cfg.ShowEditConfirmation {
			rows = append(rows, []pkgTelegram.InlineKeyboardButton{
				{Text: msgShowConfirmation, CallbackData: callbackData(cbConfig, cbEditConf, "1")},
			})
		}
		rows = append(rows, backToMenu().InlineKeyboard...)
	}

	name := h.cfg.BotName
	if name == "" {
		name = h.cfg.BotUsername
	}
	text := fmt.Sprintf("<b>%s config</b>\n=============\n"+
		"<b>Default checked box</b>: %s\n"+
		"<b>Default unchecked box</b>: %s\n\n"+
		"<i>%s</i>",
		checkbox.EscapeHTML(name),
		checkbox.EscapeHTML(cfg.DefaultCheckedBox),
		checkbox.EscapeHTML(cfg.DefaultUncheckedBox),
		msgPreferBox)
	return text, pkgTelegram.NewKeyboard(rows...)
}

func toggleConfirmation(checkedStyle string, st checkbox.Stats) (string, *pkgTelegram.InlineKeyboardMarkup) {
	return fmt.Sprintf("%s %d/%d %s", checkbox.EscapeHTML(checkedStyle), st.Completed, st.Total, msgDonePressBack),
		pkgTelegram.NewKeyboard([]pkgTelegram.InlineKeyboardButton{
			{Text: msgNeverShowAgain, CallbackData: callbackData(cbConfig, cbEditConf, "0", neverShowAgain)},
		})
}
