package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"checkbot/internal/checkbox"
	"checkbot/internal/checklist"
	"checkbot/internal/location"
	"checkbot/internal/model"
	"checkbot/pkg/deeplink"
	"checkbot/pkg/telegram"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()
	data := checkbox.New().Parse("Shopping\n- [ ] milk\n- [x] eggs", checkbox.Defaults{})

	t.Run("Private chat", func(t *testing.T) {
		f := newFixture(t)
		out, err := f.uc.Create(ctx, model.NewScope(7), checklist.CreateInput{Data: data, SourceChatID: 7, Salt: "abc"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(f.bot.sent) != 1 || f.bot.sent[0].ChatID != 7 {
			t.Fatalf("expected one placeholder to chat 7, got %+v", f.bot.sent)
		}
		if strings.Contains(f.bot.sent[0].Text, "start=") {
			t.Errorf("placeholder must not carry toggle links: %q", f.bot.sent[0].Text)
		}
		if out.Location.SourceMessageID != 101 || out.Location.Salt != "abc" {
			t.Errorf("unexpected location %+v", out.Location)
		}

		edit, ok := f.bot.editFor(7, "")
		if !ok {
			t.Fatal("expected the canonical copy to be edited")
		}
		if edit.MessageID != 101 || edit.ParseMode != telegram.ParseModeHTML {
			t.Errorf("unexpected edit %+v", edit)
		}

		tok, _ := f.codec.Encode(out.Location)
		param, _ := deeplink.EncodeParams(tok.ToggleParts(1))
		if !strings.Contains(edit.Text, `<a href="https://t.me/checkbot?start=`+param+`">- [ ] </a>milk`) {
			t.Errorf("missing toggle link for line 1 in %q", edit.Text)
		}
		if !strings.Contains(edit.Text, "<s>eggs</s>") {
			t.Errorf("checked line must be struck through: %q", edit.Text)
		}

		button := edit.ReplyMarkup.InlineKeyboard[0][0]
		if button.WebApp == nil || !strings.HasPrefix(button.WebApp.URL, "https://app.example.com/?") {
			t.Errorf("private chats get a mini app button, got %+v", button)
		}
	})

	t.Run("Group uses start app link", func(t *testing.T) {
		f := newFixture(t)
		if _, err := f.uc.Create(ctx, model.Scope{UserID: 7, ChatID: -50}, checklist.CreateInput{Data: data, SourceChatID: -50}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		edit, ok := f.bot.editFor(-50, "")
		if !ok {
			t.Fatal("expected the group copy to be edited")
		}
		button := edit.ReplyMarkup.InlineKeyboard[0][0]
		if button.WebApp != nil || !strings.HasPrefix(button.URL, "https://t.me/checkbot/edit_checklist?startapp=t_c_") {
			t.Errorf("groups get a start app link, got %+v", button)
		}
	})

	t.Run("Foreign mirror", func(t *testing.T) {
		f := newFixture(t)
		out, err := f.uc.Create(ctx, model.Scope{UserID: 7, ChatID: -50}, checklist.CreateInput{
			Data: data, SourceChatID: 7, ForeignChatID: -50,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.bot.sent) != 2 || f.bot.sent[1].ChatID != -50 {
			t.Fatalf("expected placeholders to source and foreign chat, got %+v", f.bot.sent)
		}
		if !out.Location.HasForeign() || out.Location.ForeignMessageID != 102 {
			t.Errorf("unexpected location %+v", out.Location)
		}
		canonical, _ := f.bot.editFor(7, "")
		foreign, ok := f.bot.editFor(-50, "")
		if !ok || foreign.Text != canonical.Text {
			t.Errorf("foreign copy must carry the same rendering")
		}
		if !strings.Contains(canonical.Text, "start=t_f_") {
			t.Errorf("expected foreign variant links, got %q", canonical.Text)
		}
	})

	t.Run("Inline copy", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Create(ctx, model.NewScope(7), checklist.CreateInput{
			Data: data, SourceChatID: 7, InlineMessageID: "BAAAAAAAAAAAAAAAAAAAAAAAAAA", IsPersonal: true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		inline, ok := f.bot.editFor(0, "BAAAAAAAAAAAAAAAAAAAAAAAAAA")
		if !ok {
			t.Fatal("expected the inline copy to be edited")
		}
		if inline.ChatID != 0 || !strings.Contains(inline.Text, "start=t_") {
			t.Errorf("unexpected inline edit %+v", inline)
		}
	})

	t.Run("Empty checklist", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Create(ctx, model.NewScope(7), checklist.CreateInput{SourceChatID: 7})
		if !errors.Is(err, checklist.ErrEmptyChecklist) {
			t.Fatalf("expected ErrEmptyChecklist, got %v", err)
		}
	})
}

func TestCreateFallback(t *testing.T) {
	ctx := context.Background()
	data := checkbox.New().Parse("- [ ] <milk>", checkbox.Defaults{})
	forbidden := &telegram.Error{Method: "sendMessage", Code: 403, Description: "Forbidden: bot can't initiate conversation with a user"}

	t.Run("Protected group", func(t *testing.T) {
		f := newFixture(t)
		f.bot.sendErr[7] = forbidden

		_, err := f.uc.Create(ctx, model.Scope{UserID: 7, ChatID: -50}, checklist.CreateInput{
			Data: data, SourceChatID: 7, ForeignChatID: -50,
		})
		if !errors.Is(err, checklist.ErrMustStartBot) {
			t.Fatalf("expected ErrMustStartBot, got %v", err)
		}
		if len(f.bot.sent) != 1 || f.bot.sent[0].ChatID != -50 {
			t.Fatalf("expected the recreation text in the foreign chat, got %+v", f.bot.sent)
		}
		msg := f.bot.sent[0]
		if !strings.Contains(msg.Text, "<code>- [ ] &lt;milk&gt;</code>") {
			t.Errorf("recreation text must carry the escaped plain checklist: %q", msg.Text)
		}
		if msg.ReplyMarkup.InlineKeyboard[0][0].URL != "https://t.me/checkbot" {
			t.Errorf("expected a start button, got %+v", msg.ReplyMarkup)
		}
	})

	t.Run("Inline", func(t *testing.T) {
		f := newFixture(t)
		f.bot.sendErr[7] = forbidden

		_, err := f.uc.Create(ctx, model.NewScope(7), checklist.CreateInput{
			Data: data, SourceChatID: 7, InlineMessageID: "AAAA",
		})
		if !errors.Is(err, checklist.ErrMustStartBot) {
			t.Fatalf("expected ErrMustStartBot, got %v", err)
		}
		edit, ok := f.bot.editFor(0, "AAAA")
		if !ok || !strings.Contains(edit.Text, msgStartForInline) {
			t.Errorf("expected the inline message to show the recreation text, got %+v", edit)
		}
	})

	t.Run("No fallback target", func(t *testing.T) {
		f := newFixture(t)
		f.bot.sendErr[7] = forbidden

		_, err := f.uc.Create(ctx, model.NewScope(7), checklist.CreateInput{Data: data, SourceChatID: 7})
		if !errors.Is(err, checklist.ErrTransport) {
			t.Fatalf("expected ErrTransport, got %v", err)
		}
	})

	t.Run("Other errors are not recovered", func(t *testing.T) {
		f := newFixture(t)
		f.bot.sendErr[7] = &telegram.Error{Method: "sendMessage", Code: 400, Description: "Bad Request"}

		_, err := f.uc.Create(ctx, model.NewScope(7), checklist.CreateInput{Data: data, SourceChatID: 7, ForeignChatID: -50})
		if !errors.Is(err, checklist.ErrTransport) {
			t.Fatalf("expected ErrTransport, got %v", err)
		}
		if len(f.bot.sent) != 0 {
			t.Errorf("nothing should be posted, got %+v", f.bot.sent)
		}
	})
}

func TestConvertChannelPost(t *testing.T) {
	f := newFixture(t)
	err := f.uc.ConvertChannelPost(context.Background(), checklist.ChannelPostInput{
		ChatID: -1001, MessageID: 33, Text: "#check\n- [ ] read",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	edit, ok := f.bot.editFor(-1001, "")
	if !ok || edit.MessageID != 33 {
		t.Fatalf("expected the post to be edited in place, got %+v", f.bot.edits)
	}

	tok, _ := f.codec.Encode(checklistChannelLocation(-1001, 33))
	param, _ := deeplink.EncodeParams(tok.ToggleParts(1))
	if !strings.Contains(edit.Text, param) {
		t.Errorf("expected links signed with the channel salt, got %q", edit.Text)
	}
	if len(f.bot.sent) != 0 {
		t.Errorf("no new messages expected, got %+v", f.bot.sent)
	}
}

func checklistChannelLocation(chatID, messageID int64) location.Location {
	return location.Location{SourceChatID: chatID, SourceMessageID: messageID, Salt: checklist.ChannelSalt}
}
