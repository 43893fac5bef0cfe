package telegram_test

import (
	"context"
	"errors"
	"testing"

	"checkbot/internal/checklist"
	repoTelegram "checkbot/internal/checklist/repository/telegram"
	"checkbot/internal/location"
	pkgLog "checkbot/pkg/log"
	pkgTelegram "checkbot/pkg/telegram"
)

const botID = 4242

type mockForwarder struct {
	msg        *pkgTelegram.Message
	forwardErr error
	deleteErr  error

	forwardedTo int64
	deleted     []int64
}

func (m *mockForwarder) ForwardMessage(ctx context.Context, chatID, fromChatID, messageID int64) (*pkgTelegram.Message, error) {
	m.forwardedTo = chatID
	if m.forwardErr != nil {
		return nil, m.forwardErr
	}
	return m.msg, nil
}

func (m *mockForwarder) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	m.deleted = append(m.deleted, messageID)
	return m.deleteErr
}

func fromBot(text string) *pkgTelegram.Message {
	return &pkgTelegram.Message{
		MessageID: 900,
		Text:      text,
		ForwardOrigin: &pkgTelegram.MessageOrigin{
			Type:       pkgTelegram.OriginUser,
			SenderUser: &pkgTelegram.User{ID: botID, IsBot: true},
		},
	}
}

var loc = location.Location{SourceChatID: -100, SourceMessageID: 5, Salt: "abc"}

func TestFetchCurrentText(t *testing.T) {
	ctx := context.Background()

	t.Run("Reads text and deletes scratch copy", func(t *testing.T) {
		fw := &mockForwarder{msg: fromBot("- [ ] a")}
		reader := repoTelegram.New(pkgLog.NewNop(), fw, botID)

		text, err := reader.FetchCurrentText(ctx, 77, loc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "- [ ] a" {
			t.Errorf("unexpected text %q", text)
		}
		if fw.forwardedTo != 77 {
			t.Errorf("forwarded to %d, want scratch chat 77", fw.forwardedTo)
		}
		if len(fw.deleted) != 1 || fw.deleted[0] != 900 {
			t.Errorf("expected scratch copy deleted, got %v", fw.deleted)
		}
	})

	t.Run("Falls back to caption", func(t *testing.T) {
		msg := fromBot("")
		msg.Caption = "- [x] photo"
		reader := repoTelegram.New(pkgLog.NewNop(), &mockForwarder{msg: msg}, botID)

		text, err := reader.FetchCurrentText(ctx, 77, loc)
		if err != nil || text != "- [x] photo" {
			t.Fatalf("got %q, %v", text, err)
		}
	})

	t.Run("Empty message still deletes", func(t *testing.T) {
		fw := &mockForwarder{msg: fromBot("")}
		reader := repoTelegram.New(pkgLog.NewNop(), fw, botID)

		_, err := reader.FetchCurrentText(ctx, 77, loc)
		if !errors.Is(err, checklist.ErrReadFailure) {
			t.Fatalf("expected ErrReadFailure, got %v", err)
		}
		if len(fw.deleted) != 1 {
			t.Errorf("scratch copy must be deleted on failure, got %v", fw.deleted)
		}
	})

	t.Run("Forward failure keeps transport detail", func(t *testing.T) {
		apiErr := &pkgTelegram.Error{Method: "forwardMessage", Code: 400, Description: "Bad Request: message to forward not found"}
		fw := &mockForwarder{forwardErr: apiErr}
		reader := repoTelegram.New(pkgLog.NewNop(), fw, botID)

		_, err := reader.FetchCurrentText(ctx, 77, loc)
		if !errors.Is(err, checklist.ErrReadFailure) {
			t.Fatalf("expected ErrReadFailure, got %v", err)
		}
		if got, ok := pkgTelegram.AsError(err); !ok || got.Description != apiErr.Description {
			t.Errorf("expected wrapped transport error, got %v", err)
		}
		if len(fw.deleted) != 0 {
			t.Errorf("nothing to delete after a failed forward, got %v", fw.deleted)
		}
	})

	t.Run("Delete failure is not surfaced", func(t *testing.T) {
		fw := &mockForwarder{msg: fromBot("x"), deleteErr: errors.New("boom")}
		reader := repoTelegram.New(pkgLog.NewNop(), fw, botID)

		if _, err := reader.FetchCurrentText(ctx, 77, loc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("Rejects messages from other senders", func(t *testing.T) {
		msg := fromBot("- [ ] forged")
		msg.ForwardOrigin.SenderUser = &pkgTelegram.User{ID: 1}
		fw := &mockForwarder{msg: msg}
		reader := repoTelegram.New(pkgLog.NewNop(), fw, botID)

		if _, err := reader.FetchCurrentText(ctx, 77, loc); !errors.Is(err, checklist.ErrReadFailure) {
			t.Fatalf("expected ErrReadFailure, got %v", err)
		}
		if len(fw.deleted) != 1 {
			t.Errorf("scratch copy must be deleted, got %v", fw.deleted)
		}
	})

	t.Run("Accepts posts of the source channel", func(t *testing.T) {
		msg := &pkgTelegram.Message{
			MessageID: 901,
			Text:      "#check\n- [ ] a",
			ForwardOrigin: &pkgTelegram.MessageOrigin{
				Type: pkgTelegram.OriginChannel,
				Chat: &pkgTelegram.Chat{ID: loc.SourceChatID, Type: pkgTelegram.ChatTypeChannel},
			},
		}
		reader := repoTelegram.New(pkgLog.NewNop(), &mockForwarder{msg: msg}, botID)
		if _, err := reader.FetchCurrentText(ctx, 77, loc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		msg.ForwardOrigin.Chat = &pkgTelegram.Chat{ID: -999, Type: pkgTelegram.ChatTypeChannel}
		if _, err := reader.FetchCurrentText(ctx, 77, loc); !errors.Is(err, checklist.ErrReadFailure) {
			t.Errorf("posts of another channel must be rejected, got %v", err)
		}
	})
}
