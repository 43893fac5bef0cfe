package usecase

import (
	"context"
	"sync"
	"testing"

	"checkbot/internal/checkbox"
	"checkbot/internal/location"
	"checkbot/internal/userconfig"
	pkgLog "checkbot/pkg/log"
	"checkbot/pkg/telegram"
)

const (
	testBot    = "checkbot"
	testSecret = "usecase-secret"
)

// Mock Bot API for testing. Safe for the concurrent mirror edits.
type mockMessenger struct {
	mu sync.Mutex

	nextID   int64
	sendErr  map[int64]error
	editErr  func(req telegram.EditMessageTextRequest) error
	status   string
	chatType string

	sent  []telegram.SendMessageRequest
	edits []telegram.EditMessageTextRequest
}

func newMockMessenger() *mockMessenger {
	return &mockMessenger{nextID: 100, sendErr: map[int64]error{}, status: "member", chatType: "supergroup"}
}

func (m *mockMessenger) SendMessage(ctx context.Context, req telegram.SendMessageRequest) (*telegram.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.sendErr[req.ChatID]; err != nil {
		return nil, err
	}
	m.sent = append(m.sent, req)
	m.nextID++
	return &telegram.Message{MessageID: m.nextID, Chat: &telegram.Chat{ID: req.ChatID}, Text: req.Text}, nil
}

func (m *mockMessenger) EditMessageText(ctx context.Context, req telegram.EditMessageTextRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.editErr != nil {
		if err := m.editErr(req); err != nil {
			return err
		}
	}
	m.edits = append(m.edits, req)
	return nil
}

func (m *mockMessenger) GetChatMember(ctx context.Context, chatID, userID int64) (*telegram.ChatMember, error) {
	return &telegram.ChatMember{Status: m.status, User: &telegram.User{ID: userID}}, nil
}

func (m *mockMessenger) GetChat(ctx context.Context, chatID int64) (*telegram.Chat, error) {
	return &telegram.Chat{ID: chatID, Type: m.chatType}, nil
}

// editFor returns the recorded edit of a chat message or an inline message.
func (m *mockMessenger) editFor(chatID int64, inlineID string) (telegram.EditMessageTextRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.edits {
		if inlineID != "" && e.InlineMessageID == inlineID {
			return e, true
		}
		if inlineID == "" && e.InlineMessageID == "" && e.ChatID == chatID {
			return e, true
		}
	}
	return telegram.EditMessageTextRequest{}, false
}

type mockReader struct {
	text  string
	err   error
	calls int
}

func (m *mockReader) FetchCurrentText(ctx context.Context, scratchChatID int64, loc location.Location) (string, error) {
	m.calls++
	return m.text, m.err
}

type mockConfigs struct {
	cfg *userconfig.UserConfig
	err error
}

func (m *mockConfigs) Get(ctx context.Context, userID int64) (userconfig.UserConfig, error) {
	if m.err != nil {
		return userconfig.UserConfig{}, m.err
	}
	if m.cfg != nil {
		return *m.cfg, nil
	}
	return userconfig.Default(userID), nil
}

type fixture struct {
	uc      *implUseCase
	bot     *mockMessenger
	reader  *mockReader
	configs *mockConfigs
	codec   *location.Codec
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	signer, err := location.NewSigner(testSecret)
	if err != nil {
		t.Fatal(err)
	}
	f := &fixture{
		bot:     newMockMessenger(),
		reader:  &mockReader{},
		configs: &mockConfigs{},
		codec:   location.NewCodec(signer),
	}
	f.uc = New(pkgLog.NewNop(), f.bot, f.reader, f.configs, f.codec, checkbox.New(), Config{
		BotUsername: testBot,
		WebAppURL:   "app.example.com",
		WebAppName:  "edit_checklist",
	}).(*implUseCase)
	return f
}

// toggleParts mints the deep-link fields of a toggle link.
func (f *fixture) toggleParts(t *testing.T, loc location.Location, line int) []string {
	t.Helper()
	tok, err := f.codec.Encode(loc)
	if err != nil {
		t.Fatal(err)
	}
	return tok.ToggleParts(line)
}

func userconfigFor(userID int64, checked, unchecked string) userconfig.UserConfig {
	return userconfig.UserConfig{
		UserID:               userID,
		DefaultCheckedBox:    checked,
		DefaultUncheckedBox:  unchecked,
		ShowEditConfirmation: true,
	}
}
