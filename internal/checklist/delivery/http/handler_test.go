package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"checkbot/internal/checkbox"
	"checkbot/internal/checklist"
	checklistHTTP "checkbot/internal/checklist/delivery/http"
	"checkbot/internal/middleware"
	"checkbot/internal/model"
	"checkbot/internal/permission"
	pkgLog "checkbot/pkg/log"
	"checkbot/pkg/response"
)

const botToken = "123456:test-token"

type mockUseCase struct {
	sc       model.Scope
	readIn   checklist.ReadInput
	readOut  checklist.ReadOutput
	updateIn checklist.UpdateInput
	createIn checklist.UpdateInput
	err      error
}

func (m *mockUseCase) Create(ctx context.Context, sc model.Scope, input checklist.CreateInput) (checklist.CreateOutput, error) {
	return checklist.CreateOutput{}, nil
}
func (m *mockUseCase) Toggle(ctx context.Context, sc model.Scope, input checklist.ToggleInput) (checklist.ToggleOutput, error) {
	return checklist.ToggleOutput{}, nil
}
func (m *mockUseCase) ConvertChannelPost(ctx context.Context, input checklist.ChannelPostInput) error {
	return nil
}
func (m *mockUseCase) Read(ctx context.Context, sc model.Scope, input checklist.ReadInput) (checklist.ReadOutput, error) {
	m.sc, m.readIn = sc, input
	return m.readOut, m.err
}
func (m *mockUseCase) Update(ctx context.Context, sc model.Scope, input checklist.UpdateInput) error {
	m.sc, m.updateIn = sc, input
	return m.err
}
func (m *mockUseCase) CreateFromWebApp(ctx context.Context, sc model.Scope, input checklist.UpdateInput) (checklist.CreateOutput, error) {
	m.sc, m.createIn = sc, input
	return checklist.CreateOutput{}, m.err
}
func (m *mockUseCase) MintDraftLocation(ctx context.Context, sc model.Scope) (string, error) {
	return "", nil
}

func newEngine(uc *mockUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mw := middleware.New(pkgLog.NewNop(), middleware.Config{BotToken: botToken})
	checklistHTTP.RegisterRoutes(r.Group("/api"), checklistHTTP.New(pkgLog.NewNop(), uc), mw)
	return r
}

func initData(userID int64) string {
	values := url.Values{}
	values.Set("auth_date", fmt.Sprint(time.Now().Unix()))
	values.Set("user", fmt.Sprintf(`{"id":%d,"first_name":"Ann","language_code":"en"}`, userID))
	values.Set("hash", middleware.SignInitData(values, botToken))
	return values.Encode()
}

func post(r *gin.Engine, path string, body any) (*httptest.ResponseRecorder, response.APIResp) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response.APIResp
	json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestMessage(t *testing.T) {
	t.Run("Returns lines", func(t *testing.T) {
		uc := &mockUseCase{readOut: checklist.ReadOutput{Data: checkbox.Data{Lines: []checkbox.Line{
			{Text: "title"},
			{HasCheckBox: true, IsChecked: true, Text: "done"},
		}}}}
		w, resp := post(newEngine(uc), "/api/message", map[string]string{"initData": initData(7), "location": "t_c_7_5_sig"})
		if w.Code != http.StatusOK || !resp.OK {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
		if uc.sc.UserID != 7 || uc.sc.ChatID != 7 || uc.sc.LanguageCode != "en" {
			t.Errorf("unexpected scope %+v", uc.sc)
		}
		if uc.readIn.Location != "t_c_7_5_sig" {
			t.Errorf("unexpected input %+v", uc.readIn)
		}
		want := `{"ok":true,"result":[{"hasCheckBox":false,"isChecked":false,"text":"title"},{"hasCheckBox":true,"isChecked":true,"text":"done"}]}`
		if w.Body.String() != want {
			t.Errorf("unexpected body %s", w.Body.String())
		}
	})

	t.Run("Missing location", func(t *testing.T) {
		w, resp := post(newEngine(&mockUseCase{}), "/api/message", map[string]string{"initData": initData(7)})
		if w.Code != http.StatusBadRequest || resp.OK || resp.Description != "Bad request" {
			t.Errorf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("Bad init data", func(t *testing.T) {
		uc := &mockUseCase{}
		w, _ := post(newEngine(uc), "/api/message", map[string]string{"initData": "user=x&hash=00", "location": "l"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
		if uc.readIn.Location != "" {
			t.Error("use case must not be reached")
		}
	})

	t.Run("Permission denied", func(t *testing.T) {
		uc := &mockUseCase{err: permission.ErrNotEnoughRights}
		w, resp := post(newEngine(uc), "/api/message", map[string]string{"initData": initData(7), "location": "l"})
		if w.Code != http.StatusForbidden || resp.Description == "" {
			t.Errorf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})
}

func TestUpdateMessage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		uc := &mockUseCase{}
		body := map[string]any{
			"initData":       initData(7),
			"location":       "t_c_7_5_sig",
			"checklistLines": []map[string]any{{"hasCheckBox": true, "isChecked": false, "text": "milk"}},
		}
		w, resp := post(newEngine(uc), "/api/update-message", body)
		if w.Code != http.StatusOK || !resp.OK {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
		if len(uc.updateIn.Lines) != 1 || uc.updateIn.Lines[0] != (checkbox.Line{HasCheckBox: true, Text: "milk"}) {
			t.Errorf("unexpected input %+v", uc.updateIn)
		}
	})

	t.Run("No lines", func(t *testing.T) {
		body := map[string]any{"initData": initData(7), "location": "l", "checklistLines": []any{}}
		if w, _ := post(newEngine(&mockUseCase{}), "/api/update-message", body); w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("Transport failure", func(t *testing.T) {
		uc := &mockUseCase{err: checklist.ErrTransport}
		body := map[string]any{"initData": initData(7), "location": "l", "checklistLines": []map[string]any{{"text": "x"}}}
		if w, _ := post(newEngine(uc), "/api/update-message", body); w.Code != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", w.Code)
		}
	})
}

func TestCreateMessage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		uc := &mockUseCase{}
		body := map[string]any{"initData": initData(9), "location": "t_c_9_0_sig", "checklistLines": []map[string]any{{"hasCheckBox": true, "text": "a"}}}
		w, resp := post(newEngine(uc), "/api/create-message", body)
		if w.Code != http.StatusOK || !resp.OK {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
		if uc.sc.UserID != 9 || uc.createIn.Location != "t_c_9_0_sig" {
			t.Errorf("unexpected call %+v %+v", uc.sc, uc.createIn)
		}
	})

	t.Run("Already created", func(t *testing.T) {
		uc := &mockUseCase{err: checklist.ErrAlreadyCreated}
		body := map[string]any{"initData": initData(9), "location": "l", "checklistLines": []map[string]any{{"text": "a"}}}
		if w, _ := post(newEngine(uc), "/api/create-message", body); w.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", w.Code)
		}
	})
}
