package httpserver_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"checkbot/internal/httpserver"
	"checkbot/internal/middleware"
	"checkbot/pkg/log"
)

type fakeTelegram struct{ calls int }

func (f *fakeTelegram) HandleWebhook(c *gin.Context) {
	f.calls++
	c.Status(http.StatusOK)
}

type fakeMiniApp struct{ calls int }

func (f *fakeMiniApp) Message(c *gin.Context)       { f.calls++; c.Status(http.StatusOK) }
func (f *fakeMiniApp) UpdateMessage(c *gin.Context) { f.calls++; c.Status(http.StatusOK) }
func (f *fakeMiniApp) CreateMessage(c *gin.Context) { f.calls++; c.Status(http.StatusOK) }

func newServer(t *testing.T, ready func(context.Context) error) (http.Handler, *fakeTelegram, *fakeMiniApp) {
	t.Helper()
	tg, app := &fakeTelegram{}, &fakeMiniApp{}
	l := log.NewNop()
	srv, err := httpserver.New(l, httpserver.Config{
		Logger:          l,
		Port:            8080,
		Mode:            gin.TestMode,
		Environment:     "development",
		Middleware:      middleware.New(l, middleware.Config{WebhookSecret: "s3cret", BotToken: "1:x"}),
		ReadyCheck:      ready,
		TelegramHandler: tg,
		MiniAppHandler:  app,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv.Handler(), tg, app
}

func do(h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestNewValidates(t *testing.T) {
	l := log.NewNop()
	if _, err := httpserver.New(l, httpserver.Config{Mode: gin.TestMode}); err == nil {
		t.Error("expected error for missing port")
	}
	if _, err := httpserver.New(nil, httpserver.Config{Port: 1, Mode: gin.TestMode}); err == nil {
		t.Error("expected error for missing logger")
	}
}

func TestSystemRoutes(t *testing.T) {
	h, _, _ := newServer(t, nil)

	for _, path := range []string{"/health", "/ready", "/live"} {
		t.Run(path, func(t *testing.T) {
			w := do(h, http.MethodGet, path, "", nil)
			if w.Code != http.StatusOK {
				t.Errorf("expected 200, got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), `"service":"checkbot"`) {
				t.Errorf("unexpected body %s", w.Body.String())
			}
			if w.Header().Get(middleware.HeaderRequestID) == "" {
				t.Error("expected request id header")
			}
		})
	}

	t.Run("Not ready", func(t *testing.T) {
		h, _, _ := newServer(t, func(context.Context) error { return errors.New("database is locked") })
		if w := do(h, http.MethodGet, "/ready", "", nil); w.Code != http.StatusServiceUnavailable {
			t.Errorf("expected 503, got %d", w.Code)
		}
	})
}

func TestWebhookRoute(t *testing.T) {
	h, tg, _ := newServer(t, nil)

	if w := do(h, http.MethodPost, "/webhook/telegram", `{"update_id":1}`, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without secret, got %d", w.Code)
	}
	if tg.calls != 0 {
		t.Fatal("handler reached without secret")
	}

	w := do(h, http.MethodPost, "/webhook/telegram", `{"update_id":1}`, map[string]string{middleware.HeaderTelegramSecret: "s3cret"})
	if w.Code != http.StatusOK || tg.calls != 1 {
		t.Errorf("expected delivery, got %d (%d calls)", w.Code, tg.calls)
	}
}

func TestMiniAppRoutesRequireInitData(t *testing.T) {
	h, _, app := newServer(t, nil)

	for _, path := range []string{"/api/message", "/api/update-message", "/api/create-message"} {
		w := do(h, http.MethodPost, path, `{"initData":""}`, map[string]string{"Content-Type": "application/json"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, w.Code)
		}
	}
	if app.calls != 0 {
		t.Errorf("handlers reached without init data: %d", app.calls)
	}
}
