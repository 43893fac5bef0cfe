package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	pkgResponse "checkbot/pkg/response"
)

const webAppUserKey = "webapp_user"

var (
	ErrInitDataMissing   = errors.New("init data missing")
	ErrInitDataSignature = errors.New("init data signature mismatch")
	ErrInitDataExpired   = errors.New("init data expired")
	ErrInitDataUser      = errors.New("init data has no user")
)

// WebAppUser is the Telegram user who opened the mini app.
type WebAppUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// WebAppAuth validates the initData field of a mini app request body and
// stores its user for GetWebAppUser.
func (m Middleware) WebAppAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUpdateSize))
		if err != nil {
			pkgResponse.Fail(c, http.StatusBadRequest, "Bad request")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		var req struct {
			InitData string `json:"initData"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			pkgResponse.Fail(c, http.StatusBadRequest, "Bad request")
			return
		}

		user, err := ValidateInitData(req.InitData, m.cfg.BotToken, m.cfg.InitDataMaxAge, m.now())
		if err != nil {
			m.l.Warnf(c.Request.Context(), "middleware.WebAppAuth: %v", err)
			description := ""
			if errors.Is(err, ErrInitDataUser) {
				description = "User missing"
			}
			pkgResponse.Fail(c, http.StatusBadRequest, description)
			return
		}
		if err := m.limiter.Allow(user.ID); err != nil {
			pkgResponse.Fail(c, http.StatusTooManyRequests, "Too many requests")
			return
		}

		c.Set(webAppUserKey, user)
		c.Next()
	}
}

// GetWebAppUser returns the user stored by WebAppAuth.
func GetWebAppUser(c *gin.Context) (WebAppUser, bool) {
	v, ok := c.Get(webAppUserKey)
	if !ok {
		return WebAppUser{}, false
	}
	user, ok := v.(WebAppUser)
	return user, ok
}

// ValidateInitData checks the mini app init data signature: the hex HMAC
// of the sorted "key=value" lines, keyed with HMAC("WebAppData", botToken).
// A zero maxAge skips the auth_date check.
func ValidateInitData(initData, botToken string, maxAge time.Duration, now time.Time) (WebAppUser, error) {
	if initData == "" {
		return WebAppUser{}, ErrInitDataMissing
	}
	values, err := url.ParseQuery(initData)
	if err != nil {
		return WebAppUser{}, ErrInitDataSignature
	}
	hash := values.Get("hash")
	if hash == "" {
		return WebAppUser{}, ErrInitDataSignature
	}

	if !hmac.Equal([]byte(SignInitData(values, botToken)), []byte(hash)) {
		return WebAppUser{}, ErrInitDataSignature
	}

	if maxAge > 0 {
		authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
		if err != nil || now.Sub(time.Unix(authDate, 0)) > maxAge {
			return WebAppUser{}, ErrInitDataExpired
		}
	}

	raw := values.Get("user")
	if raw == "" {
		return WebAppUser{}, ErrInitDataUser
	}
	var user WebAppUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == 0 {
		return WebAppUser{}, ErrInitDataUser
	}
	return user, nil
}

// SignInitData computes the hash Telegram attaches to init data. The
// "hash" key itself is ignored.
func SignInitData(values url.Values, botToken string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k != "hash" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = k + "=" + values.Get(k)
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}
