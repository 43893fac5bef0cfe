// Package deeplink packs a list of short fields into a single Telegram
// deep-link parameter. '_' separates fields and '-' escapes: "-" becomes
// "--" and "_" becomes "-_".
package deeplink

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	Separator = '_'
	Escape    = '-'
)

var ErrInvalidCharacter = errors.New("deeplink: param contains invalid characters")

var validParam = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// EncodeParams escapes every field and joins them.
func EncodeParams(fields []string) (string, error) {
	var sb strings.Builder
	for i, f := range fields {
		if !validParam.MatchString(f) {
			return "", fmt.Errorf("%w: %q", ErrInvalidCharacter, f)
		}
		if i > 0 {
			sb.WriteByte(Separator)
		}
		for j := 0; j < len(f); j++ {
			if f[j] == Escape || f[j] == Separator {
				sb.WriteByte(Escape)
			}
			sb.WriteByte(f[j])
		}
	}
	return sb.String(), nil
}

// DecodeParams splits an encoded parameter back into its fields. A trailing
// lone escape character is kept literally.
func DecodeParams(s string) []string {
	fields := make([]string, 0, strings.Count(s, string(Separator))+1)
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == Escape && i+1 < len(s) && (s[i+1] == Escape || s[i+1] == Separator):
			cur.WriteByte(s[i+1])
			i++
		case c == Separator:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(fields, cur.String())
}

// DeepLinkURL builds https://t.me/<bot>?start=<param>.
func DeepLinkURL(botUsername, param string) string {
	return fmt.Sprintf("https://t.me/%s?start=%s", botUsername, param)
}

// StartAppURL builds https://t.me/<bot>/<app>?startapp=<param>.
func StartAppURL(botUsername, appName, param string) string {
	return fmt.Sprintf("https://t.me/%s/%s?startapp=%s", botUsername, appName, param)
}

// WebAppURL builds the mini-app URL opened from private chats. The
// checklist JSON is passed along so the app can render before its first
// API round trip.
func WebAppURL(host, param, listJSON string) string {
	q := url.Values{}
	q.Set("tgWebAppStartParam", param)
	q.Set("list", listJSON)
	return fmt.Sprintf("https://%s/?%s", host, q.Encode())
}

// EncodeDeepLinkURL is EncodeParams followed by DeepLinkURL.
func EncodeDeepLinkURL(botUsername string, fields []string) (string, error) {
	param, err := EncodeParams(fields)
	if err != nil {
		return "", err
	}
	return DeepLinkURL(botUsername, param), nil
}
