// Package ngrok finds the public URL of a local ngrok agent, so a
// development bot can register its webhook without a fixed hostname.
package ngrok

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrNoTunnels = errors.New("ngrok has no active tunnels")

// Options tune DetectURL. Zero values use the defaults below.
type Options struct {
	Attempts int           // default 10
	Interval time.Duration // default 3s
	Client   *http.Client
}

type tunnelsResponse struct {
	Tunnels []tunnel `json:"tunnels"`
}

type tunnel struct {
	PublicURL string `json:"public_url"`
	Proto     string `json:"proto"`
}

// DetectURL polls the agent API at apiBase (for example
// "http://ngrok:4040") until it reports a tunnel, preferring HTTPS.
func DetectURL(ctx context.Context, apiBase string, opts Options) (string, error) {
	if opts.Attempts <= 0 {
		opts.Attempts = 10
	}
	if opts.Interval <= 0 {
		opts.Interval = 3 * time.Second
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 5 * time.Second}
	}

	var lastErr error
	for attempt := 1; attempt <= opts.Attempts; attempt++ {
		url, err := fetchURL(ctx, opts.Client, apiBase+"/api/tunnels")
		if err == nil {
			return url, nil
		}
		lastErr = err
		if attempt == opts.Attempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(opts.Interval):
		}
	}
	return "", fmt.Errorf("after %d attempts: %w", opts.Attempts, lastErr)
}

func fetchURL(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ngrok API not reachable: %w", err)
	}
	defer resp.Body.Close()

	var tunnels tunnelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tunnels); err != nil {
		return "", fmt.Errorf("failed to decode ngrok API response: %w", err)
	}
	for _, t := range tunnels.Tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	if len(tunnels.Tunnels) > 0 {
		return tunnels.Tunnels[0].PublicURL, nil
	}
	return "", ErrNoTunnels
}
