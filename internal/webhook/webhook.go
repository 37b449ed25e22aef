// Package webhook posts run notifications to HTTP endpoints: plain text,
// the JSON run summary, or the Slack and Discord incoming-webhook shapes.
package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Body formats.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatSlack   = "slack"
	FormatDiscord = "discord"
)

// snippetLen caps how much of an error response is quoted.
const snippetLen = 200

// Client is shared by all sends; the timeout keeps an unresponsive
// endpoint from hanging the CLI.
var Client = &http.Client{Timeout: 30 * time.Second}

// Hook is one endpoint. An empty Format means FormatText.
type Hook struct {
	URL     string
	Format  string
	Headers map[string]string
}

// ValidFormat reports whether f is a known body format.
func ValidFormat(f string) bool {
	switch f {
	case "", FormatText, FormatJSON, FormatSlack, FormatDiscord:
		return true
	}
	return false
}

// Send posts to h. message is the human-readable text; summary is the JSON
// document sent by the json format. Header values are expanded with
// os.ExpandEnv to support $VAR secrets and are applied after the default
// Content-Type, so callers can override it.
func Send(h Hook, message string, summary []byte) error {
	format := h.Format
	if format == "" {
		format = FormatText
	}

	var (
		body        []byte
		contentType = "application/json"
		err         error
	)
	switch format {
	case FormatText:
		body, contentType = []byte(message), "text/plain"
	case FormatJSON:
		body = summary
	case FormatSlack:
		body, err = json.Marshal(map[string]string{"text": message})
	case FormatDiscord:
		body, err = json.Marshal(map[string]string{"content": message})
	default:
		return fmt.Errorf("webhook: unknown format %q", h.Format)
	}
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", format, err)
	}

	req, err := http.NewRequest(http.MethodPost, h.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: new request: %w", format, err)
	}
	req.Header.Set("Content-Type", contentType)
	for k, v := range h.Headers {
		req.Header.Set(k, os.ExpandEnv(v))
	}

	resp, err := Client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: post: %w", format, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s: webhook returned %d: %s", format, resp.StatusCode, snippet(resp.Body))
	}
	return nil
}

// snippet reads the start of an error response for inclusion in messages.
func snippet(r io.Reader) string {
	buf, _ := io.ReadAll(io.LimitReader(r, snippetLen+1))
	switch {
	case len(buf) == 0:
		return "(empty body)"
	case len(buf) > snippetLen:
		return string(buf[:snippetLen]) + "..."
	}
	return string(buf)
}
