package webhook

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type captured struct {
	method      string
	contentType string
	auth        string
	body        []byte
}

func captureServer(t *testing.T, status int, reply string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.contentType = r.Header.Get("Content-Type")
		got.auth = r.Header.Get("Authorization")
		got.body, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
		io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestSendText(t *testing.T) {
	srv, got := captureServer(t, http.StatusOK, "")
	if err := Send(Hook{URL: srv.URL}, "12 icons written", []byte(`{}`)); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.method != http.MethodPost {
		t.Errorf("method = %q, want POST", got.method)
	}
	if got.contentType != "text/plain" {
		t.Errorf("Content-Type = %q, want text/plain", got.contentType)
	}
	if string(got.body) != "12 icons written" {
		t.Errorf("body = %q", got.body)
	}
}

func TestSendJSONSummary(t *testing.T) {
	srv, got := captureServer(t, http.StatusOK, "")
	summary := []byte(`{"files":12}`)
	if err := Send(Hook{URL: srv.URL, Format: FormatJSON}, "ignored", summary); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.contentType != "application/json" {
		t.Errorf("Content-Type = %q", got.contentType)
	}
	if string(got.body) != string(summary) {
		t.Errorf("body = %q, want %q", got.body, summary)
	}
}

func TestSendChatFormats(t *testing.T) {
	tests := []struct {
		format, key string
	}{
		{FormatSlack, "text"},
		{FormatDiscord, "content"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			srv, got := captureServer(t, http.StatusNoContent, "")
			if err := Send(Hook{URL: srv.URL, Format: tt.format}, "hello world", nil); err != nil {
				t.Fatalf("Send: %v", err)
			}
			var body map[string]string
			if err := json.Unmarshal(got.body, &body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if body[tt.key] != "hello world" {
				t.Errorf("%s = %q, want %q", tt.key, body[tt.key], "hello world")
			}
		})
	}
}

func TestSendCustomHeaders(t *testing.T) {
	t.Setenv("TEST_WEBHOOK_TOKEN", "secret123")
	srv, got := captureServer(t, http.StatusOK, "")

	h := Hook{URL: srv.URL, Headers: map[string]string{
		"Authorization": "Bearer $TEST_WEBHOOK_TOKEN",
		"Content-Type":  "application/x-custom",
	}}
	if err := Send(h, "hi", nil); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.auth != "Bearer secret123" {
		t.Errorf("Authorization = %q, want %q", got.auth, "Bearer secret123")
	}
	if got.contentType != "application/x-custom" {
		t.Errorf("Content-Type = %q, want override", got.contentType)
	}
}

func TestSendErrorStatus(t *testing.T) {
	srv, _ := captureServer(t, http.StatusInternalServerError, "internal server error")
	err := Send(Hook{URL: srv.URL, Format: FormatSlack}, "test", nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"slack", "500", "internal server error"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should contain %q", err, want)
		}
	}
}

func TestSendUnknownFormat(t *testing.T) {
	if err := Send(Hook{URL: "http://127.0.0.1:1", Format: "teams"}, "x", nil); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestSendBadURL(t *testing.T) {
	if err := Send(Hook{URL: "http://127.0.0.1:1/bad"}, "test", nil); err == nil {
		t.Fatal("expected error for unreachable URL")
	}
}

func TestValidFormat(t *testing.T) {
	for _, f := range []string{"", FormatText, FormatJSON, FormatSlack, FormatDiscord} {
		if !ValidFormat(f) {
			t.Errorf("ValidFormat(%q) = false", f)
		}
	}
	if ValidFormat("telegram") {
		t.Error("ValidFormat(telegram) = true")
	}
}

func TestSnippet(t *testing.T) {
	if got := snippet(strings.NewReader("")); got != "(empty body)" {
		t.Errorf("got %q, want %q", got, "(empty body)")
	}
	if got := snippet(strings.NewReader("hello")); got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
	got := snippet(strings.NewReader(strings.Repeat("x", 300)))
	if len(got) != snippetLen+3 || !strings.HasSuffix(got, "...") {
		t.Errorf("long snippet = %d bytes, want %d with ellipsis", len(got), snippetLen+3)
	}
}
