package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGenerateReturnsFirstChoice(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("unexpected auth header %q", auth)
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "test-model" || len(req.Messages) != 2 || req.Messages[1].Content != "logs here" {
			t.Errorf("unexpected request %+v", req)
		}

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"You ate well."}}]}`))
	}))
	defer ts.Close()

	c := NewClient("secret", ts.URL+"/", "test-model", time.Second)
	got, err := c.Generate(context.Background(), "be brief", "logs here")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "You ate well." {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "status", status: http.StatusUnauthorized, body: `{"error":"bad key"}`, wantErr: "chat http 401"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantErr: "no choices"},
		{name: "bad json", status: http.StatusOK, body: `{`, wantErr: "chat decode failed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			c := NewClient("k", ts.URL, "", 0)
			_, err := c.Generate(context.Background(), "s", "p")
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("k", "", "", 0)
	if c.baseURL != DefaultBaseURL || c.model != DefaultModel || c.http.Timeout != 60*time.Second {
		t.Fatalf("unexpected defaults %+v", c)
	}
}
