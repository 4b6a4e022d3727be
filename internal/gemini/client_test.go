package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anarkulova/maktab-monitor/internal/services"
)

func TestGenerateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-3-flash-preview:generateContent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "key123" {
			t.Errorf("api key header = %q", r.Header.Get("x-goog-api-key"))
		}
		var body generateBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.SystemInstruction == nil || !strings.Contains(body.SystemInstruction.Parts[0].Text, "tahlilchi") {
			t.Errorf("system instruction not forwarded: %+v", body.SystemInstruction)
		}
		if body.GenerationConfig == nil || body.GenerationConfig.ThinkingConfig.ThinkingLevel != "LOW" {
			t.Errorf("thinking config not forwarded: %+v", body.GenerationConfig)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]string{{"text": "## Hisobot\n"}, {"text": "Xavf past."}},
				},
			}},
		})
	}))
	defer srv.Close()

	c := New("key123", "").WithBaseURL(srv.URL)
	text, err := c.Generate(context.Background(), services.GenerateRequest{
		SystemInstruction: "Siz tahlilchi.",
		Contents:          "Ma'lumotlar: {}",
		ThinkingLevel:     services.ThinkingLow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "## Hisobot\nXavf past." {
		t.Fatalf("text = %q", text)
	}
}

func TestGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"},
		})
	}))
	defer srv.Close()

	c := New("key123", "").WithBaseURL(srv.URL)
	_, err := c.Generate(context.Background(), services.GenerateRequest{Contents: "x"})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("error = %v, want quota exceeded surfaced", err)
	}
}

func TestGenerateNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	c := New("key123", "").WithBaseURL(srv.URL)
	text, err := c.Generate(context.Background(), services.GenerateRequest{Contents: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "" {
		t.Fatalf("text = %q, want empty", text)
	}
}

func TestGenerateWithoutKey(t *testing.T) {
	c := New("", "")
	if _, err := c.Generate(context.Background(), services.GenerateRequest{Contents: "x"}); err == nil {
		t.Fatal("missing api key must fail before any request")
	}
}
