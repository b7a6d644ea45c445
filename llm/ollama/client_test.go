package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aschepis/backscratcher/aifast/llm"
	"github.com/rs/zerolog"
)

func TestParseHost(t *testing.T) {
	u, err := parseHost("localhost:11434")
	if err != nil {
		t.Fatalf("parseHost failed: %v", err)
	}
	if u.Scheme != "http" || u.Host != "localhost:11434" {
		t.Errorf("Unexpected URL %v", u)
	}
}

func TestNewOllamaClientRequiresModel(t *testing.T) {
	_, err := NewOllamaClient("http://localhost:11434", "", zerolog.Nop())
	if !llm.IsInvalidArgumentError(err) {
		t.Fatalf("Expected invalid argument error, got %v", err)
	}
}

func TestChat(t *testing.T) {
	var got struct {
		Model    string         `json:"model"`
		Messages []wireMessage  `json:"messages"`
		Options  map[string]any `json:"options"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = w.Write([]byte(`{"model":"llama3.2:3b","created_at":"2024-01-01T00:00:00Z","message":{"role":"assistant","content":" Paris "},"done":true}` + "\n"))
	}))
	defer srv.Close()

	client, err := NewOllamaClient(srv.URL, "llama3.2:3b", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewOllamaClient failed: %v", err)
	}

	text, err := client.Chat(context.Background(), []llm.Message{
		llm.NewTextMessage(llm.RoleSystem, "Be brief."),
		llm.NewTextMessage(llm.RoleUser, "Capital of France?"),
	}, llm.Options{MaxTokens: 10})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if text != " Paris " {
		t.Errorf("Expected untrimmed chat text, got %q", text)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" {
		t.Errorf("Expected system message inline, got %+v", got.Messages)
	}
	if got.Options["num_predict"] != float64(10) {
		t.Errorf("Expected num_predict 10, got %v", got.Options["num_predict"])
	}
}

func TestValidateAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	client, err := NewOllamaClient(srv.URL, "llama3.2:3b", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewOllamaClient failed: %v", err)
	}
	if !client.ValidateAPIKey(context.Background()) {
		t.Error("Expected reachable server to validate")
	}

	srv.Close()
	if client.ValidateAPIKey(context.Background()) {
		t.Error("Expected closed server to fail validation")
	}
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
