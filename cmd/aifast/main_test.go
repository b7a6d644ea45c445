package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"ANTHROPIC_API_KEY", "ANTHROPIC_BASE_URL", "ANTHROPIC_MODEL",
		"COHERE_API_KEY", "COHERE_BASE_URL", "COHERE_MODEL",
		"OLLAMA_HOST", "OLLAMA_MODEL",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL", "OPENAI_ORG_ID",
		"AIFAST_CONFIG_PATH",
	} {
		t.Setenv(name, "")
	}
}

// writeConfig writes a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, configPath, stdin string, args ...string) (string, error) {
	t.Helper()
	clearProviderEnv(t)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", configPath, "--env-file", ""}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestFormatCommand(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "none.yaml")

	out, err := run(t, cfg, "1) first item\n* second", "format", "markdown")
	require.NoError(t, err)
	assert.Equal(t, "1. first item\n- second\n", out)

	out, err = run(t, cfg, "", "format", "json", "not", "json")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"text\": \"not json\"\n}\n", out)

	out, err = run(t, cfg, "", "format", "mermaid", "step1\nstep2")
	require.NoError(t, err)
	assert.Contains(t, out, "A0 --> A1")

	_, err = run(t, cfg, "", "format", "xml", "x")
	assert.ErrorContains(t, err, "unsupported format type: xml")
}

func TestProcessCommand(t *testing.T) {
	cfg := writeConfig(t, "pipeline: [clean, lowercase]\n")

	out, err := run(t, cfg, "  Hello,   WORLD!  ", "process")
	require.NoError(t, err)
	assert.Equal(t, "hello, world!\n", out)

	out, err = run(t, cfg, "", "process", "--step", "remove_special_chars", "--step", "bogus", "--step", "tokenize", "--tokens", "a-b c!")
	require.NoError(t, err)
	assert.Equal(t, "ab\nc\n", out)
}

func TestPromptCommands(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "none.yaml")
	prompts := filepath.Join(t.TempDir(), "prompts.yaml")

	_, err := run(t, cfg, "", "prompt", "--file", prompts, "add", "greet", "Hello {name}!")
	require.NoError(t, err)

	out, err := run(t, cfg, "", "prompt", "--file", prompts, "list")
	require.NoError(t, err)
	assert.Equal(t, "greet\n", out)

	out, err = run(t, cfg, "", "prompt", "--file", prompts, "show", "greet", "name=Ada")
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada!\n", out)

	_, err = run(t, cfg, "", "prompt", "--file", prompts, "show", "greet")
	assert.ErrorContains(t, err, "missing value for placeholder {name}")

	_, err = run(t, cfg, "", "prompt", "--file", prompts, "show", "greet", "bad")
	assert.ErrorContains(t, err, "expected name=value")
}

func TestLimitsCommand(t *testing.T) {
	cfg := writeConfig(t, "rate_limit:\n  requests_per_min: 5\n")

	out, err := run(t, cfg, "", "limits")
	require.NoError(t, err)
	assert.Equal(t, "requests_per_min: 5\ntokens_per_min: 90000\n", out)
}

func newOpenAIServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/chat/completions":
			var req struct {
				Messages []struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"messages"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode request: %v", err)
			}
			roles := make([]string, 0, len(req.Messages))
			for _, m := range req.Messages {
				roles = append(roles, m.Role)
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":     "chatcmpl-1",
				"object": "chat.completion",
				"choices": []map[string]any{{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": " " + strings.Join(roles, ",") + " "},
					"finish_reason": "stop",
				}},
			})
		case "/v1/models":
			_ = json.NewEncoder(w).Encode(map[string]any{"object": "list", "data": []any{}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func openAIConfig(t *testing.T, srv *httptest.Server) string {
	return writeConfig(t, "llm_providers: [openai]\nopenai:\n  api_key: test-key\n  base_url: "+srv.URL+"/v1\n")
}

func TestCompleteCommand(t *testing.T) {
	cfg := openAIConfig(t, newOpenAIServer(t))

	out, err := run(t, cfg, "", "complete", "Say", "hi")
	require.NoError(t, err)
	assert.Equal(t, "user\n", out)

	out, err = run(t, cfg, "", "complete", "--format", "json", "hi")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"text\": \"user\"\n}\n", out)
}

func TestChatCommand(t *testing.T) {
	cfg := openAIConfig(t, newOpenAIServer(t))

	out, err := run(t, cfg, "", "chat", "--system", "be terse", "--user", "a", "--user", "b")
	require.NoError(t, err)
	assert.Equal(t, "system,user,user\n", out)

	_, err = run(t, cfg, "", "chat")
	assert.ErrorContains(t, err, "--user")
}

func TestValidateCommand(t *testing.T) {
	cfg := openAIConfig(t, newOpenAIServer(t))

	out, err := run(t, cfg, "", "validate")
	require.NoError(t, err)
	assert.Equal(t, "OpenAI: ok\n", out)
}

func TestProviderSelectionErrors(t *testing.T) {
	cfg := writeConfig(t, "llm_providers: [openai]\n")

	_, err := run(t, cfg, "", "--provider", "cohere", "complete", "hi")
	assert.ErrorContains(t, err, "not enabled")

	_, err = run(t, cfg, "", "complete", "hi")
	assert.ErrorContains(t, err, "no available provider")
}

func TestLogfileAndPrettyAreExclusive(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "none.yaml")
	_, err := run(t, cfg, "", "--logfile", filepath.Join(t.TempDir(), "x.log"), "--pretty", "limits")
	assert.ErrorContains(t, err, "mutually exclusive")
}
