package capability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/fnolabs/crashtriage/internal/model"
)

func toolCallResponse(name, arguments string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:      "chatcmpl-123",
		Object:  "chat.completion",
		Model:   "gpt-4o-mini",
		Choices: []openai.ChatCompletionChoice{
			{
				Index: 0,
				Message: openai.ChatCompletionMessage{
					Role: "assistant",
					ToolCalls: []openai.ToolCall{
						{
							Type: openai.ToolTypeFunction,
							Function: openai.FunctionCall{
								Name:      name,
								Arguments: arguments,
							},
						},
					},
				},
				FinishReason: "tool_calls",
			},
		},
	}
}

func TestOpenAIInvoker_Invoke_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected Authorization header Bearer test-key, got %s", r.Header.Get("Authorization"))
		}

		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Tools) != 1 || req.Tools[0].Function.Name != AnalyzeImpact {
			t.Errorf("expected forced analyze-impact tool, got %+v", req.Tools)
		}

		args := `{"severity":"SEVERE","impact_type":"ROLLOVER","was_speeding":true,"airbag_likely":true,"confidence":0.9}`
		_ = json.NewEncoder(w).Encode(toolCallResponse(AnalyzeImpact, args))
	}))
	defer server.Close()

	invoker, err := NewOpenAIInvoker(Config{
		APIKey:        "test-key",
		BaseURL:       server.URL,
		Model:         "gpt-4o-mini",
		InvokeTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Failed to create invoker: %v", err)
	}

	var impact model.ImpactAnalysis
	if err := invoker.Invoke(context.Background(), AnalyzeImpact, map[string]any{"g_force": 6.2}, &impact); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	if impact.Severity != model.SeveritySevere {
		t.Errorf("unexpected severity: %s", impact.Severity)
	}
	if !impact.WasSpeeding || !impact.AirbagLikely {
		t.Errorf("unexpected result: %+v", impact)
	}
}

func TestOpenAIInvoker_Invoke_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "Internal Server Error", "type": "server_error"}}`))
	}))
	defer server.Close()

	invoker, err := NewOpenAIInvoker(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("Failed to create invoker: %v", err)
	}

	var out model.PolicyInfo
	err = invoker.Invoke(context.Background(), LookupPolicy, map[string]any{}, &out)

	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if cerr.Capability != LookupPolicy {
		t.Errorf("expected lookup-policy, got %s", cerr.Capability)
	}
}

func TestOpenAIInvoker_Invoke_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(toolCallResponse(GatherEnvironment, `{}`))
	}))
	defer server.Close()

	invoker, err := NewOpenAIInvoker(Config{
		APIKey:        "test-key",
		BaseURL:       server.URL,
		InvokeTimeout: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Failed to create invoker: %v", err)
	}

	var out model.EnvironmentContext
	err = invoker.Invoke(context.Background(), GatherEnvironment, map[string]any{}, &out)

	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if !cerr.Timeout {
		t.Errorf("expected timeout flag on error: %v", cerr)
	}
}

func TestOpenAIInvoker_Invoke_WrongTool(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(toolCallResponse("some-other-tool", `{}`))
	}))
	defer server.Close()

	invoker, err := NewOpenAIInvoker(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("Failed to create invoker: %v", err)
	}

	var out model.NearbyServices
	if err := invoker.Invoke(context.Background(), FindServices, map[string]any{}, &out); err == nil {
		t.Fatal("expected error when model calls the wrong tool")
	}
}

func TestOpenAIInvoker_UnknownCapability(t *testing.T) {
	invoker, err := NewOpenAIInvoker(Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("Failed to create invoker: %v", err)
	}

	var out struct{}
	if err := invoker.Invoke(context.Background(), "summon-helicopter", nil, &out); err == nil {
		t.Fatal("expected error for unknown capability")
	}
}

func TestNewOpenAIInvoker_RequiresAPIKey(t *testing.T) {
	if _, err := NewOpenAIInvoker(Config{}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestNewInvoker_Factory(t *testing.T) {
	if _, err := NewInvoker(Config{Provider: "openai", APIKey: "k"}); err != nil {
		t.Errorf("openai provider should construct: %v", err)
	}
	if _, err := NewInvoker(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Error("unknown provider should error")
	}
}
