package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type openaiCapture struct {
	path string
	body map[string]any
}

func openaiServer(t *testing.T, status int, body any) (string, *openaiCapture) {
	t.Helper()
	c := &openaiCapture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&c.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/v1", c
}

func completion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 30, "completion_tokens": 9, "total_tokens": 39},
	}
}

func TestOpenAI_ChatReply(t *testing.T) {
	url, got := openaiServer(t, http.StatusOK, completion("你好!(Nǐ hǎo!) Hello!", "stop"))
	p := newOpenAI("sk-test", "gpt-4o-mini", url)

	resp, err := p.Generate(context.Background(), Request{
		System:   "You are a friendly Mandarin tutor.",
		Messages: UserMessage("你好"),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Text() != "你好!(Nǐ hǎo!) Hello!" || resp.Model != "gpt-4o-mini-2024-07-18" {
		t.Errorf("resp = %q model %q", resp.Text(), resp.Model)
	}
	msgs, _ := got.body["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("sent %d messages, want system + user", len(msgs))
	}
	if first, _ := msgs[0].(map[string]any); first["role"] != "system" {
		t.Errorf("first role = %v", first["role"])
	}
	if _, ok := got.body["response_format"]; ok {
		t.Error("text requests must not ask for json")
	}
}

func TestOpenAI_StructuredRequest(t *testing.T) {
	url, got := openaiServer(t, http.StatusOK, completion(`{"score":70,"feedback":"Watch the tones."}`, "stop"))
	p := newOpenAI("sk-test", "gpt-4o-mini", url)

	resp, err := p.Generate(context.Background(), Request{Messages: UserMessage("score"), Schema: scoreTestSchema()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(resp.Content) != `{"score":70,"feedback":"Watch the tones."}` {
		t.Errorf("content = %s", resp.Content)
	}
	rf, _ := got.body["response_format"].(map[string]any)
	js, _ := rf["json_schema"].(map[string]any)
	if rf["type"] != "json_schema" || js["name"] != "test-score" || js["strict"] != true {
		t.Errorf("response_format = %v", rf)
	}
}

func TestOpenAI_InvalidStructuredReply(t *testing.T) {
	url, _ := openaiServer(t, http.StatusOK, completion(`{"score":"great"}`, "stop"))
	p := newOpenAI("sk-test", "gpt-4o-mini", url)

	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("x"), Schema: scoreTestSchema()})
	e, ok := err.(*Error)
	if !ok || e.Kind != KindInvalidOutput || e.Output != `{"score":"great"}` {
		t.Fatalf("err = %v", err)
	}
}

func TestOpenAI_TruncatedTextIsKept(t *testing.T) {
	url, _ := openaiServer(t, http.StatusOK, completion("你好,我是", "length"))
	p := newOpenAI("sk-test", "gpt-4o-mini", url)

	resp, err := p.Generate(context.Background(), Request{Messages: UserMessage("x"), MaxTokens: 5})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Stop != StopMaxTokens || resp.Text() != "你好,我是" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestOpenAI_ErrorStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorKind
	}{
		{http.StatusTooManyRequests, KindRateLimited},
		{http.StatusBadRequest, KindRejected},
		{http.StatusInternalServerError, KindUnavailable},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			url, _ := openaiServer(t, tt.status, map[string]any{
				"error": map[string]any{"message": "boom", "type": "server_error"},
			})
			_, err := newOpenAI("sk-test", "gpt-4o-mini", url).Generate(context.Background(), Request{Messages: UserMessage("x")})
			e, ok := err.(*Error)
			if !ok || e.Kind != tt.want || e.Provider != "openai" {
				t.Fatalf("err = %v", err)
			}
		})
	}
}

func TestOpenRouter_UsesCompatibleEndpoint(t *testing.T) {
	url, got := openaiServer(t, http.StatusOK, completion("ok", "stop"))
	p := newOpenRouter("sk-or", "google/gemini-2.0-flash-001", url)

	if _, err := p.Generate(context.Background(), Request{Messages: UserMessage("x")}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got.path != "/v1/chat/completions" || got.body["model"] != "google/gemini-2.0-flash-001" {
		t.Errorf("path %s model %v", got.path, got.body["model"])
	}
	if p.name != "openrouter" {
		t.Errorf("name = %s", p.name)
	}
	if def := newOpenRouter("k", "m", ""); def.ModelID() != "m" {
		t.Errorf("model = %s", def.ModelID())
	}
}
