package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// http.Transport keeps idle connections alive briefly after tests.
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		// opencensus starts a global stats worker in package init.
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIClientWithConfig(OpenAIConfig{
		APIKey:      "test-key",
		BaseURL:     srv.URL,
		Model:       "gpt-4o-mini",
		MaxTokens:   500,
		Temperature: 0.1,
		Timeout:     5 * time.Second,
	})
}

func completionResponse(content string) chatResponse {
	var resp chatResponse
	resp.Choices = []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	}{{}}
	resp.Choices[0].Message.Role = "assistant"
	resp.Choices[0].Message.Content = content
	return resp
}

func TestOpenAIClient_CompleteWithSystem(t *testing.T) {
	var gotReq chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		require.NoError(t, json.NewEncoder(w).Encode(completionResponse(`["1. SANEEN", "2. WQ 110"]`)))
	})

	out, err := client.CompleteWithSystem(context.Background(), "system rules", "cell text")
	require.NoError(t, err)
	assert.Equal(t, `["1. SANEEN", "2. WQ 110"]`, out)

	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.Equal(t, 500, gotReq.MaxTokens)
	assert.InDelta(t, 0.1, gotReq.Temperature, 1e-9)
}

func TestOpenAIClient_NoSystemPrompt(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		require.NoError(t, json.NewEncoder(w).Encode(completionResponse("ok")))
	})

	out, err := client.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestOpenAIClient_MissingAPIKey(t *testing.T) {
	client := NewOpenAIClientWithConfig(OpenAIConfig{BaseURL: "http://localhost:1"})
	_, err := client.Complete(context.Background(), "prompt")
	assert.ErrorContains(t, err, "API key not configured")
}

func TestOpenAIClient_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad request"}}`, http.StatusBadRequest)
	})

	_, err := client.Complete(context.Background(), "prompt")
	assert.ErrorContains(t, err, "status 400")
}

func TestOpenAIClient_APIErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var resp chatResponse
		resp.Error = &struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Code    string `json:"code"`
		}{Message: "model overloaded"}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	})

	_, err := client.Complete(context.Background(), "prompt")
	assert.ErrorContains(t, err, "model overloaded")
}

func TestOpenAIClient_EmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(chatResponse{}))
	})

	_, err := client.Complete(context.Background(), "prompt")
	assert.ErrorContains(t, err, "no completion returned")
}

func TestOpenAIClient_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := client.Complete(context.Background(), "prompt")
	assert.ErrorContains(t, err, "failed to parse response")
}

func TestOpenAIClient_RetriesRateLimit(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(completionResponse("recovered")))
	})

	out, err := client.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "recovered", out)
	assert.Equal(t, 2, calls)
}
