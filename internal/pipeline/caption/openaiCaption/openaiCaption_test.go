package openaiCaption

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/akolanti/CaptionSpeech/internal/pipeline/caption"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaption_SendsImageAndBudget(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "A red square on a plain background."}}]
		}`)
	}))
	defer srv.Close()

	m := NewCaptionModel("test-key", "gpt-4o-mini", srv.Client(), option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	text, err := m.Caption(context.Background(), caption.Request{
		Image:     []byte{0x89, 'P', 'N', 'G'},
		MIMEType:  "image/png",
		Prompt:    "describe",
		MaxTokens: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, "A red square on a plain background.", text)

	assert.EqualValues(t, 50, body["max_completion_tokens"])
	raw, _ := json.Marshal(body["messages"])
	assert.Contains(t, string(raw), "data:image/png;base64,")
}

func TestCaption_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"message":"boom"}}`)
	}))
	defer srv.Close()

	m := NewCaptionModel("test-key", "gpt-4o-mini", srv.Client(), option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	_, err := m.Caption(context.Background(), caption.Request{Image: []byte{1}, MIMEType: "image/png", Prompt: "p", MaxTokens: 10})
	assert.Error(t, err)
}
