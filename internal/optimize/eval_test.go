package optimize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optiprompt/optiprompt/internal/llm"
	"github.com/optiprompt/optiprompt/internal/prompt"
	"github.com/optiprompt/optiprompt/internal/tabular"
)

// labelServer answers with the label embedded in the request input line, so
// accuracy is fully controlled by the fixtures.
func labelServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req llm.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		content := "unknown"
		for _, line := range strings.Split(req.Messages[0].Content, "\n") {
			if after, found := strings.CutPrefix(line, "respond_with: "); found {
				content = after
			}
		}
		var resp llm.ChatCompletionResponse
		resp.Choices = []struct {
			Index        int             `json:"index"`
			Message      llm.ChatMessage `json:"message"`
			FinishReason string          `json:"finish_reason"`
		}{
			{Message: llm.ChatMessage{Role: "assistant", Content: content}},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEvaluatePrompt(t *testing.T) {
	srv := labelServer(t)
	client := llm.NewClient(srv.URL, "", "test-model", 64, 0.0)

	examples := prompt.FromTabular([]tabular.Example{
		{Input: "respond_with: A", Answer: "A"},
		{Input: "respond_with: 'b'", Answer: "B"},
		{Input: "respond_with: wrong", Answer: "C"},
		{Input: "respond_with: D", Answer: "D"},
	})

	accuracy, err := EvaluatePrompt(context.Background(), client, "Classify.", examples)
	require.NoError(t, err)
	require.InDelta(t, 0.75, accuracy, 1e-9)
}

func TestEvaluatePromptEmptySet(t *testing.T) {
	srv := labelServer(t)
	client := llm.NewClient(srv.URL, "", "test-model", 64, 0.0)

	_, err := EvaluatePrompt(context.Background(), client, "Classify.", nil)
	require.Error(t, err)
}

func TestComposePrompt(t *testing.T) {
	got := composePrompt("Classify.\n\n", "subject: hi")
	require.Equal(t, "Classify.\n\nsubject: hi", got)
}
