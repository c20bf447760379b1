package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/calderahq/hearth/internal/domain"
	"github.com/calderahq/hearth/internal/infrastructure/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newResponder(t *testing.T, credential, providerURL string) (*Responder, string) {
	t.Helper()

	registry := repository.NewLobbyRegistry("")
	lobby, err := registry.Create("Alice", credential)
	require.NoError(t, err)

	client := NewOpenAIClient(OpenAIConfig{BaseURL: providerURL, Model: "test-model"})
	responder := NewResponder(registry, client, zap.NewNop().Sugar())

	return responder, lobby.Code
}

func completionHandler(t *testing.T, reply string) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("Authorization"))

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2, "one system turn plus the triggering user turn, no history")
		require.Equal(t, "system", req.Messages[0].Role)
		require.Equal(t, "user", req.Messages[1].Role)

		resp := chatCompletionResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message chatMessage `json:"message"`
		}{Message: chatMessage{Role: "assistant", Content: reply}})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func TestResponder_NoCredentialFallback(t *testing.T) {
	req := require.New(t)

	var called bool
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer provider.Close()

	responder, code := newResponder(t, "", provider.URL)

	msg := responder.Respond(context.Background(), code, "hello")
	req.Equal(FallbackNotConfigured, msg.Content)
	req.Equal(domain.RoleAssistant, msg.Role)
	req.Equal(domain.AssistantSender, msg.Sender)
	req.False(called, "provider must not be called without a credential")
}

func TestResponder_ProviderSuccess(t *testing.T) {
	req := require.New(t)

	provider := httptest.NewServer(completionHandler(t, "Sounds like a great plan!"))
	defer provider.Close()

	responder, code := newResponder(t, "sk-test", provider.URL)

	msg := responder.Respond(context.Background(), code, "we should meet at the tavern")
	req.Equal("Sounds like a great plan!", msg.Content)
	req.Equal(domain.RoleAssistant, msg.Role)
	req.Equal(domain.AssistantSender, msg.Sender)
	req.Equal(code, msg.LobbyCode)
}

func TestResponder_LongReplyTruncatedOnRuneBoundary(t *testing.T) {
	req := require.New(t)

	provider := httptest.NewServer(completionHandler(t, strings.Repeat("é", domain.MaxContentLength+50)))
	defer provider.Close()

	responder, code := newResponder(t, "sk-test", provider.URL)

	msg := responder.Respond(context.Background(), code, "hello")
	req.True(utf8.ValidString(msg.Content), "truncation must not split a rune")
	req.Equal(domain.MaxContentLength, utf8.RuneCountInString(msg.Content))
	req.Equal(strings.Repeat("é", domain.MaxContentLength), msg.Content)
}

func TestResponder_EmptyCompletionFallback(t *testing.T) {
	req := require.New(t)

	provider := httptest.NewServer(completionHandler(t, "   "))
	defer provider.Close()

	responder, code := newResponder(t, "sk-test", provider.URL)

	msg := responder.Respond(context.Background(), code, "hello")
	req.Equal(FallbackEmptyReply, msg.Content)
}

func TestResponder_NoChoicesFallback(t *testing.T) {
	req := require.New(t)

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer provider.Close()

	responder, code := newResponder(t, "sk-test", provider.URL)

	msg := responder.Respond(context.Background(), code, "hello")
	req.Equal(FallbackEmptyReply, msg.Content)
}

func TestResponder_ProviderFailureFallback(t *testing.T) {
	req := require.New(t)

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer provider.Close()

	responder, code := newResponder(t, "sk-test", provider.URL)

	msg := responder.Respond(context.Background(), code, "hello")
	req.Equal(FallbackUnavailable, msg.Content)
	req.Equal(domain.RoleAssistant, msg.Role)
}

func TestResponder_ProviderUnreachableFallback(t *testing.T) {
	req := require.New(t)

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	provider.Close() // connection refused from here on

	responder, code := newResponder(t, "sk-test", provider.URL)

	msg := responder.Respond(context.Background(), code, "hello")
	req.Equal(FallbackUnavailable, msg.Content)
}
