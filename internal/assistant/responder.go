// Package assistant produces the automated second message that follows each
// human chat message: a real completion when the lobby has a credential, a
// fixed fallback otherwise. Respond never fails; every user message yields
// exactly one deliverable assistant message.
package assistant

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/calderahq/hearth/internal/domain"
	"go.uber.org/zap"
)

const (
	systemPrompt = "You are the DM of a casual group chat lobby. Give short, encouraging replies in a lobby-chat persona."

	// FallbackNotConfigured is persisted and broadcast like a real reply so
	// the chat log stays complete and clients need no special case.
	FallbackNotConfigured = "No automated reply is configured for this lobby"
	// FallbackEmptyReply covers a provider success that carried no usable text.
	FallbackEmptyReply = "Ready to keep chatting!"
	// FallbackUnavailable covers every provider failure; callers never see
	// provider-level error detail.
	FallbackUnavailable = "The DM is unavailable right now"
)

type Responder struct {
	registry domain.LobbyRegistry
	client   CompletionClient
	logger   *zap.SugaredLogger
}

func NewResponder(registry domain.LobbyRegistry, client CompletionClient, logger *zap.SugaredLogger) *Responder {
	return &Responder{
		registry: registry,
		client:   client,
		logger:   logger,
	}
}

// Respond produces the assistant message for one user message. Each call is
// stateless: only the triggering content is sent, never prior turns, so the
// assistant does not remember the conversation.
func (r *Responder) Respond(ctx context.Context, code, userContent string) *domain.Message {
	credential, ok := r.registry.Credential(code)
	if !ok {
		return domain.NewMessage(code, domain.AssistantSender, domain.RoleAssistant, FallbackNotConfigured)
	}

	reply, err := r.client.Complete(ctx, credential, systemPrompt, userContent)
	if err != nil {
		r.logger.Errorw("assistant completion failed", "lobby", code, "error", err)
		return domain.NewMessage(code, domain.AssistantSender, domain.RoleAssistant, FallbackUnavailable)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = FallbackEmptyReply
	}
	if utf8.RuneCountInString(reply) > domain.MaxContentLength {
		// Truncate on a rune boundary so a multibyte reply never ships a
		// broken trailing character.
		runes := []rune(reply)
		reply = string(runes[:domain.MaxContentLength])
	}

	return domain.NewMessage(code, domain.AssistantSender, domain.RoleAssistant, reply)
}
