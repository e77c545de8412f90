package conversation

import (
	"context"
	"errors"

	"github.com/DebasishDas1/HVAC-Lead/internal/llm"
)

// Responder formats a conversation for the configured structured backend and
// returns its qualification decision. Backend substitution (Gemini, OpenAI,
// a local model, or the fallback wrapper) happens behind llm.StructuredClient;
// this type never branches on provider.
type Responder struct {
	client llm.StructuredClient
}

// NewResponder creates a responder on top of a structured backend.
func NewResponder(client llm.StructuredClient) *Responder {
	if client == nil {
		panic("conversation: structured client cannot be nil")
	}
	return &Responder{client: client}
}

// Respond prepends the persona instruction to the ordered history and asks
// the backend for a decision. The backend guarantees schema shape; the
// decision arrives already normalized.
func (r *Responder) Respond(ctx context.Context, userName string, history []llm.ChatMessage) (llm.Decision, error) {
	if len(history) == 0 {
		return llm.Decision{}, errors.New("conversation: empty message history")
	}

	messages := make([]llm.ChatMessage, 0, len(history)+1)
	messages = append(messages, llm.ChatMessage{Role: llm.ChatRoleSystem, Content: personaPrompt(userName)})
	messages = append(messages, history...)

	return r.client.GenerateStructured(ctx, messages)
}
