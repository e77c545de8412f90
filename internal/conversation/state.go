package conversation

import (
	"strings"

	"github.com/DebasishDas1/HVAC-Lead/internal/llm"
)

// ClosingNotice is appended to the assistant response once a lead has been
// recorded, and returned verbatim on any later message in the same session.
const ClosingNotice = "Our team has received your request and will contact you shortly to schedule your service."

// UserInfo identifies the prospect attached to a session.
type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// State is the conversation state kept per session. Messages are append-only
// and the qualified flag is monotonic: once set it stays set for the life of
// the session.
type State struct {
	SessionID   string            `json:"session_id"`
	User        UserInfo          `json:"user"`
	Messages    []llm.ChatMessage `json:"messages"`
	AIResponse  string            `json:"ai_response,omitempty"`
	Qualified   bool              `json:"is_qualified"`
	ServiceType string            `json:"service_type,omitempty"`
	Urgency     string            `json:"urgency_level,omitempty"`
}

// NewState creates empty conversation state for a fresh session.
func NewState(sessionID string, user UserInfo) *State {
	return &State{
		SessionID: sessionID,
		User:      user,
	}
}

// AppendUser adds a user turn to the transcript history.
func (s *State) AppendUser(content string) {
	s.Messages = append(s.Messages, llm.ChatMessage{Role: llm.ChatRoleUser, Content: content})
}

// AppendAssistant adds an assistant turn to the transcript history.
func (s *State) AppendAssistant(content string) {
	s.Messages = append(s.Messages, llm.ChatMessage{Role: llm.ChatRoleAssistant, Content: content})
}

// Transcript flattens the message history into one "role: content" line per
// turn, in original order.
func (s *State) Transcript() string {
	lines := make([]string, 0, len(s.Messages))
	for _, msg := range s.Messages {
		lines = append(lines, msg.Role+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}

// Clone returns a deep copy so stored state cannot be mutated through aliases.
func (s *State) Clone() *State {
	out := *s
	out.Messages = make([]llm.ChatMessage, len(s.Messages))
	copy(out.Messages, s.Messages)
	return &out
}
