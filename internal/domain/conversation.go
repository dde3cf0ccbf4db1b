package domain

import "time"

type Conversation struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	UserMessage string    `json:"user_message"`
	BotMessage  *string   `json:"bot_message"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	RoleUserTurn      = "user"
	RoleAssistantTurn = "assistant"
)

type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is the per-conversation dispatcher state.
type Session struct {
	ID           string    `json:"id"`
	LastLocation string    `json:"last_location,omitempty"`
	History      []Turn    `json:"history"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Append records a turn, keeping at most limit turns when limit > 0.
func (s *Session) Append(role, content string, limit int) {
	s.History = append(s.History, Turn{Role: role, Content: content})
	if limit > 0 && len(s.History) > limit {
		s.History = append([]Turn(nil), s.History[len(s.History)-limit:]...)
	}
}
