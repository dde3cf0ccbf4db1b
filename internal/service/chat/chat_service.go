package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/Domenick1991/fanzone/internal/repository"
)

type UseCase interface {
	Reply(ctx context.Context, sessionID, message string) (*Reply, error)
	History(ctx context.Context, sessionID string) ([]domain.Turn, error)
}

// SessionStore returns domain.ErrNotFound for unknown or expired sessions.
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
}

type Reply struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

type Service struct {
	dispatcher    *Dispatcher
	sessions      SessionStore
	conversations repository.ConversationRepository
	historyLimit  int
	logger        *zap.Logger
}

func NewService(dispatcher *Dispatcher, sessions SessionStore, conversations repository.ConversationRepository, historyLimit int, logger *zap.Logger) *Service {
	return &Service{
		dispatcher:    dispatcher,
		sessions:      sessions,
		conversations: conversations,
		historyLimit:  historyLimit,
		logger:        logger,
	}
}

// Reply answers message within the session, issuing a new session id when
// sessionID is empty. Session store failures are returned; every other fault
// is answered with an apology.
func (s *Service) Reply(ctx context.Context, sessionID, message string) (*Reply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, domain.NewValidationError("message is required")
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		session, err = &domain.Session{ID: sessionID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var response string
	conv := &domain.Conversation{SessionID: sessionID, UserMessage: message}
	if err := s.conversations.Create(ctx, conv); err != nil {
		s.logger.Error("failed to store conversation", zap.String("session_id", sessionID), zap.Error(err))
		response = apologyReply
	} else {
		response = s.dispatcher.Handle(ctx, session, message)
		if err := s.conversations.AttachResponse(ctx, conv.ID, response); err != nil {
			s.logger.Error("failed to store chat response", zap.Int64("conversation_id", conv.ID), zap.Error(err))
		}
	}

	session.Append(domain.RoleUserTurn, message, s.historyLimit)
	session.Append(domain.RoleAssistantTurn, response, s.historyLimit)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &Reply{Response: response, SessionID: sessionID}, nil
}

// History returns the stored turns of a session, oldest first.
func (s *Service) History(ctx context.Context, sessionID string) ([]domain.Turn, error) {
	if sessionID == "" {
		return nil, domain.NewValidationError("session_id is required")
	}
	convs, err := s.conversations.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	turns := make([]domain.Turn, 0, 2*len(convs))
	for _, c := range convs {
		turns = append(turns, domain.Turn{Role: domain.RoleUserTurn, Content: c.UserMessage})
		if c.BotMessage != nil {
			turns = append(turns, domain.Turn{Role: domain.RoleAssistantTurn, Content: *c.BotMessage})
		}
	}
	return turns, nil
}

var _ UseCase = (*Service)(nil)
