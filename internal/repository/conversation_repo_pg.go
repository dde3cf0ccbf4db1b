package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/fanzone/internal/domain"
)

type ConversationRepository interface {
	Create(ctx context.Context, conv *domain.Conversation) error
	AttachResponse(ctx context.Context, id int64, response string) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.Conversation, error)
}

type PGConversationRepository struct {
	db DB
}

func NewConversationRepository(db DB) ConversationRepository {
	return &PGConversationRepository{db: db}
}

func (r *PGConversationRepository) Create(ctx context.Context, conv *domain.Conversation) error {
	err := r.db.QueryRow(ctx, `INSERT INTO conversations (session_id, user_message) VALUES ($1, $2) RETURNING id, created_at`,
		conv.SessionID, conv.UserMessage).Scan(&conv.ID, &conv.CreatedAt)
	return translate("insert conversation", err)
}

// AttachResponse sets the bot message once; a row that already has one is left alone.
func (r *PGConversationRepository) AttachResponse(ctx context.Context, id int64, response string) error {
	tag, err := r.db.Exec(ctx, `UPDATE conversations SET bot_message = $1 WHERE id = $2 AND bot_message IS NULL`, response, id)
	if err != nil {
		return translate(fmt.Sprintf("attach response %d", id), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("attach response %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *PGConversationRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.Conversation, error) {
	rows, err := r.db.Query(ctx, `SELECT id, session_id, user_message, bot_message, created_at FROM conversations WHERE session_id = $1 ORDER BY id`, sessionID)
	if err != nil {
		return nil, translate("list conversations", err)
	}
	defer rows.Close()

	convs := make([]domain.Conversation, 0)
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(&c.ID, &c.SessionID, &c.UserMessage, &c.BotMessage, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

var _ ConversationRepository = (*PGConversationRepository)(nil)
