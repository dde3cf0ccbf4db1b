package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Domenick1991/fanzone/internal/cache"
	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/Domenick1991/fanzone/internal/mocks"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) (*domain.Session, error) {
	return nil, errors.New("redis down")
}

func (failingStore) Save(context.Context, *domain.Session) error {
	return errors.New("redis down")
}

func newChatService(sessions SessionStore) (*Service, *mocks.ConversationRepository) {
	conversations := &mocks.ConversationRepository{}
	return NewService(newFixture().dispatcher, sessions, conversations, 10, zap.NewNop()), conversations
}

func TestService_Reply_NewSession(t *testing.T) {
	sessions := cache.NewMemorySessionStore(time.Minute)
	service, conversations := newChatService(sessions)
	ctx := context.Background()

	conversations.On("Create", ctx, mock.AnythingOfType("*domain.Conversation")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Conversation).ID = 9 }).
		Return(nil).Twice()
	conversations.On("AttachResponse", ctx, int64(9), greetingReply).Return(nil).Twice()

	first, err := service.Reply(ctx, "", "hello")
	require.NoError(t, err)
	assert.Equal(t, greetingReply, first.Response)
	require.NotEmpty(t, first.SessionID)

	second, err := service.Reply(ctx, first.SessionID, "hi")
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID)

	stored, err := sessions.Get(ctx, first.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Turn{
		{Role: domain.RoleUserTurn, Content: "hello"},
		{Role: domain.RoleAssistantTurn, Content: greetingReply},
		{Role: domain.RoleUserTurn, Content: "hi"},
		{Role: domain.RoleAssistantTurn, Content: greetingReply},
	}, stored.History)
	conversations.AssertExpectations(t)
}

func TestService_Reply_EmptyMessage(t *testing.T) {
	service, conversations := newChatService(cache.NewMemorySessionStore(time.Minute))

	_, err := service.Reply(context.Background(), "s1", "   ")

	assert.ErrorIs(t, err, domain.ErrValidation)
	conversations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Reply_PersistFailureApologizes(t *testing.T) {
	service, conversations := newChatService(cache.NewMemorySessionStore(time.Minute))
	conversations.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	reply, err := service.Reply(context.Background(), "s1", "hello")

	require.NoError(t, err)
	assert.Equal(t, apologyReply, reply.Response)
	conversations.AssertNotCalled(t, "AttachResponse", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Reply_SessionStoreFailure(t *testing.T) {
	service, conversations := newChatService(failingStore{})

	_, err := service.Reply(context.Background(), "s1", "hello")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrValidation)
	conversations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_History(t *testing.T) {
	service, conversations := newChatService(cache.NewMemorySessionStore(time.Minute))
	ctx := context.Background()
	answer := greetingReply
	conversations.On("ListBySession", ctx, "s1").Return([]domain.Conversation{
		{ID: 1, SessionID: "s1", UserMessage: "hello", BotMessage: &answer},
		{ID: 2, SessionID: "s1", UserMessage: "still there?"},
	}, nil).Once()

	turns, err := service.History(ctx, "s1")

	require.NoError(t, err)
	assert.Equal(t, []domain.Turn{
		{Role: domain.RoleUserTurn, Content: "hello"},
		{Role: domain.RoleAssistantTurn, Content: greetingReply},
		{Role: domain.RoleUserTurn, Content: "still there?"},
	}, turns)

	_, err = service.History(ctx, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
