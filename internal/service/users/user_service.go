package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/Domenick1991/fanzone/internal/repository"
)

const minPasswordLength = 8

type UseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(token string) (domain.Principal, error)
	Me(ctx context.Context, actor domain.Principal) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type RegisterInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	PhoneNumber     string `json:"phone_number"`
	Address         string `json:"address"`
}

func (in RegisterInput) validate() error {
	switch {
	case strings.TrimSpace(in.Username) == "":
		return domain.NewValidationError("username is required")
	case in.Email == "":
		return domain.NewValidationError("email is required")
	case len(in.Password) < minPasswordLength:
		return domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	case in.Password != in.ConfirmPassword:
		return domain.NewValidationError("passwords do not match")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return domain.NewValidationError("email is invalid")
	}
	return nil
}

// UpdateInput carries the admin-editable fields. Nil fields are left unchanged.
type UpdateInput struct {
	Email       *string      `json:"email"`
	Role        *domain.Role `json:"role"`
	PhoneNumber *string      `json:"phone_number"`
	Address     *string      `json:"address"`
}

type UserService struct {
	users  repository.UserRepository
	tokens *TokenIssuer
	logger *zap.Logger
}

func NewUserService(users repository.UserRepository, tokens *TokenIssuer, logger *zap.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, logger: logger}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		PhoneNumber:  input.PhoneNumber,
		Address:      input.Address,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("username or email already registered: %w", domain.ErrConflict)
		}
		return nil, err
	}
	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login checks the credentials and returns a signed token.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)
	}
	return s.tokens.Issue(user)
}

func (s *UserService) Authenticate(token string) (domain.Principal, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return domain.Principal{}, err
	}
	return claims.Principal(), nil
}

func (s *UserService) Me(ctx context.Context, actor domain.Principal) (*domain.User, error) {
	return s.users.GetByID(ctx, actor.UserID)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id int64, input UpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Email != nil {
		if _, err := mail.ParseAddress(*input.Email); err != nil {
			return nil, domain.NewValidationError("email is invalid")
		}
		user.Email = *input.Email
	}
	if input.Role != nil {
		if *input.Role != domain.RoleUser && *input.Role != domain.RoleAdmin {
			return nil, domain.NewValidationError("unknown role " + string(*input.Role))
		}
		user.Role = *input.Role
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

var _ UseCase = (*UserService)(nil)
