package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/fanzone/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

type PGUserRepository struct {
	db DB
}

func NewUserRepository(db DB) UserRepository {
	return &PGUserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, role, phone_number, address, created_at, updated_at`

func userDest(u *domain.User) []any {
	return []any{&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.PhoneNumber, &u.Address, &u.CreatedAt, &u.UpdatedAt}
}

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `INSERT INTO users (username, email, password_hash, role, phone_number, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		user.Username, user.Email, user.PasswordHash, string(user.Role), user.PhoneNumber, user.Address).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return translate("insert user", err)
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id).Scan(userDest(&u)...); err != nil {
		return nil, translate(fmt.Sprintf("get user %d", id), err)
	}
	return &u, nil
}

func (r *PGUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	if err := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username).Scan(userDest(&u)...); err != nil {
		return nil, translate("get user "+username, err)
	}
	return &u, nil
}

func (r *PGUserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, translate("list users", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(userDest(&u)...); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PGUserRepository) Update(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `UPDATE users SET email = $1, role = $2, phone_number = $3, address = $4, updated_at = now()
		WHERE id = $5
		RETURNING created_at, updated_at`,
		user.Email, string(user.Role), user.PhoneNumber, user.Address, user.ID).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	return translate(fmt.Sprintf("update user %d", user.ID), err)
}

func (r *PGUserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translate(fmt.Sprintf("delete user %d", id), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete user %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

var _ UserRepository = (*PGUserRepository)(nil)
