package repository

import (
	"context"

	"cinebook/internal/domain/user"
	"cinebook/internal/infra"
	"cinebook/internal/infra/db"
	"cinebook/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	const query = `
		SELECT id, email, name, phone, is_guest
		FROM users
		WHERE email = $1
	`

	var snap shared.UserSnapshot
	err := r.db.QueryRow(ctx, query, email).Scan(
		&snap.ID, &snap.Email, &snap.Name, &snap.Phone, &snap.IsGuest,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}

	return &snap, nil
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	const query = `
		INSERT INTO users (id, email, name, phone, password_hash, role, is_guest, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
	`

	_, err := r.db.Exec(ctx, query,
		u.ID(),
		u.Email().Value(),
		u.Name(),
		u.Phone(),
		u.PasswordHash(),
		u.Role().String(),
		u.IsGuest(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create user", err)
	}

	return nil
}

func (r *UserRepository) UpdatePhone(ctx context.Context, id uuid.UUID, phone string) error {
	const query = `UPDATE users SET phone = $2, updated_at = now() WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, phone)
	if err != nil {
		return infra.WrapRepoErr("failed to update user phone", err)
	}

	return nil
}
