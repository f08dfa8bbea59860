package readstore

import (
	"context"

	"cinebook/internal/infra"
	"cinebook/internal/infra/db"
	"cinebook/internal/usecase/queries"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindAuthByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, error) {
	const query = `
		SELECT id, email, role, password_hash, is_guest
		FROM users
		WHERE email = $1
	`

	var view queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, query, email).Scan(
		&view.ID, &view.Email, &view.Role, &view.PasswordHash, &view.IsGuest,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user for auth", err)
	}

	return &view, nil
}
