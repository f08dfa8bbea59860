package readstore

import (
	"context"

	"cinebook/internal/infra"
	"cinebook/internal/infra/db"
	"cinebook/internal/usecase/shared"

	"github.com/google/uuid"
)

// ShowtimeReadStore reads the showtime catalog, which is maintained
// outside this service and treated as read-only input.
type ShowtimeReadStore struct {
	db db.DBTX
}

func NewShowtimeReadStore(dbtx db.DBTX) *ShowtimeReadStore {
	return &ShowtimeReadStore{db: dbtx}
}

func (r *ShowtimeReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.ShowtimeSnapshot, error) {
	const query = `
		SELECT id, movie_title, screen_name, starts_at
		FROM showtimes
		WHERE id = $1
	`

	var snap shared.ShowtimeSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.MovieTitle, &snap.ScreenName, &snap.StartsAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("showtime not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find showtime by ID", err)
	}

	return &snap, nil
}
