package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhtran/feedgram/internal/domain/follow"
	"github.com/minhtran/feedgram/pkg/apperror"
)

type postgresFollowRepo struct {
	db *pgxpool.Pool
}

func NewPostgresFollowRepo(db *pgxpool.Pool) follow.Repository {
	return &postgresFollowRepo{db: db}
}

func (r *postgresFollowRepo) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`,
		followerID, followeeID,
	).Scan(&exists)
	if err != nil {
		return false, apperror.NewUnavailable("failed to check follow edge", err)
	}
	return exists, nil
}

func (r *postgresFollowRepo) Follow(ctx context.Context, followerID, followeeID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		followerID, followeeID,
	)
	if err != nil {
		return false, apperror.NewUnavailable("failed to insert follow edge", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresFollowRepo) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`,
		followerID, followeeID,
	)
	if err != nil {
		return apperror.NewUnavailable("failed to delete follow edge", err)
	}
	return nil
}
