package follow

import "context"

type Repository interface {
	IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error)

	// Follow is idempotent; created reports whether a new edge was inserted.
	Follow(ctx context.Context, followerID, followeeID int64) (created bool, err error)

	// Unfollow is idempotent; removing an absent edge is not an error.
	Unfollow(ctx context.Context, followerID, followeeID int64) error
}
