package post

import (
	"context"
	"errors"
	"time"

	"github.com/minhtran/feedgram/internal/domain/user"
)

const (
	MaxContentLen = 500
	MaxPictureLen = 1024
)

var ErrPostNotFound = errors.New("post not found")

type Post struct {
	ID           int64        `json:"postId"`
	Author       user.Summary `json:"author"`
	Picture      *string      `json:"picture"`
	Content      string       `json:"content"`
	Likes        int          `json:"likes"`
	CreatedAt    time.Time    `json:"createdAt"`
	LikedByMe    bool         `json:"likedByMe"`
	CommentCount int          `json:"commentCount"`
}

// Liker is one row of GET /posts/:id/likers.
type Liker struct {
	user.Summary
	FollowedByMe *bool `json:"followedByMe,omitempty"`
}

type Repository interface {
	List(ctx context.Context, viewerID *int64, limit, offset int) ([]*Post, int, error)
	FindByID(ctx context.Context, id int64, viewerID *int64) (*Post, error)
	Create(ctx context.Context, authorID int64, picture *string, content string) (*Post, error)
	AuthorID(ctx context.Context, postID int64) (int64, error)
	Delete(ctx context.Context, postID, authorID int64) error
	Exists(ctx context.Context, postID int64) (bool, error)

	// Like and Unlike are idempotent and return the resulting like count.
	Like(ctx context.Context, postID, userID int64) (int, error)
	Unlike(ctx context.Context, postID, userID int64) (int, error)
	Likers(ctx context.Context, postID int64, viewerID *int64, limit, offset int) ([]Liker, int, error)
}
