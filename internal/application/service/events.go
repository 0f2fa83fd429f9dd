package service

import (
	"context"
	"time"
)

const (
	PostCreated    = "post.created"
	PostDeleted    = "post.deleted"
	UserFollowed   = "user.followed"
	UserUnfollowed = "user.unfollowed"
)

type PostEvent struct {
	Type       string    `json:"type"`
	PostID     int64     `json:"postId"`
	AuthorID   int64     `json:"authorId"`
	OccurredAt time.Time `json:"occurredAt"`
}

type FollowEvent struct {
	Type       string    `json:"type"`
	FollowerID int64     `json:"followerId"`
	FolloweeID int64     `json:"followeeId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher emits best-effort domain events. Publish failures must not
// fail the originating request; implementations log and move on.
type EventPublisher interface {
	PublishPostEvent(ctx context.Context, e PostEvent)
	PublishFollowEvent(ctx context.Context, e FollowEvent)
}
