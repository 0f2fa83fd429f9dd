package comment

import (
	"context"
	"errors"
	"time"

	"github.com/minhtran/feedgram/internal/domain/user"
)

const MaxContentLen = 1024

var ErrCommentNotFound = errors.New("comment not found")

type Comment struct {
	ID           int64        `json:"commentId"`
	PostID       int64        `json:"postId"`
	Content      string       `json:"content"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    *time.Time   `json:"updatedAt"`
	Edited       bool         `json:"edited"`
	Author       user.Summary `json:"author"`
	EditableByMe bool         `json:"editableByMe"`
}

type Repository interface {
	// ListByPost orders comments oldest first (created_at ASC, id ASC).
	ListByPost(ctx context.Context, postID int64, viewerID *int64, limit, offset int) ([]*Comment, int, error)
	FindByID(ctx context.Context, id int64) (*Comment, error)
	Create(ctx context.Context, postID, authorID int64, content string) (*Comment, error)
	Update(ctx context.Context, id int64, content string) (*Comment, error)
	Delete(ctx context.Context, id int64) error
}
