package post

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/minhtran/feedgram/internal/application/service"
	"github.com/minhtran/feedgram/internal/domain/post"
	"github.com/minhtran/feedgram/pkg/apperror"
	"github.com/minhtran/feedgram/pkg/logger"
)

type CreatePostUseCase struct {
	postRepo post.Repository
	events   service.EventPublisher
	logger   logger.Logger
}

func NewCreatePostUseCase(repo post.Repository, events service.EventPublisher, log logger.Logger) *CreatePostUseCase {
	return &CreatePostUseCase{postRepo: repo, events: events, logger: log}
}

type CreatePostInput struct {
	AuthorID int64
	Picture  string
	Content  string
}

func (uc *CreatePostUseCase) Execute(ctx context.Context, input CreatePostInput) (*post.Post, error) {
	content := strings.TrimSpace(input.Content)
	picture := strings.TrimSpace(input.Picture)

	var details []apperror.FieldError
	switch {
	case content == "":
		details = append(details, apperror.FieldError{Field: "content", Reason: "required"})
	case len(content) > post.MaxContentLen:
		details = append(details, apperror.FieldError{Field: "content", Reason: "too_long"})
	}
	if len(picture) > post.MaxPictureLen {
		details = append(details, apperror.FieldError{Field: "picture", Reason: "too_long"})
	}
	if len(details) > 0 {
		return nil, apperror.NewValidation("Invalid request body.", details...)
	}

	var picturePtr *string
	if picture != "" {
		picturePtr = &picture
	}

	created, err := uc.postRepo.Create(ctx, input.AuthorID, picturePtr, content)
	if err != nil {
		return nil, err
	}

	uc.events.PublishPostEvent(ctx, service.PostEvent{
		Type:       service.PostCreated,
		PostID:     created.ID,
		AuthorID:   input.AuthorID,
		OccurredAt: time.Now().UTC(),
	})

	uc.logger.Info("post created", zap.Int64("post_id", created.ID), zap.Int64("author_id", input.AuthorID))
	return created, nil
}
