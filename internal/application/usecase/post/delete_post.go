package post

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/minhtran/feedgram/internal/application/service"
	"github.com/minhtran/feedgram/internal/domain/post"
	"github.com/minhtran/feedgram/pkg/apperror"
	"github.com/minhtran/feedgram/pkg/logger"
)

type DeletePostUseCase struct {
	postRepo post.Repository
	events   service.EventPublisher
	logger   logger.Logger
}

func NewDeletePostUseCase(repo post.Repository, events service.EventPublisher, log logger.Logger) *DeletePostUseCase {
	return &DeletePostUseCase{postRepo: repo, events: events, logger: log}
}

func (uc *DeletePostUseCase) Execute(ctx context.Context, postID, requesterID int64) error {
	authorID, err := uc.postRepo.AuthorID(ctx, postID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return apperror.NewNotFound("Post")
		}
		return err
	}

	if authorID != requesterID {
		return apperror.NewPermissionDenied("You can only delete your own post.")
	}

	if err := uc.postRepo.Delete(ctx, postID, requesterID); err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return apperror.NewNotFound("Post")
		}
		return err
	}

	uc.events.PublishPostEvent(ctx, service.PostEvent{
		Type:       service.PostDeleted,
		PostID:     postID,
		AuthorID:   authorID,
		OccurredAt: time.Now().UTC(),
	})

	uc.logger.Info("post deleted", zap.Int64("post_id", postID))
	return nil
}
