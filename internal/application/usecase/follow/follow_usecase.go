package follow

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/minhtran/feedgram/internal/application/service"
	"github.com/minhtran/feedgram/internal/domain/follow"
	"github.com/minhtran/feedgram/internal/domain/user"
	"github.com/minhtran/feedgram/pkg/apperror"
	"github.com/minhtran/feedgram/pkg/logger"
)

type FollowUseCase struct {
	followRepo follow.Repository
	userRepo   user.Repository
	events     service.EventPublisher
	logger     logger.Logger
}

func NewFollowUseCase(fRepo follow.Repository, uRepo user.Repository, events service.EventPublisher, log logger.Logger) *FollowUseCase {
	return &FollowUseCase{followRepo: fRepo, userRepo: uRepo, events: events, logger: log}
}

func (uc *FollowUseCase) ensureExists(ctx context.Context, userID int64) error {
	_, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return apperror.NewNotFound("User")
		}
		return err
	}
	return nil
}

// Status reports whether the viewer follows the target. No viewer means
// "not following", never an error.
func (uc *FollowUseCase) Status(ctx context.Context, viewerID *int64, targetID int64) (bool, error) {
	if err := uc.ensureExists(ctx, targetID); err != nil {
		return false, err
	}
	if viewerID == nil {
		return false, nil
	}
	return uc.followRepo.IsFollowing(ctx, *viewerID, targetID)
}

// Follow is idempotent; created reports whether a new edge appeared.
func (uc *FollowUseCase) Follow(ctx context.Context, followerID, targetID int64) (bool, error) {
	if followerID == targetID {
		return false, apperror.NewValidation("Cannot follow yourself.")
	}
	if err := uc.ensureExists(ctx, targetID); err != nil {
		return false, err
	}

	created, err := uc.followRepo.Follow(ctx, followerID, targetID)
	if err != nil {
		return false, err
	}

	if created {
		uc.events.PublishFollowEvent(ctx, service.FollowEvent{
			Type:       service.UserFollowed,
			FollowerID: followerID,
			FolloweeID: targetID,
			OccurredAt: time.Now().UTC(),
		})
		uc.logger.Info("user followed", zap.Int64("follower_id", followerID), zap.Int64("followee_id", targetID))
	}
	return created, nil
}

func (uc *FollowUseCase) Unfollow(ctx context.Context, followerID, targetID int64) error {
	if followerID == targetID {
		return apperror.NewValidation("Cannot unfollow yourself.")
	}
	if err := uc.ensureExists(ctx, targetID); err != nil {
		return err
	}

	if err := uc.followRepo.Unfollow(ctx, followerID, targetID); err != nil {
		return err
	}

	uc.events.PublishFollowEvent(ctx, service.FollowEvent{
		Type:       service.UserUnfollowed,
		FollowerID: followerID,
		FolloweeID: targetID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}
