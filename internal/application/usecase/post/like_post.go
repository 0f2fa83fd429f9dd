package post

import (
	"context"
	"errors"

	"github.com/minhtran/feedgram/internal/domain/post"
	"github.com/minhtran/feedgram/pkg/apperror"
	"github.com/minhtran/feedgram/pkg/logger"
)

type LikePostUseCase struct {
	postRepo post.Repository
	logger   logger.Logger
}

func NewLikePostUseCase(repo post.Repository, log logger.Logger) *LikePostUseCase {
	return &LikePostUseCase{postRepo: repo, logger: log}
}

type LikeOutput struct {
	Liked bool
	Likes int
}

func (uc *LikePostUseCase) Like(ctx context.Context, postID, userID int64) (*LikeOutput, error) {
	likes, err := uc.postRepo.Like(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return nil, apperror.NewNotFound("Post")
		}
		return nil, err
	}
	return &LikeOutput{Liked: true, Likes: likes}, nil
}

func (uc *LikePostUseCase) Unlike(ctx context.Context, postID, userID int64) (*LikeOutput, error) {
	likes, err := uc.postRepo.Unlike(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return nil, apperror.NewNotFound("Post")
		}
		return nil, err
	}
	return &LikeOutput{Liked: false, Likes: likes}, nil
}
