package post

import (
	"context"
	"errors"

	"github.com/minhtran/feedgram/internal/domain/post"
	"github.com/minhtran/feedgram/pkg/apperror"
	"github.com/minhtran/feedgram/pkg/logger"
)

type ListLikersUseCase struct {
	postRepo post.Repository
	logger   logger.Logger
}

func NewListLikersUseCase(repo post.Repository, log logger.Logger) *ListLikersUseCase {
	return &ListLikersUseCase{postRepo: repo, logger: log}
}

type ListLikersInput struct {
	PostID   int64
	ViewerID *int64

	// Limit > 0 selects the hover-preview mode: first Limit likers, no
	// paging. Otherwise Page/PageSize apply.
	Limit    int
	Page     int
	PageSize int
}

type ListLikersOutput struct {
	Likers   []post.Liker
	Total    int
	Limit    int
	Page     int
	PageSize int
}

func (uc *ListLikersUseCase) Execute(ctx context.Context, input ListLikersInput) (*ListLikersOutput, error) {
	exists, err := uc.postRepo.Exists(ctx, input.PostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NewNotFound("Post")
	}

	if input.Limit > 0 {
		limit := input.Limit
		if limit > 50 {
			limit = 50
		}
		likers, total, err := uc.postRepo.Likers(ctx, input.PostID, input.ViewerID, limit, 0)
		if err != nil {
			return nil, uc.wrap(err)
		}
		return &ListLikersOutput{Likers: likers, Total: total, Limit: limit}, nil
	}

	page := input.Page
	size := input.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 50
	}
	if size > 200 {
		size = 200
	}

	likers, total, err := uc.postRepo.Likers(ctx, input.PostID, input.ViewerID, size, (page-1)*size)
	if err != nil {
		return nil, uc.wrap(err)
	}
	return &ListLikersOutput{Likers: likers, Total: total, Page: page, PageSize: size}, nil
}

func (uc *ListLikersUseCase) wrap(err error) error {
	if errors.Is(err, post.ErrPostNotFound) {
		return apperror.NewNotFound("Post")
	}
	return err
}
