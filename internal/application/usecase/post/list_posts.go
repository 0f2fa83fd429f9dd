package post

import (
	"context"

	"github.com/minhtran/feedgram/internal/domain/post"
	"github.com/minhtran/feedgram/pkg/logger"
)

type ListPostsUseCase struct {
	postRepo post.Repository
	logger   logger.Logger
}

func NewListPostsUseCase(repo post.Repository, log logger.Logger) *ListPostsUseCase {
	return &ListPostsUseCase{postRepo: repo, logger: log}
}

type ListPostsInput struct {
	ViewerID *int64
	Page     int
	PageSize int
}

type ListPostsOutput struct {
	Posts    []*post.Post
	Page     int
	PageSize int
	Total    int
}

func (uc *ListPostsUseCase) Execute(ctx context.Context, input ListPostsInput) (*ListPostsOutput, error) {
	page := input.Page
	size := input.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}

	posts, total, err := uc.postRepo.List(ctx, input.ViewerID, size, (page-1)*size)
	if err != nil {
		return nil, err
	}

	return &ListPostsOutput{Posts: posts, Page: page, PageSize: size, Total: total}, nil
}
