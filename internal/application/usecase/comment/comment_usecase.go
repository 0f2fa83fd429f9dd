package comment

import (
	"context"
	"errors"
	"strings"

	"github.com/minhtran/feedgram/internal/domain/comment"
	"github.com/minhtran/feedgram/internal/domain/post"
	"github.com/minhtran/feedgram/pkg/apperror"
	"github.com/minhtran/feedgram/pkg/logger"
)

type CommentUseCase struct {
	commentRepo comment.Repository
	postRepo    post.Repository
	logger      logger.Logger
}

func NewCommentUseCase(cRepo comment.Repository, pRepo post.Repository, log logger.Logger) *CommentUseCase {
	return &CommentUseCase{commentRepo: cRepo, postRepo: pRepo, logger: log}
}

type ListInput struct {
	PostID   int64
	ViewerID *int64
	Page     int
	PageSize int
}

type ListOutput struct {
	Comments []*comment.Comment
	Total    int
	Page     int
	PageSize int
}

func (uc *CommentUseCase) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	exists, err := uc.postRepo.Exists(ctx, input.PostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NewNotFound("Post")
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

	comments, total, err := uc.commentRepo.ListByPost(ctx, input.PostID, input.ViewerID, size, (page-1)*size)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Comments: comments, Total: total, Page: page, PageSize: size}, nil
}

func validateContent(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	switch {
	case content == "":
		return "", apperror.NewValidation("Invalid request body.",
			apperror.FieldError{Field: "content", Reason: "required"})
	case len(content) > comment.MaxContentLen:
		return "", apperror.NewValidation("Invalid request body.",
			apperror.FieldError{Field: "content", Reason: "too_long"})
	}
	return content, nil
}

func (uc *CommentUseCase) Create(ctx context.Context, postID, authorID int64, rawContent string) (*comment.Comment, error) {
	content, err := validateContent(rawContent)
	if err != nil {
		return nil, err
	}

	exists, err := uc.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NewNotFound("Post")
	}

	created, err := uc.commentRepo.Create(ctx, postID, authorID, content)
	if err != nil {
		return nil, err
	}
	created.EditableByMe = true
	return created, nil
}

func (uc *CommentUseCase) Update(ctx context.Context, commentID, requesterID int64, rawContent string) (*comment.Comment, error) {
	content, err := validateContent(rawContent)
	if err != nil {
		return nil, err
	}

	existing, err := uc.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, comment.ErrCommentNotFound) {
			return nil, apperror.NewNotFound("Comment")
		}
		return nil, err
	}

	if existing.Author.ID != requesterID {
		return nil, apperror.NewPermissionDenied("You can only edit your own comment.")
	}

	updated, err := uc.commentRepo.Update(ctx, commentID, content)
	if err != nil {
		if errors.Is(err, comment.ErrCommentNotFound) {
			return nil, apperror.NewNotFound("Comment")
		}
		return nil, err
	}
	updated.EditableByMe = true
	return updated, nil
}

// Delete allows both the comment author and the post author to remove a
// comment.
func (uc *CommentUseCase) Delete(ctx context.Context, commentID, requesterID int64) error {
	existing, err := uc.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, comment.ErrCommentNotFound) {
			return apperror.NewNotFound("Comment")
		}
		return err
	}

	if existing.Author.ID != requesterID {
		postAuthorID, err := uc.postRepo.AuthorID(ctx, existing.PostID)
		if err != nil && !errors.Is(err, post.ErrPostNotFound) {
			return err
		}
		if err != nil || postAuthorID != requesterID {
			return apperror.NewPermissionDenied("You can only delete your own comment.")
		}
	}

	if err := uc.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, comment.ErrCommentNotFound) {
			return apperror.NewNotFound("Comment")
		}
		return err
	}
	return nil
}
