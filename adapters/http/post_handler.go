package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	postUC "github.com/minhtran/feedgram/internal/application/usecase/post"
	"github.com/minhtran/feedgram/pkg/apperror"
)

type PostHandler struct {
	createPostUseCase *postUC.CreatePostUseCase
	listPostsUseCase  *postUC.ListPostsUseCase
	deletePostUseCase *postUC.DeletePostUseCase
	likePostUseCase   *postUC.LikePostUseCase
	listLikersUseCase *postUC.ListLikersUseCase
}

func NewPostHandler(
	createUC *postUC.CreatePostUseCase,
	listUC *postUC.ListPostsUseCase,
	deleteUC *postUC.DeletePostUseCase,
	likeUC *postUC.LikePostUseCase,
	likersUC *postUC.ListLikersUseCase,
) *PostHandler {
	return &PostHandler{
		createPostUseCase: createUC,
		listPostsUseCase:  listUC,
		deletePostUseCase: deleteUC,
		likePostUseCase:   likeUC,
		listLikersUseCase: likersUC,
	}
}

func (h *PostHandler) List(c *gin.Context) {
	page, err := intQuery(c, "page", 1)
	if err != nil {
		c.Error(apperror.NewValidation("Invalid pagination."))
		return
	}
	pageSize, err := intQuery(c, "pageSize", 20)
	if err != nil {
		c.Error(apperror.NewValidation("Invalid pagination."))
		return
	}

	output, err := h.listPostsUseCase.Execute(c.Request.Context(), postUC.ListPostsInput{
		ViewerID: ViewerPtr(c),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":    output.Posts,
		"page":     output.Page,
		"pageSize": output.PageSize,
		"total":    output.Total,
	})
}

func (h *PostHandler) Create(c *gin.Context) {
	viewerID, ok := GetViewerID(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("Unauthorized."))
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("Invalid request body."))
		return
	}

	created, err := h.createPostUseCase.Execute(c.Request.Context(), postUC.CreatePostInput{
		AuthorID: viewerID,
		Picture:  req.Picture,
		Content:  req.Content,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *PostHandler) Delete(c *gin.Context) {
	viewerID, ok := GetViewerID(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("Unauthorized."))
		return
	}

	postID, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.deletePostUseCase.Execute(c.Request.Context(), postID, viewerID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true, "postId": postID})
}

func (h *PostHandler) Like(c *gin.Context) {
	viewerID, ok := GetViewerID(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("Unauthorized."))
		return
	}

	postID, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	output, err := h.likePostUseCase.Like(c.Request.Context(), postID, viewerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": output.Liked, "likes": output.Likes})
}

func (h *PostHandler) Unlike(c *gin.Context) {
	viewerID, ok := GetViewerID(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("Unauthorized."))
		return
	}

	postID, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	output, err := h.likePostUseCase.Unlike(c.Request.Context(), postID, viewerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": output.Liked, "likes": output.Likes})
}

// Likers serves both the hover preview (?limit=8) and the paged modal
// (?page=1&pageSize=200).
func (h *PostHandler) Likers(c *gin.Context) {
	postID, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	input := postUC.ListLikersInput{PostID: postID, ViewerID: ViewerPtr(c)}

	if raw := c.Query("limit"); raw != "" {
		limit, err := intQuery(c, "limit", 8)
		if err != nil {
			c.Error(apperror.NewValidation("Invalid limit."))
			return
		}
		if limit < 1 {
			limit = 8
		}
		input.Limit = limit

		output, err := h.listLikersUseCase.Execute(c.Request.Context(), input)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": output.Likers, "total": output.Total, "limit": output.Limit})
		return
	}

	input.Page, err = intQuery(c, "page", 1)
	if err != nil {
		c.Error(apperror.NewValidation("Invalid pagination."))
		return
	}
	input.PageSize, err = intQuery(c, "pageSize", 200)
	if err != nil {
		c.Error(apperror.NewValidation("Invalid pagination."))
		return
	}

	output, err := h.listLikersUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":    output.Likers,
		"total":    output.Total,
		"page":     output.Page,
		"pageSize": output.PageSize,
	})
}
