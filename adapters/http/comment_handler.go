package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	commentUC "github.com/minhtran/feedgram/internal/application/usecase/comment"
	"github.com/minhtran/feedgram/pkg/apperror"
)

type CommentHandler struct {
	commentUseCase *commentUC.CommentUseCase
}

func NewCommentHandler(uc *commentUC.CommentUseCase) *CommentHandler {
	return &CommentHandler{commentUseCase: uc}
}

func (h *CommentHandler) List(c *gin.Context) {
	postID, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	page, err := intQuery(c, "page", 1)
	if err != nil {
		c.Error(apperror.NewValidation("Invalid pagination."))
		return
	}
	pageSize, err := intQuery(c, "pageSize", 50)
	if err != nil {
		c.Error(apperror.NewValidation("Invalid pagination."))
		return
	}

	output, err := h.commentUseCase.List(c.Request.Context(), commentUC.ListInput{
		PostID:   postID,
		ViewerID: ViewerPtr(c),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":    output.Comments,
		"total":    output.Total,
		"page":     output.Page,
		"pageSize": output.PageSize,
	})
}

func (h *CommentHandler) Create(c *gin.Context) {
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

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("Invalid request body."))
		return
	}

	created, err := h.commentUseCase.Create(c.Request.Context(), postID, viewerID, req.Content)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CommentHandler) Update(c *gin.Context) {
	viewerID, ok := GetViewerID(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("Unauthorized."))
		return
	}

	commentID, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("Invalid request body."))
		return
	}

	updated, err := h.commentUseCase.Update(c.Request.Context(), commentID, viewerID, req.Content)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	viewerID, ok := GetViewerID(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("Unauthorized."))
		return
	}

	commentID, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.commentUseCase.Delete(c.Request.Context(), commentID, viewerID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true, "commentId": commentID})
}
