package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	followUC "github.com/minhtran/feedgram/internal/application/usecase/follow"
	"github.com/minhtran/feedgram/pkg/apperror"
)

type FollowHandler struct {
	followUseCase *followUC.FollowUseCase
}

func NewFollowHandler(uc *followUC.FollowUseCase) *FollowHandler {
	return &FollowHandler{followUseCase: uc}
}

func (h *FollowHandler) Status(c *gin.Context) {
	targetID, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	followed, err := h.followUseCase.Status(c.Request.Context(), ViewerPtr(c), targetID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": targetID, "followedByMe": followed})
}

func (h *FollowHandler) Follow(c *gin.Context) {
	viewerID, ok := GetViewerID(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("Unauthorized."))
		return
	}

	targetID, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	created, err := h.followUseCase.Follow(c.Request.Context(), viewerID, targetID)
	if err != nil {
		c.Error(err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"followed": true})
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	viewerID, ok := GetViewerID(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("Unauthorized."))
		return
	}

	targetID, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.followUseCase.Unfollow(c.Request.Context(), viewerID, targetID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"followed": false})
}
