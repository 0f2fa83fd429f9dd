package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userUC "github.com/minhtran/feedgram/internal/application/usecase/user"
	"github.com/minhtran/feedgram/pkg/apperror"
)

type UserHandler struct {
	userUseCase *userUC.UserUseCase
}

func NewUserHandler(uc *userUC.UserUseCase) *UserHandler {
	return &UserHandler{userUseCase: uc}
}

func (h *UserHandler) Me(c *gin.Context) {
	viewerID, ok := GetViewerID(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("Unauthorized."))
		return
	}

	u, err := h.userUseCase.Get(c.Request.Context(), viewerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	viewerID, ok := GetViewerID(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("Unauthorized."))
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("Invalid request body."))
		return
	}

	u, err := h.userUseCase.UpdateProfile(c.Request.Context(), userUC.UpdateProfileInput{
		UserID:      viewerID,
		DisplayName: req.UserName,
		Bio:         req.Bio,
		ProfilePic:  req.ProfilePic,
		BannerPic:   req.BannerPic,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	u, err := h.userUseCase.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, u)
}
