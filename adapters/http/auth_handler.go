package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authUC "github.com/minhtran/feedgram/internal/application/usecase/auth"
	"github.com/minhtran/feedgram/pkg/apperror"
)

const refreshCookiePath = "/api/v1/auth"

type AuthHandler struct {
	registerUseCase *authUC.RegisterUseCase
	loginUseCase    *authUC.LoginUseCase
	sessionUseCase  *authUC.SessionUseCase
	cookieName      string
	refreshLifespan time.Duration
}

func NewAuthHandler(
	registerUC *authUC.RegisterUseCase,
	loginUC *authUC.LoginUseCase,
	sessionUC *authUC.SessionUseCase,
	cookieName string,
	refreshLifespan time.Duration,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase: registerUC,
		loginUseCase:    loginUC,
		sessionUseCase:  sessionUC,
		cookieName:      cookieName,
		refreshLifespan: refreshLifespan,
	}
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetCookie(h.cookieName, token, int(h.refreshLifespan.Seconds()), refreshCookiePath, "", false, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(h.cookieName, "", -1, refreshCookiePath, "", false, true)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("Invalid request body."))
		return
	}

	output, err := h.registerUseCase.Execute(c.Request.Context(), authUC.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.UserName,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.setRefreshCookie(c, output.RefreshToken)
	c.JSON(http.StatusCreated, gin.H{
		"accessToken": output.AccessToken,
		"user":        output.User,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("Invalid request body."))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.setRefreshCookie(c, output.RefreshToken)
	c.JSON(http.StatusOK, gin.H{
		"accessToken": output.AccessToken,
		"user":        output.User,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	token, _ := c.Cookie(h.cookieName)

	output, err := h.sessionUseCase.Refresh(c.Request.Context(), token)
	if err != nil {
		c.Error(err)
		return
	}

	h.setRefreshCookie(c, output.RefreshToken)
	c.JSON(http.StatusOK, gin.H{"accessToken": output.AccessToken})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookieName)

	if err := h.sessionUseCase.Logout(c.Request.Context(), token); err != nil {
		c.Error(err)
		return
	}

	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
