package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/minhtran/feedgram/pkg/apperror"
	"github.com/minhtran/feedgram/pkg/auth"
	"github.com/minhtran/feedgram/pkg/logger"
)

const (
	ginContextKeyViewerID = "viewerID"
	headerRequestID       = "X-Request-ID"
)

// RequestIDMiddleware tags every request with an id for log correlation.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(headerRequestID, id)
		c.Set("requestID", id)
		c.Next()
	}
}

// ErrorMiddleware renders the last error pushed onto the gin context as the
// structured error envelope. Handlers call c.Error and return.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed", err,
				zap.String("path", c.FullPath()),
				zap.String("request_id", c.GetString("requestID")),
			)
		}
		c.JSON(status, apperror.Envelope(err))
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader || token == "" {
		return "", false
	}
	return token, true
}

// AuthRequired rejects requests without a valid bearer token.
func AuthRequired(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apperror.Envelope(apperror.NewUnauthorized("Unauthorized.")))
			return
		}

		claims, err := jwtSvc.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apperror.Envelope(apperror.NewUnauthorized("Invalid or expired token.")))
			return
		}

		c.Set(ginContextKeyViewerID, claims.UserID)
		c.Next()
	}
}

// AuthOptional resolves the viewer when a valid token is present and stays
// silent otherwise. Anonymous access is a fully supported state.
func AuthOptional(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := jwtSvc.ValidateToken(token); err == nil {
				c.Set(ginContextKeyViewerID, claims.UserID)
			}
		}
		c.Next()
	}
}

func GetViewerID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ginContextKeyViewerID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// ViewerPtr returns the viewer id or nil for anonymous requests.
func ViewerPtr(c *gin.Context) *int64 {
	if id, ok := GetViewerID(c); ok {
		return &id
	}
	return nil
}
