package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/minhtran/feedgram/pkg/apperror"
	"github.com/minhtran/feedgram/pkg/auth"
	"github.com/minhtran/feedgram/pkg/logger"
)

// SessionUseCase handles refresh-token rotation and logout.
type SessionUseCase struct {
	jwtSvc *auth.JWTService
	tokens TokenStore
	logger logger.Logger
}

func NewSessionUseCase(jwtSvc *auth.JWTService, tokens TokenStore, log logger.Logger) *SessionUseCase {
	return &SessionUseCase{jwtSvc: jwtSvc, tokens: tokens, logger: log}
}

type RefreshOutput struct {
	AccessToken  string
	RefreshToken string
}

// Refresh exchanges a live refresh token for a new access token. The old
// refresh token is consumed and a replacement issued, so every refresh
// rotates the pair.
func (uc *SessionUseCase) Refresh(ctx context.Context, refreshToken string) (*RefreshOutput, error) {
	if refreshToken == "" {
		return nil, apperror.NewUnauthorized("Missing refresh token.")
	}

	userID, err := uc.tokens.Rotate(ctx, refreshToken)
	if err != nil {
		return nil, apperror.NewUnauthorized("Invalid refresh token.")
	}

	accessToken, err := uc.jwtSvc.GenerateToken(userID)
	if err != nil {
		uc.logger.Error("failed to generate access token", err, zap.Int64("user_id", userID))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	newRefresh, err := uc.tokens.Issue(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal("failed to issue refresh token", err)
	}

	return &RefreshOutput{AccessToken: accessToken, RefreshToken: newRefresh}, nil
}

// Logout revokes the refresh token. An unknown token is not an error; logout
// is idempotent.
func (uc *SessionUseCase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := uc.tokens.Revoke(ctx, refreshToken); err != nil {
		uc.logger.Warn("failed to revoke refresh token", zap.Error(err))
	}
	return nil
}
