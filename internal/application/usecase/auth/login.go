package auth

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/minhtran/feedgram/internal/domain/user"
	"github.com/minhtran/feedgram/pkg/apperror"
	"github.com/minhtran/feedgram/pkg/auth"
	"github.com/minhtran/feedgram/pkg/logger"
)

type LoginUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	tokens   TokenStore
	logger   logger.Logger
}

func NewLoginUseCase(repo user.Repository, jwtSvc *auth.JWTService, tokens TokenStore, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		tokens:   tokens,
		logger:   log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	User         *user.User
	AccessToken  string
	RefreshToken string
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	email := strings.TrimSpace(input.Email)

	var details []apperror.FieldError
	if email == "" {
		details = append(details, apperror.FieldError{Field: "email", Reason: "required"})
	}
	if input.Password == "" {
		details = append(details, apperror.FieldError{Field: "password", Reason: "required"})
	}
	if len(details) > 0 {
		return nil, apperror.NewValidation("Invalid request body.", details...)
	}

	u, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewUnauthorized("Invalid credentials.")
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		return nil, apperror.NewUnauthorized("Invalid credentials.")
	}

	accessToken, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		uc.logger.Error("failed to generate access token", err, zap.Int64("user_id", u.ID))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	refreshToken, err := uc.tokens.Issue(ctx, u.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to issue refresh token", err)
	}

	return &LoginOutput{User: u, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
