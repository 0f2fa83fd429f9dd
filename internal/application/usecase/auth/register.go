package auth

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/minhtran/feedgram/internal/domain/user"
	"github.com/minhtran/feedgram/pkg/apperror"
	"github.com/minhtran/feedgram/pkg/auth"
	"github.com/minhtran/feedgram/pkg/logger"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// TokenStore is the refresh-token allowlist. Rotate consumes a token and
// returns its owner; issuing the replacement is the caller's job.
type TokenStore interface {
	Issue(ctx context.Context, userID int64) (string, error)
	Rotate(ctx context.Context, token string) (int64, error)
	Revoke(ctx context.Context, token string) error
}

type RegisterUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	tokens   TokenStore
	logger   logger.Logger
}

func NewRegisterUseCase(repo user.Repository, jwtSvc *auth.JWTService, tokens TokenStore, log logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		tokens:   tokens,
		logger:   log,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

type RegisterOutput struct {
	User         *user.User
	AccessToken  string
	RefreshToken string
}

func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	email := strings.TrimSpace(input.Email)
	displayName := strings.TrimSpace(input.DisplayName)

	var details []apperror.FieldError
	switch {
	case email == "":
		details = append(details, apperror.FieldError{Field: "email", Reason: "required"})
	case !emailRegex.MatchString(email):
		details = append(details, apperror.FieldError{Field: "email", Reason: "invalid_format"})
	}
	switch {
	case input.Password == "":
		details = append(details, apperror.FieldError{Field: "password", Reason: "required"})
	case len(input.Password) < 6:
		details = append(details, apperror.FieldError{Field: "password", Reason: "too_short"})
	}
	switch {
	case displayName == "":
		details = append(details, apperror.FieldError{Field: "userName", Reason: "required"})
	case len(displayName) > user.MaxDisplayNameLen:
		details = append(details, apperror.FieldError{Field: "userName", Reason: "too_long"})
	}
	if len(details) > 0 {
		return nil, apperror.NewValidation("Invalid request body.", details...)
	}

	taken, err := uc.userRepo.EmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.NewConflict("Email already used.",
			apperror.FieldError{Field: "email", Reason: "already_used"})
	}

	taken, err = uc.userRepo.DisplayNameTaken(ctx, displayName, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.NewConflict("UserName already used.",
			apperror.FieldError{Field: "userName", Reason: "already_used"})
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	created, err := uc.userRepo.Create(ctx, &user.User{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	accessToken, err := uc.jwtSvc.GenerateToken(created.ID)
	if err != nil {
		uc.logger.Error("failed to generate access token", err, zap.Int64("user_id", created.ID))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	refreshToken, err := uc.tokens.Issue(ctx, created.ID)
	if err != nil {
		return nil, apperror.NewInternal("failed to issue refresh token", err)
	}

	uc.logger.Info("user registered", zap.Int64("user_id", created.ID))
	return &RegisterOutput{User: created, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
