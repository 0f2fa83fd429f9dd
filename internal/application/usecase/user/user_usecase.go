package user

import (
	"context"
	"errors"
	"strings"

	"github.com/minhtran/feedgram/internal/domain/user"
	"github.com/minhtran/feedgram/pkg/apperror"
	"github.com/minhtran/feedgram/pkg/logger"
)

type UserUseCase struct {
	userRepo user.Repository
	logger   logger.Logger
}

func NewUserUseCase(repo user.Repository, log logger.Logger) *UserUseCase {
	return &UserUseCase{userRepo: repo, logger: log}
}

func (uc *UserUseCase) Get(ctx context.Context, id int64) (*user.User, error) {
	u, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("User")
		}
		return nil, err
	}
	return u, nil
}

type UpdateProfileInput struct {
	UserID      int64
	DisplayName *string
	Bio         *string
	ProfilePic  *string
	BannerPic   *string
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*user.User, error) {
	var details []apperror.FieldError

	if input.DisplayName != nil {
		trimmed := strings.TrimSpace(*input.DisplayName)
		switch {
		case trimmed == "":
			details = append(details, apperror.FieldError{Field: "userName", Reason: "invalid"})
		case len(trimmed) > user.MaxDisplayNameLen:
			details = append(details, apperror.FieldError{Field: "userName", Reason: "too_long"})
		default:
			input.DisplayName = &trimmed
		}
	}
	if len(details) > 0 {
		return nil, apperror.NewValidation("Invalid request body.", details...)
	}

	if input.DisplayName != nil {
		taken, err := uc.userRepo.DisplayNameTaken(ctx, *input.DisplayName, input.UserID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.NewConflict("UserName already used.",
				apperror.FieldError{Field: "userName", Reason: "already_used"})
		}
	}

	updated, err := uc.userRepo.Update(ctx, input.UserID, user.UpdatePatch{
		DisplayName: input.DisplayName,
		Bio:         input.Bio,
		ProfilePic:  input.ProfilePic,
		BannerPic:   input.BannerPic,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("User")
		}
		return nil, err
	}
	return updated, nil
}
