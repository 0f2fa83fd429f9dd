package user

import (
	"context"
	"errors"
)

const MaxDisplayNameLen = 50

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID           int64   `json:"userId"`
	Email        string  `json:"email"`
	DisplayName  string  `json:"userName"`
	Bio          *string `json:"bio"`
	ProfilePic   *string `json:"profilePic"`
	BannerPic    *string `json:"bannerPic"`
	PasswordHash string  `json:"-"`
}

// Summary is the embedded author shape used by posts, comments and like lists.
type Summary struct {
	ID          int64   `json:"userId"`
	DisplayName string  `json:"userName"`
	ProfilePic  *string `json:"profilePic"`
}

// UpdatePatch carries the nullable PATCH /users/me fields. A nil pointer
// means "leave unchanged".
type UpdatePatch struct {
	DisplayName *string
	Bio         *string
	ProfilePic  *string
	BannerPic   *string
}

type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	DisplayNameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
	Update(ctx context.Context, id int64, patch UpdatePatch) (*User, error)
}
