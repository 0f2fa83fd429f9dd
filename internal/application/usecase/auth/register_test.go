package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhtran/feedgram/internal/domain/user"
	"github.com/minhtran/feedgram/pkg/apperror"
	"github.com/minhtran/feedgram/pkg/auth"
	"github.com/minhtran/feedgram/pkg/logger"
)

type fakeUserRepo struct {
	usersByEmail map[string]*user.User
	takenNames   map[string]bool
	nextID       int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByEmail: map[string]*user.User{},
		takenNames:   map[string]bool{},
		nextID:       1,
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) (*user.User, error) {
	created := *u
	created.ID = f.nextID
	f.nextID++
	f.usersByEmail[created.Email] = &created
	f.takenNames[created.DisplayName] = true
	return &created, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*user.User, error) {
	for _, u := range f.usersByEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	if u, ok := f.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) EmailTaken(_ context.Context, email string) (bool, error) {
	_, ok := f.usersByEmail[email]
	return ok, nil
}

func (f *fakeUserRepo) DisplayNameTaken(_ context.Context, name string, _ int64) (bool, error) {
	return f.takenNames[name], nil
}

func (f *fakeUserRepo) Update(_ context.Context, id int64, _ user.UpdatePatch) (*user.User, error) {
	return f.FindByID(context.Background(), id)
}

type fakeTokenStore struct {
	issued  int
	revoked []string
}

func (f *fakeTokenStore) Issue(_ context.Context, _ int64) (string, error) {
	f.issued++
	return "refresh-token", nil
}

func (f *fakeTokenStore) Rotate(_ context.Context, token string) (int64, error) {
	if token != "refresh-token" {
		return 0, errors.New("unknown token")
	}
	return 1, nil
}

func (f *fakeTokenStore) Revoke(_ context.Context, token string) error {
	f.revoked = append(f.revoked, token)
	return nil
}

func newRegisterUseCase(repo user.Repository, tokens TokenStore) *RegisterUseCase {
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	return NewRegisterUseCase(repo, jwtSvc, tokens, logger.NewNop())
}

func TestRegister_Success(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := &fakeTokenStore{}
	uc := newRegisterUseCase(repo, tokens)

	out, err := uc.Execute(context.Background(), RegisterInput{
		Email:       "alice@example.com",
		Password:    "s3cret-pass",
		DisplayName: "alice",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), out.User.ID)
	assert.Equal(t, "alice", out.User.DisplayName)
	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, "refresh-token", out.RefreshToken)
	assert.Equal(t, 1, tokens.issued)

	// Stored hash must verify against the original password.
	stored := repo.usersByEmail["alice@example.com"]
	assert.True(t, auth.CheckPasswordHash("s3cret-pass", stored.PasswordHash))
}

func TestRegister_ValidationDetails(t *testing.T) {
	uc := newRegisterUseCase(newFakeUserRepo(), &fakeTokenStore{})

	_, err := uc.Execute(context.Background(), RegisterInput{
		Email:       "not-an-email",
		Password:    "abc",
		DisplayName: "",
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Equal(t, []apperror.FieldError{
		{Field: "email", Reason: "invalid_format"},
		{Field: "password", Reason: "too_short"},
		{Field: "userName", Reason: "required"},
	}, appErr.Details)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newRegisterUseCase(repo, &fakeTokenStore{})

	_, err := uc.Execute(context.Background(), RegisterInput{
		Email: "alice@example.com", Password: "s3cret-pass", DisplayName: "alice",
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), RegisterInput{
		Email: "alice@example.com", Password: "s3cret-pass", DisplayName: "alice2",
	})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestRegister_DuplicateNameConflicts(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newRegisterUseCase(repo, &fakeTokenStore{})

	_, err := uc.Execute(context.Background(), RegisterInput{
		Email: "alice@example.com", Password: "s3cret-pass", DisplayName: "alice",
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), RegisterInput{
		Email: "alice2@example.com", Password: "s3cret-pass", DisplayName: "alice",
	})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}
