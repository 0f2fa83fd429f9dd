package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhtran/feedgram/internal/domain/user"
	"github.com/minhtran/feedgram/pkg/apperror"
)

type postgresUserRepo struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepo(db *pgxpool.Pool) user.Repository {
	return &postgresUserRepo{db: db}
}

var userColumns = []string{"id", "email", "user_name", "bio", "profile_pic", "banner_pic"}

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.Bio, &u.ProfilePic, &u.BannerPic)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperror.NewUnavailable("failed to scan user row", err)
	}
	return u, nil
}

func (r *postgresUserRepo) Create(ctx context.Context, u *user.User) (*user.User, error) {
	query := `
		INSERT INTO users (email, password_hash, user_name)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query, u.Email, u.PasswordHash, u.DisplayName).Scan(&id)
	if err != nil {
		return nil, apperror.NewUnavailable("failed to insert user", err)
	}
	return r.FindByID(ctx, id)
}

func (r *postgresUserRepo) FindByID(ctx context.Context, id int64) (*user.User, error) {
	sql, args, err := psql.Select(userColumns...).From("users").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build user query", err)
	}
	return scanUser(r.db.QueryRow(ctx, sql, args...))
}

func (r *postgresUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, email, user_name, bio, profile_pic, banner_pic, password_hash
		FROM users
		WHERE email = $1
	`
	u := &user.User{}
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.Bio, &u.ProfilePic, &u.BannerPic, &u.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperror.NewUnavailable("failed to query user by email", err)
	}
	return u, nil
}

func (r *postgresUserRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, apperror.NewUnavailable("failed to check email", err)
	}
	return exists, nil
}

func (r *postgresUserRepo) DisplayNameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE user_name = $1 AND id <> $2)`,
		name, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, apperror.NewUnavailable("failed to check user name", err)
	}
	return exists, nil
}

func (r *postgresUserRepo) Update(ctx context.Context, id int64, patch user.UpdatePatch) (*user.User, error) {
	update := psql.Update("users").Where(sq.Eq{"id": id})
	touched := false

	if patch.DisplayName != nil {
		update = update.Set("user_name", *patch.DisplayName)
		touched = true
	}
	if patch.Bio != nil {
		update = update.Set("bio", *patch.Bio)
		touched = true
	}
	if patch.ProfilePic != nil {
		update = update.Set("profile_pic", *patch.ProfilePic)
		touched = true
	}
	if patch.BannerPic != nil {
		update = update.Set("banner_pic", *patch.BannerPic)
		touched = true
	}

	if touched {
		sql, args, err := update.ToSql()
		if err != nil {
			return nil, apperror.NewInternal("failed to build user update", err)
		}
		if _, err := r.db.Exec(ctx, sql, args...); err != nil {
			return nil, apperror.NewUnavailable("failed to update user", err)
		}
	}

	return r.FindByID(ctx, id)
}
