package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhtran/feedgram/internal/domain/comment"
	"github.com/minhtran/feedgram/pkg/apperror"
)

type postgresCommentRepo struct {
	db *pgxpool.Pool
}

func NewPostgresCommentRepo(db *pgxpool.Pool) comment.Repository {
	return &postgresCommentRepo{db: db}
}

const commentSelect = `
	SELECT c.id, c.post_id, c.content, c.created_at, c.updated_at,
	       u.id, u.user_name, u.profile_pic
	FROM comments c
	JOIN users u ON u.id = c.user_id
`

func scanComment(row pgx.Row) (*comment.Comment, error) {
	c := &comment.Comment{}
	err := row.Scan(
		&c.ID, &c.PostID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
		&c.Author.ID, &c.Author.DisplayName, &c.Author.ProfilePic,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, comment.ErrCommentNotFound
		}
		return nil, apperror.NewUnavailable("failed to scan comment row", err)
	}
	c.Edited = c.UpdatedAt != nil
	return c, nil
}

func (r *postgresCommentRepo) ListByPost(ctx context.Context, postID int64, viewerID *int64, limit, offset int) ([]*comment.Comment, int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&total)
	if err != nil {
		return nil, 0, apperror.NewUnavailable("failed to count comments", err)
	}

	rows, err := r.db.Query(ctx,
		commentSelect+`
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC, c.id ASC
		LIMIT $2 OFFSET $3`,
		postID, limit, offset,
	)
	if err != nil {
		return nil, 0, apperror.NewUnavailable("failed to list comments", err)
	}
	defer rows.Close()

	comments := make([]*comment.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, err
		}
		if viewerID != nil && c.Author.ID == *viewerID {
			c.EditableByMe = true
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewUnavailable("error iterating comment rows", err)
	}
	return comments, total, nil
}

func (r *postgresCommentRepo) FindByID(ctx context.Context, id int64) (*comment.Comment, error) {
	return scanComment(r.db.QueryRow(ctx, commentSelect+` WHERE c.id = $1`, id))
}

func (r *postgresCommentRepo) Create(ctx context.Context, postID, authorID int64, content string) (*comment.Comment, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO comments (post_id, user_id, content) VALUES ($1, $2, $3) RETURNING id`,
		postID, authorID, content,
	).Scan(&id)
	if err != nil {
		return nil, apperror.NewUnavailable("failed to insert comment", err)
	}
	return r.FindByID(ctx, id)
}

func (r *postgresCommentRepo) Update(ctx context.Context, id int64, content string) (*comment.Comment, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE comments SET content = $1, updated_at = $2 WHERE id = $3`,
		content, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, apperror.NewUnavailable("failed to update comment", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, comment.ErrCommentNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *postgresCommentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return apperror.NewUnavailable("failed to delete comment", err)
	}
	if tag.RowsAffected() == 0 {
		return comment.ErrCommentNotFound
	}
	return nil
}
