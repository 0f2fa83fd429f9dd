package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhtran/feedgram/internal/domain/post"
	"github.com/minhtran/feedgram/pkg/apperror"
)

type postgresPostRepo struct {
	db *pgxpool.Pool
}

func NewPostgresPostRepo(db *pgxpool.Pool) post.Repository {
	return &postgresPostRepo{db: db}
}

// postQuery builds the joined feed SELECT: post columns, author summary,
// likedByMe for the viewer and a correlated comment count. Shared with the
// search candidate retriever so search items carry the same fields the feed
// does.
func postQuery(viewerID *int64) sq.SelectBuilder {
	q := psql.Select(
		"p.id", "p.picture", "p.content", "p.likes", "p.created_at",
		"u.id", "u.user_name", "u.profile_pic",
	).From("posts p").Join("users u ON u.id = p.user_id")

	if viewerID != nil {
		q = q.Column(sq.Expr(
			"EXISTS (SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = ?) AS liked_by_me",
			*viewerID,
		))
	} else {
		q = q.Column("FALSE AS liked_by_me")
	}

	return q.Column("(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count")
}

func scanPostRow(row pgx.Row) (*post.Post, error) {
	p := &post.Post{}
	err := row.Scan(
		&p.ID, &p.Picture, &p.Content, &p.Likes, &p.CreatedAt,
		&p.Author.ID, &p.Author.DisplayName, &p.Author.ProfilePic,
		&p.LikedByMe, &p.CommentCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, apperror.NewUnavailable("failed to scan post row", err)
	}
	return p, nil
}

func scanPostRows(rows pgx.Rows) ([]*post.Post, error) {
	defer rows.Close()

	posts := make([]*post.Post, 0)
	for rows.Next() {
		p, err := scanPostRow(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewUnavailable("error iterating post rows", err)
	}
	return posts, nil
}

func (r *postgresPostRepo) List(ctx context.Context, viewerID *int64, limit, offset int) ([]*post.Post, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, apperror.NewUnavailable("failed to count posts", err)
	}

	sql, args, err := postQuery(viewerID).
		OrderBy("p.created_at DESC", "p.id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to build post list query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperror.NewUnavailable("failed to list posts", err)
	}

	posts, err := scanPostRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postgresPostRepo) FindByID(ctx context.Context, id int64, viewerID *int64) (*post.Post, error) {
	sql, args, err := postQuery(viewerID).Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build post query", err)
	}
	return scanPostRow(r.db.QueryRow(ctx, sql, args...))
}

func (r *postgresPostRepo) Create(ctx context.Context, authorID int64, picture *string, content string) (*post.Post, error) {
	query := `
		INSERT INTO posts (user_id, picture, content)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id int64
	if err := r.db.QueryRow(ctx, query, authorID, picture, content).Scan(&id); err != nil {
		return nil, apperror.NewUnavailable("failed to insert post", err)
	}
	return r.FindByID(ctx, id, &authorID)
}

func (r *postgresPostRepo) AuthorID(ctx context.Context, postID int64) (int64, error) {
	var authorID int64
	err := r.db.QueryRow(ctx, `SELECT user_id FROM posts WHERE id = $1`, postID).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, post.ErrPostNotFound
		}
		return 0, apperror.NewUnavailable("failed to query post author", err)
	}
	return authorID, nil
}

func (r *postgresPostRepo) Delete(ctx context.Context, postID, authorID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1 AND user_id = $2`, postID, authorID)
	if err != nil {
		return apperror.NewUnavailable("failed to delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

func (r *postgresPostRepo) Exists(ctx context.Context, postID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists)
	if err != nil {
		return false, apperror.NewUnavailable("failed to check post", err)
	}
	return exists, nil
}

func (r *postgresPostRepo) Like(ctx context.Context, postID, userID int64) (int, error) {
	exists, err := r.Exists(ctx, postID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, post.ErrPostNotFound
	}

	tag, err := r.db.Exec(ctx,
		`INSERT INTO likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		postID, userID,
	)
	if err != nil {
		return 0, apperror.NewUnavailable("failed to insert like", err)
	}

	if tag.RowsAffected() > 0 {
		if _, err := r.db.Exec(ctx, `UPDATE posts SET likes = likes + 1 WHERE id = $1`, postID); err != nil {
			return 0, apperror.NewUnavailable("failed to bump like count", err)
		}
	}

	return r.likeCount(ctx, postID)
}

func (r *postgresPostRepo) Unlike(ctx context.Context, postID, userID int64) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return 0, apperror.NewUnavailable("failed to delete like", err)
	}

	if tag.RowsAffected() > 0 {
		// Never drop below zero.
		_, err := r.db.Exec(ctx,
			`UPDATE posts SET likes = CASE WHEN likes > 0 THEN likes - 1 ELSE 0 END WHERE id = $1`,
			postID,
		)
		if err != nil {
			return 0, apperror.NewUnavailable("failed to drop like count", err)
		}
	}

	return r.likeCount(ctx, postID)
}

func (r *postgresPostRepo) likeCount(ctx context.Context, postID int64) (int, error) {
	var likes int
	err := r.db.QueryRow(ctx, `SELECT likes FROM posts WHERE id = $1`, postID).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, post.ErrPostNotFound
		}
		return 0, apperror.NewUnavailable("failed to read like count", err)
	}
	return likes, nil
}

func (r *postgresPostRepo) Likers(ctx context.Context, postID int64, viewerID *int64, limit, offset int) ([]post.Liker, int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID).Scan(&total)
	if err != nil {
		return nil, 0, apperror.NewUnavailable("failed to count likers", err)
	}

	q := psql.Select("u.id", "u.user_name", "u.profile_pic").
		From("likes l").
		Join("users u ON u.id = l.user_id").
		Where(sq.Eq{"l.post_id": postID})

	if viewerID != nil {
		q = q.Column(sq.Expr(
			"EXISTS (SELECT 1 FROM follows f WHERE f.follower_id = ? AND f.followee_id = u.id) AS followed_by_me",
			*viewerID,
		))
	}

	sql, args, err := q.OrderBy("u.user_name ASC").Limit(uint64(limit)).Offset(uint64(offset)).ToSql()
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to build likers query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperror.NewUnavailable("failed to list likers", err)
	}
	defer rows.Close()

	likers := make([]post.Liker, 0)
	for rows.Next() {
		var l post.Liker
		if viewerID != nil {
			var followed bool
			if err := rows.Scan(&l.ID, &l.DisplayName, &l.ProfilePic, &followed); err != nil {
				return nil, 0, apperror.NewUnavailable("failed to scan liker row", err)
			}
			l.FollowedByMe = &followed
		} else {
			if err := rows.Scan(&l.ID, &l.DisplayName, &l.ProfilePic); err != nil {
				return nil, 0, apperror.NewUnavailable("failed to scan liker row", err)
			}
		}
		likers = append(likers, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewUnavailable("error iterating liker rows", err)
	}
	return likers, total, nil
}
