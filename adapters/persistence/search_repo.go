package persistence

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhtran/feedgram/internal/domain/post"
	"github.com/minhtran/feedgram/internal/domain/search"
	"github.com/minhtran/feedgram/internal/domain/user"
	"github.com/minhtran/feedgram/pkg/apperror"
)

// postgresSearchRepo is the candidate retriever behind the search usecase.
// Tier one is a cheap ILIKE containment prefilter across the entity's
// searchable fields; when it comes back empty the retriever re-queries a
// recency window with only the scope filters, so near-miss queries (typos)
// still reach the in-process scorer. The two queries are independent reads;
// no snapshot consistency between them is needed.
type postgresSearchRepo struct {
	db *pgxpool.Pool
}

func NewPostgresSearchRepo(db *pgxpool.Pool) search.Repository {
	return &postgresSearchRepo{db: db}
}

var userSearchColumns = []string{"user_name", "email", "bio"}

func (r *postgresSearchRepo) UserCandidates(ctx context.Context, tokens []string, f search.Filters, limit int) ([]*user.User, error) {
	base := psql.Select(userColumns...).From("users")
	for _, pred := range userScope(f) {
		base = base.Where(pred)
	}

	fetch := func(b sq.SelectBuilder) ([]*user.User, error) {
		sql, args, err := b.OrderBy("id DESC").Limit(uint64(limit)).ToSql()
		if err != nil {
			return nil, apperror.NewInternal("failed to build user candidate query", err)
		}
		rows, err := r.db.Query(ctx, sql, args...)
		if err != nil {
			return nil, apperror.NewUnavailable("user candidate query failed", err)
		}
		defer rows.Close()

		users := make([]*user.User, 0)
		for rows.Next() {
			u := &user.User{}
			if err := rows.Scan(&u.ID, &u.Email, &u.DisplayName, &u.Bio, &u.ProfilePic, &u.BannerPic); err != nil {
				return nil, apperror.NewUnavailable("failed to scan user candidate", err)
			}
			users = append(users, u)
		}
		if err := rows.Err(); err != nil {
			return nil, apperror.NewUnavailable("error iterating user candidates", err)
		}
		return users, nil
	}

	if len(tokens) == 0 {
		return fetch(base)
	}

	users, err := fetch(base.Where(containsAny(tokens, userSearchColumns)))
	if err != nil {
		return nil, err
	}
	if len(users) > 0 {
		return users, nil
	}

	// Prefilter found nothing literal; fall back to the recency window and
	// let the scorer hunt for fuzzy matches.
	return fetch(base)
}

func (r *postgresSearchRepo) PostCandidates(ctx context.Context, tokens []string, f search.Filters, limit int) ([]*post.Post, error) {
	base := postQuery(f.ViewerID)
	for _, pred := range postScope(f) {
		base = base.Where(pred)
	}

	fetch := func(b sq.SelectBuilder) ([]*post.Post, error) {
		sql, args, err := b.OrderBy("p.created_at DESC", "p.id DESC").Limit(uint64(limit)).ToSql()
		if err != nil {
			return nil, apperror.NewInternal("failed to build post candidate query", err)
		}
		rows, err := r.db.Query(ctx, sql, args...)
		if err != nil {
			return nil, apperror.NewUnavailable("post candidate query failed", err)
		}
		return scanPostRows(rows)
	}

	if len(tokens) == 0 {
		return fetch(base)
	}

	posts, err := fetch(base.Where(containsAny(tokens, []string{"p.content"})))
	if err != nil {
		return nil, err
	}
	if len(posts) > 0 {
		return posts, nil
	}

	return fetch(base)
}

// userScope translates Filters into conjunctive predicates over users.
func userScope(f search.Filters) []sq.Sqlizer {
	var preds []sq.Sqlizer
	if len(f.AuthorIDs) > 0 {
		preds = append(preds, sq.Eq{"id": f.AuthorIDs})
	}
	if f.FollowOnly && f.ViewerID != nil {
		preds = append(preds, sq.Or{
			sq.Eq{"id": *f.ViewerID},
			sq.Expr("id IN (SELECT followee_id FROM follows WHERE follower_id = ?)", *f.ViewerID),
		})
	}
	return preds
}

func postScope(f search.Filters) []sq.Sqlizer {
	var preds []sq.Sqlizer
	if len(f.AuthorIDs) > 0 {
		preds = append(preds, sq.Eq{"p.user_id": f.AuthorIDs})
	}
	if f.FollowOnly && f.ViewerID != nil {
		preds = append(preds, sq.Or{
			sq.Eq{"p.user_id": *f.ViewerID},
			sq.Expr("p.user_id IN (SELECT followee_id FROM follows WHERE follower_id = ?)", *f.ViewerID),
		})
	}
	return preds
}

// containsAny builds the substring prefilter: any token ILIKE-contained in
// any searchable column.
func containsAny(tokens, columns []string) sq.Or {
	or := sq.Or{}
	for _, tok := range tokens {
		pattern := "%" + escapeLike(tok) + "%"
		for _, col := range columns {
			or = append(or, sq.ILike{col: pattern})
		}
	}
	return or
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
