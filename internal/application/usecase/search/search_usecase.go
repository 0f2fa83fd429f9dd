package search

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/minhtran/feedgram/internal/domain/post"
	"github.com/minhtran/feedgram/internal/domain/search"
	"github.com/minhtran/feedgram/internal/domain/user"
	"github.com/minhtran/feedgram/pkg/logger"
)

// SearchUseCase orchestrates the search path: candidate retrieval, scoring,
// deterministic ranking and page slicing. All intermediate state is request
// local; concurrent searches need no coordination.
type SearchUseCase struct {
	searchRepo search.Repository
	tuning     search.Tuning
	logger     logger.Logger

	userFields []Field[*user.User]
	postFields []Field[*post.Post]
}

func NewSearchUseCase(repo search.Repository, tuning search.Tuning, log logger.Logger) *SearchUseCase {
	return &SearchUseCase{
		searchRepo: repo,
		tuning:     tuning,
		logger:     log,
		userFields: UserFields(),
		postFields: PostFields(),
	}
}

type SearchInput struct {
	Query    string
	Filters  search.Filters
	Page     int
	PageSize int
}

type UserHit struct {
	User  *user.User
	Match search.Match
}

type PostHit struct {
	Post  *post.Post
	Match search.Match
}

type SearchUsersOutput struct {
	Items    []UserHit
	Page     int
	PageSize int
	Total    int
	Query    string
}

type SearchPostsOutput struct {
	Items    []PostHit
	Page     int
	PageSize int
	Total    int
	Query    string
}

func (uc *SearchUseCase) SearchUsers(ctx context.Context, input SearchInput) (*SearchUsersOutput, error) {
	query := search.Normalize(input.Query)
	page := clampPage(input.Page)
	size := clampPageSize(input.PageSize, search.MaxUserPageSize)

	out := &SearchUsersOutput{Items: []UserHit{}, Page: page, PageSize: size, Query: query}

	// Empty query means "no search", not "match everything". No store call.
	if query == "" {
		return out, nil
	}

	filters := input.Filters.Normalized()
	if filters.FollowOnly && filters.ViewerID == nil {
		// Anonymous viewers follow nobody, so the follow-only scope is empty.
		return out, nil
	}

	candidates, err := uc.searchRepo.UserCandidates(ctx, search.Tokenize(query), filters, search.DefaultCandidateCap)
	if err != nil {
		uc.logger.Error("user search retrieval failed", err, zap.String("query", query))
		return nil, err
	}

	hits := make([]UserHit, 0, len(candidates))
	for _, c := range candidates {
		if m, ok := bestMatch(uc.tuning, query, c, uc.userFields); ok {
			hits = append(hits, UserHit{User: c, Match: m})
		}
	}

	// Score descending, then display name descending. Stable, so residual
	// ties keep the deterministic retrieval order.
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Match.Score != hits[j].Match.Score {
			return hits[i].Match.Score > hits[j].Match.Score
		}
		return hits[i].User.DisplayName > hits[j].User.DisplayName
	})

	lo, hi := pageWindow(len(hits), page, size)
	out.Items = hits[lo:hi]
	out.Total = len(hits)
	return out, nil
}

func (uc *SearchUseCase) SearchPosts(ctx context.Context, input SearchInput) (*SearchPostsOutput, error) {
	query := search.Normalize(input.Query)
	page := clampPage(input.Page)
	size := clampPageSize(input.PageSize, search.MaxPostPageSize)

	out := &SearchPostsOutput{Items: []PostHit{}, Page: page, PageSize: size, Query: query}

	if query == "" {
		return out, nil
	}

	filters := input.Filters.Normalized()
	if filters.FollowOnly && filters.ViewerID == nil {
		return out, nil
	}

	candidates, err := uc.searchRepo.PostCandidates(ctx, search.Tokenize(query), filters, search.DefaultCandidateCap)
	if err != nil {
		uc.logger.Error("post search retrieval failed", err, zap.String("query", query))
		return nil, err
	}

	hits := make([]PostHit, 0, len(candidates))
	for _, c := range candidates {
		if m, ok := bestMatch(uc.tuning, query, c, uc.postFields); ok {
			hits = append(hits, PostHit{Post: c, Match: m})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Match.Score != hits[j].Match.Score {
			return hits[i].Match.Score > hits[j].Match.Score
		}
		return hits[i].Post.CreatedAt.After(hits[j].Post.CreatedAt)
	})

	lo, hi := pageWindow(len(hits), page, size)
	out.Items = hits[lo:hi]
	out.Total = len(hits)
	return out, nil
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func clampPageSize(size, max int) int {
	if size < 1 {
		return 1
	}
	if size > max {
		return max
	}
	return size
}

// pageWindow clamps the page slice to the available length. An out-of-range
// page yields an empty window, not an error.
func pageWindow(total, page, size int) (int, int) {
	lo := (page - 1) * size
	if lo > total {
		lo = total
	}
	hi := lo + size
	if hi > total {
		hi = total
	}
	return lo, hi
}
