package search

import (
	"context"
	"strings"

	"github.com/minhtran/feedgram/internal/domain/post"
	"github.com/minhtran/feedgram/internal/domain/user"
)

const (
	// MaxAuthorFilters caps the authorIds filter list; extra entries are
	// dropped, never rejected.
	MaxAuthorFilters = 50

	// DefaultCandidateCap bounds how many rows a single retrieval may pull
	// back from the store.
	DefaultCandidateCap = 500

	// MaxTokens bounds how many whitespace tokens of the query feed the
	// store-side prefilter.
	MaxTokens = 6

	MaxUserPageSize = 50
	MaxPostPageSize = 100
)

// Filters narrows a candidate retrieval. Request-scoped, never persisted.
type Filters struct {
	AuthorIDs  []int64
	FollowOnly bool
	ViewerID   *int64
}

// Normalized returns a copy with AuthorIDs de-duplicated (order preserving)
// and truncated to MaxAuthorFilters.
func (f Filters) Normalized() Filters {
	f.AuthorIDs = NormalizeAuthorIDs(f.AuthorIDs)
	return f
}

func NormalizeAuthorIDs(ids []int64) []int64 {
	if ids == nil {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
		if len(out) == MaxAuthorFilters {
			break
		}
	}
	return out
}

// Match describes how one candidate matched the query: the field that won,
// the text that drove the match and the relevance score. Absence of a Match
// means the candidate is excluded from the result.
type Match struct {
	Field string  `json:"field"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Tuning holds the empirical ranking constants. Defaults are pinned by
// golden tests; changing them is a behavioral change.
type Tuning struct {
	// SimilarityFloor is the minimum fuzzy ratio for a non-substring match.
	// Anything below it is noise.
	SimilarityFloor float64

	// PositionDecay is the maximum score contribution of an early substring
	// position inside the field.
	PositionDecay float64
}

func DefaultTuning() Tuning {
	return Tuning{SimilarityFloor: 0.72, PositionDecay: 0.4}
}

// Normalize lowercases and trims a raw query. An empty result means
// "no search": the caller must short-circuit without touching the store.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Tokenize splits a normalized query into at most MaxTokens whitespace
// tokens for the store-side prefilter.
func Tokenize(normalized string) []string {
	tokens := strings.Fields(normalized)
	if len(tokens) > MaxTokens {
		tokens = tokens[:MaxTokens]
	}
	return tokens
}

// Repository retrieves bounded candidate sets for in-process scoring.
//
// Implementations must apply the two-tier strategy: a substring prefilter
// across the entity's searchable fields first and, when that yields nothing,
// a recency-window fallback with only the filter predicates. Both tiers
// honor Filters conjunctively, return newest records first and never exceed
// the cap. Fuzziness itself is evaluated downstream, in process; the backing
// store only does cheap containment.
type Repository interface {
	UserCandidates(ctx context.Context, tokens []string, f Filters, limit int) ([]*user.User, error)
	PostCandidates(ctx context.Context, tokens []string, f Filters, limit int) ([]*post.Post, error)
}
