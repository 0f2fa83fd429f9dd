package search

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/minhtran/feedgram/internal/domain/post"
	"github.com/minhtran/feedgram/internal/domain/search"
	"github.com/minhtran/feedgram/internal/domain/user"
)

// Field declares one searchable field of an entity variant: its wire name,
// its relevance bonus and how to extract its value. Order in the field table
// is priority order; on an exact score tie the earlier field wins.
type Field[T any] struct {
	Name  string
	Bonus float64
	Value func(T) string
}

// UserFields is the declared field table for user candidates. A name match
// matters more than an email match, which matters more than a bio match.
func UserFields() []Field[*user.User] {
	return []Field[*user.User]{
		{Name: "userName", Bonus: 0.6, Value: func(u *user.User) string { return u.DisplayName }},
		{Name: "email", Bonus: 0.3, Value: func(u *user.User) string { return u.Email }},
		{Name: "bio", Bonus: 0, Value: func(u *user.User) string {
			if u.Bio == nil {
				return ""
			}
			return *u.Bio
		}},
	}
}

// PostFields is the declared field table for post candidates.
func PostFields() []Field[*post.Post] {
	return []Field[*post.Post]{
		{Name: "content", Bonus: 0, Value: func(p *post.Post) string { return p.Content }},
	}
}

// bestMatch scores one candidate against a normalized, non-empty query and
// returns its single best field match, or ok=false when no field qualifies.
// Pure: no store access, deterministic, never fails.
//
// Per field, in declared order:
//
//  1. substring hit: score = 1.0 + bonus + positional reward. Earlier
//     occurrences score higher, topping out at PositionDecay for index 0.
//  2. otherwise a sequence-similarity ratio against the field value (and
//     each of its whitespace tokens, so a single misspelled word inside a
//     longer field still counts). Ratios under SimilarityFloor are noise;
//     qualifying ones score ratio + bonus*0.25, always below any substring
//     hit so literal relevance outranks fuzzy relevance.
func bestMatch[T any](t search.Tuning, query string, candidate T, fields []Field[T]) (search.Match, bool) {
	var best search.Match
	found := false

	queryLen := utf8.RuneCountInString(query)

	for _, f := range fields {
		value := strings.ToLower(f.Value(candidate))
		if value == "" {
			continue
		}

		var m search.Match
		if idx := runeIndex(value, query); idx >= 0 {
			length := utf8.RuneCountInString(value)
			if length < 1 {
				length = 1
			}
			position := t.PositionDecay - (float64(idx)/float64(length))*t.PositionDecay
			m = search.Match{
				Field: f.Name,
				Text:  matchWindow(value, idx, queryLen, query),
				Score: 1.0 + f.Bonus + math.Max(0, position),
			}
		} else if r := fuzzyRatio(query, value); r >= t.SimilarityFloor {
			m = search.Match{
				Field: f.Name,
				Text:  query,
				Score: r + f.Bonus*0.25,
			}
		} else {
			continue
		}

		if !found || m.Score > best.Score {
			best = m
			found = true
		}
	}

	return best, found
}

// runeIndex returns the rune offset of needle inside haystack, or -1.
func runeIndex(haystack, needle string) int {
	byteIdx := strings.Index(haystack, needle)
	if byteIdx < 0 {
		return -1
	}
	return utf8.RuneCountInString(haystack[:byteIdx])
}

// matchWindow extracts the literal matched substring: length runes starting
// at idx, falling back to the query itself when the field is shorter than
// the match window.
func matchWindow(value string, idx, length int, query string) string {
	runes := []rune(value)
	if idx+length > len(runes) {
		return query
	}
	return string(runes[idx : idx+length])
}

// fuzzyRatio is the Ratcliff/Obershelp longest-matching-block ratio between
// the query and the field value, taken as the maximum over the whole value
// and each of its whitespace tokens.
func fuzzyRatio(query, value string) float64 {
	best := ratio(query, value)
	for _, tok := range strings.Fields(value) {
		if r := ratio(query, tok); r > best {
			best = r
		}
	}
	return best
}

func ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}
