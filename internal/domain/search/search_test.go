package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hello", Normalize("  HeLLo  "))
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, "a b", Normalize("A B"))
}

func TestTokenize_CapsTokens(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Tokenize("a  b"))

	tokens := Tokenize("one two three four five six seven eight")
	assert.Len(t, tokens, MaxTokens)
	assert.Equal(t, []string{"one", "two", "three", "four", "five", "six"}, tokens)
}

func TestNormalizeAuthorIDs(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, NormalizeAuthorIDs(nil))
	})

	t.Run("dedup keeps first occurrence order", func(t *testing.T) {
		got := NormalizeAuthorIDs([]int64{3, 1, 3, 2, 1})
		assert.Equal(t, []int64{3, 1, 2}, got)
	})

	t.Run("truncates silently past the cap", func(t *testing.T) {
		ids := make([]int64, 0, MaxAuthorFilters+10)
		for i := int64(1); i <= MaxAuthorFilters+10; i++ {
			ids = append(ids, i)
		}
		got := NormalizeAuthorIDs(ids)
		assert.Len(t, got, MaxAuthorFilters)
		assert.Equal(t, int64(1), got[0])
		assert.Equal(t, int64(MaxAuthorFilters), got[len(got)-1])
	})
}

func TestFiltersNormalized_DoesNotMutateOtherFields(t *testing.T) {
	viewer := int64(7)
	f := Filters{AuthorIDs: []int64{5, 5}, FollowOnly: true, ViewerID: &viewer}

	got := f.Normalized()
	assert.Equal(t, []int64{5}, got.AuthorIDs)
	assert.True(t, got.FollowOnly)
	assert.Equal(t, &viewer, got.ViewerID)
}

func TestDefaultTuning(t *testing.T) {
	tuning := DefaultTuning()
	assert.InDelta(t, 0.72, tuning.SimilarityFloor, 1e-9)
	assert.InDelta(t, 0.4, tuning.PositionDecay, 1e-9)
}
