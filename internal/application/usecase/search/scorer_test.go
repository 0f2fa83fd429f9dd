package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhtran/feedgram/internal/domain/post"
	"github.com/minhtran/feedgram/internal/domain/search"
	"github.com/minhtran/feedgram/internal/domain/user"
)

func userWith(name, email string, bio *string) *user.User {
	return &user.User{DisplayName: name, Email: email, Bio: bio}
}

func strPtr(s string) *string { return &s }

func TestBestMatch_SubstringAtStart(t *testing.T) {
	u := userWith("alice", "someone@example.com", nil)

	m, ok := bestMatch(search.DefaultTuning(), "alice", u, UserFields())
	require.True(t, ok)

	// 1.0 base + 0.6 name bonus + full 0.4 positional reward at index 0.
	assert.Equal(t, "userName", m.Field)
	assert.Equal(t, "alice", m.Text)
	assert.InDelta(t, 2.0, m.Score, 1e-9)
}

func TestBestMatch_PositionalRewardDecays(t *testing.T) {
	early := userWith("alice cooper", "", nil)
	late := userWith("cooper alice", "", nil)

	mEarly, ok := bestMatch(search.DefaultTuning(), "alice", early, UserFields())
	require.True(t, ok)
	mLate, ok := bestMatch(search.DefaultTuning(), "alice", late, UserFields())
	require.True(t, ok)

	assert.Greater(t, mEarly.Score, mLate.Score)

	// "cooper alice" has the hit at rune 7 of 12.
	assert.InDelta(t, 1.0+0.6+(0.4-(7.0/12.0)*0.4), mLate.Score, 1e-9)
}

func TestBestMatch_FieldBonusOrdering(t *testing.T) {
	nameHit := userWith("alice", "other@example.com", nil)
	emailHit := userWith("bob", "alice@example.com", nil)
	bioHit := userWith("bob", "other@example.com", strPtr("alice in wonderland"))

	mName, ok := bestMatch(search.DefaultTuning(), "alice", nameHit, UserFields())
	require.True(t, ok)
	mEmail, ok := bestMatch(search.DefaultTuning(), "alice", emailHit, UserFields())
	require.True(t, ok)
	mBio, ok := bestMatch(search.DefaultTuning(), "alice", bioHit, UserFields())
	require.True(t, ok)

	assert.Equal(t, "userName", mName.Field)
	assert.Equal(t, "email", mEmail.Field)
	assert.Equal(t, "bio", mBio.Field)
	assert.Greater(t, mName.Score, mEmail.Score)
	assert.Greater(t, mEmail.Score, mBio.Score)
}

func TestBestMatch_NameBeatsEmailWhenBothHit(t *testing.T) {
	u := userWith("alice", "alice@example.com", nil)

	m, ok := bestMatch(search.DefaultTuning(), "alice", u, UserFields())
	require.True(t, ok)
	assert.Equal(t, "userName", m.Field)
}

func TestBestMatch_FuzzyViaFieldToken(t *testing.T) {
	// "hello" vs the whole value "hxllo wrld" sits well under the floor,
	// but against the token "hxllo" the ratio is 0.8 and qualifies.
	p := &post.Post{Content: "hxllo wrld"}

	m, ok := bestMatch(search.DefaultTuning(), "hello", p, PostFields())
	require.True(t, ok)

	assert.Equal(t, "content", m.Field)
	assert.Equal(t, "hello", m.Text)
	assert.InDelta(t, 0.8, m.Score, 1e-9)
}

func TestBestMatch_FuzzyCarriesQuarterBonus(t *testing.T) {
	u := userWith("hxllo", "", nil)

	m, ok := bestMatch(search.DefaultTuning(), "hello", u, UserFields())
	require.True(t, ok)
	assert.InDelta(t, 0.8+0.6*0.25, m.Score, 1e-9)
}

func TestBestMatch_BelowFloorExcluded(t *testing.T) {
	p := &post.Post{Content: "zzzz"}

	_, ok := bestMatch(search.DefaultTuning(), "hello", p, PostFields())
	assert.False(t, ok)
}

func TestBestMatch_EmptyFieldsSkipped(t *testing.T) {
	u := userWith("", "", nil)

	_, ok := bestMatch(search.DefaultTuning(), "hello", u, UserFields())
	assert.False(t, ok)
}

func TestBestMatch_MultibyteWindow(t *testing.T) {
	u := userWith("日本語テスト", "", nil)

	m, ok := bestMatch(search.DefaultTuning(), "語テ", u, UserFields())
	require.True(t, ok)

	// Window is counted in runes, not bytes.
	assert.Equal(t, "語テ", m.Text)
	assert.InDelta(t, 1.0+0.6+(0.4-(2.0/6.0)*0.4), m.Score, 1e-9)
}

func TestBestMatch_LiteralOutranksFuzzyWithinField(t *testing.T) {
	literal := &post.Post{Content: "some hello text"}
	fuzzy := &post.Post{Content: "hxllo"}

	mLit, ok := bestMatch(search.DefaultTuning(), "hello", literal, PostFields())
	require.True(t, ok)
	mFuz, ok := bestMatch(search.DefaultTuning(), "hello", fuzzy, PostFields())
	require.True(t, ok)

	assert.Greater(t, mLit.Score, mFuz.Score)
}

func TestBestMatch_EqualScoreKeepsDeclaredOrder(t *testing.T) {
	// Two fields with the same bonus and identical values produce identical
	// scores; the earlier declared field must win.
	fields := []Field[*user.User]{
		{Name: "first", Bonus: 0, Value: func(u *user.User) string { return u.DisplayName }},
		{Name: "second", Bonus: 0, Value: func(u *user.User) string { return u.DisplayName }},
	}
	u := userWith("alice", "", nil)

	m, ok := bestMatch(search.DefaultTuning(), "alice", u, fields)
	require.True(t, ok)
	assert.Equal(t, "first", m.Field)
}

func TestMatchWindow_FallsBackToQuery(t *testing.T) {
	assert.Equal(t, "query", matchWindow("ab", 1, 5, "query"))
	assert.Equal(t, "ell", matchWindow("hello", 1, 3, "q"))
}

func TestRatio(t *testing.T) {
	assert.InDelta(t, 1.0, ratio("abc", "abc"), 1e-9)
	assert.InDelta(t, 0.8, ratio("hello", "hxllo"), 1e-9)
	assert.InDelta(t, 0.0, ratio("abc", "xyz"), 1e-9)
}
