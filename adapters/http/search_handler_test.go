package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	searchUC "github.com/minhtran/feedgram/internal/application/usecase/search"
	"github.com/minhtran/feedgram/internal/domain/post"
	"github.com/minhtran/feedgram/internal/domain/search"
	"github.com/minhtran/feedgram/internal/domain/user"
	"github.com/minhtran/feedgram/pkg/logger"
)

type stubSearchRepo struct {
	users       []*user.User
	posts       []*post.Post
	calls       int
	lastFilters search.Filters
}

func (s *stubSearchRepo) UserCandidates(_ context.Context, _ []string, f search.Filters, _ int) ([]*user.User, error) {
	s.calls++
	s.lastFilters = f
	return s.users, nil
}

func (s *stubSearchRepo) PostCandidates(_ context.Context, _ []string, f search.Filters, _ int) ([]*post.Post, error) {
	s.calls++
	s.lastFilters = f
	return s.posts, nil
}

func newSearchTestRouter(repo *stubSearchRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	uc := searchUC.NewSearchUseCase(repo, search.DefaultTuning(), logger.NewNop())
	handler := NewSearchHandler(uc)

	router := gin.New()
	router.Use(ErrorMiddleware(logger.NewNop()))
	router.GET("/api/v1/users/search", handler.SearchUsers)
	router.GET("/api/v1/posts/search", handler.SearchPosts)
	return router
}

func TestSearchUsersEndpoint_EmptyQuery(t *testing.T) {
	repo := &stubSearchRepo{}
	router := newSearchTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/search", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, []any{}, body["items"])
	assert.Equal(t, float64(0), body["total"])
	assert.Equal(t, "", body["query"])
	assert.Equal(t, 0, repo.calls)
}

func TestSearchUsersEndpoint_MalformedPage(t *testing.T) {
	repo := &stubSearchRepo{}
	router := newSearchTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/search?query=alice&page=abc", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body["error"]["code"])
	assert.Equal(t, 0, repo.calls)
}

func TestSearchPostsEndpoint_MalformedAuthorIDs(t *testing.T) {
	repo := &stubSearchRepo{}
	router := newSearchTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts/search?query=alice&authorIds=1,x", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, repo.calls)
}

func TestSearchPostsEndpoint_AuthorIDsParsedFromCSV(t *testing.T) {
	repo := &stubSearchRepo{}
	router := newSearchTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts/search?query=alice&authorIds=3,%201,3", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 1, repo.calls)
	assert.Equal(t, []int64{3, 1}, repo.lastFilters.AuthorIDs)
}

func TestSearchUsersEndpoint_ResultShape(t *testing.T) {
	repo := &stubSearchRepo{users: []*user.User{
		{ID: 7, DisplayName: "alice", Email: "alice@example.com"},
	}}
	router := newSearchTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/search?query=Alice", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Items []struct {
			UserID   int64  `json:"userId"`
			UserName string `json:"userName"`
			Match    struct {
				Field string  `json:"field"`
				Text  string  `json:"text"`
				Score float64 `json:"score"`
			} `json:"match"`
		} `json:"items"`
		Total int    `json:"total"`
		Query string `json:"query"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))

	require.Len(t, body.Items, 1)
	assert.Equal(t, int64(7), body.Items[0].UserID)
	assert.Equal(t, "alice", body.Items[0].UserName)
	assert.Equal(t, "userName", body.Items[0].Match.Field)
	assert.Equal(t, "alice", body.Items[0].Match.Text)
	assert.InDelta(t, 2.0, body.Items[0].Match.Score, 1e-9)
	assert.Equal(t, "alice", body.Query)
	assert.Equal(t, 1, body.Total)
}

func TestSearchEndpoint_FollowOnlyAnonymous(t *testing.T) {
	repo := &stubSearchRepo{users: []*user.User{{ID: 1, DisplayName: "alice"}}}
	router := newSearchTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/search?query=alice&followOnly=true", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, []any{}, body["items"])
	assert.Equal(t, 0, repo.calls)
}
