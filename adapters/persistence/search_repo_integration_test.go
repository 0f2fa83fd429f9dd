package persistence

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/minhtran/feedgram/internal/config"
	"github.com/minhtran/feedgram/internal/domain/search"
)

// Runs against the database configured in DB_DSN. The suite owns its rows
// and removes them afterwards; the schema must already be migrated.
type SearchRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool     *pgxpool.Pool
	searchRepo search.Repository

	userIDs []int64
	postIDs []int64
}

func TestSearchRepoIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration tests. Set INTEGRATION_TESTS=1 to run.")
	}
	suite.Run(t, new(SearchRepoIntegrationTestSuite))
}

func (s *SearchRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		s.T().Fatalf("Failed to load config: %v", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DB.DSN)
	if err != nil {
		s.T().Fatalf("Failed to connect postgres: %v", err)
	}
	s.dbPool = pool
	s.searchRepo = NewPostgresSearchRepo(pool)

	seedUsers := []struct {
		email string
		name  string
		bio   string
	}{
		{"it_gopher@example.com", "it gopher", "writes go"},
		{"it_crafter@example.com", "it crafter", "likes gophers"},
		{"it_quiet@example.com", "it quiet", "nothing here"},
	}
	for _, u := range seedUsers {
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO users (email, user_name, password_hash, bio) VALUES ($1, $2, 'x', $3)
			 ON CONFLICT (email) DO UPDATE SET user_name = EXCLUDED.user_name, bio = EXCLUDED.bio
			 RETURNING id`,
			u.email, u.name, u.bio).Scan(&id)
		if err != nil {
			s.T().Fatalf("Failed to seed user %s: %v", u.email, err)
		}
		s.userIDs = append(s.userIDs, id)
	}

	for i, content := range []string{"gopher content one", "plain content two"} {
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO posts (user_id, content) VALUES ($1, $2) RETURNING id`,
			s.userIDs[i], content).Scan(&id)
		if err != nil {
			s.T().Fatalf("Failed to seed post: %v", err)
		}
		s.postIDs = append(s.postIDs, id)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		s.userIDs[2], s.userIDs[0])
	if err != nil {
		s.T().Fatalf("Failed to seed follow: %v", err)
	}
}

func (s *SearchRepoIntegrationTestSuite) TearDownSuite() {
	ctx := context.Background()
	if s.dbPool == nil {
		return
	}
	for _, id := range s.userIDs {
		s.dbPool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	}
	s.dbPool.Close()
}

func (s *SearchRepoIntegrationTestSuite) Test_UserCandidates_Prefilter() {
	users, err := s.searchRepo.UserCandidates(context.Background(),
		[]string{"gopher"}, search.Filters{AuthorIDs: s.userIDs}, 10)
	s.Require().NoError(err)

	// "it gopher" matches on user_name, "it crafter" on bio.
	s.Require().Len(users, 2)
	for _, u := range users {
		s.NotEqual("it quiet", u.DisplayName)
	}
}

func (s *SearchRepoIntegrationTestSuite) Test_UserCandidates_FallbackOnNoLiteralHit() {
	users, err := s.searchRepo.UserCandidates(context.Background(),
		[]string{"gxpher"}, search.Filters{AuthorIDs: s.userIDs}, 10)
	s.Require().NoError(err)

	// No literal containment, so all scoped rows come back for fuzzy scoring.
	s.Len(users, 3)
}

func (s *SearchRepoIntegrationTestSuite) Test_UserCandidates_FollowOnlyScope() {
	viewer := s.userIDs[2]
	users, err := s.searchRepo.UserCandidates(context.Background(),
		[]string{"it"}, search.Filters{AuthorIDs: s.userIDs, FollowOnly: true, ViewerID: &viewer}, 10)
	s.Require().NoError(err)

	// The viewer plus the single followed account.
	s.Require().Len(users, 2)
	ids := []int64{users[0].ID, users[1].ID}
	s.ElementsMatch(ids, []int64{s.userIDs[0], s.userIDs[2]})
}

func (s *SearchRepoIntegrationTestSuite) Test_UserCandidates_EscapesLikeMetachars() {
	users, err := s.searchRepo.UserCandidates(context.Background(),
		[]string{"%"}, search.Filters{AuthorIDs: s.userIDs}, 10)
	s.Require().NoError(err)

	// "%" must match literally, which no seeded name/email/bio contains,
	// so the fallback window returns every scoped row instead.
	s.Len(users, 3)
}

func (s *SearchRepoIntegrationTestSuite) Test_PostCandidates_PrefilterAndOrder() {
	posts, err := s.searchRepo.PostCandidates(context.Background(),
		[]string{"content"}, search.Filters{AuthorIDs: s.userIDs}, 10)
	s.Require().NoError(err)

	s.Require().Len(posts, 2)
	// Newest first.
	s.Equal(s.postIDs[1], posts[0].ID)
	s.Equal(s.postIDs[0], posts[1].ID)
}

func (s *SearchRepoIntegrationTestSuite) Test_PostCandidates_RespectsLimit() {
	posts, err := s.searchRepo.PostCandidates(context.Background(),
		[]string{"content"}, search.Filters{AuthorIDs: s.userIDs}, 1)
	s.Require().NoError(err)
	s.Len(posts, 1)
}

func (s *SearchRepoIntegrationTestSuite) Test_PostCandidates_AuthorFilter() {
	posts, err := s.searchRepo.PostCandidates(context.Background(),
		[]string{"content"}, search.Filters{AuthorIDs: []int64{s.userIDs[0]}}, 10)
	s.Require().NoError(err)

	s.Require().Len(posts, 1)
	s.Equal("gopher content one", posts[0].Content)
}
