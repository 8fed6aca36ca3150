package matcher_test

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"jobboard/internal/matcher"
	"jobboard/pkg/domain"
	"jobboard/pkg/storage/postgres"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) (*postgres.PgSQL, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForListeningPort("5432"),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	pgSQL, err := postgres.New(ctx, postgres.Options{
		Username:           "postgres",
		Password:           "postgres",
		Host:               host,
		Port:               port.Int(),
		Database:           "testdb",
		SslMode:            "disable",
		ConnMaxLifetime:    time.Minute,
		ConnMaxIdleTime:    time.Minute,
		MaxOpenConnections: 5,
		MaxIdleConnections: 5,
	})
	require.NoError(t, err)

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(pgSQL.DB.(*sql.DB), filepath.Join("..", "..", "migrations")))

	return pgSQL, func() {
		_ = pgSQL.Close()
		_ = container.Terminate(ctx)
	}
}

// seedSeeker creates a job seeker whose profile lists the given skills.
func seedSeeker(t *testing.T, pg *postgres.PgSQL, username string, skills []string) *domain.Profile {
	t.Helper()
	ctx := context.Background()

	user, err := pg.StoreUser(ctx, domain.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "hash",
		AccountType:  domain.AccountTypeJobSeeker,
	})
	require.NoError(t, err)

	profile, err := pg.EnsureProfile(ctx, user.ID)
	require.NoError(t, err)

	profile.Skills = skills
	updated, err := pg.UpdateProfile(ctx, *profile)
	require.NoError(t, err)

	return updated
}

func TestMatcher_SyncProfile(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	recruiter, err := pg.StoreUser(ctx, domain.User{
		Username:     "recruiter",
		Email:        "recruiter@example.com",
		PasswordHash: "hash",
		AccountType:  domain.AccountTypeRecruiter,
	})
	require.NoError(t, err)

	search, err := pg.StoreSavedSearch(ctx, domain.SavedSearch{
		RecruiterID:        recruiter.ID,
		Name:               "Go devs",
		Skills:             "go, postgresql",
		NotifyOnNewMatches: true,
	})
	require.NoError(t, err)

	seeker := seedSeeker(t, pg, "seeker", []string{"Go", "PostgreSQL"})

	m := matcher.New(pg, matcher.Options{SweepLookback: 24 * time.Hour})

	// first sync creates the bucket and aggregates the candidate
	updated, err := m.SyncProfile(ctx, seeker.UserID)
	require.NoError(t, err)
	require.Equal(t, 1, updated)

	buckets, err := pg.NotificationsByRecruiter(ctx, recruiter.ID)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	require.Equal(t, 1, buckets[0].CandidatesCount)
	require.False(t, buckets[0].IsRead)

	stamped, err := pg.SavedSearchByID(ctx, recruiter.ID, search.ID)
	require.NoError(t, err)
	require.NotNil(t, stamped.LastNotified)

	// re-running stays at one bucket with one candidate
	_, err = m.SyncProfile(ctx, seeker.UserID)
	require.NoError(t, err)

	buckets, err = pg.NotificationsByRecruiter(ctx, recruiter.ID)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	require.Equal(t, 1, buckets[0].CandidatesCount)
}

func TestMatcher_SyncProfile_ReopensReadBucket(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	recruiter, err := pg.StoreUser(ctx, domain.User{
		Username:     "recruiter",
		Email:        "recruiter@example.com",
		PasswordHash: "hash",
		AccountType:  domain.AccountTypeRecruiter,
	})
	require.NoError(t, err)

	_, err = pg.StoreSavedSearch(ctx, domain.SavedSearch{
		RecruiterID:        recruiter.ID,
		Name:               "Go devs",
		Skills:             "go",
		NotifyOnNewMatches: true,
	})
	require.NoError(t, err)

	first := seedSeeker(t, pg, "first", []string{"Go"})

	m := matcher.New(pg, matcher.Options{SweepLookback: 24 * time.Hour})

	_, err = m.SyncProfile(ctx, first.UserID)
	require.NoError(t, err)

	buckets, err := pg.NotificationsByRecruiter(ctx, recruiter.ID)
	require.NoError(t, err)
	require.Len(t, buckets, 1)

	// recruiter reads the bucket
	_, err = pg.MarkNotificationRead(ctx, recruiter.ID, buckets[0].ID)
	require.NoError(t, err)

	// a second matching candidate lands in the SAME bucket and re-opens it
	second := seedSeeker(t, pg, "second", []string{"Go"})
	_, err = m.SyncProfile(ctx, second.UserID)
	require.NoError(t, err)

	buckets, err = pg.NotificationsByRecruiter(ctx, recruiter.ID)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	require.Equal(t, 2, buckets[0].CandidatesCount)
	require.False(t, buckets[0].IsRead)
	require.Nil(t, buckets[0].ReadAt)
}

func TestMatcher_SyncProfile_MergesDuplicateBuckets(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	recruiter, err := pg.StoreUser(ctx, domain.User{
		Username:     "recruiter",
		Email:        "recruiter@example.com",
		PasswordHash: "hash",
		AccountType:  domain.AccountTypeRecruiter,
	})
	require.NoError(t, err)

	search, err := pg.StoreSavedSearch(ctx, domain.SavedSearch{
		RecruiterID:        recruiter.ID,
		Name:               "Go devs",
		Skills:             "go",
		NotifyOnNewMatches: true,
	})
	require.NoError(t, err)

	stray := seedSeeker(t, pg, "stray", []string{"Go"})

	// two stray buckets, one already holding a candidate
	strayBucket, err := pg.CreateBucket(ctx, search.ID)
	require.NoError(t, err)
	_, err = pg.AddBucketCandidate(ctx, strayBucket.ID, stray.UserID)
	require.NoError(t, err)
	_, err = pg.CreateBucket(ctx, search.ID)
	require.NoError(t, err)

	seeker := seedSeeker(t, pg, "seeker", []string{"Go"})

	m := matcher.New(pg, matcher.Options{SweepLookback: 24 * time.Hour})
	_, err = m.SyncProfile(ctx, seeker.UserID)
	require.NoError(t, err)

	// merged down to a single bucket holding both candidates
	buckets, err := pg.NotificationsByRecruiter(ctx, recruiter.ID)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	require.Equal(t, 2, buckets[0].CandidatesCount)
}

func TestMatcher_SyncProfile_RemovesStaleMembership(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	recruiter, err := pg.StoreUser(ctx, domain.User{
		Username:     "recruiter",
		Email:        "recruiter@example.com",
		PasswordHash: "hash",
		AccountType:  domain.AccountTypeRecruiter,
	})
	require.NoError(t, err)

	_, err = pg.StoreSavedSearch(ctx, domain.SavedSearch{
		RecruiterID:        recruiter.ID,
		Name:               "Go devs",
		Skills:             "go",
		NotifyOnNewMatches: true,
	})
	require.NoError(t, err)

	seeker := seedSeeker(t, pg, "seeker", []string{"Go"})

	m := matcher.New(pg, matcher.Options{SweepLookback: 24 * time.Hour})
	_, err = m.SyncProfile(ctx, seeker.UserID)
	require.NoError(t, err)

	// the seeker drops the matching skill: the membership goes away and the
	// now-empty bucket is deleted
	profile, err := pg.ProfileByUserID(ctx, seeker.UserID)
	require.NoError(t, err)
	profile.Skills = []string{"React"}
	_, err = pg.UpdateProfile(ctx, *profile)
	require.NoError(t, err)

	updated, err := m.SyncProfile(ctx, seeker.UserID)
	require.NoError(t, err)
	require.Zero(t, updated)

	buckets, err := pg.NotificationsByRecruiter(ctx, recruiter.ID)
	require.NoError(t, err)
	require.Empty(t, buckets)
}
