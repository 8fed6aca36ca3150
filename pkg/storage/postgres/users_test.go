package postgres_test

import (
	"context"
	"testing"
	"time"

	"jobboard/pkg/domain"
	"jobboard/pkg/storage"
	"jobboard/pkg/storage/postgres"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// createUser inserts a test account.
func createUser(t *testing.T, pg *postgres.PgSQL, username string, accountType domain.AccountType) *domain.User {
	t.Helper()

	user, err := pg.StoreUser(context.Background(), domain.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "hash",
		AccountType:  accountType,
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	return user
}

func TestPgSQL_StoreUser_AndLookups(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	stored := createUser(t, pg, "jdoe", domain.AccountTypeJobSeeker)
	require.NotEqual(t, domain.UserID(uuid.Nil), stored.ID)
	require.False(t, stored.CreatedAt.IsZero())

	// by ID
	byID, err := pg.UserByID(ctx, stored.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	require.Equal(t, "jdoe", byID.Username)
	require.Equal(t, domain.AccountTypeJobSeeker, byID.AccountType)

	// username lookup is case-insensitive
	byName, err := pg.UserByUsername(ctx, "JDoe")
	require.NoError(t, err)
	require.NotNil(t, byName)
	require.Equal(t, stored.ID, byName.ID)

	// unknown user
	missing, err := pg.UserByID(ctx, domain.UserID(uuid.New()))
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestPgSQL_StoreUser_DuplicateUsername(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	createUser(t, pg, "taken", domain.AccountTypeRecruiter)

	_, err := pg.StoreUser(context.Background(), domain.User{
		Username:     "taken",
		Email:        "other@example.com",
		PasswordHash: "hash",
		AccountType:  domain.AccountTypeJobSeeker,
	})
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrDuplicate)
}

func TestPgSQL_Messages(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	sender := createUser(t, pg, "sender", domain.AccountTypeRecruiter)
	recipient := createUser(t, pg, "recipient", domain.AccountTypeJobSeeker)

	for _, content := range []string{"first", "second", "third"} {
		_, err := pg.StoreMessage(ctx, domain.Message{
			SenderID:    sender.ID,
			RecipientID: recipient.ID,
			Content:     content,
		})
		require.NoError(t, err)
	}

	// newest first, limit respected with a cursor to the next page
	page, err := pg.InboxMessages(ctx, recipient.ID, time.Time{}, 2)
	require.NoError(t, err)
	require.Len(t, page.Messages, 2)
	require.NotNil(t, page.NextCursor)
	require.Equal(t, "third", page.Messages[0].Content)

	rest, err := pg.InboxMessages(ctx, recipient.ID, *page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, rest.Messages, 1)
	require.Nil(t, rest.NextCursor)
	require.Equal(t, "first", rest.Messages[0].Content)

	// sender's inbox is empty
	empty, err := pg.InboxMessages(ctx, sender.ID, time.Time{}, 10)
	require.NoError(t, err)
	require.Empty(t, empty.Messages)
}

func TestPgSQL_CityCoordCache(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	// cache miss
	miss, err := pg.CityCoord(ctx, "Atlanta", "GA")
	require.NoError(t, err)
	require.Nil(t, miss)

	require.NoError(t, pg.StoreCityCoord(ctx, domain.CityCoord{
		City:  "Atlanta",
		State: "GA",
		Lat:   33.7489954,
		Lng:   -84.3879824,
	}))

	// case-insensitive hit
	hit, err := pg.CityCoord(ctx, "atlanta", "ga")
	require.NoError(t, err)
	require.NotNil(t, hit)
	require.InDelta(t, 33.7489954, hit.Lat, 0.0001)

	// duplicate insert is ignored
	require.NoError(t, pg.StoreCityCoord(ctx, domain.CityCoord{
		City:  "ATLANTA",
		State: "GA",
		Lat:   0,
		Lng:   0,
	}))
}
