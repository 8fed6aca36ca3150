package auth_test

import (
	"testing"
	"time"

	"jobboard/internal/auth"
	"jobboard/pkg/domain"
	"jobboard/pkg/serrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestIssueAndParseToken(t *testing.T) {
	userID := domain.UserID(uuid.New())

	token, err := auth.IssueToken(testSecret, userID, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := auth.ParseToken(testSecret, token)
	require.NoError(t, err)
	require.Equal(t, userID, parsed)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := auth.IssueToken(testSecret, domain.UserID(uuid.New()), time.Hour)
	require.NoError(t, err)

	_, err = auth.ParseToken("other-secret", token)
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrUnauthorized)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := auth.IssueToken(testSecret, domain.UserID(uuid.New()), -time.Minute)
	require.NoError(t, err)

	_, err = auth.ParseToken(testSecret, token)
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrUnauthorized)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := auth.ParseToken(testSecret, "not.a.token")
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrUnauthorized)
}
