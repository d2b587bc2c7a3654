package fakeconnectionrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/booksight/qbo-connect/connections"
	fakeconnectionrepo "github.com/booksight/qbo-connect/connections/repofake"
	apperrors "github.com/booksight/qbo-connect/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestFindCurrentWithoutRealmReturnsMostRecentlyUpdated(t *testing.T) {
	repo := fakeconnectionrepo.NewFakeConnectionRepo()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := base
	fakeconnectionrepo.NowTimeFunc = func() time.Time { return now }
	defer func() { fakeconnectionrepo.NowTimeFunc = time.Now }()

	_, err := repo.Upsert(context.Background(), &connections.Connection{UserID: "user-1", RealmID: "realm-old"})
	require.NoError(t, err)

	now = base.Add(time.Minute)
	_, err = repo.Upsert(context.Background(), &connections.Connection{UserID: "user-1", RealmID: "realm-new"})
	require.NoError(t, err)

	conn, err := repo.FindCurrent(context.Background(), "user-1", "")
	require.NoError(t, err)
	require.Equal(t, "realm-new", conn.RealmID)
}

func TestUpsertKeepsOneRecordPerUserRealmPair(t *testing.T) {
	repo := fakeconnectionrepo.NewFakeConnectionRepo()

	first, err := repo.Upsert(context.Background(), &connections.Connection{
		UserID: "user-1", RealmID: "realm-1", AccessToken: "a",
	})
	require.NoError(t, err)

	second, err := repo.Upsert(context.Background(), &connections.Connection{
		UserID: "user-1", RealmID: "realm-1", AccessToken: "b",
	})
	require.NoError(t, err)

	require.Equal(t, 1, repo.Count())
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "b", second.AccessToken)
}

func TestFindCurrentUnknownUser(t *testing.T) {
	repo := fakeconnectionrepo.NewFakeConnectionRepo()

	_, err := repo.FindCurrent(context.Background(), "user-1", "")
	require.ErrorIs(t, err, apperrors.ErrNoConnection)
}

func TestDeleteForUserRemovesAllRealms(t *testing.T) {
	repo := fakeconnectionrepo.NewFakeConnectionRepo()

	_, err := repo.Upsert(context.Background(), &connections.Connection{UserID: "user-1", RealmID: "realm-1"})
	require.NoError(t, err)
	_, err = repo.Upsert(context.Background(), &connections.Connection{UserID: "user-1", RealmID: "realm-2"})
	require.NoError(t, err)
	_, err = repo.Upsert(context.Background(), &connections.Connection{UserID: "user-2", RealmID: "realm-1"})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteForUser(context.Background(), "user-1"))

	_, err = repo.FindCurrent(context.Background(), "user-1", "")
	require.ErrorIs(t, err, apperrors.ErrNoConnection)

	_, err = repo.FindCurrent(context.Background(), "user-2", "")
	require.NoError(t, err)
}
