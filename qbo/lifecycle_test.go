package qbo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/booksight/qbo-connect/connections"
	fakeconnectionrepo "github.com/booksight/qbo-connect/connections/repofake"
	apperrors "github.com/booksight/qbo-connect/internal/errors"
	"github.com/booksight/qbo-connect/qbo"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const (
	testUserID       = "user-1"
	testRealmID      = "9130357849"
	testAccessToken  = "stored-access-token"
	testRefreshToken = "stored-refresh-token"
)

type tokenEndpointResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	Error        string `json:"error,omitempty"`
}

// tokenServer is a stub provider token endpoint counting refresh exchanges.
type tokenServer struct {
	server   *httptest.Server
	calls    atomic.Int64
	response tokenEndpointResponse
	status   int
	delay    time.Duration
}

func newTokenServer(status int, response tokenEndpointResponse) *tokenServer {
	ts := &tokenServer{response: response, status: status}
	ts.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.calls.Add(1)
		if ts.delay > 0 {
			time.Sleep(ts.delay)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(ts.status)
		_ = json.NewEncoder(w).Encode(ts.response)
	}))
	return ts
}

func (ts *tokenServer) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		Endpoint:     oauth2.Endpoint{AuthURL: ts.server.URL + "/authorize", TokenURL: ts.server.URL + "/token"},
	}
}

func storedConnection(expiresAt time.Time) *connections.Connection {
	return &connections.Connection{
		UserID:       testUserID,
		RealmID:      testRealmID,
		AccessToken:  testAccessToken,
		RefreshToken: testRefreshToken,
		TokenType:    "bearer",
		ExpiresAt:    expiresAt,
		Environment:  qbo.EnvironmentSandbox,
	}
}

func newLifecycle(t *testing.T, ts *tokenServer, repo connections.Repo, nowFunc func() time.Time) *qbo.Lifecycle {
	t.Helper()
	lifecycle, err := qbo.NewLifecycle(ts.oauthConfig(), repo, qbo.WithNowFunc(nowFunc))
	require.NoError(t, err)
	return lifecycle
}

func TestEnsureFreshLeavesValidConnectionUntouched(t *testing.T) {
	ts := newTokenServer(http.StatusOK, tokenEndpointResponse{AccessToken: "new"})
	defer ts.server.Close()

	now := time.Now()
	repo := fakeconnectionrepo.NewFakeConnectionRepo()
	lifecycle := newLifecycle(t, ts, repo, func() time.Time { return now })

	conn := storedConnection(now.Add(10 * time.Minute))
	fresh, err := lifecycle.EnsureFresh(context.Background(), conn)

	require.NoError(t, err)
	require.Same(t, conn, fresh)
	require.EqualValues(t, 0, ts.calls.Load())
}

func TestEnsureFreshRefreshesInsideSkewWindow(t *testing.T) {
	ts := newTokenServer(http.StatusOK, tokenEndpointResponse{
		AccessToken:  "refreshed-access-token",
		RefreshToken: "rotated-refresh-token",
		TokenType:    "bearer",
		ExpiresIn:    3600,
	})
	defer ts.server.Close()

	now := time.Now()
	repo := fakeconnectionrepo.NewFakeConnectionRepo()
	lifecycle := newLifecycle(t, ts, repo, func() time.Time { return now })

	// 30s to nominal expiry is inside the 60s skew window.
	conn := storedConnection(now.Add(30 * time.Second))
	fresh, err := lifecycle.EnsureFresh(context.Background(), conn)

	require.NoError(t, err)
	require.EqualValues(t, 1, ts.calls.Load())
	require.Equal(t, "refreshed-access-token", fresh.AccessToken)
	require.Equal(t, "rotated-refresh-token", fresh.RefreshToken)
	require.WithinDuration(t, now.Add(3600*time.Second), fresh.ExpiresAt, 5*time.Second)

	stored, err := repo.FindCurrent(context.Background(), testUserID, testRealmID)
	require.NoError(t, err)
	require.Equal(t, "refreshed-access-token", stored.AccessToken)
}

func TestEnsureFreshTreatsMissingExpiryAsExpired(t *testing.T) {
	ts := newTokenServer(http.StatusOK, tokenEndpointResponse{AccessToken: "refreshed", ExpiresIn: 3600})
	defer ts.server.Close()

	repo := fakeconnectionrepo.NewFakeConnectionRepo()
	lifecycle := newLifecycle(t, ts, repo, time.Now)

	conn := storedConnection(time.Time{})
	fresh, err := lifecycle.EnsureFresh(context.Background(), conn)

	require.NoError(t, err)
	require.EqualValues(t, 1, ts.calls.Load())
	require.Equal(t, "refreshed", fresh.AccessToken)
}

func TestEnsureFreshRetainsRefreshTokenWhenResponseOmitsOne(t *testing.T) {
	ts := newTokenServer(http.StatusOK, tokenEndpointResponse{AccessToken: "refreshed", ExpiresIn: 3600})
	defer ts.server.Close()

	repo := fakeconnectionrepo.NewFakeConnectionRepo()
	lifecycle := newLifecycle(t, ts, repo, time.Now)

	fresh, err := lifecycle.EnsureFresh(context.Background(), storedConnection(time.Time{}))

	require.NoError(t, err)
	require.Equal(t, testRefreshToken, fresh.RefreshToken)

	stored, err := repo.FindCurrent(context.Background(), testUserID, testRealmID)
	require.NoError(t, err)
	require.Equal(t, testRefreshToken, stored.RefreshToken)
}

func TestEnsureFreshDefaultsLifetimeWhenProviderOmitsOne(t *testing.T) {
	ts := newTokenServer(http.StatusOK, tokenEndpointResponse{AccessToken: "refreshed"})
	defer ts.server.Close()

	now := time.Now()
	repo := fakeconnectionrepo.NewFakeConnectionRepo()
	lifecycle := newLifecycle(t, ts, repo, func() time.Time { return now })

	fresh, err := lifecycle.EnsureFresh(context.Background(), storedConnection(time.Time{}))

	require.NoError(t, err)
	require.Equal(t, now.Add(qbo.DefaultTokenLifetime), fresh.ExpiresAt)
}

func TestEnsureFreshSurfacesExpiredCredentialOnRefreshFailure(t *testing.T) {
	ts := newTokenServer(http.StatusBadRequest, tokenEndpointResponse{Error: "invalid_grant"})
	defer ts.server.Close()

	repo := fakeconnectionrepo.NewFakeConnectionRepo()
	lifecycle := newLifecycle(t, ts, repo, time.Now)

	_, err := lifecycle.EnsureFresh(context.Background(), storedConnection(time.Time{}))

	require.Error(t, err)
	require.ErrorIs(t, err, apperrors.ErrExpiredCredential)
	require.EqualValues(t, 1, ts.calls.Load())
}

// failingUpsertRepo simulates a store that cannot persist the refreshed token.
type failingUpsertRepo struct {
	connections.Repo
}

func (r failingUpsertRepo) Upsert(context.Context, *connections.Connection) (*connections.Connection, error) {
	return nil, apperrors.ErrInternal
}

func TestEnsureFreshFailsWhenRefreshedTokenCannotBePersisted(t *testing.T) {
	ts := newTokenServer(http.StatusOK, tokenEndpointResponse{AccessToken: "refreshed", ExpiresIn: 3600})
	defer ts.server.Close()

	repo := failingUpsertRepo{Repo: fakeconnectionrepo.NewFakeConnectionRepo()}
	lifecycle := newLifecycle(t, ts, repo, time.Now)

	_, err := lifecycle.EnsureFresh(context.Background(), storedConnection(time.Time{}))

	require.Error(t, err)
	require.ErrorIs(t, err, apperrors.ErrInternal)
}

func TestEnsureFreshCoalescesConcurrentRefreshes(t *testing.T) {
	ts := newTokenServer(http.StatusOK, tokenEndpointResponse{AccessToken: "refreshed", ExpiresIn: 3600})
	ts.delay = 100 * time.Millisecond
	defer ts.server.Close()

	repo := fakeconnectionrepo.NewFakeConnectionRepo()
	lifecycle := newLifecycle(t, ts, repo, time.Now)

	const concurrency = 5
	var wg sync.WaitGroup
	results := make([]*connections.Connection, concurrency)
	errs := make([]error, concurrency)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = lifecycle.EnsureFresh(context.Background(), storedConnection(time.Time{}))
		}(i)
	}
	wg.Wait()

	require.EqualValues(t, 1, ts.calls.Load())
	for i := 0; i < concurrency; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, "refreshed", results[i].AccessToken)
	}
}
