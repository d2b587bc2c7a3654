package qbo

import (
	"context"
	"time"

	"github.com/booksight/qbo-connect/connections"
	apperrors "github.com/booksight/qbo-connect/internal/errors"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const (
	// expirySkew forces a refresh up to a minute before the nominal expiry,
	// so a token never runs out between the freshness check and its use.
	expirySkew = 60 * time.Second

	// DefaultTokenLifetime applies when the provider omits expires_in.
	DefaultTokenLifetime = 3600 * time.Second
)

// Lifecycle keeps stored connections usable over time. Every data request
// passes its connection through EnsureFresh before a client is built from it.
type Lifecycle struct {
	oauthCfg *oauth2.Config
	repo     connections.Repo
	nowTime  func() time.Time
	group    singleflight.Group
}

// LifecycleOption modifies a Lifecycle instance.
type LifecycleOption func(*Lifecycle)

// WithNowFunc sets the now time function (primarily for testing)
func WithNowFunc(nowFunc func() time.Time) LifecycleOption {
	return func(l *Lifecycle) {
		l.nowTime = nowFunc
	}
}

func NewLifecycle(oauthCfg *oauth2.Config, repo connections.Repo, options ...LifecycleOption) (*Lifecycle, error) {
	if oauthCfg == nil {
		return nil, errors.New("[NewLifecycle] oauth config is required")
	}
	if repo == nil {
		return nil, errors.New("[NewLifecycle] connection repo is required")
	}

	lifecycle := &Lifecycle{
		oauthCfg: oauthCfg,
		repo:     repo,
		nowTime:  time.Now,
	}
	for _, opt := range options {
		opt(lifecycle)
	}
	return lifecycle, nil
}

// EnsureFresh returns the connection untouched while its access token is
// still valid beyond the skew window; otherwise it performs one refresh
// exchange, persists the result, and returns the updated connection.
// Concurrent callers observing the same expired connection share a single
// refresh exchange. A failed exchange surfaces as ErrExpiredCredential and
// means the user must re-authorize.
func (l *Lifecycle) EnsureFresh(ctx context.Context, conn *connections.Connection) (*connections.Connection, error) {
	if !conn.Expired(l.nowTime(), expirySkew) {
		return conn, nil
	}

	v, err, _ := l.group.Do(conn.UserID+"|"+conn.RealmID, func() (interface{}, error) {
		return l.refresh(ctx, conn)
	})
	if err != nil {
		return nil, err
	}
	return v.(*connections.Connection), nil
}

func (l *Lifecycle) refresh(ctx context.Context, conn *connections.Connection) (*connections.Connection, error) {
	seed := &oauth2.Token{RefreshToken: conn.RefreshToken}
	token, err := l.oauthCfg.TokenSource(ctx, seed).Token()
	if err != nil {
		return nil, errors.Wrapf(apperrors.ErrExpiredCredential, "refresh exchange failed: %v", err)
	}

	conn.AccessToken = token.AccessToken
	// A refresh response may omit the refresh token; the prior one stays valid.
	if token.RefreshToken != "" {
		conn.RefreshToken = token.RefreshToken
	}
	if token.TokenType != "" {
		conn.TokenType = token.TokenType
	} else if conn.TokenType == "" {
		conn.TokenType = connections.DefaultTokenType
	}
	if token.Expiry.IsZero() {
		conn.ExpiresAt = l.nowTime().Add(DefaultTokenLifetime)
	} else {
		conn.ExpiresAt = token.Expiry
	}

	// A refreshed token that cannot be persisted must not be used: the next
	// request would silently fall back to the stale stored credentials.
	updated, err := l.repo.Upsert(ctx, conn)
	if err != nil {
		return nil, errors.Wrap(err, "[EnsureFresh] failed to persist refreshed connection")
	}
	return updated, nil
}
