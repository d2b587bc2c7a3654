// Package authflow drives the three-legged OAuth2 handshake with Intuit:
// issuing the authorize redirect and exchanging the returned code for the
// initial token bundle. The two legs are independent stateless operations
// connected only by the signed state parameter.
package authflow

import (
	"context"
	"net/url"
	"time"

	"github.com/booksight/qbo-connect/connections"
	apperrors "github.com/booksight/qbo-connect/internal/errors"
	"github.com/booksight/qbo-connect/qbo"
	"github.com/booksight/qbo-connect/users"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Service implements the authorization flow controller.
type Service struct {
	users       users.UserRepo
	connections connections.Repo
	oauthCfg    *oauth2.Config
	stateSecret []byte
	environment string
	nowTime     func() time.Time
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowFunc sets the now time function (primarily for testing)
func WithNowFunc(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func NewService(
	userRepo users.UserRepo,
	connectionRepo connections.Repo,
	oauthCfg *oauth2.Config,
	stateSecret string,
	environment string,
	options ...ServiceOption,
) (*Service, error) {
	if userRepo == nil {
		return nil, errors.New("[NewService] user repo is required")
	}
	if connectionRepo == nil {
		return nil, errors.New("[NewService] connection repo is required")
	}
	if oauthCfg == nil {
		return nil, errors.New("[NewService] oauth config is required")
	}
	if stateSecret == "" {
		return nil, errors.New("[NewService] state secret is required")
	}

	service := &Service{
		users:       userRepo,
		connections: connectionRepo,
		oauthCfg:    oauthCfg,
		stateSecret: []byte(stateSecret),
		environment: environment,
		nowTime:     time.Now,
	}
	for _, opt := range options {
		opt(service)
	}
	return service, nil
}

// BeginAuthorization validates the user and returns the authorize redirect
// URI with the user's id embedded in the signed state parameter.
func (s *Service) BeginAuthorization(ctx context.Context, userID string) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return "", errors.Wrapf(apperrors.ErrUserNotFound, "no user with id %q", userID)
		}
		return "", errors.Wrap(err, "[BeginAuthorization] user lookup failed")
	}

	state, err := signState(s.stateSecret, user.ID, s.nowTime())
	if err != nil {
		return "", err
	}
	return s.oauthCfg.AuthCodeURL(state), nil
}

// CompleteAuthorization resumes the handshake from the callback URL:
// it recovers the user id from the state, exchanges the code, and upserts
// the Connection. Retried callbacks for the same (user, realm) overwrite
// the existing record rather than inserting a duplicate.
func (s *Service) CompleteAuthorization(ctx context.Context, callbackURL string) (*connections.Connection, error) {
	parsed, err := url.Parse(callbackURL)
	if err != nil {
		return nil, errors.Wrapf(apperrors.ErrMalformedCallback, "unparseable callback URL: %v", err)
	}
	query := parsed.Query()

	if errParam := query.Get("error"); errParam != "" {
		return nil, errors.Wrapf(apperrors.ErrMalformedCallback, "provider denied authorization: %s %s",
			errParam, query.Get("error_description"))
	}

	state := query.Get("state")
	if state == "" {
		return nil, errors.Wrap(apperrors.ErrMalformedCallback, "missing state parameter")
	}
	userID, err := parseState(s.stateSecret, state)
	if err != nil {
		return nil, err
	}

	code := query.Get("code")
	if code == "" {
		return nil, errors.Wrap(apperrors.ErrMalformedCallback, "missing code parameter")
	}

	// Intuit identifies the authorized company via the realmId parameter.
	realmID := query.Get("realmId")
	if realmID == "" {
		return nil, errors.Wrap(apperrors.ErrMalformedCallback, "missing realmId parameter")
	}

	token, err := s.oauthCfg.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrapf(apperrors.ErrMalformedCallback, "code exchange failed: %v", err)
	}

	tokenType := token.TokenType
	if tokenType == "" {
		tokenType = connections.DefaultTokenType
	}
	expiresAt := token.Expiry
	if expiresAt.IsZero() {
		expiresAt = s.nowTime().Add(qbo.DefaultTokenLifetime)
	}

	conn := &connections.Connection{
		UserID:       userID,
		RealmID:      realmID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    tokenType,
		ExpiresAt:    expiresAt,
		Environment:  s.environment,
	}
	return s.connections.Upsert(ctx, conn)
}

// Disconnect removes every Connection for the user.
func (s *Service) Disconnect(ctx context.Context, userID string) error {
	return s.connections.DeleteForUser(ctx, userID)
}
