package connections

import (
	"time"
)

// DefaultTokenType is assumed when the provider omits a token_type.
const DefaultTokenType = "bearer"

// Connection is one stored OAuth2 link between a user and a QuickBooks
// company (realm). There is at most one current Connection per
// (UserID, RealmID) pair; writes go through Repo.Upsert.
type Connection struct {
	ID           string    `json:"id,omitempty" gorm:"primaryKey;size:36"`
	UserID       string    `json:"user_id" gorm:"column:user_id;not null;size:36;uniqueIndex:idx_connections_user_realm"`
	RealmID      string    `json:"realm_id" gorm:"column:realm_id;not null;size:64;uniqueIndex:idx_connections_user_realm"`
	AccessToken  string    `json:"-" gorm:"column:access_token;size:4096"`
	RefreshToken string    `json:"-" gorm:"column:refresh_token;size:1024"`
	TokenType    string    `json:"token_type,omitempty" gorm:"column:token_type;size:64"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
	Environment  string    `json:"environment,omitempty" gorm:"size:32"`
	CreatedAt    time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at,omitempty" gorm:"autoUpdateTime"`
}

// Expired reports whether the access token must be treated as invalid at
// the given instant. A connection without an expiry is always expired,
// which forces a refresh attempt before the token is used.
func (c *Connection) Expired(now time.Time, skew time.Duration) bool {
	if c.ExpiresAt.IsZero() {
		return true
	}
	return !c.ExpiresAt.After(now.Add(skew))
}
