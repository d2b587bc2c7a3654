package connections

import "context"

// Repo is the durable store of Connections.
type Repo interface {
	// FindCurrent returns the Connection for (userID, realmID). When realmID
	// is empty the most recently updated Connection for the user is returned.
	// Returns errors.ErrNoConnection when none exists.
	FindCurrent(ctx context.Context, userID, realmID string) (*Connection, error)

	// Upsert inserts or replaces the Connection keyed on (UserID, RealmID).
	// Concurrent upserts for the same pair must never produce two records.
	Upsert(ctx context.Context, conn *Connection) (*Connection, error)

	// DeleteForUser removes every Connection belonging to the user.
	DeleteForUser(ctx context.Context, userID string) error
}
