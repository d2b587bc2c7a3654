package fakeconnectionrepo

import (
	"context"
	"sync"
	"time"

	"github.com/booksight/qbo-connect/connections"
	"github.com/booksight/qbo-connect/internal/errors"
	"github.com/google/uuid"
)

var _ connections.Repo = (*FakeConnectionRepo)(nil)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

type FakeConnectionRepo struct {
	conns map[string]*connections.Connection // keyed on userID + "|" + realmID
	lock  sync.RWMutex
}

func NewFakeConnectionRepo() *FakeConnectionRepo {
	return &FakeConnectionRepo{
		conns: make(map[string]*connections.Connection),
	}
}

func (cr *FakeConnectionRepo) FindCurrent(_ context.Context, userID, realmID string) (*connections.Connection, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	if realmID != "" {
		conn, ok := cr.conns[userID+"|"+realmID]
		if !ok {
			return nil, errors.ErrNoConnection
		}
		return copyConnection(conn), nil
	}

	var latest *connections.Connection
	for _, conn := range cr.conns {
		if conn.UserID != userID {
			continue
		}
		if latest == nil || conn.UpdatedAt.After(latest.UpdatedAt) {
			latest = conn
		}
	}
	if latest == nil {
		return nil, errors.ErrNoConnection
	}
	return copyConnection(latest), nil
}

func (cr *FakeConnectionRepo) Upsert(_ context.Context, conn *connections.Connection) (*connections.Connection, error) {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	stored := copyConnection(conn)
	if existing, ok := cr.conns[conn.UserID+"|"+conn.RealmID]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		if stored.ID == "" {
			stored.ID = uuid.New().String()
		}
		stored.CreatedAt = NowTimeFunc()
	}
	stored.UpdatedAt = NowTimeFunc()

	cr.conns[conn.UserID+"|"+conn.RealmID] = stored
	return copyConnection(stored), nil
}

func (cr *FakeConnectionRepo) DeleteForUser(_ context.Context, userID string) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	for key, conn := range cr.conns {
		if conn.UserID == userID {
			delete(cr.conns, key)
		}
	}
	return nil
}

// Count returns the number of stored connections.
func (cr *FakeConnectionRepo) Count() int {
	cr.lock.RLock()
	defer cr.lock.RUnlock()
	return len(cr.conns)
}

func copyConnection(conn *connections.Connection) *connections.Connection {
	copied := *conn
	return &copied
}
