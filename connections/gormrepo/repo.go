package gormconnectionrepo

import (
	"context"

	"github.com/booksight/qbo-connect/connections"
	apperrors "github.com/booksight/qbo-connect/internal/errors"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ connections.Repo = (*Repo)(nil)

// Repo is the postgres-backed Connection store. The uniqueness of
// (user_id, realm_id) is enforced by a composite unique index, so upserts
// are atomic even under concurrent authorization completions.
type Repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) FindCurrent(ctx context.Context, userID, realmID string) (*connections.Connection, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if realmID != "" {
		query = query.Where("realm_id = ?", realmID)
	}

	var conn connections.Connection
	err := query.Order("updated_at DESC").First(&conn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNoConnection
	}
	if err != nil {
		return nil, errors.Wrap(err, "[ConnectionRepo FindCurrent] query failed")
	}
	return &conn, nil
}

func (r *Repo) Upsert(ctx context.Context, conn *connections.Connection) (*connections.Connection, error) {
	if conn.ID == "" {
		conn.ID = uuid.New().String()
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "realm_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"access_token", "refresh_token", "token_type", "expires_at", "environment", "updated_at",
		}),
	}).Create(conn).Error
	if err != nil {
		return nil, errors.Wrap(err, "[ConnectionRepo Upsert] upsert failed")
	}

	return r.FindCurrent(ctx, conn.UserID, conn.RealmID)
}

func (r *Repo) DeleteForUser(ctx context.Context, userID string) error {
	err := r.db.WithContext(ctx).Delete(&connections.Connection{}, "user_id = ?", userID).Error
	if err != nil {
		return errors.Wrap(err, "[ConnectionRepo DeleteForUser] delete failed")
	}
	return nil
}
