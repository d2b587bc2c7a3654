package gormuserrepo

import (
	"context"

	apperrors "github.com/booksight/qbo-connect/internal/errors"
	"github.com/booksight/qbo-connect/users"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var _ users.UserRepo = (*Repo)(nil)

// Repo is the postgres-backed user directory.
type Repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, user *users.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return errors.Wrap(err, "[UserRepo Create] failed to insert user")
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*users.User, error) {
	var user users.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[UserRepo GetByID] query failed")
	}
	return &user, nil
}

func (r *Repo) List(ctx context.Context) ([]*users.User, error) {
	var userList []*users.User
	if err := r.db.WithContext(ctx).Order("created_at").Find(&userList).Error; err != nil {
		return nil, errors.Wrap(err, "[UserRepo List] query failed")
	}
	return userList, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&users.User{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "[UserRepo Delete] delete failed")
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
