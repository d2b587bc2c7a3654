package users

import (
	"time"
)

// User is an identity record in the directory. Users are created on
// registration and only ever read by the connection core afterwards.
type User struct {
	ID        string    `json:"id,omitempty" gorm:"primaryKey;size:36"`
	Email     string    `json:"email,omitempty" gorm:"index;size:255"`
	Name      string    `json:"name,omitempty" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at,omitempty" gorm:"autoUpdateTime"`
}
