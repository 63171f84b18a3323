package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents an account that owns projects. Account creation and
// session handling live outside this service; the record exists so that
// project ownership can be enforced.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
	Username     string    `gorm:"column:username;uniqueIndex:idx_username;size:64;not null" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;size:128;not null" json:"-"`
	Role         string    `gorm:"column:role;size:32;default:user" json:"role,omitempty"`
}

// TableName overrides gorm to use the user table.
func (User) TableName() string {
	return "user"
}

// SetPassword hashes and stores the given plaintext password.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
