// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// DefaultStatus is assigned to newly registered users.
const DefaultStatus = "I am new!"

// User represents a registered account. The password column only ever holds
// the bcrypt hash and is excluded from every serialized form.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	Status    string    `json:"status"`
	Posts     []Post    `gorm:"foreignKey:CreatorID" json:"posts,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
