package models

import "time"

// Session is the single active login of a user. Rotating the token replaces
// the row in place and bumps Generation, so the previous token stops
// resolving immediately.
type Session struct {
	UserID     string    `gorm:"type:varchar(36);primarykey" json:"user_id"`
	Token      string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"-"`
	Generation uint64    `gorm:"not null;default:1" json:"generation"`
	IssuedAt   time.Time `json:"issued_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
