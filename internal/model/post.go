package model

import "time"

// Post is one dish on the shared table. AuthorToken is the opaque ownership
// secret minted at submission time; it never changes afterwards and is kept
// out of JSON so list/detail responses cannot leak it.
type Post struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(32);not null"`
	Icon        string    `json:"icon" gorm:"type:varchar(16);not null"`
	Message     string    `json:"message" gorm:"type:varchar(400);not null"`
	AuthorToken string    `json:"-" gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"index;not null"`
}

func (Post) TableName() string { return "posts" }
