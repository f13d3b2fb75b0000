package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Moderation states shared by posts and comments.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Post is an image post on the guest book wall.
type Post struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Image        string    `json:"image" gorm:"type:text;not null"` // reference to the stored image
	Description  string    `json:"description" gorm:"size:1024;not null"`
	Status       string    `json:"status" gorm:"size:20;default:'Pending';index"`
	UploadedByID uuid.UUID `json:"uploadedById" gorm:"type:char(36);not null;index"`
	UploadedBy   *User     `json:"uploadedBy,omitempty" gorm:"foreignKey:UploadedByID"`
	Comments     []Comment `json:"comments" gorm:"foreignKey:PostID"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Comment is a moderated comment attached to a post.
type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	PostID    uuid.UUID `json:"postId" gorm:"type:char(36);not null;index"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);not null;index"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Comment   string    `json:"comment" gorm:"size:1024;not null"`
	Status    string    `json:"status" gorm:"size:20;default:'Pending';index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeCreate sets UUID before creating the record.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
