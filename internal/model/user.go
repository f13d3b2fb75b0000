package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered guest book user.
//
// PasswordHash is excluded from default repository reads, mirroring a
// credential projection that must be requested explicitly for the login path.
type User struct {
	ID                  uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	FirstName           string    `json:"firstName" gorm:"size:255;not null"`
	LastName            string    `json:"lastName" gorm:"size:255;not null"`
	Email               string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash        string    `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	Status              bool      `json:"status" gorm:"default:true"`                 // active flag, gates login
	IsLocked            bool      `json:"isLocked" gorm:"default:false"`
	LoginAttempts       int       `json:"loginAttempts" gorm:"default:0"`
	IsFirstTime         bool      `json:"isFirstTime" gorm:"default:true"`
	IsEmailNotification bool      `json:"isEmailNotification" gorm:"default:true"`
	RoleID              uuid.UUID `json:"roleId" gorm:"type:char(36);not null;index"`
	Role                *Role     `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
