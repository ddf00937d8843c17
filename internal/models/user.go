package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID                   uint64         `gorm:"primarykey" json:"id"`
	Email                string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash         string         `gorm:"type:varchar(255);not null" json:"-"`
	FullName             string         `gorm:"type:varchar(255)" json:"full_name"`
	IsVerified           bool           `gorm:"not null;default:false" json:"is_verified"`
	VerificationToken    string         `gorm:"type:varchar(255);index" json:"-"`
	PasswordResetToken   string         `gorm:"type:varchar(255);index" json:"-"`
	PasswordResetExpires *time.Time     `json:"-"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	OwnedHouseholds []Household       `gorm:"foreignKey:OwnerID" json:"-"`
	Memberships     []HouseholdMember `gorm:"foreignKey:UserID" json:"-"`
	AddedItems      []Item            `gorm:"foreignKey:AddedByUserID" json:"-"`
}
