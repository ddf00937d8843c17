package models

import "time"

type HouseholdMember struct {
	HouseholdID uint64    `gorm:"primarykey" json:"household_id"`
	UserID      uint64    `gorm:"primarykey" json:"user_id"`
	JoinedAt    time.Time `gorm:"autoCreateTime" json:"joined_at"`

	// Relations
	Household Household `gorm:"foreignKey:HouseholdID" json:"household,omitempty"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
