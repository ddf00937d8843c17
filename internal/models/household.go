package models

import "time"

type Household struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	InviteCode  string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"invite_code"`
	OwnerID     uint64    `gorm:"not null" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Owner     User              `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members   []HouseholdMember `gorm:"foreignKey:HouseholdID" json:"members,omitempty"`
	Locations []Location        `gorm:"foreignKey:HouseholdID" json:"locations,omitempty"`
}
