package models

import "time"

type Item struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	Name           string     `gorm:"type:varchar(255);not null" json:"name"`
	Description    string     `gorm:"type:text" json:"description"`
	Quantity       int        `gorm:"not null;default:1" json:"quantity"`
	Unit           string     `gorm:"type:varchar(50)" json:"unit"`
	ExpirationDate *time.Time `json:"expiration_date"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	Category       string     `gorm:"type:varchar(100)" json:"category"`
	Barcode        string     `gorm:"type:varchar(50)" json:"barcode"`
	Tags           []string   `gorm:"serializer:json" json:"tags"`
	LocationID     uint64     `gorm:"not null;index" json:"location_id"`
	AddedByUserID  uint64     `gorm:"not null" json:"added_by_user_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	Location Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	AddedBy  User     `gorm:"foreignKey:AddedByUserID" json:"added_by,omitempty"`
}
