package models

import "time"

type LocationType string

const (
	LocationTypeFreezer LocationType = "freezer"
	LocationTypeFridge  LocationType = "fridge"
	LocationTypePantry  LocationType = "pantry"
)

type Location struct {
	ID               uint64       `gorm:"primarykey" json:"id"`
	Name             string       `gorm:"type:varchar(255);not null" json:"name"`
	LocationType     LocationType `gorm:"type:varchar(50);not null" json:"location_type"`
	TemperatureRange string       `gorm:"type:varchar(50)" json:"temperature_range"`
	Icon             string       `gorm:"type:varchar(100)" json:"icon"`
	Color            string       `gorm:"type:varchar(7)" json:"color"`
	HouseholdID      uint64       `gorm:"not null;index" json:"household_id"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`

	// Relations
	Household Household `gorm:"foreignKey:HouseholdID" json:"household,omitempty"`
	Items     []Item    `gorm:"foreignKey:LocationID" json:"items,omitempty"`
}

// DefaultLocations returns the three canonical locations every new
// household starts with.
func DefaultLocations() []Location {
	return []Location{
		{Name: "Freezer", LocationType: LocationTypeFreezer, TemperatureRange: "frozen", Icon: "❄️", Color: "#87CEEB"},
		{Name: "Fridge", LocationType: LocationTypeFridge, TemperatureRange: "cold", Icon: "🥛", Color: "#FFE4E1"},
		{Name: "Pantry", LocationType: LocationTypePantry, TemperatureRange: "room_temp", Icon: "🏠", Color: "#F5DEB3"},
	}
}
