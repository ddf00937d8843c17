package repository

import (
	"github.com/unity-hallie/freezer-backend/internal/models"
	"gorm.io/gorm"
)

// GormLocationRepository is a GORM implementation of LocationRepository
type GormLocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new LocationRepository
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &GormLocationRepository{db: db}
}

// Create creates a new location
func (r *GormLocationRepository) Create(location *models.Location) error {
	return r.db.Create(location).Error
}

// FindByID finds a location by ID
func (r *GormLocationRepository) FindByID(id uint64) (*models.Location, error) {
	var location models.Location
	if err := r.db.First(&location, id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// ListByHousehold lists all locations in a household
func (r *GormLocationRepository) ListByHousehold(householdID uint64) ([]models.Location, error) {
	var locations []models.Location
	if err := r.db.Where("household_id = ?", householdID).
		Order("created_at ASC").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// ListByUserID lists all locations across the user's households with a
// single join query.
func (r *GormLocationRepository) ListByUserID(userID uint64) ([]models.Location, error) {
	var locations []models.Location
	if err := r.db.
		Joins("JOIN household_members ON household_members.household_id = locations.household_id").
		Where("household_members.user_id = ?", userID).
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// FindCanonical finds a location in a household by exact name (case
// insensitive) or by location type.
func (r *GormLocationRepository) FindCanonical(householdID uint64, name string, locationType models.LocationType) (*models.Location, error) {
	var location models.Location
	if err := r.db.
		Where("household_id = ? AND (LOWER(name) = LOWER(?) OR location_type = ?)",
			householdID, name, locationType).
		First(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// Update updates a location
func (r *GormLocationRepository) Update(location *models.Location) error {
	return r.db.Save(location).Error
}

// Delete deletes a location
func (r *GormLocationRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Location{}, id).Error
}

// CountItems counts items stored in a location
func (r *GormLocationRepository) CountItems(locationID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Item{}).Where("location_id = ?", locationID).Count(&count).Error
	return count, err
}
