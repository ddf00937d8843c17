package repository

import (
	"github.com/unity-hallie/freezer-backend/internal/models"
	"gorm.io/gorm"
)

// GormItemRepository is a GORM implementation of ItemRepository
type GormItemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &GormItemRepository{db: db}
}

// Create creates a new item
func (r *GormItemRepository) Create(item *models.Item) error {
	return r.db.Create(item).Error
}

// FindByID finds an item by ID with optional preloading
func (r *GormItemRepository) FindByID(id uint64, preload ...string) (*models.Item, error) {
	var item models.Item
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByLocation lists all items in a location
func (r *GormItemRepository) ListByLocation(locationID uint64) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.Preload("AddedBy").
		Where("location_id = ?", locationID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListByUserID lists all items across the user's households. A single join
// query avoids the N+1 pattern of walking household→location→item.
func (r *GormItemRepository) ListByUserID(userID uint64) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.
		Joins("JOIN locations ON locations.id = items.location_id").
		Joins("JOIN household_members ON household_members.household_id = locations.household_id").
		Where("household_members.user_id = ?", userID).
		Preload("Location").
		Preload("AddedBy").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update updates an item
func (r *GormItemRepository) Update(item *models.Item) error {
	return r.db.Save(item).Error
}

// Delete deletes an item
func (r *GormItemRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Item{}, id).Error
}
