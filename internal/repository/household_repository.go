package repository

import (
	"errors"
	"fmt"

	"github.com/unity-hallie/freezer-backend/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateHousehold is returned when creating the household row fails
	// inside the creation transaction.
	ErrCreateHousehold = errors.New("household repository: create household failed")
	// ErrCreateMembership is returned when creating the owner membership fails
	// inside the creation transaction.
	ErrCreateMembership = errors.New("household repository: create membership failed")
	// ErrCreateLocations is returned when creating the default locations fails
	// inside the creation transaction.
	ErrCreateLocations = errors.New("household repository: create default locations failed")
)

// GormHouseholdRepository is a GORM implementation of HouseholdRepository
type GormHouseholdRepository struct {
	db *gorm.DB
}

// NewHouseholdRepository creates a new HouseholdRepository
func NewHouseholdRepository(db *gorm.DB) HouseholdRepository {
	return &GormHouseholdRepository{db: db}
}

// CreateWithDefaults creates the household, the owner's membership, and the
// default locations atomically. A failure at any step rolls everything back
// so a household is never visible without its owner membership or its
// default locations.
func (r *GormHouseholdRepository) CreateWithDefaults(household *models.Household, member *models.HouseholdMember, locations []models.Location) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(household).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateHousehold, err)
		}

		member.HouseholdID = household.ID
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateMembership, err)
		}

		for i := range locations {
			locations[i].HouseholdID = household.ID
		}
		if len(locations) > 0 {
			if err := tx.Create(&locations).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrCreateLocations, err)
			}
		}

		return nil
	})
}

// FindByID finds a household by ID
func (r *GormHouseholdRepository) FindByID(id uint64) (*models.Household, error) {
	var household models.Household
	if err := r.db.First(&household, id).Error; err != nil {
		return nil, err
	}
	return &household, nil
}

// FindByInviteCode finds a household by invite code
func (r *GormHouseholdRepository) FindByInviteCode(code string) (*models.Household, error) {
	var household models.Household
	if err := r.db.Where("invite_code = ?", code).First(&household).Error; err != nil {
		return nil, err
	}
	return &household, nil
}

// Update updates a household
func (r *GormHouseholdRepository) Update(household *models.Household) error {
	return r.db.Save(household).Error
}

// AddMember adds a member to a household
func (r *GormHouseholdRepository) AddMember(member *models.HouseholdMember) error {
	return r.db.Create(member).Error
}

// RemoveMember removes a member from a household
func (r *GormHouseholdRepository) RemoveMember(householdID, userID uint64) error {
	return r.db.Where("household_id = ? AND user_id = ?", householdID, userID).
		Delete(&models.HouseholdMember{}).Error
}

// FindMember finds a specific household member
func (r *GormHouseholdRepository) FindMember(householdID, userID uint64) (*models.HouseholdMember, error) {
	var member models.HouseholdMember
	if err := r.db.Where("household_id = ? AND user_id = ?", householdID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListByUserID lists all households a user belongs to, oldest membership first
func (r *GormHouseholdRepository) ListByUserID(userID uint64) ([]models.Household, error) {
	var households []models.Household
	if err := r.db.
		Joins("JOIN household_members ON household_members.household_id = households.id").
		Where("household_members.user_id = ?", userID).
		Order("household_members.joined_at ASC").
		Find(&households).Error; err != nil {
		return nil, err
	}
	return households, nil
}

// ListMembers lists all members of a household
func (r *GormHouseholdRepository) ListMembers(householdID uint64) ([]models.HouseholdMember, error) {
	var members []models.HouseholdMember
	if err := r.db.Preload("User").
		Where("household_id = ?", householdID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// FirstForUser returns the household from the user's oldest membership
func (r *GormHouseholdRepository) FirstForUser(userID uint64) (*models.Household, error) {
	var household models.Household
	if err := r.db.
		Joins("JOIN household_members ON household_members.household_id = households.id").
		Where("household_members.user_id = ?", userID).
		Order("household_members.joined_at ASC").
		First(&household).Error; err != nil {
		return nil, err
	}
	return &household, nil
}
