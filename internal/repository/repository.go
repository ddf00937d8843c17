package repository

import (
	"github.com/unity-hallie/freezer-backend/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByVerificationToken finds a user by their pending verification token
	FindByVerificationToken(token string) (*models.User, error)

	// FindByResetToken finds a user whose password reset token is still valid
	FindByResetToken(token string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error
}

// HouseholdRepository defines the interface for household data access
type HouseholdRepository interface {
	// CreateWithDefaults creates a household, the owner's membership, and the
	// default locations within a single transaction.
	CreateWithDefaults(household *models.Household, member *models.HouseholdMember, locations []models.Location) error

	// FindByID finds a household by ID
	FindByID(id uint64) (*models.Household, error)

	// FindByInviteCode finds a household by invite code
	FindByInviteCode(code string) (*models.Household, error)

	// Update updates a household
	Update(household *models.Household) error

	// AddMember adds a member to a household
	AddMember(member *models.HouseholdMember) error

	// RemoveMember removes a member from a household
	RemoveMember(householdID, userID uint64) error

	// FindMember finds a specific household member
	FindMember(householdID, userID uint64) (*models.HouseholdMember, error)

	// ListByUserID lists all households a user is a member of, oldest
	// membership first.
	ListByUserID(userID uint64) ([]models.Household, error)

	// ListMembers lists all members of a household
	ListMembers(householdID uint64) ([]models.HouseholdMember, error)

	// FirstForUser returns the user's oldest household membership's household.
	FirstForUser(userID uint64) (*models.Household, error)
}

// LocationRepository defines the interface for location data access
type LocationRepository interface {
	// Create creates a new location
	Create(location *models.Location) error

	// FindByID finds a location by ID
	FindByID(id uint64) (*models.Location, error)

	// ListByHousehold lists all locations in a household
	ListByHousehold(householdID uint64) ([]models.Location, error)

	// ListByUserID lists all locations across the user's households
	ListByUserID(userID uint64) ([]models.Location, error)

	// FindCanonical finds a location in a household matching the given
	// canonical name or location type.
	FindCanonical(householdID uint64, name string, locationType models.LocationType) (*models.Location, error)

	// Update updates a location
	Update(location *models.Location) error

	// Delete deletes a location
	Delete(id uint64) error

	// CountItems counts items stored in a location
	CountItems(locationID uint64) (int64, error)
}

// ItemRepository defines the interface for item data access
type ItemRepository interface {
	// Create creates a new item
	Create(item *models.Item) error

	// FindByID finds an item by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Item, error)

	// ListByLocation lists all items in a location
	ListByLocation(locationID uint64) ([]models.Item, error)

	// ListByUserID lists all items across the user's households
	ListByUserID(userID uint64) ([]models.Item, error)

	// Update updates an item
	Update(item *models.Item) error

	// Delete deletes an item
	Delete(id uint64) error
}
