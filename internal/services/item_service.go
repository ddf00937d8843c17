package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/unity-hallie/freezer-backend/internal/models"
	"github.com/unity-hallie/freezer-backend/internal/repository"
)

var (
	ErrUnknownLocationName = errors.New("location name must be freezer, fridge, refrigerator, or pantry")
	ErrNoHousehold         = errors.New("user does not belong to any household")
	ErrLocationNotFound    = errors.New("location not found")
)

// ItemCreateInput carries the fields for a new inventory item.
type ItemCreateInput struct {
	Name           string
	Description    string
	Quantity       int
	Unit           string
	ExpirationDate *time.Time
	PurchaseDate   *time.Time
	Category       string
	Barcode        string
	Tags           []string
}

// ItemUpdateInput carries a partial update; nil fields are left alone.
type ItemUpdateInput struct {
	Name           *string
	Description    *string
	Quantity       *int
	Unit           *string
	ExpirationDate *time.Time
	PurchaseDate   *time.Time
	Category       *string
	Barcode        *string
	Tags           []string
	LocationID     *uint64
}

// canonicalLocationNames maps the accepted by-name aliases to a location
// type. "refrigerator" is accepted as a synonym for fridge; everything else
// is rejected rather than guessed at.
var canonicalLocationNames = map[string]models.LocationType{
	"freezer":      models.LocationTypeFreezer,
	"fridge":       models.LocationTypeFridge,
	"refrigerator": models.LocationTypeFridge,
	"pantry":       models.LocationTypePantry,
}

// ItemService handles inventory item management
type ItemService struct {
	itemRepo      repository.ItemRepository
	locationRepo  repository.LocationRepository
	householdRepo repository.HouseholdRepository
	logger        *slog.Logger
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo repository.ItemRepository, locationRepo repository.LocationRepository, householdRepo repository.HouseholdRepository, logger *slog.Logger) *ItemService {
	return &ItemService{
		itemRepo:      itemRepo,
		locationRepo:  locationRepo,
		householdRepo: householdRepo,
		logger:        logger,
	}
}

// Create adds an item to the given location.
func (s *ItemService) Create(locationID, userID uint64, in ItemCreateInput) (*models.Item, error) {
	item := &models.Item{
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		Quantity:       in.Quantity,
		Unit:           in.Unit,
		ExpirationDate: in.ExpirationDate,
		PurchaseDate:   in.PurchaseDate,
		Category:       in.Category,
		Barcode:        in.Barcode,
		Tags:           in.Tags,
		LocationID:     locationID,
		AddedByUserID:  userID,
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	if err := s.itemRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Info("item created",
		"item_id", item.ID, "location_id", locationID, "user_id", userID)
	return item, nil
}

// CreateByLocationName adds an item to the user's first household, filing it
// under the canonical location matching name. The location is created if the
// household is missing it.
func (s *ItemService) CreateByLocationName(userID uint64, locationName string, in ItemCreateInput) (*models.Item, error) {
	locationType, ok := canonicalLocationNames[strings.ToLower(strings.TrimSpace(locationName))]
	if !ok {
		return nil, ErrUnknownLocationName
	}

	household, err := s.householdRepo.FirstForUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoHousehold
		}
		return nil, fmt.Errorf("failed to resolve household: %w", err)
	}

	location, err := s.FindOrCreateCanonicalLocation(household.ID, locationType)
	if err != nil {
		return nil, err
	}

	return s.Create(location.ID, userID, in)
}

// FindOrCreateCanonicalLocation resolves the household's location for a
// storage type, creating the default one when none exists yet. The lookup
// matches by name or by type so a renamed default still resolves.
func (s *ItemService) FindOrCreateCanonicalLocation(householdID uint64, locationType models.LocationType) (*models.Location, error) {
	var template models.Location
	for _, l := range models.DefaultLocations() {
		if l.LocationType == locationType {
			template = l
			break
		}
	}

	location, err := s.locationRepo.FindCanonical(householdID, template.Name, locationType)
	if err == nil {
		return location, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up location: %w", err)
	}

	template.HouseholdID = householdID
	if err := s.locationRepo.Create(&template); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}
	return &template, nil
}

// VerifyLocationAccess checks that the user may file items under the given
// location. Missing locations and locations in foreign households both come
// back as ErrLocationNotFound so callers cannot probe for location IDs.
func (s *ItemService) VerifyLocationAccess(userID, locationID uint64) error {
	location, err := s.locationRepo.FindByID(locationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLocationNotFound
		}
		return fmt.Errorf("failed to look up location: %w", err)
	}
	if _, err := s.householdRepo.FindMember(location.HouseholdID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLocationNotFound
		}
		return fmt.Errorf("failed to check membership: %w", err)
	}
	return nil
}

// Get returns an item with its location and creator loaded.
func (s *ItemService) Get(itemID uint64) (*models.Item, error) {
	return s.itemRepo.FindByID(itemID, "Location", "AddedBy")
}

// ListForUser lists all items across the user's households.
func (s *ItemService) ListForUser(userID uint64) ([]models.Item, error) {
	return s.itemRepo.ListByUserID(userID)
}

// ListByLocation lists a location's items.
func (s *ItemService) ListByLocation(locationID uint64) ([]models.Item, error) {
	return s.itemRepo.ListByLocation(locationID)
}

// Update applies a partial update to an item. Moving an item to another
// location goes through the handler's access checks before landing here.
func (s *ItemService) Update(item *models.Item, in ItemUpdateInput) (*models.Item, error) {
	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.ExpirationDate != nil {
		item.ExpirationDate = in.ExpirationDate
	}
	if in.PurchaseDate != nil {
		item.PurchaseDate = in.PurchaseDate
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Barcode != nil {
		item.Barcode = *in.Barcode
	}
	if in.Tags != nil {
		item.Tags = in.Tags
	}
	if in.LocationID != nil {
		item.LocationID = *in.LocationID
	}

	if err := s.itemRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return item, nil
}

// Delete removes an item.
func (s *ItemService) Delete(itemID uint64) error {
	if err := s.itemRepo.Delete(itemID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	s.logger.Info("item deleted", "item_id", itemID)
	return nil
}
