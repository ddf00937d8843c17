package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/unity-hallie/freezer-backend/internal/models"
	"github.com/unity-hallie/freezer-backend/internal/repository"
)

var (
	ErrInvalidLocationType = errors.New("location type is required")
	ErrLocationHasItems    = errors.New("location still contains items")
)

// LocationCreateInput carries the fields for a new storage location.
type LocationCreateInput struct {
	Name             string
	LocationType     string
	TemperatureRange string
	Icon             string
	Color            string
}

// LocationUpdateInput carries a partial update; nil fields are left alone.
type LocationUpdateInput struct {
	Name             *string
	LocationType     *string
	TemperatureRange *string
	Icon             *string
	Color            *string
}

// LocationService handles storage location management
type LocationService struct {
	locationRepo repository.LocationRepository
	logger       *slog.Logger
}

// NewLocationService creates a new LocationService
func NewLocationService(locationRepo repository.LocationRepository, logger *slog.Logger) *LocationService {
	return &LocationService{
		locationRepo: locationRepo,
		logger:       logger,
	}
}

// parseLocationType normalizes a location type. The type set is open:
// freezer, fridge, and pantry are only the canonical defaults, and anything
// non-empty ("wine_cellar", "garage") is stored as given.
func parseLocationType(s string) (models.LocationType, error) {
	t := models.LocationType(strings.ToLower(strings.TrimSpace(s)))
	if t == "" {
		return "", ErrInvalidLocationType
	}
	return t, nil
}

// Create adds a location to the household.
func (s *LocationService) Create(householdID uint64, in LocationCreateInput) (*models.Location, error) {
	locationType, err := parseLocationType(in.LocationType)
	if err != nil {
		return nil, err
	}

	location := &models.Location{
		Name:             strings.TrimSpace(in.Name),
		LocationType:     locationType,
		TemperatureRange: in.TemperatureRange,
		Icon:             in.Icon,
		Color:            in.Color,
		HouseholdID:      householdID,
	}
	if err := s.locationRepo.Create(location); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	s.logger.Info("location created",
		"location_id", location.ID, "household_id", householdID)
	return location, nil
}

// ListForUser lists all locations across the user's households.
func (s *LocationService) ListForUser(userID uint64) ([]models.Location, error) {
	return s.locationRepo.ListByUserID(userID)
}

// ListByHousehold lists a household's locations.
func (s *LocationService) ListByHousehold(householdID uint64) ([]models.Location, error) {
	return s.locationRepo.ListByHousehold(householdID)
}

// Update applies a partial update to a location.
func (s *LocationService) Update(location *models.Location, in LocationUpdateInput) (*models.Location, error) {
	if in.Name != nil {
		location.Name = strings.TrimSpace(*in.Name)
	}
	if in.LocationType != nil {
		locationType, err := parseLocationType(*in.LocationType)
		if err != nil {
			return nil, err
		}
		location.LocationType = locationType
	}
	if in.TemperatureRange != nil {
		location.TemperatureRange = *in.TemperatureRange
	}
	if in.Icon != nil {
		location.Icon = *in.Icon
	}
	if in.Color != nil {
		location.Color = *in.Color
	}

	if err := s.locationRepo.Update(location); err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}
	return location, nil
}

// Delete removes an empty location. A location still holding items cannot
// be deleted; the items must be moved or deleted first.
func (s *LocationService) Delete(locationID uint64) error {
	count, err := s.locationRepo.CountItems(locationID)
	if err != nil {
		return fmt.Errorf("failed to count items: %w", err)
	}
	if count > 0 {
		return ErrLocationHasItems
	}

	if err := s.locationRepo.Delete(locationID); err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	s.logger.Info("location deleted", "location_id", locationID)
	return nil
}
