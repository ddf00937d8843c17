package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/unity-hallie/freezer-backend/internal/constants"
	"github.com/unity-hallie/freezer-backend/internal/models"
	"github.com/unity-hallie/freezer-backend/internal/repository"
	"github.com/unity-hallie/freezer-backend/internal/utils"
)

var (
	ErrHouseholdNotFound = errors.New("household not found")
	ErrAlreadyMember     = errors.New("user is already a member of this household")
	ErrNotMember         = errors.New("user is not a member of this household")
	ErrOwnerCannotLeave  = errors.New("the owner cannot leave their household")
	ErrInviteCodeClash   = errors.New("could not generate a unique invite code")
)

// HouseholdService handles household lifecycle and membership
type HouseholdService struct {
	householdRepo repository.HouseholdRepository
	userRepo      repository.UserRepository
	mailer        Mailer
	logger        *slog.Logger
}

// NewHouseholdService creates a new HouseholdService
func NewHouseholdService(householdRepo repository.HouseholdRepository, userRepo repository.UserRepository, mailer Mailer, logger *slog.Logger) *HouseholdService {
	return &HouseholdService{
		householdRepo: householdRepo,
		userRepo:      userRepo,
		mailer:        mailer,
		logger:        logger,
	}
}

// Create makes a new household owned by ownerID. The owner becomes the first
// member and the household starts with the default storage locations, all in
// one transaction. Invite code generation retries on the rare collision.
func (s *HouseholdService) Create(ownerID uint64, name, description string) (*models.Household, error) {
	for attempt := 0; attempt < constants.InviteCodeMaxAttempts; attempt++ {
		code, err := utils.GenerateInviteCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate invite code: %w", err)
		}

		household := &models.Household{
			Name:        strings.TrimSpace(name),
			Description: strings.TrimSpace(description),
			InviteCode:  code,
			OwnerID:     ownerID,
		}
		member := &models.HouseholdMember{UserID: ownerID}
		locations := models.DefaultLocations()

		err = s.householdRepo.CreateWithDefaults(household, member, locations)
		if err == nil {
			s.logger.Info("household created",
				"household_id", household.ID, "owner_id", ownerID)
			return household, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			continue
		}
		return nil, fmt.Errorf("failed to create household: %w", err)
	}
	return nil, ErrInviteCodeClash
}

// isUniqueViolation matches drivers that do not translate unique constraint
// errors into gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

// ListForUser lists the households the user belongs to, oldest first.
func (s *HouseholdService) ListForUser(userID uint64) ([]models.Household, error) {
	return s.householdRepo.ListByUserID(userID)
}

// GetWithMembers returns a household together with its member list.
func (s *HouseholdService) GetWithMembers(householdID uint64) (*models.Household, []models.HouseholdMember, error) {
	household, err := s.householdRepo.FindByID(householdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrHouseholdNotFound
		}
		return nil, nil, err
	}

	members, err := s.householdRepo.ListMembers(householdID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list members: %w", err)
	}
	return household, members, nil
}

// Update changes a household's name and description.
func (s *HouseholdService) Update(household *models.Household, name, description *string) (*models.Household, error) {
	if name != nil {
		household.Name = strings.TrimSpace(*name)
	}
	if description != nil {
		household.Description = strings.TrimSpace(*description)
	}
	if err := s.householdRepo.Update(household); err != nil {
		return nil, fmt.Errorf("failed to update household: %w", err)
	}
	return household, nil
}

// Join adds the user to the household holding the invite code. Codes are
// matched exactly as stored: uppercase letters and digits.
func (s *HouseholdService) Join(userID uint64, inviteCode string) (*models.Household, error) {
	inviteCode = strings.ToUpper(strings.TrimSpace(inviteCode))

	household, err := s.householdRepo.FindByInviteCode(inviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHouseholdNotFound
		}
		return nil, fmt.Errorf("failed to look up invite code: %w", err)
	}

	if _, err := s.householdRepo.FindMember(household.ID, userID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	member := &models.HouseholdMember{
		HouseholdID: household.ID,
		UserID:      userID,
	}
	if err := s.householdRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	s.logger.Info("user joined household",
		"household_id", household.ID, "user_id", userID)
	return household, nil
}

// Leave removes the user from the household. The owner cannot leave; they
// would orphan the household.
func (s *HouseholdService) Leave(householdID, userID uint64) error {
	household, err := s.householdRepo.FindByID(householdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHouseholdNotFound
		}
		return err
	}

	if household.OwnerID == userID {
		return ErrOwnerCannotLeave
	}

	if _, err := s.householdRepo.FindMember(householdID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotMember
		}
		return fmt.Errorf("failed to check membership: %w", err)
	}

	if err := s.householdRepo.RemoveMember(householdID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.logger.Info("user left household",
		"household_id", householdID, "user_id", userID)
	return nil
}

// Invite emails the household's invite code to someone. The inviter must be
// a member; any member may invite, not just the owner.
func (s *HouseholdService) Invite(householdID, inviterID uint64, email string) (*models.Household, error) {
	household, err := s.householdRepo.FindByID(householdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHouseholdNotFound
		}
		return nil, err
	}

	if _, err := s.householdRepo.FindMember(householdID, inviterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotMember
		}
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	email = strings.ToLower(strings.TrimSpace(email))

	// If the invitee already has an account and a seat in this household,
	// there is nothing to invite them to.
	if invitee, err := s.userRepo.FindByEmail(email); err == nil {
		if _, err := s.householdRepo.FindMember(householdID, invitee.ID); err == nil {
			return nil, ErrAlreadyMember
		}
	}

	if s.mailer.Configured() {
		inviter, err := s.userRepo.FindByID(inviterID)
		inviterName := ""
		if err == nil {
			inviterName = inviter.FullName
		}
		if err := s.mailer.SendHouseholdInvitation(email, household.Name, household.InviteCode, inviterName); err != nil {
			s.logger.Warn("failed to send invitation email",
				"household_id", householdID, "error", err)
		}
	}

	s.logger.Info("invitation sent",
		"household_id", householdID, "inviter_id", inviterID)
	return household, nil
}
