package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"gorm.io/gorm"

	"github.com/unity-hallie/freezer-backend/internal/constants"
	"github.com/unity-hallie/freezer-backend/internal/models"
	"github.com/unity-hallie/freezer-backend/internal/repository"
	"github.com/unity-hallie/freezer-backend/internal/shopping"
)

var (
	ErrContentTooShort = fmt.Errorf("content must be at least %d characters", constants.MinIngestContentLength)
	ErrContentTooLong  = fmt.Errorf("content must be at most %d characters", constants.MaxIngestContentLength)
)

// IngestResult reports what an ingestion run produced. Everything created
// through this path is flagged for review; the parse is probabilistic.
type IngestResult struct {
	ItemsCreated   int           `json:"items_created"`
	TotalParsed    int           `json:"total_parsed"`
	Items          []models.Item `json:"items"`
	ParsingLog     []string      `json:"parsing_log"`
	RequiresReview bool          `json:"requires_review"`
}

// IngestionService turns raw shopping list text into inventory items in the
// caller's household.
type IngestionService struct {
	primary       shopping.Parser
	fallback      shopping.Parser
	cache         *shopping.Cache
	householdRepo repository.HouseholdRepository
	itemService   *ItemService
	logger        *slog.Logger
}

// NewIngestionService creates a new IngestionService. primary may be nil
// when no model credentials are configured; everything then goes through
// the rule-based parser.
func NewIngestionService(primary shopping.Parser, cache *shopping.Cache, householdRepo repository.HouseholdRepository, itemService *ItemService, logger *slog.Logger) *IngestionService {
	return &IngestionService{
		primary:       primary,
		fallback:      shopping.NewFallbackParser(),
		cache:         cache,
		householdRepo: householdRepo,
		itemService:   itemService,
		logger:        logger,
	}
}

// Ingest parses content and materializes the results as items in the user's
// first household. Item creation failures are logged into the result and do
// not abort the batch.
func (s *IngestionService) Ingest(ctx context.Context, userID uint64, content, sourceType string) (*IngestResult, error) {
	if len(content) < constants.MinIngestContentLength {
		return nil, ErrContentTooShort
	}
	if len(content) > constants.MaxIngestContentLength {
		return nil, ErrContentTooLong
	}
	if sourceType == "" {
		sourceType = "generic"
	}

	household, err := s.householdRepo.FirstForUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoHousehold
		}
		return nil, fmt.Errorf("failed to resolve household: %w", err)
	}

	parsed := s.parse(ctx, content, sourceType)

	result := &IngestResult{
		TotalParsed:    len(parsed),
		Items:          []models.Item{},
		ParsingLog:     []string{},
		RequiresReview: true,
	}

	for _, candidate := range parsed {
		item, err := s.materialize(household.ID, userID, sourceType, candidate)
		if err != nil {
			s.logger.Warn("failed to create parsed item",
				"name", candidate.Name, "user_id", userID, "error", err)
			result.ParsingLog = append(result.ParsingLog,
				fmt.Sprintf("failed to create %q: %v", candidate.Name, err))
			continue
		}
		result.Items = append(result.Items, *item)
		result.ItemsCreated++
	}

	s.logger.Info("shopping list ingested",
		"user_id", userID, "source_type", sourceType,
		"parsed", result.TotalParsed, "created", result.ItemsCreated)
	return result, nil
}

// parse runs the cache, the primary parser, and the fallback in order. The
// fallback never errors, so parse always returns a (possibly empty) list.
func (s *IngestionService) parse(ctx context.Context, content, sourceType string) []shopping.ParsedItem {
	key := shopping.Fingerprint(content, sourceType)
	if items, ok := s.cache.Get(key); ok {
		return items
	}

	var items []shopping.ParsedItem
	var err error
	if s.primary != nil {
		items, err = s.primary.Parse(ctx, content, sourceType)
		if err != nil {
			s.logger.Warn("primary parser failed, using fallback", "error", err)
		}
	}
	if s.primary == nil || err != nil || len(items) == 0 {
		items, _ = s.fallback.Parse(ctx, content, sourceType)
	}

	items = shopping.ValidateItems(items)
	s.cache.Put(key, items)
	return items
}

// materialize creates one inventory item from a parse candidate, filing it
// under the household's canonical location for the candidate's category.
func (s *IngestionService) materialize(householdID, userID uint64, sourceType string, candidate shopping.ParsedItem) (*models.Item, error) {
	location, err := s.itemService.FindOrCreateCanonicalLocation(householdID, models.LocationType(candidate.Category))
	if err != nil {
		return nil, err
	}

	quantity := int(math.Round(candidate.Quantity))
	if quantity <= 0 {
		quantity = 1
	}

	return s.itemService.Create(location.ID, userID, ItemCreateInput{
		Name:        candidate.Name,
		Description: candidate.RawText,
		Quantity:    quantity,
		Unit:        candidate.Unit,
		Category:    candidate.Category,
		Tags: []string{
			"ai-generated",
			fmt.Sprintf("confidence-%d", int(math.Round(candidate.Confidence*100))),
			"source-" + sourceType,
		},
	})
}
