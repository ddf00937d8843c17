package shopping

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/unity-hallie/freezer-backend/internal/constants"
)

// fallbackConfidence is assigned uniformly to rule-based matches; the regex
// patterns cannot judge clarity the way the model can.
const fallbackConfidence = 0.6

const foodKeywords = `chicken|beef|pork|fish|salmon|bread|milk|eggs|cheese|yogurt|butter|apples|bananas|carrots|onions|potatoes|rice|pasta|cereal`

const quantityUnits = `lbs?|pounds?|oz|ounces?|ct|count|each|gallons?|dozen`

// A name is a run of words on one line that contains a known food keyword,
// e.g. "Organic Chicken Breast".
const foodName = `((?:[A-Za-z]+ )*(?:` + foodKeywords + `)(?: [A-Za-z]+)*)`

var (
	// "Whole Milk 1 gallon", "Ground Beef 1 lb"
	nameFirstPattern = regexp.MustCompile(`(?i)` + foodName + `[ \t]+(\d+(?:\.\d+)?)[ \t]*(` + quantityUnits + `)?\b`)

	// "2 lbs chicken breast", "12 ct eggs"
	quantityFirstPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)[ \t]*(?:(` + quantityUnits + `)[ \t]+)?` + foodName)
)

// FallbackParser is the deterministic rule-based parser used when the
// external model is unconfigured or fails. Same input always yields the same
// items.
type FallbackParser struct{}

// NewFallbackParser creates a FallbackParser.
func NewFallbackParser() *FallbackParser {
	return &FallbackParser{}
}

// Parse scans the text for food-keyword patterns with adjacent quantity and
// unit tokens. It never fails; at worst it returns no items. Output is
// capped at 20 items.
func (p *FallbackParser) Parse(_ context.Context, content, _ string) ([]ParsedItem, error) {
	var items []ParsedItem
	seen := make(map[string]bool)

	add := func(name, quantity, unit, raw string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		key := strings.ToLower(name)
		if seen[key] {
			return
		}
		seen[key] = true

		qty := 1.0
		if q, err := strconv.ParseFloat(quantity, 64); err == nil && q > 0 {
			qty = q
		}

		items = append(items, ParsedItem{
			Name:       TitleCase(name),
			Quantity:   qty,
			Unit:       strings.ToLower(unit),
			Category:   InferCategory(name),
			Confidence: fallbackConfidence,
			RawText:    strings.TrimSpace(raw),
		})
	}

	for _, m := range nameFirstPattern.FindAllStringSubmatch(content, -1) {
		add(m[1], m[2], m[3], m[0])
	}
	for _, m := range quantityFirstPattern.FindAllStringSubmatch(content, -1) {
		add(m[3], m[1], m[2], m[0])
	}

	if len(items) > constants.MaxFallbackItems {
		items = items[:constants.MaxFallbackItems]
	}
	return items, nil
}
