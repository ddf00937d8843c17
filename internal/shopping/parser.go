// Package shopping turns unstructured receipt and shopping-list text into
// candidate inventory items. The primary parser calls an external language
// model; a deterministic rule-based parser covers the cases where the model
// is unavailable or fails.
package shopping

import (
	"context"
	"strings"
	"unicode"
)

// Storage categories a parsed item can be filed under.
const (
	CategoryFreezer = "freezer"
	CategoryFridge  = "fridge"
	CategoryPantry  = "pantry"
)

// ParsedItem is one candidate grocery item extracted from raw text.
type ParsedItem struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	RawText    string  `json:"raw_text"`
}

// Parser extracts grocery items from free-form text. sourceType is a hint
// about where the text came from (hannaford, instacart, generic, ...).
type Parser interface {
	Parse(ctx context.Context, content, sourceType string) ([]ParsedItem, error)
}

var freezerKeywords = []string{
	"frozen", "ice cream", "chicken breast", "ground beef",
	"fish", "salmon", "shrimp", "french fries", "pizza",
}

var fridgeKeywords = []string{
	"milk", "yogurt", "cheese", "eggs", "butter", "lettuce",
	"carrots", "fresh", "produce", "deli", "meat",
}

// InferCategory maps an item name to a storage category using the keyword
// tables. Anything unrecognized defaults to pantry.
func InferCategory(name string) string {
	lower := strings.ToLower(name)
	for _, kw := range freezerKeywords {
		if strings.Contains(lower, kw) {
			return CategoryFreezer
		}
	}
	for _, kw := range fridgeKeywords {
		if strings.Contains(lower, kw) {
			return CategoryFridge
		}
	}
	return CategoryPantry
}

// ValidCategory reports whether c is one of the three storage categories.
func ValidCategory(c string) bool {
	return c == CategoryFreezer || c == CategoryFridge || c == CategoryPantry
}

// ValidateItems drops unusable candidates and normalizes the rest: names are
// trimmed and title-cased, confidence is clamped into [0,1], and non-positive
// quantities are coerced to 1.
func ValidateItems(items []ParsedItem) []ParsedItem {
	validated := make([]ParsedItem, 0, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if len(name) < 2 {
			continue
		}
		item.Name = TitleCase(name)

		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		if item.Confidence < 0 {
			item.Confidence = 0
		}
		if item.Confidence > 1 {
			item.Confidence = 1
		}
		if !ValidCategory(item.Category) {
			item.Category = InferCategory(item.Name)
		}

		validated = append(validated, item)
	}
	return validated
}

// TitleCase uppercases the first letter of each space-separated word and
// lowercases the rest, e.g. "whole MILK" -> "Whole Milk".
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
