package shopping

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unity-hallie/freezer-backend/internal/constants"
)

func TestFallbackParser_ParsesNameFirstLines(t *testing.T) {
	p := NewFallbackParser()

	items, err := p.Parse(context.Background(), "Chicken Breast 2 lbs\nWhole Milk 1 gallon", "generic")
	require.NoError(t, err)
	require.Len(t, items, 2)

	chicken := items[0]
	require.Equal(t, "Chicken Breast", chicken.Name)
	require.Equal(t, 2.0, chicken.Quantity)
	require.Equal(t, "lbs", chicken.Unit)
	require.Equal(t, CategoryFreezer, chicken.Category)
	require.Equal(t, 0.6, chicken.Confidence)

	milk := items[1]
	require.Equal(t, "Whole Milk", milk.Name)
	require.Equal(t, 1.0, milk.Quantity)
	require.Equal(t, "gallon", milk.Unit)
	require.Equal(t, CategoryFridge, milk.Category)
}

func TestFallbackParser_ParsesQuantityFirstLines(t *testing.T) {
	p := NewFallbackParser()

	items, err := p.Parse(context.Background(), "2 lbs chicken breast\n12 ct eggs", "generic")
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.Equal(t, "Chicken Breast", items[0].Name)
	require.Equal(t, 2.0, items[0].Quantity)
	require.Equal(t, "lbs", items[0].Unit)

	require.Equal(t, "Eggs", items[1].Name)
	require.Equal(t, 12.0, items[1].Quantity)
	require.Equal(t, "ct", items[1].Unit)
	require.Equal(t, CategoryFridge, items[1].Category)
}

func TestFallbackParser_IgnoresLinesWithoutQuantities(t *testing.T) {
	p := NewFallbackParser()

	items, err := p.Parse(context.Background(), "Rice\nsome random note\nmilk", "generic")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestFallbackParser_DeduplicatesByName(t *testing.T) {
	p := NewFallbackParser()

	items, err := p.Parse(context.Background(), "Whole Milk 1 gallon\n1 gallon whole milk", "generic")
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestFallbackParser_CapsOutput(t *testing.T) {
	p := NewFallbackParser()

	var b strings.Builder
	for i := 0; i < constants.MaxFallbackItems+5; i++ {
		fmt.Fprintf(&b, "Brand%c Milk 1 gallon\n", 'A'+i)
	}

	items, err := p.Parse(context.Background(), b.String(), "generic")
	require.NoError(t, err)
	require.Len(t, items, constants.MaxFallbackItems)
}

func TestFallbackParser_IsDeterministic(t *testing.T) {
	p := NewFallbackParser()
	content := "Chicken Breast 2 lbs\nWhole Milk 1 gallon\n3 lbs ground beef"

	first, err := p.Parse(context.Background(), content, "generic")
	require.NoError(t, err)
	second, err := p.Parse(context.Background(), content, "generic")
	require.NoError(t, err)

	require.Equal(t, first, second)
}
