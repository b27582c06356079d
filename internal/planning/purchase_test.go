package planning

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banquetprep/internal/models"
)

func TestPacksNeeded(t *testing.T) {
	tests := []struct {
		needed   float64
		packSize float64
		want     int64
	}{
		{43.25, 20, 3},
		{40, 20, 2},
		{0, 20, 0},
		{0.3, 0.1, 3},
		{0.7, 0.1, 7},
		{1, 0.25, 4},
		{19.999, 20, 1},
	}

	for _, tt := range tests {
		got, err := PacksNeeded(tt.needed, tt.packSize)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "PacksNeeded(%v, %v)", tt.needed, tt.packSize)
	}
}

func TestPacksNeeded_MatchesCeiling(t *testing.T) {
	for _, size := range []float64{1, 2, 5, 12, 20, 50} {
		for needed := 0; needed <= 500; needed += 7 {
			got, err := PacksNeeded(float64(needed), size)
			require.NoError(t, err)
			assert.Equal(t, int64(math.Ceil(float64(needed)/size)), got)
		}
	}
}

func TestPacksNeeded_InvalidPackSize(t *testing.T) {
	for _, size := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := PacksNeeded(10, size)
		assert.ErrorIs(t, err, ErrInvalidPackConfiguration, "pack size %v", size)
	}
}

func TestPacksNeeded_NonFiniteNeed(t *testing.T) {
	for _, needed := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := PacksNeeded(needed, 20)
		assert.Error(t, err, "needed %v", needed)
	}
}

func TestResolvePurchases_NaNPackSize(t *testing.T) {
	catalog := NewVendorCatalog([]models.VendorPack{{Item: "Rice", Unit: "kg", PackSize: math.NaN()}})
	_, err := ResolvePurchases([]ScaledIngredient{{Name: "Rice", Unit: "kg", ScaledAmount: 5}}, catalog)
	assert.ErrorIs(t, err, ErrInvalidPackConfiguration)
}

func riceCatalog() VendorCatalog {
	return NewVendorCatalog([]models.VendorPack{
		{Item: "Rice", Unit: "kg", PackSize: 20, Vendor: "Sysco", PackCost: decimal.NewFromFloat(31.5)},
		{Item: "Thyme", Unit: "bunch", PackSize: 12, Vendor: "Produce Co", PackCost: decimal.NewFromFloat(9)},
	})
}

func TestResolvePurchases_SingleNeed(t *testing.T) {
	order, err := ResolvePurchases([]ScaledIngredient{{Name: "Rice", Unit: "kg", ScaledAmount: 43.25}}, riceCatalog())
	require.NoError(t, err)

	require.Len(t, order.Lines, 1)
	line := order.Lines[0]
	assert.Equal(t, "Rice", line.Item)
	assert.Equal(t, 43.25, line.NeededQuantity)
	assert.Equal(t, int64(3), line.PacksNeeded)
	assert.Equal(t, "Sysco", line.Vendor)
	assert.True(t, decimal.NewFromFloat(94.5).Equal(line.Cost), "got %s", line.Cost)
	assert.True(t, decimal.NewFromFloat(94.5).Equal(order.TotalCost))
	assert.Empty(t, order.Warnings)
}

func TestResolvePurchases_RoundsAfterAggregation(t *testing.T) {
	// Per recipe each need fits one pack; rounding separately would buy three.
	needs := []ScaledIngredient{
		{Name: "Rice", Unit: "kg", ScaledAmount: 12.5},
		{Name: "rice ", Unit: "KG", ScaledAmount: 12.5},
		{Name: "Rice", Unit: "kg", ScaledAmount: 12.5},
	}
	order, err := ResolvePurchases(needs, riceCatalog())
	require.NoError(t, err)

	require.Len(t, order.Lines, 1)
	assert.Equal(t, 37.5, order.Lines[0].NeededQuantity)
	assert.Equal(t, int64(2), order.Lines[0].PacksNeeded)
}

func TestResolvePurchases_MissingMappingExcluded(t *testing.T) {
	needs := []ScaledIngredient{
		{Name: "Rice", Unit: "kg", ScaledAmount: 10},
		{Name: "Saffron", Unit: "g", ScaledAmount: 3},
	}
	order, err := ResolvePurchases(needs, riceCatalog())
	require.NoError(t, err)

	require.Len(t, order.Lines, 1)
	assert.True(t, decimal.NewFromFloat(31.5).Equal(order.TotalCost))
	require.Len(t, order.Warnings, 1)
	assert.Equal(t, MissingVendorMapping, order.Warnings[0].Kind)
	assert.Equal(t, "Saffron", order.Warnings[0].Item)
}

func TestResolvePurchases_UnitMismatch(t *testing.T) {
	needs := []ScaledIngredient{
		{Name: "Thyme", Unit: "g", ScaledAmount: 30},
		{Name: "Rice", Unit: "kg", ScaledAmount: 5},
		{Name: "Rice", Unit: "lb", ScaledAmount: 5},
	}
	order, err := ResolvePurchases(needs, riceCatalog())
	require.NoError(t, err)

	require.Len(t, order.Lines, 1)
	assert.Equal(t, 5.0, order.Lines[0].NeededQuantity)

	kinds := []WarningKind{}
	for _, w := range order.Warnings {
		kinds = append(kinds, w.Kind)
	}
	assert.ElementsMatch(t, []WarningKind{UnitMismatch, UnitMismatch}, kinds)
}

func TestResolvePurchases_InvalidPack(t *testing.T) {
	catalog := NewVendorCatalog([]models.VendorPack{{Item: "Rice", Unit: "kg", PackSize: 0, Vendor: "Sysco"}})
	_, err := ResolvePurchases([]ScaledIngredient{{Name: "Rice", Unit: "kg", ScaledAmount: 1}}, catalog)
	assert.ErrorIs(t, err, ErrInvalidPackConfiguration)
}

func TestPurchaseOrder_ByVendor(t *testing.T) {
	needs := []ScaledIngredient{
		{Name: "Rice", Unit: "kg", ScaledAmount: 45},
		{Name: "Thyme", Unit: "bunch", ScaledAmount: 13},
	}
	order, err := ResolvePurchases(needs, riceCatalog())
	require.NoError(t, err)

	totals := order.ByVendor()
	assert.True(t, decimal.NewFromFloat(94.5).Equal(totals["Sysco"]))
	assert.True(t, decimal.NewFromFloat(18).Equal(totals["Produce Co"]))
	assert.Equal(t, "Rice", order.Lines[0].Item, "lines keep first-appearance order")
	assert.Equal(t, totals, order.VendorTotals)
}
