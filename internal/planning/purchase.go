package planning

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"banquetprep/internal/models"
)

// VendorCatalog maps normalized item names (models.ItemKey) to vendor packs.
type VendorCatalog map[string]models.VendorPack

// NewVendorCatalog indexes packs by item key. Later packs win.
func NewVendorCatalog(packs []models.VendorPack) VendorCatalog {
	catalog := make(VendorCatalog, len(packs))
	for _, p := range packs {
		catalog[models.ItemKey(p.Item)] = p
	}
	return catalog
}

// PurchaseLine is one vendor order line.
type PurchaseLine struct {
	Item           string          `json:"item"`
	Unit           string          `json:"unit"`
	NeededQuantity float64         `json:"needed_quantity"`
	PackSize       float64         `json:"pack_size"`
	PacksNeeded    int64           `json:"packs_needed"`
	Vendor         string          `json:"vendor"`
	PackCost       decimal.Decimal `json:"pack_cost"`
	Cost           decimal.Decimal `json:"cost"`
}

// PurchaseOrder is the full order for a set of scaled needs.
type PurchaseOrder struct {
	Lines     []PurchaseLine  `json:"lines"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Warnings  []Warning       `json:"warnings"`
	// VendorTotals is the order cost per vendor.
	VendorTotals map[string]decimal.Decimal `json:"vendor_totals"`
}

// ByVendor returns the order subtotal per vendor.
func (o *PurchaseOrder) ByVendor() map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, line := range o.Lines {
		totals[line.Vendor] = totals[line.Vendor].Add(line.Cost)
	}
	return totals
}

// PacksNeeded returns ceil(needed / packSize). A zero need buys nothing.
func PacksNeeded(needed, packSize float64) (int64, error) {
	if packSize <= 0 || math.IsNaN(packSize) || math.IsInf(packSize, 0) {
		return 0, fmt.Errorf("%w: pack size must be a positive number, got %v", ErrInvalidPackConfiguration, packSize)
	}
	if math.IsNaN(needed) || math.IsInf(needed, 0) {
		return 0, fmt.Errorf("needed quantity must be a finite number, got %v", needed)
	}
	if needed <= 0 {
		return 0, nil
	}
	packs := decimal.NewFromFloat(needed).Div(decimal.NewFromFloat(packSize)).Ceil()
	return packs.IntPart(), nil
}

type aggregatedNeed struct {
	name   string
	unit   string
	amount decimal.Decimal
}

// ResolvePurchases sums needs per item across every recipe and only then
// rounds each item up to whole vendor packs.
func ResolvePurchases(needs []ScaledIngredient, catalog VendorCatalog) (*PurchaseOrder, error) {
	order := &PurchaseOrder{
		Lines:     []PurchaseLine{},
		TotalCost: decimal.Zero,
		Warnings:  []Warning{},
	}

	var keys []string
	totals := make(map[string]*aggregatedNeed)
	for _, need := range needs {
		key := models.ItemKey(need.Name)
		if key == "" {
			continue
		}
		agg, ok := totals[key]
		if !ok {
			agg = &aggregatedNeed{name: need.Name, unit: need.Unit, amount: decimal.Zero}
			totals[key] = agg
			keys = append(keys, key)
		}
		if !models.SameUnit(agg.unit, need.Unit) {
			order.Warnings = append(order.Warnings, Warning{
				Kind:    UnitMismatch,
				Item:    need.Name,
				Message: fmt.Sprintf("%s is needed in %s and %s, %v %s left out", need.Name, agg.unit, need.Unit, need.ScaledAmount, need.Unit),
			})
			continue
		}
		if math.IsNaN(need.ScaledAmount) || math.IsInf(need.ScaledAmount, 0) {
			return nil, fmt.Errorf("%s: needed quantity must be a finite number, got %v", need.Name, need.ScaledAmount)
		}
		agg.amount = agg.amount.Add(decimal.NewFromFloat(need.ScaledAmount))
	}

	for _, key := range keys {
		agg := totals[key]
		pack, ok := catalog[key]
		if !ok {
			order.Warnings = append(order.Warnings, Warning{
				Kind:    MissingVendorMapping,
				Item:    agg.name,
				Message: fmt.Sprintf("no vendor pack configured for %s", agg.name),
			})
			continue
		}
		if pack.PackSize <= 0 || math.IsNaN(pack.PackSize) || math.IsInf(pack.PackSize, 0) {
			return nil, fmt.Errorf("%w: %s has pack size %v", ErrInvalidPackConfiguration, pack.Item, pack.PackSize)
		}
		if pack.Unit != "" && !models.SameUnit(pack.Unit, agg.unit) {
			order.Warnings = append(order.Warnings, Warning{
				Kind:    UnitMismatch,
				Item:    agg.name,
				Message: fmt.Sprintf("%s is needed in %s but sold in %s", agg.name, agg.unit, pack.Unit),
			})
			continue
		}

		needed, _ := agg.amount.Round(3).Float64()
		packs, err := PacksNeeded(needed, pack.PackSize)
		if err != nil {
			return nil, err
		}
		cost := pack.PackCost.Mul(decimal.NewFromInt(packs))
		order.Lines = append(order.Lines, PurchaseLine{
			Item:           agg.name,
			Unit:           agg.unit,
			NeededQuantity: needed,
			PackSize:       pack.PackSize,
			PacksNeeded:    packs,
			Vendor:         pack.Vendor,
			PackCost:       pack.PackCost,
			Cost:           cost,
		})
		order.TotalCost = order.TotalCost.Add(cost)
	}

	order.VendorTotals = order.ByVendor()
	return order, nil
}
