package models

import (
	"strings"

	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

// VendorPack is the purchasable unit a vendor sells an item in.
type VendorPack struct {
	gorm.Model
	Item     string          `gorm:"unique_index" json:"item"`
	Unit     string          `json:"unit"`
	PackSize float64         `json:"pack_size"`
	Vendor   string          `json:"vendor"`
	PackCost decimal.Decimal `gorm:"type:decimal(20,4)" json:"pack_cost"`
}

// TableName sets the table name for VendorPack
func (VendorPack) TableName() string {
	return "vendor_packs"
}

// ItemKey normalizes an item name for catalog lookups.
func ItemKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// SameUnit compares two unit strings ignoring case and surrounding space.
func SameUnit(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
