package models

import (
	"strings"

	"gorm.io/gorm"
)

type Vendor struct {
	gorm.Model
	Name string `json:"name" gorm:"unique"`
	// StockValue is the vendor's minimum on-hand quantity. Reported stock
	// below it is not trusted as deliverable.
	StockValue   int           `json:"stock_value" gorm:"default:0"`
	VendorBrands []VendorBrand `json:"vendor_brands" gorm:"foreignKey:VendorID"`
	CreatedBy    int           `json:"created_by"`
	UpdatedBy    int           `json:"updated_by"`
	DeletedBy    int           `json:"deleted_by"`
}

// VendorType is the identifier the vendor inventory API expects.
func (v *Vendor) VendorType() string {
	return strings.ReplaceAll(strings.ToLower(v.Name), " ", "_")
}

type VendorBrand struct {
	gorm.Model
	VendorID uint   `json:"vendor_id"`
	Vendor   Vendor `json:"vendor" gorm:"foreignKey:VendorID"`
	Brand    string `json:"brand"`
	// LineCode holds the comma-delimited line codes this brand accepts.
	LineCode   string      `json:"line_code"`
	BrandItems []BrandItem `json:"brand_items" gorm:"foreignKey:VendorBrandID"`
	CreatedBy  int         `json:"created_by"`
	UpdatedBy  int         `json:"updated_by"`
	DeletedBy  int         `json:"deleted_by"`
}

func (vb *VendorBrand) LineCodeSet() []string {
	var codes []string
	for _, c := range strings.Split(vb.LineCode, ",") {
		c = strings.TrimSpace(c)
		if c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

func (vb *VendorBrand) AcceptsLineCode(code string) bool {
	for _, c := range vb.LineCodeSet() {
		if c == code {
			return true
		}
	}
	return false
}

// BrandItem caches the last known cost and quantity for one part at one
// vendor brand. At most one row per (vendor_brand_id, part_number).
type BrandItem struct {
	gorm.Model
	VendorBrandID uint    `json:"vendor_brand_id" gorm:"uniqueIndex:idx_brand_part"`
	PartNumber    string  `json:"part_number" gorm:"uniqueIndex:idx_brand_part"`
	Cost          float64 `json:"cost"`
	Inventory     int     `json:"inventory"`
}
