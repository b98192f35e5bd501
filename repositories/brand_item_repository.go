package repositories

import (
	"gorm.io/gorm"
)

type BrandItemRepository struct {
	db *gorm.DB
}

func NewBrandItemRepository(db *gorm.DB) *BrandItemRepository {
	return &BrandItemRepository{db}
}

type listBrandItem struct {
	BrandItemID int     `json:"brand_item_id"`
	VendorName  string  `json:"vendor_name"`
	Brand       string  `json:"brand"`
	LineCode    string  `json:"line_code"`
	PartNumber  string  `json:"part_number"`
	Cost        float64 `json:"cost"`
	Inventory   int     `json:"inventory"`
}

// GetBrandItems lists the cached catalog for one vendor across its brands.
func (r *BrandItemRepository) GetBrandItems(vendorID uint) ([]listBrandItem, error) {

	sqlBrandItems := `select a.id as brand_item_id, c.name as vendor_name,
	b.brand, b.line_code, a.part_number, a.cost, a.inventory
	from brand_items a
	inner join vendor_brands b on a.vendor_brand_id = b.id
	inner join vendors c on b.vendor_id = c.id
	where c.id = ? and a.deleted_at is null
	order by a.part_number
	`

	var items []listBrandItem

	if err := r.db.Raw(sqlBrandItems, vendorID).Scan(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

type stockSummary struct {
	VendorName string `json:"vendor_name"`
	Brand      string `json:"brand"`
	TotalParts int    `json:"total_parts"`
	InStock    int    `json:"in_stock"`
}

// GetStockSummary aggregates cached availability per vendor brand.
func (r *BrandItemRepository) GetStockSummary() ([]stockSummary, error) {

	sqlSummary := `select c.name as vendor_name, b.brand,
	count(a.id) as total_parts,
	sum(case when a.inventory > 0 then 1 else 0 end) as in_stock
	from brand_items a
	inner join vendor_brands b on a.vendor_brand_id = b.id
	inner join vendors c on b.vendor_id = c.id
	where a.deleted_at is null
	group by c.name, b.brand
	`

	var summary []stockSummary

	if err := r.db.Raw(sqlSummary).Scan(&summary).Error; err != nil {
		return nil, err
	}

	return summary, nil
}
