package services

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"fulfillment-app/models"

	"gorm.io/gorm"
)

// ErrMissingCatalogEntry means a part has neither fresh vendor data nor a
// cached BrandItem to fall back on. Sourcing cannot answer at all.
var ErrMissingCatalogEntry = errors.New("no catalog entry for part")

// SourcingService picks the cheapest qualified supplier for a part and
// keeps the BrandItem cache fresh. BrandItem writes are last-write-wins;
// concurrent resolutions for the same part are not coordinated.
type SourcingService struct {
	db      *gorm.DB
	gateway InventoryGateway
}

func NewSourcingService(db *gorm.DB, gateway InventoryGateway) *SourcingService {
	return &SourcingService{db: db, gateway: gateway}
}

type candidate struct {
	cost     float64
	lineCode string
	quantity int
}

// Resolve returns the cost and line code to source partNumber at qty from
// the given vendor brand. Fresh vendor data wins when a row clears the
// vendor's stock threshold and covers the quantity; otherwise the last
// cached cost is returned. vb.Vendor must be loaded.
func (s *SourcingService) Resolve(vb *models.VendorBrand, partNumber string, qty int) (float64, string, error) {
	quotes, err := s.gateway.GetSingleInventory(vb.Vendor.VendorType(), partNumber, qty)
	if err == nil {
		if cost, lineCode, ok := s.pickSupplier(vb, partNumber, qty, quotes); ok {
			return cost, lineCode, nil
		}
	}

	var cached models.BrandItem
	err = s.db.Where("vendor_brand_id = ? AND part_number = ?", vb.ID, partNumber).
		First(&cached).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, "", fmt.Errorf("%w: %s", ErrMissingCatalogEntry, partNumber)
		}
		return 0, "", err
	}
	return cached.Cost, vb.LineCode, nil
}

func (s *SourcingService) pickSupplier(vb *models.VendorBrand, partNumber string, qty int, quotes []InventoryQuote) (float64, string, bool) {
	var candidates []candidate
	for _, q := range quotes {
		if !vb.AcceptsLineCode(q.LineCode) {
			continue
		}
		candidates = append(candidates, candidate{
			cost:     q.Cost,
			lineCode: q.LineCode,
			quantity: q.TotalQuantity(),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].cost < candidates[j].cost
	})

	for _, c := range candidates {
		// Stock below the vendor threshold is treated as zero: trickle
		// balances are reported too unreliably to promise against.
		effective := c.quantity
		if effective < vb.Vendor.StockValue {
			effective = 0
		}
		if effective < qty {
			continue
		}

		res := s.db.Model(&models.BrandItem{}).
			Where("vendor_brand_id = ? AND part_number = ?", vb.ID, partNumber).
			Updates(map[string]interface{}{"cost": c.cost, "inventory": c.quantity})
		if res.Error != nil || res.RowsAffected == 0 {
			// The selection stands either way; only the cache misses out.
			log.Printf("brand item cache update skipped for %s (brand %d): %v",
				partNumber, vb.ID, res.Error)
		}
		return c.cost, c.lineCode, true
	}
	return 0, "", false
}

// SyncVendor refreshes cached inventory counts for every brand of a vendor
// from the full catalog snapshot. Only rows whose quantity changed are
// written, so re-running with identical upstream data touches nothing.
// Parts with no BrandItem are ignored; catalog membership is set elsewhere.
func (s *SourcingService) SyncVendor(vendor *models.Vendor) (int, error) {
	quotes, err := s.gateway.GetAllInventory(vendor.VendorType())
	if err != nil {
		return 0, err
	}

	var brandIDs []uint
	if err := s.db.Model(&models.VendorBrand{}).
		Where("vendor_id = ?", vendor.ID).
		Pluck("id", &brandIDs).Error; err != nil {
		return 0, err
	}
	if len(brandIDs) == 0 {
		return 0, nil
	}

	updated := 0
	for _, q := range quotes {
		total := q.TotalQuantity()

		var items []models.BrandItem
		if err := s.db.Where("vendor_brand_id IN ? AND part_number = ?", brandIDs, q.PartNumber).
			Find(&items).Error; err != nil {
			return updated, err
		}
		for i := range items {
			if items[i].Inventory == total {
				continue
			}
			if err := s.db.Model(&items[i]).Update("inventory", total).Error; err != nil {
				return updated, err
			}
			updated++
		}
	}
	return updated, nil
}
