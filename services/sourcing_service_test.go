package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"fulfillment-app/models"
)

func seedBrand(t *testing.T, db *gorm.DB, stockValue int, lineCode string) *models.VendorBrand {
	vendor := models.Vendor{Name: "Acme Parts", StockValue: stockValue}
	if err := db.Create(&vendor).Error; err != nil {
		t.Fatalf("create vendor: %v", err)
	}
	brand := models.VendorBrand{VendorID: vendor.ID, Brand: "Acme", LineCode: lineCode}
	if err := db.Create(&brand).Error; err != nil {
		t.Fatalf("create vendor brand: %v", err)
	}
	brand.Vendor = vendor
	return &brand
}

func TestResolvePicksCheapestQualifiedSupplier(t *testing.T) {
	db := testDB(t)
	brand := seedBrand(t, db, 10, "A,B")

	cached := models.BrandItem{VendorBrandID: brand.ID, PartNumber: "P100", Cost: 1, Inventory: 1}
	if err := db.Create(&cached).Error; err != nil {
		t.Fatalf("create brand item: %v", err)
	}

	// The cheaper supplier's stock sits below the vendor threshold, so it is
	// treated as zero and passed over.
	gateway := &fakeInventoryGateway{single: []InventoryQuote{
		{PartNumber: "P100", LineCode: "A", Cost: 5,
			Inventories: []WarehouseStock{{Quantity: intPtr(8)}}},
		{PartNumber: "P100", LineCode: "B", Cost: 7,
			Inventories: []WarehouseStock{{Quantity: intPtr(30)}, {Quantity: intPtr(20)}}},
	}}

	cost, lineCode, err := NewSourcingService(db, gateway).Resolve(brand, "P100", 10)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cost != 7 || lineCode != "B" {
		t.Errorf("Resolve = (%v, %q), want (7, B)", cost, lineCode)
	}

	var reloaded models.BrandItem
	if err := db.First(&reloaded, cached.ID).Error; err != nil {
		t.Fatalf("reload brand item: %v", err)
	}
	if reloaded.Cost != 7 || reloaded.Inventory != 50 {
		t.Errorf("cache = (cost %v, inventory %d), want (7, 50)", reloaded.Cost, reloaded.Inventory)
	}
}

func TestResolveSkipsForeignLineCodes(t *testing.T) {
	db := testDB(t)
	brand := seedBrand(t, db, 0, "A")

	cached := models.BrandItem{VendorBrandID: brand.ID, PartNumber: "P100", Cost: 9}
	if err := db.Create(&cached).Error; err != nil {
		t.Fatalf("create brand item: %v", err)
	}

	gateway := &fakeInventoryGateway{single: []InventoryQuote{
		{PartNumber: "P100", LineCode: "Z", Cost: 2,
			Inventories: []WarehouseStock{{Quantity: intPtr(100)}}},
	}}

	cost, lineCode, err := NewSourcingService(db, gateway).Resolve(brand, "P100", 1)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cost != 9 || lineCode != "A" {
		t.Errorf("Resolve = (%v, %q), want cached (9, A)", cost, lineCode)
	}
}

func TestResolveFallsBackToCacheWhenGatewayDown(t *testing.T) {
	db := testDB(t)
	brand := seedBrand(t, db, 10, "A")

	cached := models.BrandItem{VendorBrandID: brand.ID, PartNumber: "P100", Cost: 9, Inventory: 3}
	if err := db.Create(&cached).Error; err != nil {
		t.Fatalf("create brand item: %v", err)
	}

	gateway := &fakeInventoryGateway{singleErr: ErrGatewayUnavailable}

	cost, lineCode, err := NewSourcingService(db, gateway).Resolve(brand, "P100", 5)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cost != 9 || lineCode != "A" {
		t.Errorf("Resolve = (%v, %q), want (9, A)", cost, lineCode)
	}
}

func TestResolveMissingCatalogEntry(t *testing.T) {
	db := testDB(t)
	brand := seedBrand(t, db, 10, "A")

	gateway := &fakeInventoryGateway{singleErr: ErrGatewayUnavailable}

	_, _, err := NewSourcingService(db, gateway).Resolve(brand, "UNKNOWN", 1)
	if !errors.Is(err, ErrMissingCatalogEntry) {
		t.Errorf("Resolve error = %v, want ErrMissingCatalogEntry", err)
	}
}

func TestSyncVendorWritesChangedRowsOnly(t *testing.T) {
	db := testDB(t)
	brand := seedBrand(t, db, 0, "A")

	items := []models.BrandItem{
		{VendorBrandID: brand.ID, PartNumber: "P1", Inventory: 5},
		{VendorBrandID: brand.ID, PartNumber: "P2", Inventory: 7},
	}
	if err := db.Create(&items).Error; err != nil {
		t.Fatalf("create brand items: %v", err)
	}

	gateway := &fakeInventoryGateway{all: []InventoryQuote{
		{PartNumber: "P1", Inventories: []WarehouseStock{{Quantity: intPtr(5)}}},
		{PartNumber: "P2", Inventories: []WarehouseStock{{Quantity: intPtr(9)}}},
		{PartNumber: "NOT-CARRIED", Inventories: []WarehouseStock{{Quantity: intPtr(4)}}},
	}}

	svc := NewSourcingService(db, gateway)
	updated, err := svc.SyncVendor(&brand.Vendor)
	if err != nil {
		t.Fatalf("SyncVendor: %v", err)
	}
	if updated != 1 {
		t.Errorf("updated = %d, want 1", updated)
	}

	var p2 models.BrandItem
	if err := db.Where("part_number = ?", "P2").First(&p2).Error; err != nil {
		t.Fatalf("reload P2: %v", err)
	}
	if p2.Inventory != 9 {
		t.Errorf("P2 inventory = %d, want 9", p2.Inventory)
	}

	// Same snapshot again touches nothing.
	updated, err = svc.SyncVendor(&brand.Vendor)
	if err != nil {
		t.Fatalf("SyncVendor rerun: %v", err)
	}
	if updated != 0 {
		t.Errorf("rerun updated = %d, want 0", updated)
	}
}

func TestSyncVendorGatewayError(t *testing.T) {
	db := testDB(t)
	brand := seedBrand(t, db, 0, "A")

	gateway := &fakeInventoryGateway{allErr: ErrGatewayUnavailable}

	_, err := NewSourcingService(db, gateway).SyncVendor(&brand.Vendor)
	if !errors.Is(err, ErrGatewayUnavailable) {
		t.Errorf("SyncVendor error = %v, want ErrGatewayUnavailable", err)
	}
}
