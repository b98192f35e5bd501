package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"fulfillment-app/models"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.Vendor{},
		&models.VendorBrand{},
		&models.BrandItem{},
		&models.Item{},
		&models.Box{},
		&models.Order{},
		&models.OrderItem{},
		&models.CustomShipment{},
		&models.VendorShipment{},
		&models.VendorShipmentItem{},
		&models.Package{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fakeInventoryGateway struct {
	single    []InventoryQuote
	all       []InventoryQuote
	singleErr error
	allErr    error
}

func (g *fakeInventoryGateway) GetSingleInventory(vendorType, partNumber string, qty int) ([]InventoryQuote, error) {
	return g.single, g.singleErr
}

func (g *fakeInventoryGateway) GetAllInventory(vendorType string) ([]InventoryQuote, error) {
	return g.all, g.allErr
}

type fakeCarrierGateway struct {
	quote     *ShipmentQuote
	quoteErr  error
	txn       *CarrierTransaction
	txnErr    error
	shipCalls int
}

func (g *fakeCarrierGateway) CreateShipment(shippable models.Shippable, pkg *models.Package) (*ShipmentQuote, error) {
	g.shipCalls++
	return g.quote, g.quoteErr
}

func (g *fakeCarrierGateway) CreateTransaction(userID uint, rateObjectID string) (*CarrierTransaction, error) {
	return g.txn, g.txnErr
}

func intPtr(v int) *int {
	return &v
}
