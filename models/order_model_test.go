package models

import (
	"reflect"
	"regexp"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Order{}, &OrderItem{}, &Item{}, &Box{}, &Package{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestOrderGeneratesPONumber(t *testing.T) {
	db := testDB(t)

	order := Order{UserID: 1, City: "Portland", State: "OR", Zip: "97201"}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}

	matched, err := regexp.MatchString(`^O-\d{4}-\d{4}-\d{4}$`, order.PONumber)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if !matched {
		t.Errorf("PO number %q does not match the generated format", order.PONumber)
	}
}

func TestOrderKeepsSuppliedPONumber(t *testing.T) {
	db := testDB(t)

	order := Order{UserID: 1, PONumber: "O-0001-0002-0003"}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.PONumber != "O-0001-0002-0003" {
		t.Errorf("PO number = %q, want the supplied one", order.PONumber)
	}
}

func TestOrderTotals(t *testing.T) {
	order := Order{
		OrderItems: []OrderItem{
			{Item: Item{PartNumber: "B2", Cost: 10, Weight: 1.2}, QuantityOrdered: 2},
			{Item: Item{PartNumber: "A1", Cost: 3.5, Weight: 0.4}, QuantityOrdered: 1},
		},
		Packages: []Package{
			{Freight: 7.25},
			{Freight: 2.75},
		},
	}

	if got := order.Subtotal(); got != 23.5 {
		t.Errorf("Subtotal = %v, want 23.5", got)
	}
	if got := order.Freight(); got != 10 {
		t.Errorf("Freight = %v, want 10", got)
	}
	if got := order.Total(); got != 33.5 {
		t.Errorf("Total = %v, want 33.5", got)
	}
}

func TestOrderEstimatedWeightAddsPackingMaterial(t *testing.T) {
	order := Order{
		OrderItems: []OrderItem{
			{Item: Item{Weight: 1.2}, QuantityOrdered: 2},
		},
	}
	// 2.4 plus one unit of packing, rounded.
	if got := order.EstimatedWeight(); got != 3 {
		t.Errorf("EstimatedWeight = %d, want 3", got)
	}
}

func TestOrderPartNumbersExpandPerUnit(t *testing.T) {
	order := Order{
		OrderItems: []OrderItem{
			{Item: Item{PartNumber: "B2"}, QuantityOrdered: 2},
			{Item: Item{PartNumber: "A1"}, QuantityOrdered: 1},
		},
	}

	got := order.PartNumbers()
	want := []string{"A1", "B2", "B2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PartNumbers = %v, want %v", got, want)
	}
}
