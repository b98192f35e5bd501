package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"fulfillment-app/models"
	"fulfillment-app/types"
)

func seedShipment(t *testing.T, db *gorm.DB) *models.CustomShipment {
	shipment := models.CustomShipment{UserID: 1, ShipToName: "Receiving Dock"}
	if err := db.Create(&shipment).Error; err != nil {
		t.Fatalf("create shipment: %v", err)
	}
	return &shipment
}

func seedPackage(t *testing.T, db *gorm.DB, owner models.Shippable, weight float64, boxID uint) *models.Package {
	ownerType, ownerID := owner.PackageOwner()
	pkg := models.Package{
		PackageableType: ownerType,
		PackageableID:   ownerID,
		Weight:          weight,
		BoxID:           boxID,
	}
	if err := db.Create(&pkg).Error; err != nil {
		t.Fatalf("create package: %v", err)
	}
	return &pkg
}

func TestRefreshRatesSkipsIncompletePackages(t *testing.T) {
	db := testDB(t)
	shipment := seedShipment(t, db)
	seedPackage(t, db, shipment, 0, 0)

	carrier := &fakeCarrierGateway{}
	if err := NewShippingService(db, carrier).RefreshRates(shipment); err != nil {
		t.Fatalf("RefreshRates: %v", err)
	}
	if carrier.shipCalls != 0 {
		t.Errorf("carrier called %d times for an unquotable package", carrier.shipCalls)
	}
	if shipment.ErrorMessage != "" {
		t.Errorf("error message = %q, want empty", shipment.ErrorMessage)
	}
}

func TestRefreshRatesPersistsSortedRates(t *testing.T) {
	db := testDB(t)
	shipment := seedShipment(t, db)
	pkg := seedPackage(t, db, shipment, 2.5, 1)

	carrier := &fakeCarrierGateway{quote: &ShipmentQuote{Rates: types.RateList{
		{ObjectID: "plain", Amount: 12},
		{ObjectID: "cheap", Amount: 8, Attributes: []string{RateAttrCheapest}},
	}}}

	if err := NewShippingService(db, carrier).RefreshRates(shipment); err != nil {
		t.Fatalf("RefreshRates: %v", err)
	}

	var reloaded models.Package
	if err := db.First(&reloaded, pkg.ID).Error; err != nil {
		t.Fatalf("reload package: %v", err)
	}
	if len(reloaded.Rates) != 2 || reloaded.Rates[0].ObjectID != "cheap" {
		t.Errorf("stored rates = %+v, want cheap first", reloaded.Rates)
	}
	if shipment.ErrorMessage != "" {
		t.Errorf("error message = %q, want empty", shipment.ErrorMessage)
	}
}

func TestRefreshRatesAggregatesCarrierFailures(t *testing.T) {
	db := testDB(t)
	shipment := seedShipment(t, db)
	seedPackage(t, db, shipment, 1, 1)
	seedPackage(t, db, shipment, 2, 1)

	carrier := &fakeCarrierGateway{quoteErr: ErrCarrierUnavailable}
	if err := NewShippingService(db, carrier).RefreshRates(shipment); err != nil {
		t.Fatalf("RefreshRates: %v", err)
	}

	// Both failures collapse to one generic message.
	if shipment.ErrorMessage != GenericCarrierError {
		t.Errorf("error message = %q, want %q", shipment.ErrorMessage, GenericCarrierError)
	}

	var reloaded models.CustomShipment
	if err := db.First(&reloaded, shipment.ID).Error; err != nil {
		t.Fatalf("reload shipment: %v", err)
	}
	if reloaded.ErrorMessage != GenericCarrierError {
		t.Errorf("persisted error message = %q, want %q", reloaded.ErrorMessage, GenericCarrierError)
	}
}

func TestRefreshRatesKeepsUnratedPackagePendingOnEmptyQuote(t *testing.T) {
	db := testDB(t)
	shipment := seedShipment(t, db)
	pkg := seedPackage(t, db, shipment, 1, 1)

	carrier := &fakeCarrierGateway{quote: &ShipmentQuote{
		Messages: []CarrierMessage{{Text: "Destination address could not be verified"}},
	}}
	if err := NewShippingService(db, carrier).RefreshRates(shipment); err != nil {
		t.Fatalf("RefreshRates: %v", err)
	}

	var reloaded models.Package
	if err := db.First(&reloaded, pkg.ID).Error; err != nil {
		t.Fatalf("reload package: %v", err)
	}
	if !reloaded.RatePending() {
		t.Error("package should still be pending after an empty quote")
	}
	if shipment.ErrorMessage != "Destination address could not be verified" {
		t.Errorf("error message = %q", shipment.ErrorMessage)
	}
}

func TestRefreshRatesClearsStaleErrorMessage(t *testing.T) {
	db := testDB(t)
	shipment := seedShipment(t, db)
	shipment.ErrorMessage = "Some error occurred."
	if err := db.Save(shipment).Error; err != nil {
		t.Fatalf("save shipment: %v", err)
	}
	seedPackage(t, db, shipment, 1, 1)

	carrier := &fakeCarrierGateway{quote: &ShipmentQuote{Rates: types.RateList{
		{ObjectID: "r1", Amount: 4},
	}}}
	if err := NewShippingService(db, carrier).RefreshRates(shipment); err != nil {
		t.Fatalf("RefreshRates: %v", err)
	}
	if shipment.ErrorMessage != "" {
		t.Errorf("error message = %q, want cleared", shipment.ErrorMessage)
	}
}

func TestRefreshRatesIgnoresLabeledPackages(t *testing.T) {
	db := testDB(t)
	shipment := seedShipment(t, db)
	pkg := seedPackage(t, db, shipment, 1, 1)
	pkg.TrackingNumber = "1Z999"
	if err := db.Save(pkg).Error; err != nil {
		t.Fatalf("save package: %v", err)
	}

	carrier := &fakeCarrierGateway{}
	if err := NewShippingService(db, carrier).RefreshRates(shipment); err != nil {
		t.Fatalf("RefreshRates: %v", err)
	}
	if carrier.shipCalls != 0 {
		t.Errorf("carrier called %d times for a labeled package", carrier.shipCalls)
	}
}

func TestFinalizeTransactionSuccess(t *testing.T) {
	db := testDB(t)
	shipment := seedShipment(t, db)
	pkg := seedPackage(t, db, shipment, 1, 1)
	pkg.Rates = types.RateList{
		{ObjectID: "r1", Amount: 4.5},
		{ObjectID: "r2", Amount: 9},
	}
	if err := db.Save(pkg).Error; err != nil {
		t.Fatalf("save package: %v", err)
	}

	carrier := &fakeCarrierGateway{txn: &CarrierTransaction{
		Status:         "SUCCESS",
		TrackingNumber: "1Z999",
		LabelURL:       "https://labels.example.com/1Z999.pdf",
	}}

	got, err := NewShippingService(db, carrier).FinalizeTransaction(shipment, pkg.ID, "r1", "ups")
	if err != nil {
		t.Fatalf("FinalizeTransaction: %v", err)
	}
	if got.TrackingNumber != "1Z999" || got.LabelURL != "https://labels.example.com/1Z999.pdf" {
		t.Errorf("tracking = %q, label = %q", got.TrackingNumber, got.LabelURL)
	}
	if got.Carrier != "ups" || got.RateObjectID != "r1" {
		t.Errorf("carrier = %q, rate object = %q", got.Carrier, got.RateObjectID)
	}
	if got.Freight != 4.5 {
		t.Errorf("freight = %v, want 4.5", got.Freight)
	}
}

func TestFinalizeTransactionCarrierRejection(t *testing.T) {
	db := testDB(t)
	shipment := seedShipment(t, db)
	pkg := seedPackage(t, db, shipment, 1, 1)

	carrier := &fakeCarrierGateway{txn: &CarrierTransaction{
		Status:   "ERROR",
		Messages: []CarrierMessage{{Text: "Rate has expired"}},
	}}

	_, err := NewShippingService(db, carrier).FinalizeTransaction(shipment, pkg.ID, "r1", "ups")
	var txnErr *TransactionError
	if !errors.As(err, &txnErr) {
		t.Fatalf("error = %v, want TransactionError", err)
	}
	if len(txnErr.Messages) != 1 || txnErr.Messages[0] != "Rate has expired" {
		t.Errorf("messages = %v", txnErr.Messages)
	}
}

func TestFinalizeTransactionSilentFailureGetsGenericMessage(t *testing.T) {
	db := testDB(t)
	shipment := seedShipment(t, db)
	pkg := seedPackage(t, db, shipment, 1, 1)

	carrier := &fakeCarrierGateway{txn: &CarrierTransaction{Status: "ERROR"}}

	_, err := NewShippingService(db, carrier).FinalizeTransaction(shipment, pkg.ID, "r1", "ups")
	var txnErr *TransactionError
	if !errors.As(err, &txnErr) {
		t.Fatalf("error = %v, want TransactionError", err)
	}
	if len(txnErr.Messages) != 1 || txnErr.Messages[0] != GenericCarrierError {
		t.Errorf("messages = %v, want generic", txnErr.Messages)
	}
}

func TestFinalizeTransactionUnknownPackage(t *testing.T) {
	db := testDB(t)
	shipment := seedShipment(t, db)

	carrier := &fakeCarrierGateway{}
	_, err := NewShippingService(db, carrier).FinalizeTransaction(shipment, 999, "r1", "ups")
	var txnErr *TransactionError
	if !errors.As(err, &txnErr) {
		t.Fatalf("error = %v, want TransactionError", err)
	}
}
