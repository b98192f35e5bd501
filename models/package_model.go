package models

import (
	"fulfillment-app/types"

	"gorm.io/gorm"
)

// Packageable owner kinds stored in packages.packageable_type.
const (
	PackageableOrder          = "orders"
	PackageableCustomShipment = "custom_shipments"
	PackageableVendorShipment = "vendor_shipments"
)

// Package belongs to one shippable owner (order, custom shipment or vendor
// shipment). Rates are populated once weight and box are present, and become
// immutable after a carrier transaction sets the tracking number.
type Package struct {
	gorm.Model
	PackageableType string `json:"packageable_type" gorm:"index:idx_packageable"`
	PackageableID   uint   `json:"packageable_id" gorm:"index:idx_packageable"`
	// ReferenceID is the external-facing package identifier, serialized as a
	// string so it survives javascript number precision.
	ReferenceID types.SnowflakeID `json:"reference_id"`
	Name        string            `json:"name"`
	BoxID           uint           `json:"box_id"`
	Box             Box            `json:"box" gorm:"foreignKey:BoxID"`
	Weight          float64        `json:"weight"`
	Rates           types.RateList `json:"rates" gorm:"type:text"`
	RateObjectID    string         `json:"rate_object_id"`
	Carrier         string         `json:"carrier"`
	TrackingNumber  string         `json:"tracking_number"`
	LabelURL        string         `json:"label_url"`
	Freight         float64        `json:"freight"`
}

// RatePending reports whether this package still needs carrier quotes.
func (p *Package) RatePending() bool {
	return len(p.Rates) == 0 && p.TrackingNumber == ""
}

// Quotable reports whether the package is complete enough to ask the
// carrier for rates.
func (p *Package) Quotable() bool {
	return p.Weight > 0 && p.BoxID != 0 && p.TrackingNumber == ""
}

// Shippable is the closed set of entities that own packages.
type Shippable interface {
	PackageOwner() (ownerType string, ownerID uint)
	GetUserID() uint
	GetErrorMessage() string
	SetErrorMessage(msg string)
}
