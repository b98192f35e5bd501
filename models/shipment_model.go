package models

import "gorm.io/gorm"

// CustomShipment is a one-off shipment with free-form from/to addresses.
type CustomShipment struct {
	gorm.Model
	UserID            uint   `json:"user_id"`
	PONumber          string `json:"po_number"`
	ShipFromName      string `json:"ship_from_name"`
	ShipFromStreet    string `json:"ship_from_street"`
	ShipFromAptNumber string `json:"ship_from_apt_number"`
	ShipFromCity      string `json:"ship_from_city"`
	ShipFromState     string `json:"ship_from_state"`
	ShipFromZip       string `json:"ship_from_zip"`
	ShipFromCountry   string `json:"ship_from_country"`
	ShipFromPhone     string `json:"ship_from_phone"`
	ShipToName        string `json:"ship_to_name"`
	ShipToStreet      string `json:"ship_to_street"`
	ShipToAptNumber   string `json:"ship_to_apt_number"`
	ShipToCity        string `json:"ship_to_city"`
	ShipToState       string `json:"ship_to_state"`
	ShipToZip         string `json:"ship_to_zip"`
	ShipToCountry     string `json:"ship_to_country"`
	ShipToPhone       string `json:"ship_to_phone"`
	Notes             string `json:"notes"`
	ErrorMessage      string `json:"error_message"`

	Packages []Package `json:"packages" gorm:"polymorphic:Packageable;polymorphicValue:custom_shipments"`
}

func (s *CustomShipment) PackageOwner() (string, uint) {
	return PackageableCustomShipment, s.ID
}

func (s *CustomShipment) GetUserID() uint {
	return s.UserID
}

func (s *CustomShipment) GetErrorMessage() string {
	return s.ErrorMessage
}

func (s *CustomShipment) SetErrorMessage(msg string) {
	s.ErrorMessage = msg
}

// VendorShipment is an inbound shipment a vendor sends on our label.
type VendorShipment struct {
	gorm.Model
	VendorID        uint   `json:"vendor_id"`
	UserID          uint   `json:"user_id"`
	PONumber        string `json:"po_number"`
	ShipToName      string `json:"ship_to_name"`
	ShipToStreet    string `json:"ship_to_street"`
	ShipToAptNumber string `json:"ship_to_apt_number"`
	ShipToCity      string `json:"ship_to_city"`
	ShipToState     string `json:"ship_to_state"`
	ShipToZip       string `json:"ship_to_zip"`
	ShipToCountry   string `json:"ship_to_country"`
	ShipToPhone     string `json:"ship_to_phone"`
	Notes           string `json:"notes"`
	Status          bool   `json:"status"`
	ErrorMessage    string `json:"error_message"`

	Items    []VendorShipmentItem `json:"items" gorm:"foreignKey:VendorShipmentID"`
	Packages []Package            `json:"packages" gorm:"polymorphic:Packageable;polymorphicValue:vendor_shipments"`
}

type VendorShipmentItem struct {
	gorm.Model
	VendorShipmentID uint   `json:"vendor_shipment_id"`
	PartNumber       string `json:"part_number"`
	BrandLineCode    string `json:"brand_line_code"`
	Qty              int    `json:"qty"`
}

func (s *VendorShipment) PackageOwner() (string, uint) {
	return PackageableVendorShipment, s.ID
}

func (s *VendorShipment) GetUserID() uint {
	return s.UserID
}

func (s *VendorShipment) GetErrorMessage() string {
	return s.ErrorMessage
}

func (s *VendorShipment) SetErrorMessage(msg string) {
	s.ErrorMessage = msg
}
