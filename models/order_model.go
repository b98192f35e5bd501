package models

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	PONumber         string  `json:"po_number" gorm:"unique;not null"`
	ExternalPONumber string  `json:"external_po_number"`
	UserID           uint    `json:"user_id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	Street           string  `json:"street"`
	AptNumber        string  `json:"apt_number"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	Zip              string  `json:"zip"`
	Country          string  `json:"country"`
	ShippingMethod   string  `json:"shipping_method" gorm:"default:'standard'"`
	Status           string  `json:"status" gorm:"default:'open'"`
	Notes            string  `json:"notes"`
	Tax              float64 `json:"tax"`
	Discount         float64 `json:"discount"`
	ErrorMessage     string  `json:"error_message"`

	OrderItems []OrderItem `json:"order_items" gorm:"foreignKey:OrderID"`
	Packages   []Package   `json:"packages" gorm:"polymorphic:Packageable;polymorphicValue:orders"`
}

type OrderItem struct {
	gorm.Model
	OrderID         uint `json:"order_id"`
	ItemID          uint `json:"item_id"`
	Item            Item `json:"item" gorm:"foreignKey:ItemID"`
	QuantityOrdered int  `json:"quantity_ordered"`
	QuantityScanned int  `json:"quantity_scanned"`
}

func (o *Order) PackageOwner() (string, uint) {
	return PackageableOrder, o.ID
}

func (o *Order) GetUserID() uint {
	return o.UserID
}

func (o *Order) GetErrorMessage() string {
	return o.ErrorMessage
}

func (o *Order) SetErrorMessage(msg string) {
	o.ErrorMessage = msg
}

// BeforeCreate assigns a PO number when none was supplied.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.PONumber != "" {
		return nil
	}
	for {
		token := fmt.Sprintf("O-%04d-%04d-%04d",
			rand.Intn(10000), rand.Intn(10000), rand.Intn(10000))
		var count int64
		if err := tx.Model(&Order{}).Where("po_number = ?", token).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			o.PONumber = token
			return nil
		}
	}
}

// Subtotal needs OrderItems.Item preloaded.
func (o *Order) Subtotal() float64 {
	total := 0.0
	for _, oi := range o.OrderItems {
		total += oi.Item.Cost * float64(oi.QuantityOrdered)
	}
	return total
}

// Freight needs Packages preloaded.
func (o *Order) Freight() float64 {
	total := 0.0
	for _, p := range o.Packages {
		total += p.Freight
	}
	return total
}

func (o *Order) Total() float64 {
	return o.Subtotal() + o.Freight()
}

// EstimatedWeight is the item weight sum plus one unit of packing material,
// rounded to the nearest whole unit. Needs OrderItems.Item preloaded.
func (o *Order) EstimatedWeight() int {
	weight := 0.0
	for _, oi := range o.OrderItems {
		weight += oi.Item.Weight * float64(oi.QuantityOrdered)
	}
	return int(math.Round(weight + 1))
}

// PartNumbers expands order items to one entry per ordered unit.
func (o *Order) PartNumbers() []string {
	var parts []string
	for _, oi := range o.OrderItems {
		for i := 0; i < oi.QuantityOrdered; i++ {
			parts = append(parts, oi.Item.PartNumber)
		}
	}
	sort.Strings(parts)
	return parts
}
