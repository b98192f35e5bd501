package database

import (
	"fulfillment-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
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
}
