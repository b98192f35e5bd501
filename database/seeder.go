package database

import (
	"fmt"

	"fulfillment-app/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunSeeders bootstraps the admin account and the standard box sizes.
func RunSeeders(db *gorm.DB) {
	seedAdmin(db)
	seedBoxes(db)
}

func seedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("email = ?", "admin@fulfillment.local").Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		fmt.Println("Failed to hash admin password:", err)
		return
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    "admin@fulfillment.local",
		Password: string(hashed),
		Role:     "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		fmt.Println("Failed to seed admin user:", err)
	}
}

func seedBoxes(db *gorm.DB) {
	boxes := []models.Box{
		{Name: "Small", Length: 8, Width: 6, Height: 4, MaxWeight: 5},
		{Name: "Medium", Length: 12, Width: 10, Height: 6, MaxWeight: 20},
		{Name: "Large", Length: 18, Width: 14, Height: 10, MaxWeight: 50},
	}
	for _, box := range boxes {
		var count int64
		db.Model(&models.Box{}).Where("name = ?", box.Name).Count(&count)
		if count == 0 {
			db.Create(&box)
		}
	}
}
