package routes

import (
	"fulfillment-app/config"
	"fulfillment-app/controllers"
	"fulfillment-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupVendorRoutes(app *fiber.App, db *gorm.DB) {

	api := app.Group(config.MAIN_ROUTES+"/vendors", middleware.AuthMiddleware)
	vendorController := controllers.NewVendorController(db)

	api.Get("/stock-summary", vendorController.GetStockSummary)
	api.Post("/brands", vendorController.CreateVendorBrand)
	api.Put("/brands/:id", vendorController.UpdateVendorBrand)
	api.Delete("/brands/:id", vendorController.DeleteVendorBrand)
	api.Post("/brands/:id/source", vendorController.SourcePart)

	api.Post("/", vendorController.CreateVendor)
	api.Get("/", vendorController.GetAllVendors)
	api.Get("/:id", vendorController.GetVendorByID)
	api.Put("/:id", vendorController.UpdateVendor)
	api.Delete("/:id", vendorController.DeleteVendor)

	api.Get("/:id/brands", vendorController.GetVendorBrands)
	api.Get("/:id/brand-items", vendorController.GetBrandItems)
	api.Post("/:id/sync", vendorController.SyncInventory)
	api.Post("/:id/export", vendorController.ExportInventory)
}
