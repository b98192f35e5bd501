package routes

import (
	"fulfillment-app/config"
	"fulfillment-app/controllers"
	"fulfillment-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupVendorShipmentRoutes(app *fiber.App, db *gorm.DB) {

	api := app.Group(config.MAIN_ROUTES+"/vendor-shipments", middleware.AuthMiddleware)
	shipmentController := controllers.NewVendorShipmentController(db)

	api.Post("/", shipmentController.CreateVendorShipment)
	api.Get("/", shipmentController.GetAllVendorShipments)
	api.Get("/:id", shipmentController.GetVendorShipmentByID)
	api.Put("/:id", shipmentController.UpdateVendorShipment)
	api.Delete("/:id", shipmentController.DeleteVendorShipment)
	api.Post("/:id/transactions", shipmentController.CreateTransaction)
}
