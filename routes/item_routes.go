package routes

import (
	"fulfillment-app/config"
	"fulfillment-app/controllers"
	"fulfillment-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupItemRoutes(app *fiber.App, db *gorm.DB) {

	api := app.Group(config.MAIN_ROUTES+"/items", middleware.AuthMiddleware)
	itemController := controllers.NewItemController(db)

	api.Post("/", itemController.CreateItem)
	api.Get("/", itemController.GetAllItems)
	api.Post("/upload", itemController.CreateItemsFromExcel)
	api.Get("/:id", itemController.GetItemByID)
	api.Put("/:id", itemController.UpdateItem)
	api.Delete("/:id", itemController.DeleteItem)
}
