package routes

import (
	"fulfillment-app/config"
	"fulfillment-app/controllers"
	"fulfillment-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupOrderRoutes(app *fiber.App, db *gorm.DB) {

	api := app.Group(config.MAIN_ROUTES+"/orders", middleware.AuthMiddleware)
	orderController := controllers.NewOrderController(db)

	api.Post("/", orderController.CreateOrder)
	api.Get("/", orderController.GetAllOrders)
	api.Post("/recalc-freight", orderController.RecalcFreight)
	api.Post("/resort-rates", orderController.ResortRates)
	api.Get("/:id", orderController.GetOrderByID)
	api.Get("/:id/totals", orderController.GetOrderTotals)
	api.Get("/:id/rates", orderController.RefreshRates)
	api.Post("/:id/transactions", orderController.CreateTransaction)
}
