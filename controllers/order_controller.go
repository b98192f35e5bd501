package controllers

import (
	"errors"

	"fulfillment-app/models"
	"fulfillment-app/repositories"
	"fulfillment-app/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderController struct {
	DB      *gorm.DB
	Carrier services.CarrierGateway
}

func NewOrderController(DB *gorm.DB) *OrderController {
	return &OrderController{DB: DB}
}

func (c *OrderController) carrier() services.CarrierGateway {
	if c.Carrier != nil {
		return c.Carrier
	}
	return services.NewShipService()
}

type orderItemInput struct {
	ItemID          uint `json:"item_id" validate:"required"`
	QuantityOrdered int  `json:"quantity_ordered" validate:"required,min=1"`
}

type orderInput struct {
	ExternalPONumber string           `json:"external_po_number"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	Street           string           `json:"street"`
	AptNumber        string           `json:"apt_number"`
	City             string           `json:"city" validate:"required"`
	State            string           `json:"state" validate:"required"`
	Zip              string           `json:"zip" validate:"required"`
	Country          string           `json:"country"`
	ShippingMethod   string           `json:"shipping_method"`
	Notes            string           `json:"notes"`
	Items            []orderItemInput `json:"items"`
	Packages         []packageInput   `json:"packages"`
}

func (c *OrderController) CreateOrder(ctx *fiber.Ctx) error {
	var input orderInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	order := models.Order{
		UserID:           uint(ctx.Locals("userID").(float64)),
		ExternalPONumber: input.ExternalPONumber,
		Name:             input.Name,
		Email:            input.Email,
		Phone:            input.Phone,
		Street:           input.Street,
		AptNumber:        input.AptNumber,
		City:             input.City,
		State:            input.State,
		Zip:              input.Zip,
		Country:          input.Country,
		Notes:            input.Notes,
	}
	if input.ShippingMethod != "" {
		order.ShippingMethod = input.ShippingMethod
	}

	if err := c.DB.Create(&order).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	for _, in := range input.Items {
		var item models.Item
		if err := c.DB.First(&item, in.ItemID).Error; err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Item not found"})
		}
		oi := models.OrderItem{
			OrderID:         order.ID,
			ItemID:          in.ItemID,
			QuantityOrdered: in.QuantityOrdered,
		}
		if err := c.DB.Create(&oi).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	if err := applyPackages(c.DB, &order, input.Packages); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Order created successfully", "data": order})
}

func (c *OrderController) GetAllOrders(ctx *fiber.Ctx) error {
	userID := uint(ctx.Locals("userID").(float64))

	query := c.DB.Where("user_id = ?", userID).Order("updated_at desc")
	if search := ctx.Query("po_search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("po_number LIKE ? OR external_po_number LIKE ? OR name LIKE ?",
			pattern, pattern, pattern)
	}

	var orders []models.Order
	if err := query.Preload("OrderItems.Item").Preload("Packages").Find(&orders).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Orders found", "data": orders})
}

func (c *OrderController) GetOrderByID(ctx *fiber.Ctx) error {
	order, status, err := c.findOrder(ctx, true)
	if err != nil {
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Order found", "data": order})
}

// GetOrderTotals reports the order's money and weight summary.
func (c *OrderController) GetOrderTotals(ctx *fiber.Ctx) error {
	order, status, err := c.findOrder(ctx, true)
	if err != nil {
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Order totals computed",
		"data": fiber.Map{
			"po_number":        order.PONumber,
			"subtotal":         order.Subtotal(),
			"freight":          order.Freight(),
			"total":            order.Total(),
			"estimated_weight": order.EstimatedWeight(),
			"part_numbers":     order.PartNumbers(),
		},
	})
}

func (c *OrderController) RefreshRates(ctx *fiber.Ctx) error {
	order, status, err := c.findOrder(ctx, false)
	if err != nil {
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	shipping := services.NewShippingService(c.DB, c.carrier())
	if err := shipping.RefreshRates(order); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var packages []models.Package
	ownerType, ownerID := order.PackageOwner()
	if err := c.DB.Preload("Box").
		Where("packageable_type = ? AND packageable_id = ?", ownerType, ownerID).
		Find(&packages).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Rates refreshed",
		"data": fiber.Map{
			"order":    order,
			"packages": packages,
		},
	})
}

func (c *OrderController) CreateTransaction(ctx *fiber.Ctx) error {
	order, status, err := c.findOrder(ctx, false)
	if err != nil {
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	var input transactionInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	shipping := services.NewShippingService(c.DB, c.carrier())
	pkg, err := shipping.FinalizeTransaction(order, input.PackageID,
		input.RateObjectID, input.Carrier)
	if err != nil {
		var txnErr *services.TransactionError
		if errors.As(err, &txnErr) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": txnErr.Messages})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Transaction created successfully", "data": pkg})
}

// ResortRates rewrites every stored rate list in current priority order.
func (c *OrderController) ResortRates(ctx *fiber.Ctx) error {
	if err := services.SortAllRates(c.DB); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Rates re-sorted"})
}

// RecalcFreight re-derives freight for every package with a chosen rate.
func (c *OrderController) RecalcFreight(ctx *fiber.Ctx) error {
	repo := repositories.NewPackageRepository(c.DB)
	updated, err := repo.RecalcFreight()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Freight recalculated",
		"data":    fiber.Map{"updated": updated},
	})
}

func (c *OrderController) findOrder(ctx *fiber.Ctx, preload bool) (*models.Order, int, error) {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return nil, fiber.StatusBadRequest, errors.New("Invalid ID")
	}

	userID := uint(ctx.Locals("userID").(float64))

	query := c.DB.Where("user_id = ?", userID)
	if preload {
		query = query.Preload("OrderItems.Item").Preload("Packages.Box")
	}

	var order models.Order
	err = query.First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.StatusNotFound, errors.New("Order not found")
		}
		return nil, fiber.StatusInternalServerError, err
	}
	return &order, fiber.StatusOK, nil
}
