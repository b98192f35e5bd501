package controllers

import (
	"errors"

	"fulfillment-app/models"
	"fulfillment-app/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type VendorShipmentController struct {
	DB      *gorm.DB
	Carrier services.CarrierGateway
}

func NewVendorShipmentController(DB *gorm.DB) *VendorShipmentController {
	return &VendorShipmentController{DB: DB}
}

func (c *VendorShipmentController) carrier() services.CarrierGateway {
	if c.Carrier != nil {
		return c.Carrier
	}
	return services.NewShipService()
}

type vendorShipmentItemInput struct {
	ID            uint   `json:"id"`
	PartNumber    string `json:"part_number"`
	BrandLineCode string `json:"brand_line_code"`
	Qty           int    `json:"qty"`
	Destroy       bool   `json:"_destroy"`
}

type vendorShipmentInput struct {
	VendorID        uint                      `json:"vendor_id" validate:"required"`
	PONumber        string                    `json:"po_number" validate:"required"`
	ShipToName      string                    `json:"ship_to_name" validate:"required"`
	ShipToStreet    string                    `json:"ship_to_street"`
	ShipToAptNumber string                    `json:"ship_to_apt_number"`
	ShipToCity      string                    `json:"ship_to_city" validate:"required"`
	ShipToState     string                    `json:"ship_to_state"`
	ShipToZip       string                    `json:"ship_to_zip" validate:"required"`
	ShipToCountry   string                    `json:"ship_to_country"`
	ShipToPhone     string                    `json:"ship_to_phone"`
	Notes           string                    `json:"notes"`
	Items           []vendorShipmentItemInput `json:"items"`
	Packages        []packageInput            `json:"packages"`
}

func (c *VendorShipmentController) GetAllVendorShipments(ctx *fiber.Ctx) error {
	role, _ := ctx.Locals("role").(string)
	userID := uint(ctx.Locals("userID").(float64))

	query := c.DB.Preload("Items").Preload("Packages").Order("updated_at desc")
	if role != "admin" {
		query = query.Where("user_id = ?", userID)
	}

	var shipments []models.VendorShipment
	if err := query.Find(&shipments).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Vendor shipments found", "data": shipments})
}

// GetVendorShipmentByID also refreshes pending rates, so the caller always
// sees current carrier quotes alongside the shipment.
func (c *VendorShipmentController) GetVendorShipmentByID(ctx *fiber.Ctx) error {
	shipment, status, err := c.findShipment(ctx)
	if err != nil {
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	shipping := services.NewShippingService(c.DB, c.carrier())
	if err := shipping.RefreshRates(shipment); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var full models.VendorShipment
	if err := c.DB.Preload("Items").Preload("Packages.Box").First(&full, shipment.ID).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Vendor shipment found", "data": full})
}

func (c *VendorShipmentController) CreateVendorShipment(ctx *fiber.Ctx) error {
	var input vendorShipmentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var vendor models.Vendor
	if err := c.DB.First(&vendor, input.VendorID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
	}

	shipment := models.VendorShipment{
		VendorID:        input.VendorID,
		UserID:          uint(ctx.Locals("userID").(float64)),
		PONumber:        input.PONumber,
		ShipToName:      input.ShipToName,
		ShipToStreet:    input.ShipToStreet,
		ShipToAptNumber: input.ShipToAptNumber,
		ShipToCity:      input.ShipToCity,
		ShipToState:     input.ShipToState,
		ShipToZip:       input.ShipToZip,
		ShipToCountry:   input.ShipToCountry,
		ShipToPhone:     input.ShipToPhone,
		Notes:           input.Notes,
	}

	if err := c.DB.Create(&shipment).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.applyItems(&shipment, input.Items); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := applyPackages(c.DB, &shipment, input.Packages); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Vendor shipment created successfully", "data": shipment})
}

func (c *VendorShipmentController) UpdateVendorShipment(ctx *fiber.Ctx) error {
	shipment, status, err := c.findShipment(ctx)
	if err != nil {
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	var input vendorShipmentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := models.VendorShipment{
		PONumber:        input.PONumber,
		ShipToName:      input.ShipToName,
		ShipToStreet:    input.ShipToStreet,
		ShipToAptNumber: input.ShipToAptNumber,
		ShipToCity:      input.ShipToCity,
		ShipToState:     input.ShipToState,
		ShipToZip:       input.ShipToZip,
		ShipToCountry:   input.ShipToCountry,
		ShipToPhone:     input.ShipToPhone,
		Notes:           input.Notes,
	}

	if err := c.DB.Model(shipment).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.applyItems(shipment, input.Items); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := applyPackages(c.DB, shipment, input.Packages); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Vendor shipment updated successfully", "data": shipment})
}

func (c *VendorShipmentController) DeleteVendorShipment(ctx *fiber.Ctx) error {
	shipment, status, err := c.findShipment(ctx)
	if err != nil {
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(shipment).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Vendor shipment deleted successfully", "data": shipment})
}

// CreateTransaction purchases a label and marks the shipment complete.
func (c *VendorShipmentController) CreateTransaction(ctx *fiber.Ctx) error {
	shipment, status, err := c.findShipment(ctx)
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
	pkg, err := shipping.FinalizeTransaction(shipment, input.PackageID,
		input.RateObjectID, input.Carrier)
	if err != nil {
		var txnErr *services.TransactionError
		if errors.As(err, &txnErr) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": txnErr.Messages})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Model(shipment).Update("status", true).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Transaction created successfully", "data": pkg})
}

func (c *VendorShipmentController) applyItems(shipment *models.VendorShipment, inputs []vendorShipmentItemInput) error {
	for _, in := range inputs {
		switch {
		case in.Destroy && in.ID != 0:
			err := c.DB.Where("vendor_shipment_id = ? AND id = ?", shipment.ID, in.ID).
				Delete(&models.VendorShipmentItem{}).Error
			if err != nil {
				return err
			}
		case in.ID != 0:
			err := c.DB.Model(&models.VendorShipmentItem{}).
				Where("vendor_shipment_id = ? AND id = ?", shipment.ID, in.ID).
				Updates(map[string]interface{}{
					"part_number":     in.PartNumber,
					"brand_line_code": in.BrandLineCode,
					"qty":             in.Qty,
				}).Error
			if err != nil {
				return err
			}
		default:
			item := models.VendorShipmentItem{
				VendorShipmentID: shipment.ID,
				PartNumber:       in.PartNumber,
				BrandLineCode:    in.BrandLineCode,
				Qty:              in.Qty,
			}
			if err := c.DB.Create(&item).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *VendorShipmentController) findShipment(ctx *fiber.Ctx) (*models.VendorShipment, int, error) {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return nil, fiber.StatusBadRequest, errors.New("Invalid ID")
	}

	role, _ := ctx.Locals("role").(string)
	userID := uint(ctx.Locals("userID").(float64))

	query := c.DB
	if role != "admin" {
		query = query.Where("user_id = ?", userID)
	}

	var shipment models.VendorShipment
	err = query.First(&shipment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.StatusNotFound, errors.New("Vendor shipment not found")
		}
		return nil, fiber.StatusInternalServerError, err
	}
	return &shipment, fiber.StatusOK, nil
}
