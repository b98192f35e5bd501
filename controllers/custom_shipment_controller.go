package controllers

import (
	"errors"

	"fulfillment-app/controllers/idgen"
	"fulfillment-app/models"
	"fulfillment-app/repositories"
	"fulfillment-app/services"
	"fulfillment-app/types"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CustomShipmentController struct {
	DB *gorm.DB
	// Carrier can be preset for tests; when nil a ShipService is used.
	Carrier services.CarrierGateway
}

func NewCustomShipmentController(DB *gorm.DB) *CustomShipmentController {
	return &CustomShipmentController{DB: DB}
}

func (c *CustomShipmentController) carrier() services.CarrierGateway {
	if c.Carrier != nil {
		return c.Carrier
	}
	return services.NewShipService()
}

type packageInput struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Weight  float64 `json:"weight"`
	BoxID   uint    `json:"box_id"`
	Destroy bool    `json:"_destroy"`
}

type customShipmentInput struct {
	PONumber          string         `json:"po_number" validate:"required"`
	ShipFromName      string         `json:"ship_from_name" validate:"required"`
	ShipFromStreet    string         `json:"ship_from_street"`
	ShipFromAptNumber string         `json:"ship_from_apt_number"`
	ShipFromCity      string         `json:"ship_from_city" validate:"required"`
	ShipFromState     string         `json:"ship_from_state"`
	ShipFromZip       string         `json:"ship_from_zip" validate:"required"`
	ShipFromCountry   string         `json:"ship_from_country"`
	ShipFromPhone     string         `json:"ship_from_phone"`
	ShipToName        string         `json:"ship_to_name" validate:"required"`
	ShipToStreet      string         `json:"ship_to_street"`
	ShipToAptNumber   string         `json:"ship_to_apt_number"`
	ShipToCity        string         `json:"ship_to_city" validate:"required"`
	ShipToState       string         `json:"ship_to_state"`
	ShipToZip         string         `json:"ship_to_zip" validate:"required"`
	ShipToCountry     string         `json:"ship_to_country"`
	ShipToPhone       string         `json:"ship_to_phone"`
	Notes             string         `json:"notes"`
	Packages          []packageInput `json:"packages"`
}

// applyPackages reconciles the nested package payload against an owner's
// stored packages. Packages with a tracking number are never touched.
func applyPackages(db *gorm.DB, owner models.Shippable, inputs []packageInput) error {
	ownerType, ownerID := owner.PackageOwner()
	for _, in := range inputs {
		switch {
		case in.Destroy && in.ID != 0:
			err := db.Where("packageable_type = ? AND packageable_id = ? AND id = ? AND tracking_number = ''",
				ownerType, ownerID, in.ID).
				Delete(&models.Package{}).Error
			if err != nil {
				return err
			}
		case in.ID != 0:
			err := db.Model(&models.Package{}).
				Where("packageable_type = ? AND packageable_id = ? AND id = ? AND tracking_number = ''",
					ownerType, ownerID, in.ID).
				Updates(map[string]interface{}{"weight": in.Weight, "box_id": in.BoxID}).Error
			if err != nil {
				return err
			}
		default:
			name := in.Name
			if name == "" {
				name = idgen.GenerateCode()
			}
			pkg := models.Package{
				PackageableType: ownerType,
				PackageableID:   ownerID,
				ReferenceID:     types.SnowflakeID(idgen.GenerateID()),
				Name:            name,
				Weight:          in.Weight,
				BoxID:           in.BoxID,
			}
			if err := db.Create(&pkg).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *CustomShipmentController) GetAllCustomShipments(ctx *fiber.Ctx) error {
	userID := uint(ctx.Locals("userID").(float64))

	query := c.DB.Where("user_id = ?", userID).Order("updated_at desc")
	if search := ctx.Query("po_search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("po_number LIKE ? OR ship_from_name LIKE ? OR ship_to_name LIKE ?",
			pattern, pattern, pattern)
	}

	var shipments []models.CustomShipment
	if err := query.Preload("Packages").Find(&shipments).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Custom shipments found", "data": shipments})
}

func (c *CustomShipmentController) GetCustomShipmentByID(ctx *fiber.Ctx) error {
	shipment, status, err := c.findShipment(ctx)
	if err != nil {
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewPackageRepository(c.DB)
	labeled, err := repo.GetLabeledPackages(shipment.PackageOwner())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Custom shipment found",
		"data": fiber.Map{
			"shipment":         shipment,
			"labeled_packages": labeled,
		},
	})
}

func (c *CustomShipmentController) CreateCustomShipment(ctx *fiber.Ctx) error {
	var input customShipmentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	shipment := models.CustomShipment{
		UserID:            uint(ctx.Locals("userID").(float64)),
		PONumber:          input.PONumber,
		ShipFromName:      input.ShipFromName,
		ShipFromStreet:    input.ShipFromStreet,
		ShipFromAptNumber: input.ShipFromAptNumber,
		ShipFromCity:      input.ShipFromCity,
		ShipFromState:     input.ShipFromState,
		ShipFromZip:       input.ShipFromZip,
		ShipFromCountry:   input.ShipFromCountry,
		ShipFromPhone:     input.ShipFromPhone,
		ShipToName:        input.ShipToName,
		ShipToStreet:      input.ShipToStreet,
		ShipToAptNumber:   input.ShipToAptNumber,
		ShipToCity:        input.ShipToCity,
		ShipToState:       input.ShipToState,
		ShipToZip:         input.ShipToZip,
		ShipToCountry:     input.ShipToCountry,
		ShipToPhone:       input.ShipToPhone,
		Notes:             input.Notes,
	}

	if err := c.DB.Create(&shipment).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := applyPackages(c.DB, &shipment, input.Packages); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Custom shipment created successfully", "data": shipment})
}

func (c *CustomShipmentController) UpdateCustomShipment(ctx *fiber.Ctx) error {
	shipment, status, err := c.findShipment(ctx)
	if err != nil {
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	var input customShipmentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := models.CustomShipment{
		PONumber:          input.PONumber,
		ShipFromName:      input.ShipFromName,
		ShipFromStreet:    input.ShipFromStreet,
		ShipFromAptNumber: input.ShipFromAptNumber,
		ShipFromCity:      input.ShipFromCity,
		ShipFromState:     input.ShipFromState,
		ShipFromZip:       input.ShipFromZip,
		ShipFromCountry:   input.ShipFromCountry,
		ShipFromPhone:     input.ShipFromPhone,
		ShipToName:        input.ShipToName,
		ShipToStreet:      input.ShipToStreet,
		ShipToAptNumber:   input.ShipToAptNumber,
		ShipToCity:        input.ShipToCity,
		ShipToState:       input.ShipToState,
		ShipToZip:         input.ShipToZip,
		ShipToCountry:     input.ShipToCountry,
		ShipToPhone:       input.ShipToPhone,
		Notes:             input.Notes,
	}

	if err := c.DB.Model(shipment).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := applyPackages(c.DB, shipment, input.Packages); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Custom shipment updated successfully", "data": shipment})
}

func (c *CustomShipmentController) DeleteCustomShipment(ctx *fiber.Ctx) error {
	shipment, status, err := c.findShipment(ctx)
	if err != nil {
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(shipment).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Custom shipment deleted successfully", "data": shipment})
}

// RefreshRates collects carrier quotes for every package that still needs
// them and re-derives the shipment's aggregate error message.
func (c *CustomShipmentController) RefreshRates(ctx *fiber.Ctx) error {
	shipment, status, err := c.findShipment(ctx)
	if err != nil {
		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	shipping := services.NewShippingService(c.DB, c.carrier())
	if err := shipping.RefreshRates(shipment); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var packages []models.Package
	ownerType, ownerID := shipment.PackageOwner()
	if err := c.DB.Preload("Box").
		Where("packageable_type = ? AND packageable_id = ?", ownerType, ownerID).
		Find(&packages).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Rates refreshed",
		"data": fiber.Map{
			"shipment": shipment,
			"packages": packages,
		},
	})
}

type transactionInput struct {
	PackageID    uint   `json:"package_id" validate:"required"`
	RateObjectID string `json:"rate_object_id" validate:"required"`
	Carrier      string `json:"carrier"`
}

// CreateTransaction purchases the label for one package at a chosen rate.
func (c *CustomShipmentController) CreateTransaction(ctx *fiber.Ctx) error {
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

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Transaction created successfully", "data": pkg})
}

func (c *CustomShipmentController) findShipment(ctx *fiber.Ctx) (*models.CustomShipment, int, error) {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return nil, fiber.StatusBadRequest, errors.New("Invalid ID")
	}

	userID := uint(ctx.Locals("userID").(float64))

	var shipment models.CustomShipment
	err = c.DB.Where("user_id = ?", userID).First(&shipment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.StatusNotFound, errors.New("Custom shipment not found")
		}
		return nil, fiber.StatusInternalServerError, err
	}
	return &shipment, fiber.StatusOK, nil
}
