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

type VendorController struct {
	DB *gorm.DB
	// Gateway can be preset for tests; when nil a fresh InventoryService
	// (with its own login) is created per request.
	Gateway services.InventoryGateway
}

func NewVendorController(DB *gorm.DB) *VendorController {
	return &VendorController{DB: DB}
}

func (c *VendorController) gateway() services.InventoryGateway {
	if c.Gateway != nil {
		return c.Gateway
	}
	return services.NewInventoryService()
}

// Request inputs are declared per handler call; a shared package-level
// struct would race under concurrent BodyParser writes.
type vendorInput struct {
	Name       string `json:"name" validate:"required,min=2"`
	StockValue int    `json:"stock_value" validate:"min=0"`
}

type vendorBrandInput struct {
	VendorID uint   `json:"vendor_id" validate:"required"`
	Brand    string `json:"brand" validate:"required"`
	LineCode string `json:"line_code" validate:"required"`
}

func (c *VendorController) CreateVendor(ctx *fiber.Ctx) error {
	var input vendorInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	vendor := models.Vendor{
		Name:       input.Name,
		StockValue: input.StockValue,
		CreatedBy:  int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&vendor).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Vendor created successfully", "data": vendor})
}

func (c *VendorController) GetAllVendors(ctx *fiber.Ctx) error {
	var vendors []models.Vendor
	if err := c.DB.Preload("VendorBrands").Find(&vendors).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Vendors found", "data": vendors})
}

func (c *VendorController) GetVendorByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var vendor models.Vendor
	if err := c.DB.Preload("VendorBrands").First(&vendor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Vendor found", "data": vendor})
}

func (c *VendorController) UpdateVendor(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input vendorInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Map updates so a zero stock value is written, not skipped.
	updates := map[string]interface{}{
		"name":        input.Name,
		"stock_value": input.StockValue,
		"updated_by":  int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Model(&models.Vendor{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var vendor models.Vendor
	if err := c.DB.First(&vendor, id).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Vendor updated successfully", "data": vendor})
}

func (c *VendorController) DeleteVendor(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var vendor models.Vendor
	if err := c.DB.First(&vendor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	vendor.DeletedBy = int(ctx.Locals("userID").(float64))
	if err := c.DB.Select("deleted_by").Where("id = ?", id).Updates(&vendor).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&vendor).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Vendor deleted successfully", "data": vendor})
}

func (c *VendorController) CreateVendorBrand(ctx *fiber.Ctx) error {
	var input vendorBrandInput
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

	brand := models.VendorBrand{
		VendorID:  input.VendorID,
		Brand:     input.Brand,
		LineCode:  input.LineCode,
		CreatedBy: int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&brand).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Vendor brand created successfully", "data": brand})
}

func (c *VendorController) GetBrandItems(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewBrandItemRepository(c.DB)
	items, err := repo.GetBrandItems(uint(id))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Brand items found", "data": items})
}

func (c *VendorController) GetVendorBrands(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var brands []models.VendorBrand
	if err := c.DB.Where("vendor_id = ?", id).Find(&brands).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Vendor brands found", "data": brands})
}

func (c *VendorController) UpdateVendorBrand(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var brand models.VendorBrand
	if err := c.DB.First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor brand not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var input vendorBrandInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	brand.Brand = input.Brand
	brand.LineCode = input.LineCode
	brand.UpdatedBy = int(ctx.Locals("userID").(float64))

	if err := c.DB.Save(&brand).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Vendor brand updated successfully", "data": brand})
}

func (c *VendorController) DeleteVendorBrand(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var brand models.VendorBrand
	if err := c.DB.First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor brand not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&brand).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Vendor brand deleted successfully", "data": brand})
}

// GetStockSummary aggregates cached availability per vendor brand.
func (c *VendorController) GetStockSummary(ctx *fiber.Ctx) error {
	repo := repositories.NewBrandItemRepository(c.DB)
	summary, err := repo.GetStockSummary()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock summary computed", "data": summary})
}

// SourcePart resolves the cheapest qualified supplier for one part under a
// vendor brand, falling back to the cached cost when the vendor API has
// nothing usable.
func (c *VendorController) SourcePart(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input struct {
		PartNumber string `json:"part_number" validate:"required"`
		Quantity   int    `json:"quantity" validate:"required,min=1"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var brand models.VendorBrand
	if err := c.DB.Preload("Vendor").First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor brand not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	sourcing := services.NewSourcingService(c.DB, c.gateway())
	cost, lineCode, err := sourcing.Resolve(&brand, input.PartNumber, input.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrMissingCatalogEntry) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Part sourced successfully",
		"data": fiber.Map{
			"part_number": input.PartNumber,
			"cost":        cost,
			"line_code":   lineCode,
		},
	})
}

// SyncInventory runs the full catalog diff for one vendor.
func (c *VendorController) SyncInventory(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var vendor models.Vendor
	if err := c.DB.First(&vendor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	sourcing := services.NewSourcingService(c.DB, c.gateway())
	updated, err := sourcing.SyncVendor(&vendor)
	if err != nil {
		if errors.Is(err, services.ErrGatewayUnavailable) {
			return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Vendor inventory API is unavailable"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Inventory synced successfully",
		"data":    fiber.Map{"updated": updated},
	})
}

// ExportInventory asks the vendor API for a downloadable catalog snapshot.
func (c *VendorController) ExportInventory(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var vendor models.Vendor
	if err := c.DB.First(&vendor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	exporter, ok := c.gateway().(services.InventoryExporter)
	if !ok {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Export not supported"})
	}

	fileURL, err := exporter.ExportInventory(vendor.VendorType())
	if err != nil {
		if errors.Is(err, services.ErrGatewayUnavailable) {
			return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Vendor inventory API is unavailable"})
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Inventory export ready",
		"data":    fiber.Map{"file_url": fileURL},
	})
}
