package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fulfillment-app/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ItemController struct {
	DB *gorm.DB
}

func NewItemController(DB *gorm.DB) *ItemController {
	return &ItemController{DB: DB}
}

type itemInput struct {
	PartNumber    string  `json:"part_number" validate:"required,min=2"`
	Brand         string  `json:"brand"`
	BrandLineCode string  `json:"brand_line_code"`
	Cost          float64 `json:"cost" validate:"min=0"`
	UPC           string  `json:"upc"`
	Title         string  `json:"title"`
	Height        float64 `json:"height"`
	Width         float64 `json:"width"`
	Length        float64 `json:"length"`
	Weight        float64 `json:"weight"`
}

func (c *ItemController) CreateItem(ctx *fiber.Ctx) error {
	var input itemInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	item := models.Item{
		PartNumber:    input.PartNumber,
		Brand:         input.Brand,
		BrandLineCode: input.BrandLineCode,
		Cost:          input.Cost,
		UPC:           input.UPC,
		Title:         input.Title,
		Height:        input.Height,
		Width:         input.Width,
		Length:        input.Length,
		Weight:        input.Weight,
		CreatedBy:     int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&item).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Item created successfully", "data": item})
}

func (c *ItemController) GetAllItems(ctx *fiber.Ctx) error {
	var items []models.Item
	query := c.DB
	if search := ctx.Query("search"); search != "" {
		query = query.Where("part_number LIKE ? OR title LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if err := query.Find(&items).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Items found", "data": items})
}

func (c *ItemController) GetItemByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var item models.Item
	if err := c.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Item found", "data": item})
}

func (c *ItemController) UpdateItem(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input itemInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	item := models.Item{
		PartNumber:    input.PartNumber,
		Brand:         input.Brand,
		BrandLineCode: input.BrandLineCode,
		Cost:          input.Cost,
		UPC:           input.UPC,
		Title:         input.Title,
		Height:        input.Height,
		Width:         input.Width,
		Length:        input.Length,
		Weight:        input.Weight,
		UpdatedBy:     int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Model(&item).Where("id = ?", id).Updates(item).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Item updated successfully", "data": item})
}

func (c *ItemController) DeleteItem(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var item models.Item
	if err := c.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&item).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Item deleted successfully", "data": item})
}

type ItemUploadResult struct {
	TotalRows     int      `json:"total_rows"`
	SuccessCount  int      `json:"success_count"`
	SkippedCount  int      `json:"skipped_count"`
	ErrorCount    int      `json:"error_count"`
	SkippedItems  []string `json:"skipped_items"`
	ErrorMessages []string `json:"error_messages"`
}

// CreateItemsFromExcel bulk loads catalog items. Expected columns:
// part_number, brand, brand_line_code, cost, upc, title, height, width,
// length, weight. Existing part numbers are updated in place.
func (c *ItemController) CreateItemsFromExcel(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "File is required",
		})
	}

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".xlsx") &&
		!strings.HasSuffix(strings.ToLower(file.Filename), ".xls") {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Only Excel files (.xlsx, .xls) are allowed",
		})
	}

	fileContent, err := file.Open()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to open file",
		})
	}
	defer fileContent.Close()

	f, err := excelize.OpenReader(fileContent)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to read Excel file",
		})
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Excel file has no sheets",
		})
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to read rows",
		})
	}

	userID := int(ctx.Locals("userID").(float64))
	result := ItemUploadResult{}
	seen := make(map[string]bool)

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		result.TotalRows++

		partNumber := cell(row, 0)
		if partNumber == "" {
			result.SkippedCount++
			result.SkippedItems = append(result.SkippedItems, fmt.Sprintf("row %d: empty part number", i+1))
			continue
		}
		if seen[partNumber] {
			result.SkippedCount++
			result.SkippedItems = append(result.SkippedItems, fmt.Sprintf("row %d: duplicate part number %s", i+1, partNumber))
			continue
		}
		seen[partNumber] = true

		item := models.Item{
			PartNumber:    partNumber,
			Brand:         cell(row, 1),
			BrandLineCode: cell(row, 2),
			Cost:          cellFloat(row, 3),
			UPC:           cell(row, 4),
			Title:         cell(row, 5),
			Height:        cellFloat(row, 6),
			Width:         cellFloat(row, 7),
			Length:        cellFloat(row, 8),
			Weight:        cellFloat(row, 9),
			CreatedBy:     userID,
		}

		var existing models.Item
		err := c.DB.Where("part_number = ?", partNumber).First(&existing).Error
		if err == nil {
			item.ID = existing.ID
			item.CreatedBy = existing.CreatedBy
			item.UpdatedBy = userID
			err = c.DB.Model(&existing).Updates(item).Error
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			err = c.DB.Create(&item).Error
		}

		if err != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.SuccessCount++
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Items imported",
		"data":    result,
	})
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func cellFloat(row []string, idx int) float64 {
	v, _ := strconv.ParseFloat(cell(row, idx), 64)
	return v
}
