package models

import "gorm.io/gorm"

// Item is the master catalog record, bulk loaded from spreadsheet uploads.
type Item struct {
	gorm.Model
	PartNumber    string  `json:"part_number" gorm:"unique;not null"`
	Brand         string  `json:"brand"`
	BrandLineCode string  `json:"brand_line_code"`
	Cost          float64 `json:"cost"`
	UPC           string  `json:"upc"`
	Title         string  `json:"title"`
	Height        float64 `json:"height"`
	Width         float64 `json:"width"`
	Length        float64 `json:"length"`
	Weight        float64 `json:"weight"`
	CreatedBy     int     `json:"created_by"`
	UpdatedBy     int     `json:"updated_by"`
}

type Box struct {
	gorm.Model
	Name      string  `json:"name" gorm:"unique"`
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	MaxWeight float64 `json:"max_weight"`
}
