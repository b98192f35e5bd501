package repositories

import (
	"fulfillment-app/models"

	"gorm.io/gorm"
)

type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{db}
}

// GetLabeledPackages returns an owner's packages that already carry a
// tracking number, box preloaded for display.
func (r *PackageRepository) GetLabeledPackages(ownerType string, ownerID uint) ([]models.Package, error) {
	var packages []models.Package
	err := r.db.Preload("Box").
		Where("packageable_type = ? AND packageable_id = ? AND tracking_number <> ''", ownerType, ownerID).
		Find(&packages).Error
	if err != nil {
		return nil, err
	}
	return packages, nil
}

// RecalcFreight re-derives every package's freight from its chosen rate.
// Fixes rows written before freight was copied at transaction time.
func (r *PackageRepository) RecalcFreight() (int, error) {
	var packages []models.Package
	err := r.db.Where("rate_object_id <> '' AND rates IS NOT NULL").Find(&packages).Error
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range packages {
		p := &packages[i]
		rate, ok := p.Rates.FindByObjectID(p.RateObjectID)
		if !ok || p.Freight == rate.Amount {
			continue
		}
		if err := r.db.Model(p).Update("freight", rate.Amount).Error; err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}
