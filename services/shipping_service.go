package services

import (
	"errors"
	"strings"

	"fulfillment-app/models"
	"fulfillment-app/utils"

	"gorm.io/gorm"
)

// GenericCarrierError stands in when the carrier fails without saying why.
const GenericCarrierError = "Some error occurred."

// TransactionError carries the carrier's own explanation for a label
// purchase that did not succeed.
type TransactionError struct {
	Messages []string
}

func (e *TransactionError) Error() string {
	return "carrier transaction failed: " + strings.Join(e.Messages, "; ")
}

// ShippingService drives rate collection and label purchase for the
// packages of a shippable entity.
type ShippingService struct {
	db      *gorm.DB
	carrier CarrierGateway
}

func NewShippingService(db *gorm.DB, carrier CarrierGateway) *ShippingService {
	return &ShippingService{db: db, carrier: carrier}
}

func (s *ShippingService) pendingPackages(shippable models.Shippable) ([]models.Package, error) {
	ownerType, ownerID := shippable.PackageOwner()
	var packages []models.Package
	err := s.db.Preload("Box").
		Where("packageable_type = ? AND packageable_id = ? AND rates IS NULL", ownerType, ownerID).
		Find(&packages).Error
	return packages, err
}

// RefreshRates quotes every package of the shippable that still lacks rates
// and has a weight and box but no tracking number yet. Carrier messages are
// aggregated onto the owner's error message when packages remain unrated,
// and cleared otherwise. The error message is recomputed wholesale on every
// run.
func (s *ShippingService) RefreshRates(shippable models.Shippable) error {
	packages, err := s.pendingPackages(shippable)
	if err != nil {
		return err
	}

	var collected []string
	for i := range packages {
		p := &packages[i]
		if !p.Quotable() {
			continue
		}

		quote, err := s.carrier.CreateShipment(shippable, p)
		if err != nil {
			collected = append(collected, GenericCarrierError)
			continue
		}
		collected = append(collected, quote.MessageTexts()...)

		sorted := SortRates(quote.Rates)
		if len(sorted) == 0 {
			// No quotes: the package stays pending for the next run.
			continue
		}
		p.Rates = sorted
		if err := s.db.Save(p).Error; err != nil {
			return err
		}
	}

	ownerType, ownerID := shippable.PackageOwner()
	var pending int64
	err = s.db.Model(&models.Package{}).
		Where("packageable_type = ? AND packageable_id = ? AND rates IS NULL", ownerType, ownerID).
		Count(&pending).Error
	if err != nil {
		return err
	}

	if len(collected) > 0 && pending > 0 {
		shippable.SetErrorMessage(utils.ToSentence(utils.Uniq(collected)))
	} else {
		shippable.SetErrorMessage("")
	}
	return s.db.Save(shippable).Error
}

// FinalizeTransaction purchases the label for one package at the chosen
// rate and persists the carrier's tracking data. The freight is copied
// from the matching persisted rate, which becomes immutable from here on.
func (s *ShippingService) FinalizeTransaction(shippable models.Shippable, packageID uint, rateObjectID, carrier string) (*models.Package, error) {
	ownerType, ownerID := shippable.PackageOwner()

	var pkg models.Package
	err := s.db.Where("packageable_type = ? AND packageable_id = ? AND id = ?", ownerType, ownerID, packageID).
		First(&pkg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &TransactionError{Messages: []string{"Package not found."}}
		}
		return nil, err
	}

	txn, err := s.carrier.CreateTransaction(shippable.GetUserID(), rateObjectID)
	if err != nil {
		return nil, &TransactionError{Messages: []string{GenericCarrierError}}
	}
	if txn.Status != "SUCCESS" {
		messages := txn.MessageTexts()
		if len(messages) == 0 {
			messages = []string{GenericCarrierError}
		}
		return nil, &TransactionError{Messages: messages}
	}

	pkg.TrackingNumber = txn.TrackingNumber
	pkg.LabelURL = txn.LabelURL
	pkg.Carrier = carrier
	pkg.RateObjectID = rateObjectID
	if rate, ok := pkg.Rates.FindByObjectID(rateObjectID); ok {
		pkg.Freight = rate.Amount
	}

	if err := s.db.Save(&pkg).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}
