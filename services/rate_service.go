package services

import (
	"sort"

	"fulfillment-app/models"
	"fulfillment-app/types"

	"gorm.io/gorm"
)

// Priority tags the carrier attaches to rate quotes.
const (
	RateAttrCheapest  = "CHEAPEST"
	RateAttrBestValue = "BESTVALUE"
	RateAttrFastest   = "FASTEST"
)

// SortRates orders carrier quotes into the business priority sequence:
// cheapest-tagged quotes first, then best-value, then fastest, then the
// rest, each group cheapest-first. A quote carrying several tags lands in
// one group only: the BESTVALUE check runs before the CHEAPEST one, even
// though the cheapest group is emitted first. The input is not modified.
func SortRates(rates types.RateList) types.RateList {
	sorted := make(types.RateList, len(rates))
	copy(sorted, rates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount < sorted[j].Amount
	})

	var bestValue, cheapest, fastest, rest types.RateList
	for _, r := range sorted {
		switch {
		case r.HasAttribute(RateAttrBestValue):
			bestValue = append(bestValue, r)
		case r.HasAttribute(RateAttrCheapest):
			cheapest = append(cheapest, r)
		case r.HasAttribute(RateAttrFastest):
			fastest = append(fastest, r)
		default:
			rest = append(rest, r)
		}
	}

	out := make(types.RateList, 0, len(sorted))
	out = append(out, cheapest...)
	out = append(out, bestValue...)
	out = append(out, fastest...)
	out = append(out, rest...)
	return out
}

// SortAllRates re-sorts every persisted package rate list. Used after the
// priority rules change, so stored sequences match what SortRates would
// produce today.
func SortAllRates(db *gorm.DB) error {
	var packages []models.Package
	if err := db.Where("rates IS NOT NULL").Find(&packages).Error; err != nil {
		return err
	}
	for i := range packages {
		packages[i].Rates = SortRates(packages[i].Rates)
		if err := db.Save(&packages[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
