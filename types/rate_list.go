package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Rate is one carrier quote for a package. Attributes carry the carrier's
// priority tags (CHEAPEST, BESTVALUE, FASTEST).
type Rate struct {
	ObjectID      string   `json:"object_id"`
	Amount        float64  `json:"amount"`
	Currency      string   `json:"currency"`
	Provider      string   `json:"provider"`
	ServiceLevel  string   `json:"service_level"`
	EstimatedDays int      `json:"estimated_days"`
	Attributes    []string `json:"attributes"`
}

func (r Rate) HasAttribute(tag string) bool {
	for _, a := range r.Attributes {
		if a == tag {
			return true
		}
	}
	return false
}

// RateList is stored on packages as a JSON column. Element order is the
// persisted priority order and must survive the round trip unchanged.
// An empty list stores NULL, so the package still counts as unrated.
type RateList []Rate

func (l RateList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *RateList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot convert %v to RateList", value)
	}
}

// FindByObjectID returns the rate chosen by the carrier transaction.
func (l RateList) FindByObjectID(objectID string) (Rate, bool) {
	for _, r := range l {
		if r.ObjectID == objectID {
			return r, true
		}
	}
	return Rate{}, false
}
