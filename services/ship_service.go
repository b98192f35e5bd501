package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fulfillment-app/config"
	"fulfillment-app/models"
	"fulfillment-app/types"
)

// ErrCarrierUnavailable is returned when the carrier API cannot be reached
// or answers with something other than a well-formed 200.
var ErrCarrierUnavailable = errors.New("carrier gateway unavailable")

type CarrierMessage struct {
	Text string `json:"text"`
}

// ShipmentQuote is the carrier's answer to a rate request: priced options
// plus any advisory messages (missing dimensions, unserviceable address).
type ShipmentQuote struct {
	Rates    types.RateList   `json:"rates"`
	Messages []CarrierMessage `json:"messages"`
}

func (q *ShipmentQuote) MessageTexts() []string {
	var texts []string
	for _, m := range q.Messages {
		if m.Text != "" {
			texts = append(texts, m.Text)
		}
	}
	return texts
}

// CarrierTransaction is the result of purchasing a label for a chosen rate.
type CarrierTransaction struct {
	Status         string           `json:"status"`
	TrackingNumber string           `json:"tracking_number"`
	LabelURL       string           `json:"label_url"`
	Messages       []CarrierMessage `json:"messages"`
}

func (t *CarrierTransaction) MessageTexts() []string {
	var texts []string
	for _, m := range t.Messages {
		if m.Text != "" {
			texts = append(texts, m.Text)
		}
	}
	return texts
}

// CarrierGateway is the contract the rate orchestration consumes.
type CarrierGateway interface {
	CreateShipment(shippable models.Shippable, pkg *models.Package) (*ShipmentQuote, error)
	CreateTransaction(userID uint, rateObjectID string) (*CarrierTransaction, error)
}

// ShipService is the HTTP client for the carrier rate/transaction API.
type ShipService struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewShipService() *ShipService {
	return &ShipService{
		baseURL: config.CarrierURL,
		token:   config.CarrierToken,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *ShipService) post(path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return ErrCarrierUnavailable
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return ErrCarrierUnavailable
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return ErrCarrierUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrCarrierUnavailable
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return ErrCarrierUnavailable
	}
	return nil
}

// CreateShipment requests rate quotes for one package of a shippable.
// The package's Box must be loaded.
func (s *ShipService) CreateShipment(shippable models.Shippable, pkg *models.Package) (*ShipmentQuote, error) {
	ownerType, ownerID := shippable.PackageOwner()
	payload := map[string]interface{}{
		"user_id":    shippable.GetUserID(),
		"owner_type": ownerType,
		"owner_id":   ownerID,
		"package_id": pkg.ID,
		"weight":     pkg.Weight,
		"length":     pkg.Box.Length,
		"width":      pkg.Box.Width,
		"height":     pkg.Box.Height,
	}

	var quote ShipmentQuote
	if err := s.post("/shipments", payload, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// CreateTransaction purchases the label for a previously quoted rate.
func (s *ShipService) CreateTransaction(userID uint, rateObjectID string) (*CarrierTransaction, error) {
	payload := map[string]interface{}{
		"user_id":        userID,
		"rate_object_id": rateObjectID,
	}

	var txn CarrierTransaction
	if err := s.post("/transactions", payload, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}
