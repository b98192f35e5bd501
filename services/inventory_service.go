package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"fulfillment-app/config"
)

// ErrGatewayUnavailable covers every way the vendor inventory API can fail
// to produce a usable response: login failure, transport error, non-200
// status or a malformed body. Callers fall back to cached data.
var ErrGatewayUnavailable = errors.New("inventory gateway unavailable")

// InventoryQuote is one row of the vendor inventory API response.
type InventoryQuote struct {
	PartNumber  string           `json:"part_number"`
	LineCode    string           `json:"line_code"`
	Cost        float64          `json:"cost"`
	Inventories []WarehouseStock `json:"inventories"`
}

type WarehouseStock struct {
	Quantity *int `json:"quantity"`
}

// TotalQuantity sums per-warehouse quantities. Missing values count as zero.
func (q InventoryQuote) TotalQuantity() int {
	total := 0
	for _, w := range q.Inventories {
		if w.Quantity != nil {
			total += *w.Quantity
		}
	}
	return total
}

// InventoryGateway is the contract the sourcing layer consumes.
type InventoryGateway interface {
	GetSingleInventory(vendorType, partNumber string, qty int) ([]InventoryQuote, error)
	GetAllInventory(vendorType string) ([]InventoryQuote, error)
}

// InventoryExporter is the optional snapshot-file side of the gateway.
type InventoryExporter interface {
	ExportInventory(vendorType string) (string, error)
}

// InventoryService talks to the external vendor inventory API. A bearer
// token is obtained once at construction; if the login fails the service
// stays up but every query reports ErrGatewayUnavailable.
type InventoryService struct {
	baseURL   string
	authToken string
	loginErr  error
	client    *http.Client
}

func NewInventoryService() *InventoryService {
	s := &InventoryService{
		baseURL: config.InventoryURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	s.loginErr = s.initToken()
	return s
}

func (s *InventoryService) initToken() error {
	params := url.Values{}
	params.Set("email", config.InventoryEmail)
	params.Set("password", config.InventoryPassword)

	resp, err := s.client.Get(s.baseURL + "/get_log_in_token?" + params.Encode())
	if err != nil {
		return fmt.Errorf("inventory login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inventory login: status %d", resp.StatusCode)
	}

	var body struct {
		AuthToken string `json:"auth_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("inventory login: %w", err)
	}
	if body.AuthToken == "" {
		return errors.New("inventory login: empty auth token")
	}

	s.authToken = body.AuthToken
	return nil
}

func (s *InventoryService) get(path string, params url.Values, out interface{}) error {
	if s.loginErr != nil {
		return ErrGatewayUnavailable
	}

	req, err := http.NewRequest(http.MethodGet, s.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return ErrGatewayUnavailable
	}
	req.Header.Set("Authorization", s.authToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return ErrGatewayUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrGatewayUnavailable
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return ErrGatewayUnavailable
	}
	return nil
}

// GetSingleInventory asks the vendor for offers on one part at one quantity.
func (s *InventoryService) GetSingleInventory(vendorType, partNumber string, qty int) ([]InventoryQuote, error) {
	params := url.Values{}
	params.Set("vendor_type", vendorType)
	params.Set("part_number", partNumber)
	params.Set("quantity", strconv.Itoa(qty))

	var body struct {
		Response struct {
			Data []InventoryQuote `json:"data"`
		} `json:"response"`
	}
	if err := s.get("/single_inventory", params, &body); err != nil {
		return nil, err
	}
	return body.Response.Data, nil
}

// GetAllInventory pulls the vendor's full catalog snapshot.
func (s *InventoryService) GetAllInventory(vendorType string) ([]InventoryQuote, error) {
	params := url.Values{}
	params.Set("vendor_type", vendorType)

	var body struct {
		Response []struct {
			Data []InventoryQuote `json:"data"`
		} `json:"response"`
	}
	if err := s.get("/all_inventory", params, &body); err != nil {
		return nil, err
	}
	if len(body.Response) == 0 {
		return nil, ErrGatewayUnavailable
	}
	return body.Response[0].Data, nil
}

// ExportInventory requests a downloadable snapshot file. The API answers
// with either a file URL or a message explaining why there is none.
func (s *InventoryService) ExportInventory(vendorType string) (string, error) {
	params := url.Values{}
	params.Set("vendor_type", vendorType)

	var body struct {
		FileURL string `json:"file_url"`
		Message string `json:"message"`
	}
	if err := s.get("/export_inventory", params, &body); err != nil {
		return "", err
	}
	if body.Message != "" {
		return "", errors.New(body.Message)
	}
	if body.FileURL == "" {
		return "", ErrGatewayUnavailable
	}
	return body.FileURL, nil
}
