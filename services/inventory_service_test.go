package services

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fulfillment-app/config"
)

func inventoryClient(srv *httptest.Server) *InventoryService {
	return &InventoryService{
		baseURL:   srv.URL,
		authToken: "tok-123",
		client:    &http.Client{Timeout: 5 * time.Second},
	}
}

func TestInventoryServiceFailedLoginPoisonsAllQueries(t *testing.T) {
	queried := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/get_log_in_token" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		queried++
		w.Write([]byte(`{"response":{"data":[{"part_number":"P1"}]}}`))
	}))
	defer srv.Close()

	oldURL := config.InventoryURL
	config.InventoryURL = srv.URL
	defer func() { config.InventoryURL = oldURL }()

	svc := NewInventoryService()

	single, err := svc.GetSingleInventory("acme_parts", "P1", 1)
	if !errors.Is(err, ErrGatewayUnavailable) {
		t.Errorf("GetSingleInventory err = %v, want ErrGatewayUnavailable", err)
	}
	if single != nil {
		t.Errorf("GetSingleInventory = %v, want nil", single)
	}

	all, err := svc.GetAllInventory("acme_parts")
	if !errors.Is(err, ErrGatewayUnavailable) {
		t.Errorf("GetAllInventory err = %v, want ErrGatewayUnavailable", err)
	}
	if all != nil {
		t.Errorf("GetAllInventory = %v, want nil", all)
	}

	fileURL, err := svc.ExportInventory("acme_parts")
	if !errors.Is(err, ErrGatewayUnavailable) {
		t.Errorf("ExportInventory err = %v, want ErrGatewayUnavailable", err)
	}
	if fileURL != "" {
		t.Errorf("ExportInventory = %q, want empty", fileURL)
	}

	if queried != 0 {
		t.Errorf("inventory endpoints hit %d times after failed login, want 0", queried)
	}
}

func TestInventoryServiceServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"response":{"data":[{"part_number":"P1"}]}}`))
	}))
	defer srv.Close()

	svc := inventoryClient(srv)

	quotes, err := svc.GetSingleInventory("acme_parts", "P1", 1)
	if !errors.Is(err, ErrGatewayUnavailable) {
		t.Errorf("err = %v, want ErrGatewayUnavailable", err)
	}
	if quotes != nil {
		t.Errorf("quotes = %v, want nil", quotes)
	}
}

func TestInventoryServiceMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	svc := inventoryClient(srv)

	quotes, err := svc.GetSingleInventory("acme_parts", "P1", 1)
	if !errors.Is(err, ErrGatewayUnavailable) {
		t.Errorf("err = %v, want ErrGatewayUnavailable", err)
	}
	if quotes != nil {
		t.Errorf("quotes = %v, want nil", quotes)
	}
}

func TestInventoryServiceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	svc := inventoryClient(srv)

	if _, err := svc.GetAllInventory("acme_parts"); !errors.Is(err, ErrGatewayUnavailable) {
		t.Errorf("err = %v, want ErrGatewayUnavailable", err)
	}
}

func TestInventoryServiceGetAllInventoryEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":[]}`))
	}))
	defer srv.Close()

	svc := inventoryClient(srv)

	quotes, err := svc.GetAllInventory("acme_parts")
	if !errors.Is(err, ErrGatewayUnavailable) {
		t.Errorf("err = %v, want ErrGatewayUnavailable", err)
	}
	if quotes != nil {
		t.Errorf("quotes = %v, want nil", quotes)
	}
}

func TestInventoryServiceGetSingleInventory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "tok-123" {
			t.Errorf("Authorization = %q, want tok-123", got)
		}
		if got := r.URL.Query().Get("part_number"); got != "P1" {
			t.Errorf("part_number = %q, want P1", got)
		}
		w.Write([]byte(`{"response":{"data":[
			{"part_number":"P1","line_code":"A","cost":6.5,"inventories":[{"quantity":4},{"quantity":null}]}
		]}}`))
	}))
	defer srv.Close()

	svc := inventoryClient(srv)

	quotes, err := svc.GetSingleInventory("acme_parts", "P1", 2)
	if err != nil {
		t.Fatalf("GetSingleInventory: %v", err)
	}
	if len(quotes) != 1 {
		t.Fatalf("len(quotes) = %d, want 1", len(quotes))
	}
	q := quotes[0]
	if q.PartNumber != "P1" || q.LineCode != "A" || q.Cost != 6.5 {
		t.Errorf("quote = %+v", q)
	}
	if q.TotalQuantity() != 4 {
		t.Errorf("total quantity = %d, want 4", q.TotalQuantity())
	}
}

func TestInventoryServiceGetAllInventory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":[{"data":[
			{"part_number":"P1","line_code":"A","cost":3},
			{"part_number":"P2","line_code":"B","cost":4}
		]}]}`))
	}))
	defer srv.Close()

	svc := inventoryClient(srv)

	quotes, err := svc.GetAllInventory("acme_parts")
	if err != nil {
		t.Fatalf("GetAllInventory: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("len(quotes) = %d, want 2", len(quotes))
	}
	if quotes[1].PartNumber != "P2" {
		t.Errorf("second quote = %+v", quotes[1])
	}
}
