package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestProductsPageRendersTable(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/products", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	if !strings.Contains(s, "Inventory Management") || !strings.Contains(s, "Still Water 500ml") {
		t.Fatalf("page missing listing content")
	}
	// Zero-stock row shows the derived label, not the persisted one.
	if !strings.Contains(s, "Out of Stock") {
		t.Fatalf("derived availability missing from page")
	}
}

func TestProductsListJSON(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/products", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var products []struct {
		ItemID             int    `json:"ItemID"`
		ProductName        string `json:"productName"`
		SKU                string `json:"SKU"`
		AvailabilityStatus string `json:"availabilityStatus"`
		StockLevel         int    `json:"stockLevel"`
	}
	decodeJSON(t, resp, &products)
	if len(products) != 6 {
		t.Fatalf("want 6 seeded products, got %d", len(products))
	}
	for _, p := range products {
		if p.StockLevel == 0 && p.AvailabilityStatus != "Out of Stock" {
			t.Fatalf("zero stock must read Out of Stock: %+v", p)
		}
	}
}

func TestProductDetail(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/products/1", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var p struct {
		ItemID int    `json:"ItemID"`
		SKU    string `json:"SKU"`
	}
	decodeJSON(t, resp, &p)
	if p.ItemID != 1 || p.SKU == "" {
		t.Fatalf("bad product body: %+v", p)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/products/9999", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown id: want 404, got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/products/abc", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad id: want 400, got %d", resp.StatusCode)
	}
}

func TestBulkDeleteEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, err := postForm(app, "/products", "deleteItems[]=1&deleteItems[]=999")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var rep struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Deleted []int  `json:"deleted"`
		Missing []int  `json:"missing"`
	}
	decodeJSON(t, resp, &rep)
	if !rep.Success || rep.Message != "Selected products have been deleted." {
		t.Fatalf("bad report: %+v", rep)
	}
	if len(rep.Deleted) != 1 || rep.Deleted[0] != 1 || len(rep.Missing) != 1 || rep.Missing[0] != 999 {
		t.Fatalf("bad id split: %+v", rep)
	}

	// The deleted row is gone from the listing.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/products/1", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("deleted product still present: %d", resp.StatusCode)
	}
}

func TestBulkDeleteNoSelection(t *testing.T) {
	app := newTestApp(t)

	resp, err := postForm(app, "/products", "")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
}

func TestCreateProduct(t *testing.T) {
	app := newTestApp(t)

	form := "productName=Mint+Water+330ml&SKU=WTR-MNT&Price=12.50&Category=Water" +
		"&stockLevel=20&restockLevel=5&availabilityStatus=Available&volume=330ml"
	resp, err := postForm(app, "/api/v1/products", form)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}
	var p struct {
		ItemID             int    `json:"ItemID"`
		SKU                string `json:"SKU"`
		AvailabilityStatus string `json:"availabilityStatus"`
	}
	decodeJSON(t, resp, &p)
	if p.ItemID == 0 || p.SKU != "WTR-MNT" || p.AvailabilityStatus != "Available" {
		t.Fatalf("bad created product: %+v", p)
	}

	// Unrecognized enum values are rejected, not persisted.
	resp, err = postForm(app, "/api/v1/products",
		"productName=X&SKU=X-1&Price=1&Category=Snacks&stockLevel=1&restockLevel=1&availabilityStatus=Available")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad category: want 400, got %d", resp.StatusCode)
	}
}

func TestAvailabilityEndpoint(t *testing.T) {
	app := newTestApp(t)

	// Seed item 2 is the zero-stock sparkling water.
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/availability?itemId=2", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var a struct {
		Status     string `json:"status"`
		StockLevel int    `json:"stock_level"`
		LowStock   bool   `json:"low_stock"`
	}
	decodeJSON(t, resp, &a)
	if a.Status != "Out of Stock" || a.StockLevel != 0 || !a.LowStock {
		t.Fatalf("bad availability: %+v", a)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/availability", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing itemId: want 400, got %d", resp.StatusCode)
	}
}
