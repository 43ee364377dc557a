package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadTestCatalog(t *testing.T) *catalog {
	t.Helper()
	c, err := loadCatalog(filepath.Join("testdata", "catalog.json"))
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	return c
}

func get(t *testing.T, h http.Handler, path string) map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s status=%d, want 200", path, w.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return body
}

func TestLoadCatalog(t *testing.T) {
	c := loadTestCatalog(t)
	if len(c.Items) == 0 {
		t.Fatal("expected items in fixture")
	}
	if _, ok := c.Pincodes["400001"]; !ok {
		t.Error("expected pincode 400001 in fixture")
	}
}

func TestLoadCatalog_Missing(t *testing.T) {
	if _, err := loadCatalog("testdata/missing.json"); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestPinHandler(t *testing.T) {
	mux := newMux(testLogger(), loadTestCatalog(t), 0)

	body := get(t, mux, "/mst/rest/v1/5/pin/400001")
	result, ok := body["result"].(map[string]any)
	if !ok {
		t.Fatalf("result=%v, want object", body["result"])
	}
	if result["city"] != "Mumbai" || result["state_code"] != "MH" {
		t.Errorf("result=%v, want Mumbai/MH", result)
	}

	body = get(t, mux, "/mst/rest/v1/5/pin/999999")
	if body["result"] != nil {
		t.Errorf("unknown pincode result=%v, want null", body["result"])
	}
}

func TestProductHandler(t *testing.T) {
	mux := newMux(testLogger(), loadTestCatalog(t), 0)

	body := get(t, mux, "/catalog/productdetails/get/590001234")
	if body["status"] != "success" {
		t.Fatalf("status=%v, want success", body["status"])
	}
	data := body["data"].(map[string]any)
	if data["selling_price"] != float64(649) {
		t.Errorf("selling_price=%v, want 649", data["selling_price"])
	}
	gtm := data["gtm_details"].(map[string]any)
	if gtm["name"] != "Basmati Rice 5kg" {
		t.Errorf("name=%v", gtm["name"])
	}

	body = get(t, mux, "/catalog/productdetails/get/0")
	if body["status"] != "failure" || body["data"] != nil {
		t.Errorf("unknown item body=%v, want failure with null data", body)
	}
}

func TestProductHandler_Drift(t *testing.T) {
	mux := newMux(testLogger(), loadTestCatalog(t), 10)

	prices := make([]float64, 3)
	for i := range prices {
		body := get(t, mux, "/catalog/productdetails/get/490001392")
		prices[i] = body["data"].(map[string]any)["selling_price"].(float64)
	}

	want := []float64{178, 160.2, 144.18}
	for i := range want {
		if prices[i] != want[i] {
			t.Errorf("request %d selling_price=%v, want %v", i+1, prices[i], want[i])
		}
	}
}

func TestApplyDrift(t *testing.T) {
	p := product{MRP: 200, SellingPrice: 100}
	got := applyDrift(p, 50, 1)
	if got.SellingPrice != 50 {
		t.Errorf("selling_price=%v, want 50", got.SellingPrice)
	}
	if got.Discount != 150 || got.DiscountPct != 75 {
		t.Errorf("discount=%v pct=%v, want 150/75", got.Discount, got.DiscountPct)
	}
	if p.SellingPrice != 100 {
		t.Error("applyDrift must not modify its input")
	}
}
