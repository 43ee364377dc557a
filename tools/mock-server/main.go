// Package main implements a mock JioMart catalog server for local
// development. It serves the pincode and product detail endpoints from a
// JSON fixture so pricewatch can run cycles without reaching the live site.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"sync"
	"time"
)

type pinInfo struct {
	City      string `json:"city"`
	StateCode string `json:"state_code"`
}

type product struct {
	ImageURL           string  `json:"image_url"`
	MRP                float64 `json:"mrp"`
	SellingPrice       float64 `json:"selling_price"`
	DiscountPct        float64 `json:"discount_pct"`
	Discount           float64 `json:"discount"`
	MaxQtyInOrder      int     `json:"max_qty_in_order"`
	AvailabilityStatus string  `json:"availability_status"`
	GTMDetails         struct {
		Name     string `json:"name"`
		Brand    string `json:"brand"`
		Category string `json:"category"`
	} `json:"gtm_details"`
}

type catalog struct {
	Pincodes map[string]pinInfo `json:"pincodes"`
	Items    map[string]product `json:"items"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/catalog.json", "path to catalog fixture")
	drift := flag.Float64("drift", 0, "percent each product's price drops per request, 0 keeps prices fixed")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cat, err := loadCatalog(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "items", len(cat.Items), "pincodes", len(cat.Pincodes))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock JioMart server", "addr", addr, "drift_pct", *drift)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger, cat, *drift)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadCatalog(path string) (*catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var c catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &c, nil
}

func newMux(logger *slog.Logger, cat *catalog, drift float64) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /mst/rest/v1/5/pin/{pincode}", pinHandler(logger, cat))
	mux.HandleFunc("GET /catalog/productdetails/get/{item_id}", productHandler(logger, cat, drift))
	return mux
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "pin", r.Header.Get("Pin"))
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func pinHandler(logger *slog.Logger, cat *catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pincode := r.PathValue("pincode")
		info, ok := cat.Pincodes[pincode]
		if !ok {
			logger.Warn("unknown pincode", "pincode", pincode)
			writeJSON(w, map[string]any{"result": nil})
			return
		}
		writeJSON(w, map[string]any{"result": info})
	}
}

func productHandler(logger *slog.Logger, cat *catalog, drift float64) http.HandlerFunc {
	var mu sync.Mutex
	hits := map[string]int{}

	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("item_id")
		p, ok := cat.Items[id]
		if !ok {
			logger.Info("unknown item", "item_id", id)
			writeJSON(w, map[string]any{"status": "failure", "data": nil})
			return
		}

		mu.Lock()
		n := hits[id]
		hits[id]++
		mu.Unlock()

		if drift > 0 {
			p = applyDrift(p, drift, n)
		}

		writeJSON(w, map[string]any{"status": "success", "data": p})
		logger.Info("product", "item_id", id, "selling_price", p.SellingPrice, "request", n+1)
	}
}

// applyDrift lowers the selling price by pct percent per earlier request and
// recomputes the discount fields against MRP.
func applyDrift(p product, pct float64, requests int) product {
	factor := math.Pow(1-pct/100, float64(requests))
	p.SellingPrice = math.Round(p.SellingPrice*factor*100) / 100
	p.Discount = math.Round((p.MRP-p.SellingPrice)*100) / 100
	if p.MRP > 0 {
		p.DiscountPct = math.Round(p.Discount / p.MRP * 100)
	}
	return p
}
