// Package handlers implements the pricewatch operations API: health probes,
// cycle triggers, cycle history and price history lookups.
package handlers

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
