package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/pricewatch/internal/store"
	domain "github.com/donaldgifford/pricewatch/pkg/types"
)

// HistoryLister reads recorded price history.
type HistoryLister interface {
	ListHistory(ctx context.Context, q *store.HistoryQuery) ([]domain.PriceHistoryRecord, int, error)
}

// HistoryHandler serves price history for an item.
type HistoryHandler struct {
	store HistoryLister
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(s HistoryLister) *HistoryHandler {
	return &HistoryHandler{store: s}
}

// ListHistoryInput holds path and query parameters for price history.
type ListHistoryInput struct {
	ItemID string `path:"item_id" doc:"Catalog item id"`
	Region string `query:"region" doc:"Delivery pincode; all regions when empty"`
	Since  string `query:"since" doc:"RFC 3339 lower bound (inclusive)"`
	Until  string `query:"until" doc:"RFC 3339 upper bound (exclusive)"`
	Limit  int    `query:"limit" default:"50" minimum:"1" maximum:"500"`
	Offset int    `query:"offset" default:"0" minimum:"0"`
	Oldest bool   `query:"oldest" doc:"Oldest records first"`
}

// ListHistoryOutput is the response body for price history.
type ListHistoryOutput struct {
	Body struct {
		Records []domain.PriceHistoryRecord `json:"records"`
		Total   int                         `json:"total"`
		Limit   int                         `json:"limit"`
		Offset  int                         `json:"offset"`
	}
}

// List returns the item's price history, newest first by default.
func (h *HistoryHandler) List(ctx context.Context, input *ListHistoryInput) (*ListHistoryOutput, error) {
	q := &store.HistoryQuery{
		ItemID: input.ItemID,
		Limit:  input.Limit,
		Offset: input.Offset,
		Oldest: input.Oldest,
	}
	if input.Region != "" {
		q.Region = &input.Region
	}

	var err error
	if q.Since, err = parseTime("since", input.Since); err != nil {
		return nil, err
	}
	if q.Until, err = parseTime("until", input.Until); err != nil {
		return nil, err
	}

	records, total, err := h.store.ListHistory(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing history failed: " + err.Error())
	}
	if records == nil {
		records = []domain.PriceHistoryRecord{}
	}

	resp := &ListHistoryOutput{}
	resp.Body.Records = records
	resp.Body.Total = total
	resp.Body.Limit = input.Limit
	resp.Body.Offset = input.Offset
	return resp, nil
}

func parseTime(name, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, huma.Error400BadRequest(name + " must be an RFC 3339 timestamp")
	}
	return &t, nil
}

// RegisterHistoryRoutes registers price history endpoints with the Huma API.
func RegisterHistoryRoutes(api huma.API, h *HistoryHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-item-history",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{item_id}/history",
		Summary:     "List price history for an item",
		Tags:        []string{"history"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.List)
}
