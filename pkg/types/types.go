// Package domain defines the core business types for the price watcher.
package domain

import (
	"time"
)

// ItemKey identifies a catalog item within one delivery region. Prices and
// availability differ per region, so every lookup is keyed on both.
type ItemKey struct {
	ItemID string `json:"item_id"`
	Region string `json:"region"`
}

// String renders the key as "item@region" for logs.
func (k ItemKey) String() string {
	return k.ItemID + "@" + k.Region
}

// Item is the current-state record for a catalog item in a region.
type Item struct {
	ItemID string `json:"item_id" db:"item_id"`
	Region string `json:"region"  db:"region"`

	Name     string `json:"name"                db:"name"`
	Brand    string `json:"brand,omitempty"     db:"brand"`
	Category string `json:"category,omitempty"  db:"category"`
	ImageURL string `json:"image_url,omitempty" db:"image_url"`
	// SourceURL is the public product page, sent as the referer on fetches.
	SourceURL string `json:"source_url" db:"source_url"`

	// Pricing
	MRPPrice         float64 `json:"mrp_price"          db:"mrp_price"`
	SellingPrice     float64 `json:"selling_price"      db:"selling_price"`
	DiscountPercent  float64 `json:"discount_percent"   db:"discount_percent"`
	DiscountPrice    float64 `json:"discount_price"     db:"discount_price"`
	MaxOrderQuantity int     `json:"max_order_quantity" db:"max_order_quantity"`

	IsAvailable bool      `json:"is_available" db:"is_available"`
	UpdatedAt   time.Time `json:"updated_at"   db:"updated_at"`
}

// Key returns the item's composite identity.
func (i *Item) Key() ItemKey {
	return ItemKey{ItemID: i.ItemID, Region: i.Region}
}

// Snapshot is a point-in-time read of an item from the price source.
type Snapshot struct {
	Item
	FetchedAt time.Time `json:"fetched_at"`
}

// PriceHistoryRecord is one immutable observation of an item's price.
type PriceHistoryRecord struct {
	ID              string    `json:"id"               db:"id"`
	ItemID          string    `json:"item_id"          db:"item_id"`
	Region          string    `json:"region"           db:"region"`
	Name            string    `json:"name"             db:"name"`
	MRPPrice        float64   `json:"mrp_price"        db:"mrp_price"`
	SellingPrice    float64   `json:"selling_price"    db:"selling_price"`
	DiscountPercent float64   `json:"discount_percent" db:"discount_percent"`
	DiscountPrice   float64   `json:"discount_price"   db:"discount_price"`
	IsAvailable     bool      `json:"is_available"     db:"is_available"`
	RecordedAt      time.Time `json:"recorded_at"      db:"recorded_at"`
}

// Key returns the composite identity of the item the record belongs to.
func (r *PriceHistoryRecord) Key() ItemKey {
	return ItemKey{ItemID: r.ItemID, Region: r.Region}
}

// HistoryFromSnapshot builds an unsaved history record for s. The store
// assigns RecordedAt at write time.
func HistoryFromSnapshot(id string, s *Snapshot) *PriceHistoryRecord {
	return &PriceHistoryRecord{
		ID:              id,
		ItemID:          s.ItemID,
		Region:          s.Region,
		Name:            s.Name,
		MRPPrice:        s.MRPPrice,
		SellingPrice:    s.SellingPrice,
		DiscountPercent: s.DiscountPercent,
		DiscountPrice:   s.DiscountPrice,
		IsAvailable:     s.IsAvailable,
	}
}

// User is a registered account that tracks items.
type User struct {
	ID       string `json:"id"       db:"id"`
	Username string `json:"username" db:"username"`
	Email    string `json:"email"    db:"email"`
	// Region is the user's delivery pincode.
	Region string `json:"region" db:"region"`
}

// Selection is a user's subscription to one item with alert thresholds.
type Selection struct {
	ID     int64  `json:"id"      db:"id"`
	UserID string `json:"user_id" db:"user_id"`
	ItemID string `json:"item_id" db:"item_id"`
	Region string `json:"region"  db:"region"`
	// SourceURL is joined from the items table and never written back.
	SourceURL string `json:"source_url,omitempty" db:"source_url"`

	MinPrice float64 `json:"min_price" db:"min_price"`
	MaxPrice float64 `json:"max_price" db:"max_price"`
	MinOffer float64 `json:"min_offer" db:"min_offer"`
	MaxOffer float64 `json:"max_offer" db:"max_offer"`

	// NotificationsRemaining is never negative. Zero keeps the selection
	// tracked but silent.
	NotificationsRemaining int `json:"notifications_remaining" db:"notifications_remaining"`
}

// Key returns the composite identity of the selected item.
func (s *Selection) Key() ItemKey {
	return ItemKey{ItemID: s.ItemID, Region: s.Region}
}

// UserSelections groups a user with every selection they own.
type UserSelections struct {
	User       User        `json:"user"`
	Selections []Selection `json:"selections"`
}

// RegionContext carries the request context a region needs on the price
// source: resolved city and state plus the cookies that select the region.
type RegionContext struct {
	Region    string            `json:"region"`
	City      string            `json:"city"`
	StateCode string            `json:"state_code"`
	Cookies   map[string]string `json:"cookies"`
}

// CycleReport summarizes one polling cycle.
type CycleReport struct {
	CycleID    string    `json:"cycle_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	UsersTotal     int `json:"users_total"`
	UsersProcessed int `json:"users_processed"`
	UsersFailed    int `json:"users_failed"`

	ItemsUpdated     int `json:"items_updated"`
	ItemsUnavailable int `json:"items_unavailable"`
	HistoryAppended  int `json:"history_appended"`

	NotificationsSent   int `json:"notifications_sent"`
	NotificationsFailed int `json:"notifications_failed"`

	// Errors counts every logged failure. FailuresByKind breaks it down.
	Errors         int            `json:"errors"`
	FailuresByKind map[string]int `json:"failures_by_kind,omitempty"`
}

// Duration returns how long the cycle ran.
func (r *CycleReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Cycle run statuses.
const (
	CycleRunning   = "running"
	CycleSucceeded = "succeeded"
	CycleFailed    = "failed"
	CycleCrashed   = "crashed"
)

// CycleRun records a single execution of the polling cycle.
type CycleRun struct {
	ID                string     `json:"id"                           db:"id"`
	Trigger           string     `json:"trigger"                      db:"triggered_by"`
	StartedAt         time.Time  `json:"started_at"                   db:"started_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"       db:"completed_at"`
	Status            string     `json:"status"                       db:"status"`
	ErrorText         string     `json:"error_text,omitempty"         db:"error_text"`
	UsersProcessed    *int       `json:"users_processed,omitempty"    db:"users_processed"`
	UsersFailed       *int       `json:"users_failed,omitempty"       db:"users_failed"`
	NotificationsSent *int       `json:"notifications_sent,omitempty" db:"notifications_sent"`
}
