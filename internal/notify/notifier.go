// Package notify defines the notification interface and implementations
// for price alert delivery.
package notify

import (
	"context"
	"errors"
	"fmt"
)

// AlertPayload contains the data needed to tell a user about a price drop
// or an improved offer on an item they track.
type AlertPayload struct {
	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email"`
	ItemID    string `json:"item_id"`
	Region    string `json:"region"`
	ItemName  string `json:"item_name"`
	ImageURL  string `json:"image_url,omitempty"`
	SourceURL string `json:"source_url"`

	// PreviousPrice is the last recorded selling price, TargetPrice the
	// user's max_price threshold.
	PreviousPrice   float64 `json:"previous_price"`
	TargetPrice     float64 `json:"target_price"`
	CurrentPrice    float64 `json:"current_price"`
	DiscountPercent float64 `json:"discount_percent"`
	ChangePercent   int     `json:"change_percent"`
	EmailsRemaining int     `json:"emails_remaining"`

	PriceDropped  bool `json:"price_dropped"`
	OfferImproved bool `json:"offer_improved"`
}

// Notifier delivers a single alert. Implementations must be safe for
// concurrent use; the cycle engine sends from many goroutines.
type Notifier interface {
	Send(ctx context.Context, alert *AlertPayload) error
}

// Multi fans an alert out to several notifiers and reports every failure.
type Multi []Notifier

// Send delivers alert to each notifier in order. A failing notifier does not
// stop the others.
func (m Multi) Send(ctx context.Context, alert *AlertPayload) error {
	var errs []error
	for _, n := range m {
		if err := n.Send(ctx, alert); err != nil {
			errs = append(errs, fmt.Errorf("%T: %w", n, err))
		}
	}
	return errors.Join(errs...)
}

func formatRupees(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("₹%d", int64(v))
	}
	return fmt.Sprintf("₹%.2f", v)
}
