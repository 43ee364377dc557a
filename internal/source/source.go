// Package source fetches live item snapshots and region context from the
// catalog price source.
package source

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/donaldgifford/pricewatch/pkg/types"
)

// Failure kinds surfaced by PriceSource and RegionResolver implementations.
var (
	// ErrUnavailable means the item does not exist or is not sold in the region.
	ErrUnavailable = errors.New("item unavailable")
	// ErrTransient covers network failures, timeouts, throttling and 5xx.
	ErrTransient = errors.New("transient source failure")
	// ErrMalformed means the response could not be decoded.
	ErrMalformed = errors.New("malformed source response")
)

// FetchRequest identifies one item lookup.
type FetchRequest struct {
	Key       domain.ItemKey
	SourceURL string
}

// PriceSource returns a fresh snapshot for an item in a region.
type PriceSource interface {
	Fetch(ctx context.Context, req FetchRequest, rc domain.RegionContext) (*domain.Snapshot, error)
}

// RegionResolver maps a region code to the request context the source needs.
type RegionResolver interface {
	Resolve(ctx context.Context, region string) (domain.RegionContext, error)
}

// FetchError carries the item and failure kind of a source call.
type FetchError struct {
	Op     string // "fetch" or "resolve"
	ItemID string
	Region string
	Kind   error
	Err    error
}

func (e *FetchError) Error() string {
	if e.ItemID != "" {
		return fmt.Sprintf("%s %s@%s: %v: %v", e.Op, e.ItemID, e.Region, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Region, e.Kind, e.Err)
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is.
func (e *FetchError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// KindLabel maps an error to the short label used in logs and metrics.
func KindLabel(err error) string {
	switch {
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrTransient):
		return "transient"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	default:
		return "unknown"
	}
}
