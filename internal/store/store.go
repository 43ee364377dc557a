// Package store defines the datastore abstraction for pricewatch.
// The cycle engine depends on the Store and Tx interfaces, never on a
// concrete implementation.
package store

import (
	"context"
	"time"

	domain "github.com/donaldgifford/pricewatch/pkg/types"
)

// HistoryQuery defines optional filters for price history listings.
type HistoryQuery struct {
	ItemID string
	Region *string
	Since  *time.Time
	Until  *time.Time
	Limit  int // default 50
	Offset int
	Oldest bool // oldest first instead of newest first
}

// Store defines all data access operations the worker needs.
type Store interface {
	// Selections
	LoadUsersWithSelections(ctx context.Context) ([]domain.UserSelections, error)

	// History
	LatestPrice(ctx context.Context, key domain.ItemKey) (*domain.PriceHistoryRecord, error)
	ListHistory(ctx context.Context, q *HistoryQuery) ([]domain.PriceHistoryRecord, int, error)

	// InTx runs fn inside one transaction. The transaction commits when fn
	// returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(Tx) error) error

	// Cycle runs
	InsertCycleRun(ctx context.Context, trigger string) (id string, err error)
	CompleteCycleRun(ctx context.Context, id string, status string, errText string, report *domain.CycleReport) error
	ListCycleRuns(ctx context.Context, limit int) ([]domain.CycleRun, error)
	RecoverStaleCycleRuns(ctx context.Context, olderThan time.Duration) (int, error)

	// System
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
}

// Tx is the write surface of one per-user commit.
type Tx interface {
	// UpsertItem writes the current state of an item. Last write wins.
	UpsertItem(ctx context.Context, item *domain.Item) error
	// MarkItemUnavailable flags an existing item as not purchasable.
	MarkItemUnavailable(ctx context.Context, key domain.ItemKey) error
	// AppendPrice inserts an immutable history record and sets its
	// RecordedAt, which never precedes the key's previous record.
	AppendPrice(ctx context.Context, rec *domain.PriceHistoryRecord) error
	// SaveSelection persists the selection's notification budget.
	SaveSelection(ctx context.Context, sel *domain.Selection) error
}
