package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domain "github.com/donaldgifford/pricewatch/pkg/types"
)

func TestItemKey_String(t *testing.T) {
	t.Parallel()

	k := domain.ItemKey{ItemID: "590001234", Region: "400001"}
	assert.Equal(t, "590001234@400001", k.String())
}

func TestKeysAgree(t *testing.T) {
	t.Parallel()

	item := &domain.Item{ItemID: "1", Region: "560001"}
	sel := &domain.Selection{ItemID: "1", Region: "560001"}
	rec := &domain.PriceHistoryRecord{ItemID: "1", Region: "560001"}

	assert.Equal(t, item.Key(), sel.Key())
	assert.Equal(t, item.Key(), rec.Key())

	// Keys are usable as map keys without any custom equality.
	seen := map[domain.ItemKey]bool{item.Key(): true}
	assert.True(t, seen[sel.Key()])
	assert.False(t, seen[domain.ItemKey{ItemID: "1", Region: "110001"}])
}

func TestHistoryFromSnapshot(t *testing.T) {
	t.Parallel()

	s := &domain.Snapshot{
		Item: domain.Item{
			ItemID:          "42",
			Region:          "400001",
			Name:            "Basmati Rice 5kg",
			MRPPrice:        120,
			SellingPrice:    99,
			DiscountPercent: 17.5,
			DiscountPrice:   21,
			IsAvailable:     true,
		},
		FetchedAt: time.Now(),
	}

	rec := domain.HistoryFromSnapshot("rec-1", s)
	assert.Equal(t, "rec-1", rec.ID)
	assert.Equal(t, s.Key(), rec.Key())
	assert.Equal(t, 99.0, rec.SellingPrice)
	assert.Equal(t, 17.5, rec.DiscountPercent)
	assert.True(t, rec.IsAvailable)
	assert.True(t, rec.RecordedAt.IsZero(), "recorded_at is assigned by the store")
}

func TestCycleReport_Duration(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC)
	r := &domain.CycleReport{StartedAt: start}
	assert.Zero(t, r.Duration())

	r.FinishedAt = start.Add(90 * time.Second)
	assert.Equal(t, 90*time.Second, r.Duration())
}
