package engine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/donaldgifford/pricewatch/internal/source"
	"github.com/donaldgifford/pricewatch/pkg/logger"
	domain "github.com/donaldgifford/pricewatch/pkg/types"
)

const region = "400001"

type harness struct {
	store    *memStore
	source   *fakeSource
	resolver *fakeResolver
	notifier *recordingNotifier
	engine   *Engine
}

func newHarness(opts ...EngineOption) *harness {
	h := &harness{
		store:    newMemStore(),
		source:   newFakeSource(),
		resolver: newFakeResolver(),
		notifier: &recordingNotifier{},
	}
	opts = append([]EngineOption{WithLogger(logger.Discard())}, opts...)
	h.engine = NewEngine(h.store, h.source, h.resolver, h.notifier, opts...)
	return h
}

func key(id string) domain.ItemKey {
	return domain.ItemKey{ItemID: id, Region: region}
}

func user(id string) domain.User {
	return domain.User{ID: id, Username: id, Email: id + "@example.com", Region: region}
}

func selection(id string, maxPrice, maxOffer float64, budget int) domain.Selection {
	return domain.Selection{
		ItemID:                 id,
		Region:                 region,
		SourceURL:              "https://www.jiomart.com/p/" + id,
		MaxPrice:               maxPrice,
		MaxOffer:               maxOffer,
		NotificationsRemaining: budget,
	}
}

func TestNewEngine_Defaults(t *testing.T) {
	t.Parallel()

	eng := NewEngine(newMemStore(), newFakeSource(), newFakeResolver(), &recordingNotifier{})
	assert.Equal(t, defaultConcurrency, eng.concurrency)
	assert.Equal(t, defaultFetchTimeout, eng.fetchTimeout)
	assert.Zero(t, eng.refillBudget)
	assert.NotNil(t, eng.log)
	assert.NotNil(t, eng.tracer)
}

func TestNewEngine_WithOptions(t *testing.T) {
	t.Parallel()

	l := logger.Discard()
	tr := noop.NewTracerProvider().Tracer("test")
	eng := NewEngine(newMemStore(), newFakeSource(), newFakeResolver(), &recordingNotifier{},
		WithLogger(l),
		WithConcurrency(5),
		WithFetchTimeout(time.Second),
		WithRefillBudget(3),
		WithTracer(tr),
		WithConcurrency(0), // ignored
	)

	assert.Same(t, l, eng.log)
	assert.Equal(t, 5, eng.concurrency)
	assert.Equal(t, time.Second, eng.fetchTimeout)
	assert.Equal(t, 3, eng.refillBudget)
	assert.Equal(t, tr, eng.tracer)
}

func TestRunCycle_FirstObservation(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.store.addUser(user("u1"), selection("100", 500, 50, 3))
	h.source.set(key("100"), 90, 10)

	report, err := h.engine.RunCycle(context.Background())
	require.NoError(t, err)

	recs := h.store.historyFor(key("100"))
	require.Len(t, recs, 1)
	assert.InDelta(t, 90, recs[0].SellingPrice, 0)
	assert.NotEmpty(t, recs[0].ID)

	item, ok := h.store.item(key("100"))
	require.True(t, ok)
	assert.True(t, item.IsAvailable)
	assert.Equal(t, "https://www.jiomart.com/p/100", item.SourceURL)

	assert.Empty(t, h.notifier.sent())
	assert.Equal(t, 3, h.store.budget(1))
	assert.Equal(t, 1, report.UsersProcessed)
	assert.Equal(t, 1, report.HistoryAppended)
	assert.Equal(t, 1, report.ItemsUpdated)
	assert.Zero(t, report.NotificationsSent)
}

func TestRunCycle_PriceDropNotifies(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.store.addUser(user("u1"), selection("100", 95, 50, 3))
	h.store.seedPrice(key("100"), 100)
	h.source.set(key("100"), 90, 10)

	report, err := h.engine.RunCycle(context.Background())
	require.NoError(t, err)

	alerts := h.notifier.sent()
	require.Len(t, alerts, 1)
	a := alerts[0]
	assert.Equal(t, "u1@example.com", a.UserEmail)
	assert.Equal(t, "Item 100", a.ItemName)
	assert.Equal(t, "https://www.jiomart.com/p/100", a.SourceURL)
	assert.InDelta(t, 100, a.PreviousPrice, 0)
	assert.InDelta(t, 95, a.TargetPrice, 0)
	assert.InDelta(t, 90, a.CurrentPrice, 0)
	assert.Equal(t, 5, a.ChangePercent)
	assert.Equal(t, 2, a.EmailsRemaining)
	assert.True(t, a.PriceDropped)

	assert.Equal(t, 2, h.store.budget(1))
	assert.Len(t, h.store.historyFor(key("100")), 2)
	assert.Equal(t, 1, report.NotificationsSent)
}

func TestRunCycle_NoAlertCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		sel      domain.Selection
		previous float64
		price    float64
		offer    float64
	}{
		{
			name:     "zero budget",
			sel:      selection("100", 95, 0, 0),
			previous: 100, price: 10, offer: 90,
		},
		{
			name:     "above target with weaker offer",
			sel:      selection("100", 95, 10, 3),
			previous: 100, price: 110, offer: 5,
		},
		{
			name:     "zero previous price",
			sel:      selection("100", 95, 50, 3),
			previous: 0, price: 90, offer: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness()
			h.store.addUser(user("u1"), tt.sel)
			h.store.seedPrice(key("100"), tt.previous)
			h.source.set(key("100"), tt.price, tt.offer)

			report, err := h.engine.RunCycle(context.Background())
			require.NoError(t, err)

			assert.Empty(t, h.notifier.sent())
			assert.Equal(t, tt.sel.NotificationsRemaining, h.store.budget(1))
			assert.Len(t, h.store.historyFor(key("100")), 2, "history is still recorded")
			assert.Zero(t, report.Errors)
		})
	}
}

func TestRunCycle_TwoUnchangedCycles(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.store.addUser(user("u1"), selection("100", 100, 20, 3))
	h.source.set(key("100"), 100, 20)

	for range 2 {
		_, err := h.engine.RunCycle(context.Background())
		require.NoError(t, err)
	}

	recs := h.store.historyFor(key("100"))
	require.Len(t, recs, 2)
	assert.True(t, recs[1].RecordedAt.After(recs[0].RecordedAt))
	assert.Empty(t, h.notifier.sent())
	assert.Equal(t, 3, h.store.budget(1))
}

func TestRunCycle_BudgetDrainsToZero(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.store.addUser(user("u1"), selection("100", 95, 50, 2))
	h.store.seedPrice(key("100"), 100)
	h.source.set(key("100"), 90, 0)

	for range 4 {
		_, err := h.engine.RunCycle(context.Background())
		require.NoError(t, err)
	}

	assert.Len(t, h.notifier.sent(), 2)
	assert.Equal(t, 0, h.store.budget(1))
}

func TestRunCycle_RefillBudget(t *testing.T) {
	t.Parallel()

	h := newHarness(WithRefillBudget(3))
	h.store.addUser(user("u1"), selection("100", 95, 50, 0))
	h.store.seedPrice(key("100"), 100)
	h.source.set(key("100"), 90, 0)

	_, err := h.engine.RunCycle(context.Background())
	require.NoError(t, err)

	require.Len(t, h.notifier.sent(), 1)
	assert.Equal(t, 2, h.store.budget(1))
}

func TestRunCycle_UnavailableItem(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.store.addUser(user("u1"),
		selection("gone", 95, 50, 3),
		selection("100", 500, 50, 3),
	)
	h.store.seedPrice(key("gone"), 100)
	h.source.set(key("100"), 90, 0)

	report, err := h.engine.RunCycle(context.Background())
	require.NoError(t, err)

	gone, ok := h.store.item(key("gone"))
	require.True(t, ok)
	assert.False(t, gone.IsAvailable)
	assert.Len(t, h.store.historyFor(key("gone")), 1, "no history for unavailable items")
	assert.Len(t, h.store.historyFor(key("100")), 1)

	assert.Equal(t, 1, report.ItemsUnavailable)
	assert.Equal(t, 1, report.UsersProcessed)
	assert.Zero(t, report.Errors)
}

func TestRunCycle_SourceFailuresAreIsolated(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.store.addUser(user("u1"),
		selection("flaky", 95, 50, 3),
		selection("broken", 95, 50, 3),
		selection("100", 500, 50, 3),
	)
	h.store.addUser(user("u2"), selection("200", 500, 50, 3))
	h.source.fail(key("flaky"), source.ErrTransient)
	h.source.fail(key("broken"), source.ErrMalformed)
	h.source.set(key("100"), 90, 0)
	h.source.set(key("200"), 80, 0)

	report, err := h.engine.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Len(t, h.store.historyFor(key("100")), 1)
	assert.Len(t, h.store.historyFor(key("200")), 1)
	assert.Empty(t, h.store.historyFor(key("flaky")))
	assert.Equal(t, 2, report.UsersProcessed)
	assert.Equal(t, 2, report.Errors)
	assert.Equal(t, map[string]int{"transient": 1, "malformed": 1}, report.FailuresByKind)
}

func TestRunCycle_CommitFailureIsolatesUser(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.store.addUser(user("u1"),
		selection("100", 95, 50, 3),
		selection("bad", 500, 50, 3),
	)
	h.store.addUser(user("u2"), selection("200", 95, 50, 3))
	h.store.seedPrice(key("100"), 100)
	h.store.seedPrice(key("200"), 100)
	h.store.failAppend[key("bad")] = true
	h.source.set(key("100"), 90, 0)
	h.source.set(key("bad"), 90, 0)
	h.source.set(key("200"), 90, 0)

	report, err := h.engine.RunCycle(context.Background())
	require.NoError(t, err)

	// u1's unit rolled back as a whole: no history, no budget change, no alert.
	assert.Len(t, h.store.historyFor(key("100")), 1)
	assert.Equal(t, 3, h.store.budget(1))

	assert.Len(t, h.store.historyFor(key("200")), 2)
	alerts := h.notifier.sent()
	require.Len(t, alerts, 1)
	assert.Equal(t, "u2", alerts[0].UserID)

	assert.Equal(t, 1, report.UsersFailed)
	assert.Equal(t, 1, report.UsersProcessed)
	assert.Equal(t, 1, report.FailuresByKind[kindPersistence])
}

func TestRunCycle_RegionFailureFailsUnit(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.store.addUser(user("u1"), domain.Selection{ItemID: "100", Region: "999999", MaxPrice: 95, NotificationsRemaining: 3})
	h.store.addUser(user("u2"), selection("200", 500, 50, 3))
	h.resolver.errs["999999"] = errBoom
	h.source.set(key("200"), 90, 0)

	report, err := h.engine.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), h.source.calls.Load(), "only u2's item is fetched")
	assert.Equal(t, 1, report.UsersFailed)
	assert.Equal(t, 1, report.FailuresByKind[kindRegion])
	assert.Len(t, h.store.historyFor(key("200")), 1)
}

func TestRunCycle_PanicIsolated(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.store.addUser(user("u1"), selection("explode", 95, 50, 3))
	h.store.addUser(user("u2"), selection("200", 500, 50, 3))
	h.source.panics[key("explode")] = true
	h.source.set(key("200"), 90, 0)

	report, err := h.engine.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.UsersFailed)
	assert.Equal(t, 1, report.FailuresByKind[kindPanic])
	assert.Len(t, h.store.historyFor(key("200")), 1)
}

func TestRunCycle_NotificationFailureKeepsCommit(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.notifier.err = errBoom
	h.store.addUser(user("u1"), selection("100", 95, 50, 3))
	h.store.seedPrice(key("100"), 100)
	h.source.set(key("100"), 90, 0)

	report, err := h.engine.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Len(t, h.store.historyFor(key("100")), 2)
	assert.Equal(t, 2, h.store.budget(1))
	assert.Equal(t, 1, report.NotificationsFailed)
	assert.Zero(t, report.NotificationsSent)
	assert.Equal(t, 1, report.FailuresByKind[kindNotification])
	assert.Equal(t, 1, report.UsersProcessed)
}

func TestRunCycle_HistoryReadFailure(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.store.latestErr = errBoom
	h.store.addUser(user("u1"), selection("100", 95, 50, 3))
	h.source.set(key("100"), 90, 0)

	report, err := h.engine.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.UsersFailed)
	assert.Equal(t, 1, report.FailuresByKind[kindPersistence])
}

func TestRunCycle_LoadFailure(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.store.loadErr = errBoom

	report, err := h.engine.RunCycle(context.Background())
	require.ErrorIs(t, err, errBoom)
	require.NotNil(t, report)
	assert.Zero(t, report.UsersProcessed)
	assert.Zero(t, h.source.calls.Load())
}

func TestRunCycle_FetchTimeout(t *testing.T) {
	t.Parallel()

	h := newHarness(WithFetchTimeout(20 * time.Millisecond))
	h.source.delay = time.Second
	h.store.addUser(user("u1"), selection("100", 95, 50, 3))
	h.source.set(key("100"), 90, 0)

	start := time.Now()
	report, err := h.engine.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, 1, report.FailuresByKind["transient"])
	assert.Empty(t, h.store.historyFor(key("100")))
}

func TestRunCycle_DedupesSelections(t *testing.T) {
	t.Parallel()

	h := newHarness()
	first := selection("100", 95, 50, 3)
	dup := selection("100", 500, 50, 3)
	dup.Region = "" // falls back to the user's region
	h.store.addUser(user("u1"), first, dup)
	h.store.seedPrice(key("100"), 100)
	h.source.set(key("100"), 90, 0)

	_, err := h.engine.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), h.source.calls.Load())
	assert.Len(t, h.store.historyFor(key("100")), 2)
	assert.Len(t, h.notifier.sent(), 1)
}

func TestRunCycle_RegionResolvedOncePerCycle(t *testing.T) {
	t.Parallel()

	h := newHarness()
	for i := range 30 {
		id := fmt.Sprintf("%d", i)
		h.store.addUser(user("u"+id), selection(id, 500, 50, 3))
		h.source.set(key(id), 90, 0)
	}

	_, err := h.engine.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, h.resolver.count(region))

	_, err = h.engine.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, h.resolver.count(region), "the cache does not outlive a cycle")
}

func TestRunCycle_ConcurrencyBound(t *testing.T) {
	t.Parallel()

	h := newHarness()
	h.source.delay = 2 * time.Millisecond
	for i := range 500 {
		id := fmt.Sprintf("%d", i)
		h.store.addUser(user("u"+id), selection(id, 500, 50, 3))
		h.source.set(key(id), 90, 0)
	}

	report, err := h.engine.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 500, report.UsersTotal)
	assert.Equal(t, 500, report.UsersProcessed)
	assert.Equal(t, int64(500), h.source.calls.Load())
	assert.LessOrEqual(t, h.source.peak.Load(), int64(defaultConcurrency))
	assert.Positive(t, h.source.peak.Load())
}

func TestRunCycle_SharedItemAcrossUsers(t *testing.T) {
	t.Parallel()

	h := newHarness()
	for i := range 10 {
		h.store.addUser(user(fmt.Sprintf("u%d", i)), selection("shared", 95, 50, 1))
	}
	h.store.seedPrice(key("shared"), 100)
	h.source.set(key("shared"), 90, 0)

	report, err := h.engine.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, report.NotificationsSent)
	assert.Len(t, h.store.historyFor(key("shared")), 11)

	recs := h.store.historyFor(key("shared"))
	for i := 1; i < len(recs); i++ {
		assert.True(t, recs[i].RecordedAt.After(recs[i-1].RecordedAt))
	}
}
