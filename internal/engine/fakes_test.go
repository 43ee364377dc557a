package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/donaldgifford/pricewatch/internal/notify"
	"github.com/donaldgifford/pricewatch/internal/source"
	"github.com/donaldgifford/pricewatch/internal/store"
	domain "github.com/donaldgifford/pricewatch/pkg/types"
)

var errBoom = errors.New("boom")

// memStore is an in-memory store.Store. Transactions buffer their writes and
// apply them atomically on success.
type memStore struct {
	mu         sync.Mutex
	users      []domain.UserSelections
	items      map[domain.ItemKey]domain.Item
	history    map[domain.ItemKey][]domain.PriceHistoryRecord
	runs       map[string]*domain.CycleRun
	runOrder   []string
	lastRecord time.Time

	loadErr   error
	latestErr error
	// failAppend makes any transaction appending history for the key fail.
	failAppend map[domain.ItemKey]bool
}

var (
	_ store.Store = (*memStore)(nil)
	_ store.Tx    = (*memTx)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		items:      map[domain.ItemKey]domain.Item{},
		history:    map[domain.ItemKey][]domain.PriceHistoryRecord{},
		runs:       map[string]*domain.CycleRun{},
		failAppend: map[domain.ItemKey]bool{},
	}
}

func (m *memStore) addUser(u domain.User, sels ...domain.Selection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range sels {
		sels[i].UserID = u.ID
		if sels[i].ID == 0 {
			sels[i].ID = int64(len(m.users)*1000 + i + 1)
		}
	}
	m.users = append(m.users, domain.UserSelections{User: u, Selections: sels})
}

// seedPrice records a prior observation for key.
func (m *memStore) seedPrice(key domain.ItemKey, price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = domain.Item{ItemID: key.ItemID, Region: key.Region, SellingPrice: price, IsAvailable: true}
	m.appendLocked(domain.PriceHistoryRecord{
		ID: fmt.Sprintf("seed-%s", key), ItemID: key.ItemID, Region: key.Region,
		SellingPrice: price, IsAvailable: true,
	})
}

func (m *memStore) appendLocked(rec domain.PriceHistoryRecord) domain.PriceHistoryRecord {
	now := time.Now().UTC()
	if !now.After(m.lastRecord) {
		now = m.lastRecord.Add(time.Microsecond)
	}
	m.lastRecord = now
	rec.RecordedAt = now
	k := rec.Key()
	m.history[k] = append(m.history[k], rec)
	return rec
}

func (m *memStore) historyFor(key domain.ItemKey) []domain.PriceHistoryRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.PriceHistoryRecord(nil), m.history[key]...)
}

func (m *memStore) item(key domain.ItemKey) (domain.Item, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[key]
	return it, ok
}

func (m *memStore) budget(selID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, us := range m.users {
		for _, s := range us.Selections {
			if s.ID == selID {
				return s.NotificationsRemaining
			}
		}
	}
	return -1
}

func (m *memStore) LoadUsersWithSelections(_ context.Context) ([]domain.UserSelections, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]domain.UserSelections, len(m.users))
	for i, us := range m.users {
		out[i] = domain.UserSelections{
			User:       us.User,
			Selections: append([]domain.Selection(nil), us.Selections...),
		}
	}
	return out, nil
}

func (m *memStore) LatestPrice(_ context.Context, key domain.ItemKey) (*domain.PriceHistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latestLocked(key)
}

func (m *memStore) latestLocked(key domain.ItemKey) (*domain.PriceHistoryRecord, error) {
	if m.latestErr != nil {
		return nil, m.latestErr
	}
	recs := m.history[key]
	if len(recs) == 0 {
		return nil, nil
	}
	rec := recs[len(recs)-1]
	return &rec, nil
}

func (m *memStore) ListHistory(_ context.Context, q *store.HistoryQuery) ([]domain.PriceHistoryRecord, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.PriceHistoryRecord
	for k, recs := range m.history {
		if k.ItemID == q.ItemID {
			out = append(out, recs...)
		}
	}
	return out, len(out), nil
}

func (m *memStore) InTx(ctx context.Context, fn func(store.Tx) error) error {
	tx := &memTx{store: m}
	if err := fn(tx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range tx.ops {
		op()
	}
	return nil
}

func (m *memStore) InsertCycleRun(_ context.Context, trigger string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := fmt.Sprintf("run-%d", len(m.runOrder)+1)
	m.runs[id] = &domain.CycleRun{ID: id, Trigger: trigger, StartedAt: time.Now(), Status: domain.CycleRunning}
	m.runOrder = append(m.runOrder, id)
	return id, nil
}

func (m *memStore) CompleteCycleRun(
	_ context.Context,
	id, status, errText string,
	report *domain.CycleReport,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[id]
	if !ok {
		return fmt.Errorf("cycle run %s not found", id)
	}
	now := time.Now()
	run.CompletedAt = &now
	run.Status = status
	run.ErrorText = errText
	if report != nil {
		run.UsersProcessed = &report.UsersProcessed
		run.UsersFailed = &report.UsersFailed
		run.NotificationsSent = &report.NotificationsSent
	}
	return nil
}

func (m *memStore) ListCycleRuns(_ context.Context, limit int) ([]domain.CycleRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.CycleRun
	for i := len(m.runOrder) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *m.runs[m.runOrder[i]])
	}
	return out, nil
}

func (*memStore) RecoverStaleCycleRuns(_ context.Context, _ time.Duration) (int, error) {
	return 0, nil
}

func (*memStore) Ping(_ context.Context) error    { return nil }
func (*memStore) Migrate(_ context.Context) error { return nil }

type memTx struct {
	store *memStore
	ops   []func()
}

func (t *memTx) UpsertItem(_ context.Context, item *domain.Item) error {
	it := *item
	t.ops = append(t.ops, func() { t.store.items[it.Key()] = it })
	return nil
}

func (t *memTx) MarkItemUnavailable(_ context.Context, key domain.ItemKey) error {
	t.ops = append(t.ops, func() {
		if it, ok := t.store.items[key]; ok {
			it.IsAvailable = false
			t.store.items[key] = it
		}
	})
	return nil
}

func (t *memTx) AppendPrice(_ context.Context, rec *domain.PriceHistoryRecord) error {
	t.store.mu.Lock()
	fail := t.store.failAppend[rec.Key()]
	t.store.mu.Unlock()
	if fail {
		return fmt.Errorf("appending %s: %w", rec.Key(), errBoom)
	}
	r := *rec
	t.ops = append(t.ops, func() { t.store.appendLocked(r) })
	return nil
}

func (t *memTx) SaveSelection(_ context.Context, sel *domain.Selection) error {
	id, remaining := sel.ID, max(sel.NotificationsRemaining, 0)
	t.ops = append(t.ops, func() {
		for i := range t.store.users {
			for j := range t.store.users[i].Selections {
				if t.store.users[i].Selections[j].ID == id {
					t.store.users[i].Selections[j].NotificationsRemaining = remaining
				}
			}
		}
	})
	return nil
}

// fakeSource serves snapshots from a price table and tracks peak concurrency.
type fakeSource struct {
	mu     sync.Mutex
	prices map[domain.ItemKey]float64
	offers map[domain.ItemKey]float64
	errs   map[domain.ItemKey]error
	panics map[domain.ItemKey]bool

	delay time.Duration
	// gate, when set, blocks every fetch until closed.
	gate    chan struct{}
	entered chan struct{}

	calls    atomic.Int64
	inFlight atomic.Int64
	peak     atomic.Int64
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		prices: map[domain.ItemKey]float64{},
		offers: map[domain.ItemKey]float64{},
		errs:   map[domain.ItemKey]error{},
		panics: map[domain.ItemKey]bool{},
	}
}

func (f *fakeSource) set(key domain.ItemKey, price, offer float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices[key] = price
	f.offers[key] = offer
}

func (f *fakeSource) fail(key domain.ItemKey, kind error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[key] = &source.FetchError{Op: "fetch", ItemID: key.ItemID, Region: key.Region, Kind: kind, Err: errBoom}
}

func (f *fakeSource) Fetch(
	ctx context.Context,
	req source.FetchRequest,
	_ domain.RegionContext,
) (*domain.Snapshot, error) {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	if f.entered != nil {
		select {
		case f.entered <- struct{}{}:
		default:
		}
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
		}
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, &source.FetchError{Op: "fetch", ItemID: req.Key.ItemID, Region: req.Key.Region, Kind: source.ErrTransient, Err: ctx.Err()}
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panics[req.Key] {
		panic("unexpected payload for " + req.Key.String())
	}
	if err := f.errs[req.Key]; err != nil {
		return nil, err
	}
	price, ok := f.prices[req.Key]
	if !ok {
		return nil, &source.FetchError{Op: "fetch", ItemID: req.Key.ItemID, Region: req.Key.Region, Kind: source.ErrUnavailable, Err: errBoom}
	}
	return &domain.Snapshot{
		Item: domain.Item{
			ItemID:          req.Key.ItemID,
			Region:          req.Key.Region,
			Name:            "Item " + req.Key.ItemID,
			MRPPrice:        price * 2,
			SellingPrice:    price,
			DiscountPercent: f.offers[req.Key],
			IsAvailable:     true,
		},
		FetchedAt: time.Now(),
	}, nil
}

type fakeResolver struct {
	mu    sync.Mutex
	calls map[string]int
	errs  map[string]error
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{calls: map[string]int{}, errs: map[string]error{}}
}

func (r *fakeResolver) Resolve(_ context.Context, region string) (domain.RegionContext, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[region]++
	if err := r.errs[region]; err != nil {
		return domain.RegionContext{}, err
	}
	return domain.RegionContext{Region: region, City: "Mumbai", StateCode: "MH"}, nil
}

func (r *fakeResolver) count(region string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[region]
}

// recordingNotifier keeps every alert it is asked to send.
type recordingNotifier struct {
	mu     sync.Mutex
	alerts []notify.AlertPayload
	err    error
}

func (n *recordingNotifier) Send(_ context.Context, a *notify.AlertPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.alerts = append(n.alerts, *a)
	return nil
}

func (n *recordingNotifier) sent() []notify.AlertPayload {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.AlertPayload(nil), n.alerts...)
}
