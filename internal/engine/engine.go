package engine

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/pricewatch/internal/metrics"
	"github.com/donaldgifford/pricewatch/internal/notify"
	"github.com/donaldgifford/pricewatch/internal/source"
	"github.com/donaldgifford/pricewatch/internal/store"
	"github.com/donaldgifford/pricewatch/pkg/logger"
	domain "github.com/donaldgifford/pricewatch/pkg/types"
)

const (
	defaultConcurrency  = 20
	defaultFetchTimeout = 30 * time.Second

	tracerName = "github.com/donaldgifford/pricewatch/internal/engine"
)

var (
	// ErrPersistence wraps a failed per-user commit.
	ErrPersistence = errors.New("persistence failure")
	// ErrNotification wraps a failed alert delivery.
	ErrNotification = errors.New("notification failure")
)

// Failure kinds reported in logs, metrics and CycleReport.FailuresByKind,
// next to the source kinds from source.KindLabel.
const (
	kindRegion       = "region"
	kindPersistence  = "persistence"
	kindNotification = "notification"
	kindPanic        = "panic"
)

// Engine runs polling cycles: fetch every tracked item, record history,
// decide on alerts and deliver them.
type Engine struct {
	store    store.Store
	source   source.PriceSource
	resolver source.RegionResolver
	notifier notify.Notifier
	log      *slog.Logger
	tracer   trace.Tracer

	concurrency  int
	fetchTimeout time.Duration
	refillBudget int

	now   func() time.Time
	newID func() string
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(
	s store.Store,
	src source.PriceSource,
	r source.RegionResolver,
	n notify.Notifier,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		store:        s,
		source:       src,
		resolver:     r,
		notifier:     n,
		log:          slog.Default(),
		tracer:       otel.Tracer(tracerName),
		concurrency:  defaultConcurrency,
		fetchTimeout: defaultFetchTimeout,
		now:          func() time.Time { return time.Now().UTC() },
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithConcurrency caps how many users are processed at once.
func WithConcurrency(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithFetchTimeout bounds each price source call.
func WithFetchTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.fetchTimeout = d
		}
	}
}

// WithRefillBudget enables budget refills on fresh price drops.
func WithRefillBudget(n int) EngineOption {
	return func(e *Engine) {
		e.refillBudget = max(n, 0)
	}
}

// WithTracer sets the tracer used for cycle and unit spans.
func WithTracer(t trace.Tracer) EngineOption {
	return func(e *Engine) {
		e.tracer = t
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// RunCycle executes one polling cycle across every user with selections.
// Per-user failures are isolated and counted in the report; only a failure
// to load the work list is returned as an error.
func (eng *Engine) RunCycle(ctx context.Context) (*domain.CycleReport, error) {
	return eng.runCycle(ctx, eng.newID())
}

func (eng *Engine) runCycle(ctx context.Context, cycleID string) (*domain.CycleReport, error) {
	ctx, span := eng.tracer.Start(ctx, "engine.RunCycle",
		trace.WithAttributes(attribute.String("cycle.id", cycleID)),
	)
	defer span.End()

	log := logger.ForCycle(eng.log, cycleID)
	report := &domain.CycleReport{
		CycleID:        cycleID,
		StartedAt:      eng.now(),
		FailuresByKind: map[string]int{},
	}

	start := time.Now()
	defer func() {
		metrics.CycleDuration.Observe(time.Since(start).Seconds())
	}()

	work, err := eng.store.LoadUsersWithSelections(ctx)
	if err != nil {
		report.FinishedAt = eng.now()
		metrics.CyclesTotal.WithLabelValues(domain.CycleFailed).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "loading selections")
		return report, fmt.Errorf("loading users with selections: %w", err)
	}

	report.UsersTotal = len(work)
	log.Info("cycle started", "users", len(work))

	regions := source.NewRegionCache(eng.resolver)
	results := make([]unitResult, len(work))

	g := errgroup.Group{}
	g.SetLimit(eng.concurrency)

	// Go blocks while the gate is full, so units are admitted in load order.
	for i := range work {
		g.Go(func() error {
			metrics.UnitsInFlight.Inc()
			defer metrics.UnitsInFlight.Dec()
			results[i] = eng.safeProcessUser(ctx, log, regions, &work[i])
			return nil
		})
	}
	_ = g.Wait()

	for i := range results {
		mergeResult(report, &results[i])
	}
	report.FinishedAt = eng.now()

	metrics.CyclesTotal.WithLabelValues(domain.CycleSucceeded).Inc()
	metrics.CycleLastSuccessTimestamp.SetToCurrentTime()
	span.SetAttributes(
		attribute.Int("cycle.users", report.UsersTotal),
		attribute.Int("cycle.users_failed", report.UsersFailed),
		attribute.Int("cycle.notifications", report.NotificationsSent),
	)

	log.Info("cycle finished",
		"users_processed", report.UsersProcessed,
		"users_failed", report.UsersFailed,
		"items_updated", report.ItemsUpdated,
		"items_unavailable", report.ItemsUnavailable,
		"notifications_sent", report.NotificationsSent,
		"errors", report.Errors,
		"duration", report.Duration(),
	)

	return report, nil
}

// unitResult is what one user unit contributes to the cycle report.
type unitResult struct {
	failed           bool
	itemsUpdated     int
	itemsUnavailable int
	historyAppended  int
	sent             int
	notifyFailed     int
	failures         map[string]int
}

func (r *unitResult) fail(kind string) {
	if r.failures == nil {
		r.failures = map[string]int{}
	}
	r.failures[kind]++
	metrics.FailuresTotal.WithLabelValues(kind).Inc()
}

func mergeResult(rep *domain.CycleReport, r *unitResult) {
	if r.failed {
		rep.UsersFailed++
		metrics.UsersFailedTotal.Inc()
	} else {
		rep.UsersProcessed++
		metrics.UsersProcessedTotal.Inc()
	}
	rep.ItemsUpdated += r.itemsUpdated
	rep.ItemsUnavailable += r.itemsUnavailable
	rep.HistoryAppended += r.historyAppended
	rep.NotificationsSent += r.sent
	rep.NotificationsFailed += r.notifyFailed
	for kind, n := range r.failures {
		rep.FailuresByKind[kind] += n
		rep.Errors += n
	}
}

// safeProcessUser turns a panic inside a unit into a counted failure so
// sibling units keep running.
func (eng *Engine) safeProcessUser(
	ctx context.Context,
	log *slog.Logger,
	regions *source.RegionCache,
	us *domain.UserSelections,
) (res unitResult) {
	defer func() {
		if p := recover(); p != nil {
			log.Error("user unit panicked",
				"user_id", us.User.ID,
				"kind", kindPanic,
				"panic", p,
				"stack", string(debug.Stack()),
			)
			res = unitResult{failed: true}
			res.fail(kindPanic)
		}
	}()
	return eng.processUser(ctx, log, regions, us)
}

// unitBatch collects a user's mutations until they commit together.
type unitBatch struct {
	upserts     map[domain.ItemKey]*domain.Item
	unavailable map[domain.ItemKey]struct{}
	history     []*domain.PriceHistoryRecord
	selections  []*domain.Selection
	alerts      []*notify.AlertPayload
}

func newUnitBatch() *unitBatch {
	return &unitBatch{
		upserts:     map[domain.ItemKey]*domain.Item{},
		unavailable: map[domain.ItemKey]struct{}{},
	}
}

func (eng *Engine) processUser(
	ctx context.Context,
	cycleLog *slog.Logger,
	regions *source.RegionCache,
	us *domain.UserSelections,
) unitResult {
	ctx, span := eng.tracer.Start(ctx, "engine.processUser",
		trace.WithAttributes(
			attribute.String("user.id", us.User.ID),
			attribute.Int("user.selections", len(us.Selections)),
		),
	)
	defer span.End()

	log := logger.ForUser(cycleLog, us.User.ID, us.User.Region)
	var res unitResult

	selections := dedupeSelections(us)

	rcs := make(map[string]domain.RegionContext)
	for _, sel := range selections {
		if _, ok := rcs[sel.Region]; ok {
			continue
		}
		rc, err := regions.Resolve(ctx, sel.Region)
		if err != nil {
			log.Error("resolving region failed",
				"item_id", sel.ItemID,
				"region", sel.Region,
				"kind", kindRegion,
				"error", err,
			)
			span.RecordError(err)
			span.SetStatus(codes.Error, "resolving region")
			res.failed = true
			res.fail(kindRegion)
			return res
		}
		rcs[sel.Region] = rc
	}

	batch := newUnitBatch()
	for _, sel := range selections {
		if err := eng.processSelection(ctx, log, &us.User, sel, rcs[sel.Region], batch, &res); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "reading history")
			res.failed = true
			return res
		}
	}

	if err := eng.commit(ctx, batch); err != nil {
		err = fmt.Errorf("%w: %w", ErrPersistence, err)
		log.Error("committing user unit failed", "kind", kindPersistence, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "commit")
		res.failed = true
		res.fail(kindPersistence)
		return res
	}

	res.itemsUpdated = len(batch.upserts)
	res.itemsUnavailable = len(batch.unavailable)
	res.historyAppended = len(batch.history)
	metrics.ItemsUpdatedTotal.Add(float64(res.itemsUpdated))
	metrics.ItemsUnavailableTotal.Add(float64(res.itemsUnavailable))
	metrics.HistoryAppendedTotal.Add(float64(res.historyAppended))

	eng.dispatch(ctx, log, batch.alerts, &res)

	return res
}

// dedupeSelections drops repeated item keys, first in load order wins. An
// empty selection region falls back to the user's region.
func dedupeSelections(us *domain.UserSelections) []*domain.Selection {
	seen := make(map[domain.ItemKey]struct{}, len(us.Selections))
	out := make([]*domain.Selection, 0, len(us.Selections))
	for i := range us.Selections {
		sel := &us.Selections[i]
		if sel.Region == "" {
			sel.Region = us.User.Region
		}
		key := sel.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, sel)
	}
	return out
}

// processSelection fetches one item and queues its mutations and alert.
// Source failures are absorbed; only a history read failure is returned,
// since it aborts the whole unit.
func (eng *Engine) processSelection(
	ctx context.Context,
	log *slog.Logger,
	user *domain.User,
	sel *domain.Selection,
	rc domain.RegionContext,
	batch *unitBatch,
	res *unitResult,
) error {
	key := sel.Key()

	fetchCtx, cancel := context.WithTimeout(ctx, eng.fetchTimeout)
	snap, err := eng.source.Fetch(fetchCtx, source.FetchRequest{Key: key, SourceURL: sel.SourceURL}, rc)
	cancel()
	if err != nil {
		kind := source.KindLabel(err)
		if errors.Is(err, source.ErrUnavailable) {
			log.Warn("item unavailable", "item_id", key.ItemID, "region", key.Region, "kind", kind)
			batch.unavailable[key] = struct{}{}
			return nil
		}
		log.Error("fetching item failed",
			"item_id", key.ItemID,
			"region", key.Region,
			"kind", kind,
			"error", err,
		)
		res.fail(kind)
		return nil
	}

	// The key always follows the request, whatever the source echoed back.
	snap.ItemID, snap.Region = key.ItemID, key.Region
	if snap.SourceURL == "" {
		snap.SourceURL = sel.SourceURL
	}
	if snap.UpdatedAt.IsZero() {
		snap.UpdatedAt = eng.now()
	}

	prev, err := eng.store.LatestPrice(ctx, key)
	if err != nil {
		err = fmt.Errorf("%w: reading latest price for %s: %w", ErrPersistence, key, err)
		log.Error("reading history failed",
			"item_id", key.ItemID,
			"region", key.Region,
			"kind", kindPersistence,
			"error", err,
		)
		res.fail(kindPersistence)
		return err
	}

	item := snap.Item
	batch.upserts[key] = &item
	batch.history = append(batch.history, domain.HistoryFromSnapshot(eng.newID(), snap))

	if prev == nil {
		log.Debug("first observation", "item_id", key.ItemID, "region", key.Region)
		return nil
	}

	d, err := Decide(DecisionInput{
		MaxPrice:        sel.MaxPrice,
		MaxOffer:        sel.MaxOffer,
		Remaining:       sel.NotificationsRemaining,
		PreviousPrice:   prev.SellingPrice,
		CurrentPrice:    snap.SellingPrice,
		DiscountPercent: snap.DiscountPercent,
		RefillBudget:    eng.refillBudget,
	})
	if err != nil {
		log.Warn("decision anomaly",
			"item_id", key.ItemID,
			"region", key.Region,
			"selection_id", sel.ID,
			"error", err,
		)
		metrics.DecisionAnomaliesTotal.Inc()
	}

	if d.Remaining != sel.NotificationsRemaining {
		sel.NotificationsRemaining = d.Remaining
		batch.selections = append(batch.selections, sel)
	}

	if d.Action != ActionNotify {
		return nil
	}

	batch.alerts = append(batch.alerts, &notify.AlertPayload{
		UserID:          user.ID,
		UserEmail:       user.Email,
		ItemID:          key.ItemID,
		Region:          key.Region,
		ItemName:        snap.Name,
		ImageURL:        snap.ImageURL,
		SourceURL:       snap.SourceURL,
		PreviousPrice:   prev.SellingPrice,
		TargetPrice:     sel.MaxPrice,
		CurrentPrice:    snap.SellingPrice,
		DiscountPercent: snap.DiscountPercent,
		ChangePercent:   d.ChangePercent,
		EmailsRemaining: d.Remaining,
		PriceDropped:    d.PriceDropped,
		OfferImproved:   d.OfferImproved,
	})
	return nil
}

// commit writes the batch in one transaction. Rows are touched in key order
// so concurrent units sharing items cannot deadlock.
func (eng *Engine) commit(ctx context.Context, batch *unitBatch) error {
	keys := make([]domain.ItemKey, 0, len(batch.upserts)+len(batch.unavailable))
	for k := range batch.upserts {
		keys = append(keys, k)
	}
	for k := range batch.unavailable {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)
	slices.SortFunc(batch.history, func(a, b *domain.PriceHistoryRecord) int {
		return compareKeys(a.Key(), b.Key())
	})
	slices.SortFunc(batch.selections, func(a, b *domain.Selection) int {
		return cmp.Compare(a.ID, b.ID)
	})

	if len(keys) == 0 && len(batch.history) == 0 && len(batch.selections) == 0 {
		return nil
	}

	return eng.store.InTx(ctx, func(tx store.Tx) error {
		for _, k := range keys {
			if item, ok := batch.upserts[k]; ok {
				if err := tx.UpsertItem(ctx, item); err != nil {
					return err
				}
				continue
			}
			if err := tx.MarkItemUnavailable(ctx, k); err != nil {
				return err
			}
		}
		for _, rec := range batch.history {
			if err := tx.AppendPrice(ctx, rec); err != nil {
				return err
			}
		}
		for _, sel := range batch.selections {
			if err := tx.SaveSelection(ctx, sel); err != nil {
				return err
			}
		}
		return nil
	})
}

func compareKeys(a, b domain.ItemKey) int {
	if c := cmp.Compare(a.ItemID, b.ItemID); c != 0 {
		return c
	}
	return cmp.Compare(a.Region, b.Region)
}

// dispatch delivers alerts after commit. Failures are counted, never retried
// within the cycle.
func (eng *Engine) dispatch(
	ctx context.Context,
	log *slog.Logger,
	alerts []*notify.AlertPayload,
	res *unitResult,
) {
	for _, alert := range alerts {
		start := time.Now()
		err := eng.notifier.Send(ctx, alert)
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrNotification, err)
			log.Error("sending alert failed",
				"item_id", alert.ItemID,
				"region", alert.Region,
				"kind", kindNotification,
				"error", err,
			)
			res.notifyFailed++
			res.fail(kindNotification)
			metrics.NotificationFailuresTotal.Inc()
			continue
		}
		res.sent++
		metrics.NotificationsSentTotal.Inc()
		log.Info("alert sent",
			"item_id", alert.ItemID,
			"region", alert.Region,
			"change_percent", alert.ChangePercent,
			"emails_remaining", alert.EmailsRemaining,
		)
	}
}
