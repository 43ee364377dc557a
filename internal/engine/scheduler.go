package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/pricewatch/internal/store"
	domain "github.com/donaldgifford/pricewatch/pkg/types"
)

// ErrCycleInProgress is returned when a cycle is requested while another
// one is still running.
var ErrCycleInProgress = errors.New("a polling cycle is already running")

// Cycle triggers recorded in cycle_runs.
const (
	TriggerSchedule = "schedule"
	TriggerManual   = "manual"
	TriggerCLI      = "cli"
)

const (
	staleRunThreshold = 2 * time.Hour
	bookkeepTimeout   = 10 * time.Second
)

// Scheduler runs polling cycles on a cron schedule and records each run.
// At most one cycle runs at a time, whether started by cron or on demand.
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	store  store.Store
	log    *slog.Logger

	cycleTimeout time.Duration
	running      sync.Mutex
}

// NewScheduler creates a Scheduler that runs eng on spec, a standard cron
// expression or an "@every" descriptor. A positive cycleTimeout bounds each
// cycle.
func NewScheduler(
	eng *Engine,
	s store.Store,
	spec string,
	cycleTimeout time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	cl := cronLogger{log: log}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	sched := &Scheduler{
		cron:         c,
		engine:       eng,
		store:        s,
		log:          log,
		cycleTimeout: cycleTimeout,
	}

	if _, err := c.AddFunc(spec, sched.runScheduled); err != nil {
		return nil, fmt.Errorf("registering cycle schedule %q: %w", spec, err)
	}

	return sched, nil
}

// Start marks runs orphaned by a previous process as crashed and begins
// running scheduled cycles.
func (s *Scheduler) Start(ctx context.Context) {
	n, err := s.store.RecoverStaleCycleRuns(ctx, staleRunThreshold)
	switch {
	case err != nil:
		s.log.Warn("recovering stale cycle runs failed", "error", err)
	case n > 0:
		s.log.Warn("marked stale cycle runs as crashed", "count", n)
	}

	s.cron.Start()
	s.log.Info("scheduler started", "next_run", s.NextRun())
}

// Stop halts the schedule. The returned context is done once a running
// cycle has finished.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// NextRun reports when the next scheduled cycle starts. It is zero before
// Start.
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// RunNow runs one cycle immediately and records it under trigger. It returns
// ErrCycleInProgress without waiting if a cycle is already running.
//
// Once started, a cycle ignores cancellation of ctx and is bounded only by
// the scheduler's cycle timeout.
func (s *Scheduler) RunNow(ctx context.Context, trigger string) (*domain.CycleReport, error) {
	if !s.running.TryLock() {
		return nil, ErrCycleInProgress
	}
	defer s.running.Unlock()

	ctx = context.WithoutCancel(ctx)

	runID, err := s.store.InsertCycleRun(ctx, trigger)
	if err != nil {
		// Bookkeeping is best effort; the cycle still runs.
		s.log.Warn("recording cycle start failed", "trigger", trigger, "error", err)
		runID = s.engine.newID()
	}

	cycleCtx := ctx
	if s.cycleTimeout > 0 {
		var cancel context.CancelFunc
		cycleCtx, cancel = context.WithTimeout(ctx, s.cycleTimeout)
		defer cancel()
	}

	report, cycleErr := s.engine.runCycle(cycleCtx, runID)

	if err == nil {
		s.complete(ctx, runID, report, cycleErr)
	}

	return report, cycleErr
}

func (s *Scheduler) complete(ctx context.Context, runID string, report *domain.CycleReport, cycleErr error) {
	status, errText := domain.CycleSucceeded, ""
	if cycleErr != nil {
		status, errText = domain.CycleFailed, cycleErr.Error()
	}

	ctx, cancel := context.WithTimeout(ctx, bookkeepTimeout)
	defer cancel()

	if err := s.store.CompleteCycleRun(ctx, runID, status, errText, report); err != nil {
		s.log.Warn("recording cycle completion failed", "cycle_id", runID, "error", err)
	}
}

func (s *Scheduler) runScheduled() {
	s.log.Info("scheduled cycle starting")
	if _, err := s.RunNow(context.Background(), TriggerSchedule); err != nil {
		if errors.Is(err, ErrCycleInProgress) {
			s.log.Warn("scheduled cycle skipped, previous cycle still running")
			return
		}
		s.log.Error("scheduled cycle failed", "error", err)
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
