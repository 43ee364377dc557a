package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/pricewatch/pkg/types"
)

const defaultPoolSize = 25

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
//
// TODO(test): PostgresStore methods require live Postgres, tested via integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling. The
// pool size comes from pool_max_conns in connString when present.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if !strings.Contains(connString, "pool_max_conns") {
		cfg.MaxConns = defaultPoolSize
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// LoadUsersWithSelections returns every user that has at least one
// selection, in a single round trip.
func (s *PostgresStore) LoadUsersWithSelections(ctx context.Context) ([]domain.UserSelections, error) {
	rows, err := s.pool.Query(ctx, queryLoadUsersWithSelections)
	if err != nil {
		return nil, fmt.Errorf("querying selections: %w", err)
	}
	defer rows.Close()

	var (
		out   []domain.UserSelections
		index = make(map[string]int)
	)
	for rows.Next() {
		var (
			u   domain.User
			sel domain.Selection
		)
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.Region,
			&sel.ID, &sel.ItemID, &sel.Region, &sel.SourceURL,
			&sel.MinPrice, &sel.MaxPrice, &sel.MinOffer, &sel.MaxOffer,
			&sel.NotificationsRemaining,
		); err != nil {
			return nil, fmt.Errorf("scanning selection: %w", err)
		}
		sel.UserID = u.ID

		i, ok := index[u.ID]
		if !ok {
			i = len(out)
			index[u.ID] = i
			out = append(out, domain.UserSelections{User: u})
		}
		out[i].Selections = append(out[i].Selections, sel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating selections: %w", err)
	}

	return out, nil
}

// LatestPrice returns the newest history record for key, or nil if none exists.
func (s *PostgresStore) LatestPrice(
	ctx context.Context,
	key domain.ItemKey,
) (*domain.PriceHistoryRecord, error) {
	var r domain.PriceHistoryRecord
	err := scanHistory(s.pool.QueryRow(ctx, queryLatestPrice, key.ItemID, key.Region), &r)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil //nolint:nilnil // no history is not an error
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest price for %s: %w", key, err)
	}
	return &r, nil
}

// ListHistory queries price history with optional filters, returning results and total count.
func (s *PostgresStore) ListHistory(
	ctx context.Context,
	q *HistoryQuery,
) ([]domain.PriceHistoryRecord, int, error) {
	dataSQL, countSQL, args := q.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting history: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []domain.PriceHistoryRecord
	for rows.Next() {
		var r domain.PriceHistoryRecord
		if err := scanHistory(rows, &r); err != nil {
			return nil, 0, fmt.Errorf("scanning history: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating history: %w", err)
	}

	return records, total, nil
}

// InTx runs fn inside a single database transaction.
func (s *PostgresStore) InTx(ctx context.Context, fn func(Tx) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&pgTx{tx: tx})
	})
}

// InsertCycleRun records the start of a cycle and returns its UUID.
func (s *PostgresStore) InsertCycleRun(ctx context.Context, trigger string) (string, error) {
	var id string
	if err := s.pool.QueryRow(ctx, queryInsertCycleRun, trigger).Scan(&id); err != nil {
		return "", fmt.Errorf("inserting cycle run: %w", err)
	}
	return id, nil
}

// CompleteCycleRun marks a cycle run as finished with the given status and counts.
func (s *PostgresStore) CompleteCycleRun(
	ctx context.Context,
	id string,
	status string,
	errText string,
	report *domain.CycleReport,
) error {
	var processed, failed, sent *int
	if report != nil {
		processed = &report.UsersProcessed
		failed = &report.UsersFailed
		sent = &report.NotificationsSent
	}

	_, err := s.pool.Exec(ctx, queryCompleteCycleRun, id, status, errText, processed, failed, sent)
	if err != nil {
		return fmt.Errorf("completing cycle run: %w", err)
	}
	return nil
}

// ListCycleRuns returns the most recent cycle runs, newest first.
func (s *PostgresStore) ListCycleRuns(ctx context.Context, limit int) ([]domain.CycleRun, error) {
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}

	rows, err := s.pool.Query(ctx, queryListCycleRuns, limit)
	if err != nil {
		return nil, fmt.Errorf("querying cycle runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.CycleRun
	for rows.Next() {
		var r domain.CycleRun
		if err := rows.Scan(
			&r.ID, &r.Trigger, &r.StartedAt, &r.CompletedAt, &r.Status,
			&r.ErrorText, &r.UsersProcessed, &r.UsersFailed, &r.NotificationsSent,
		); err != nil {
			return nil, fmt.Errorf("scanning cycle run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RecoverStaleCycleRuns marks any 'running' rows older than olderThan as
// 'crashed', then prunes rows older than 90 days. Returns the number of rows
// marked as crashed.
func (s *PostgresStore) RecoverStaleCycleRuns(
	ctx context.Context,
	olderThan time.Duration,
) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	tag, err := s.pool.Exec(ctx, queryMarkStaleCycleRunsCrashed, cutoff)
	if err != nil {
		return 0, fmt.Errorf("marking stale cycle runs crashed: %w", err)
	}
	affected := int(tag.RowsAffected())

	if _, err := s.pool.Exec(ctx, queryDeleteOldCycleRuns); err != nil {
		return affected, fmt.Errorf("deleting old cycle runs: %w", err)
	}

	return affected, nil
}

var (
	_ Store = (*PostgresStore)(nil)
	_ Tx    = (*pgTx)(nil)
)

// pgTx implements Tx on an open pgx transaction.
type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) UpsertItem(ctx context.Context, item *domain.Item) error {
	updatedAt := item.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	args := pgx.NamedArgs{
		"item_id":            item.ItemID,
		"region":             item.Region,
		"name":               item.Name,
		"brand":              item.Brand,
		"category":           item.Category,
		"image_url":          item.ImageURL,
		"source_url":         item.SourceURL,
		"mrp_price":          item.MRPPrice,
		"selling_price":      item.SellingPrice,
		"discount_percent":   item.DiscountPercent,
		"discount_price":     item.DiscountPrice,
		"max_order_quantity": item.MaxOrderQuantity,
		"is_available":       item.IsAvailable,
		"updated_at":         updatedAt,
	}

	if _, err := t.tx.Exec(ctx, queryUpsertItem, args); err != nil {
		return fmt.Errorf("upserting item %s: %w", item.Key(), err)
	}
	return nil
}

func (t *pgTx) MarkItemUnavailable(ctx context.Context, key domain.ItemKey) error {
	if _, err := t.tx.Exec(ctx, queryMarkItemUnavailable, key.ItemID, key.Region); err != nil {
		return fmt.Errorf("marking item %s unavailable: %w", key, err)
	}
	return nil
}

func (t *pgTx) AppendPrice(ctx context.Context, rec *domain.PriceHistoryRecord) error {
	args := pgx.NamedArgs{
		"id":               rec.ID,
		"item_id":          rec.ItemID,
		"region":           rec.Region,
		"name":             rec.Name,
		"mrp_price":        rec.MRPPrice,
		"selling_price":    rec.SellingPrice,
		"discount_percent": rec.DiscountPercent,
		"discount_price":   rec.DiscountPrice,
		"is_available":     rec.IsAvailable,
	}

	if err := t.tx.QueryRow(ctx, queryAppendPrice, args).Scan(&rec.RecordedAt); err != nil {
		return fmt.Errorf("appending price for %s: %w", rec.Key(), err)
	}
	return nil
}

func (t *pgTx) SaveSelection(ctx context.Context, sel *domain.Selection) error {
	args := pgx.NamedArgs{
		"id":                      sel.ID,
		"notifications_remaining": sel.NotificationsRemaining,
	}

	tag, err := t.tx.Exec(ctx, querySaveSelectionBudget, args)
	if err != nil {
		return fmt.Errorf("saving selection %d: %w", sel.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("saving selection %d: %w", sel.ID, pgx.ErrNoRows)
	}
	return nil
}

// scannable is satisfied by both pgx.Row and pgx.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanHistory(row scannable, r *domain.PriceHistoryRecord) error {
	return row.Scan(
		&r.ID, &r.ItemID, &r.Region, &r.Name,
		&r.MRPPrice, &r.SellingPrice, &r.DiscountPercent, &r.DiscountPrice,
		&r.IsAvailable, &r.RecordedAt,
	)
}
