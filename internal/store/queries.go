package store

// SQL query constants organized by entity.
// PostgresStore and pgTx methods reference these constants.

// Selection queries.
const (
	// queryLoadUsersWithSelections returns one row per selection, users in
	// registration order and selections in creation order. Users without
	// selections are skipped since they have nothing to poll.
	queryLoadUsersWithSelections = `
		SELECT u.id, u.username, u.email, u.region,
			s.id, s.item_id, s.region, COALESCE(i.source_url, ''),
			s.min_price, s.max_price, s.min_offer, s.max_offer,
			s.notifications_remaining
		FROM users u
		JOIN selections s ON s.user_id = u.id
		LEFT JOIN items i ON i.item_id = s.item_id AND i.region = s.region
		ORDER BY u.created_at, u.id, s.id`

	querySaveSelectionBudget = `
		UPDATE selections
		SET notifications_remaining = GREATEST(@notifications_remaining, 0)
		WHERE id = @id`
)

// Item queries.
const (
	queryUpsertItem = `
		INSERT INTO items (
			item_id, region, name, brand, category, image_url, source_url,
			mrp_price, selling_price, discount_percent, discount_price,
			max_order_quantity, is_available, updated_at
		) VALUES (
			@item_id, @region, @name, @brand, @category, @image_url, @source_url,
			@mrp_price, @selling_price, @discount_percent, @discount_price,
			@max_order_quantity, @is_available, @updated_at
		)
		ON CONFLICT (item_id, region) DO UPDATE SET
			name               = EXCLUDED.name,
			brand              = EXCLUDED.brand,
			category           = EXCLUDED.category,
			image_url          = COALESCE(NULLIF(EXCLUDED.image_url, ''), items.image_url),
			source_url         = COALESCE(NULLIF(EXCLUDED.source_url, ''), items.source_url),
			mrp_price          = EXCLUDED.mrp_price,
			selling_price      = EXCLUDED.selling_price,
			discount_percent   = EXCLUDED.discount_percent,
			discount_price     = EXCLUDED.discount_price,
			max_order_quantity = EXCLUDED.max_order_quantity,
			is_available       = EXCLUDED.is_available,
			updated_at         = EXCLUDED.updated_at`

	queryMarkItemUnavailable = `
		UPDATE items SET is_available = false, updated_at = now()
		WHERE item_id = $1 AND region = $2`
)

// History queries.
const (
	// queryAppendPrice clamps recorded_at to the key's newest record so the
	// per-key sequence never goes backwards, even across clock steps.
	queryAppendPrice = `
		INSERT INTO price_history (
			id, item_id, region, name,
			mrp_price, selling_price, discount_percent, discount_price,
			is_available, recorded_at
		) VALUES (
			@id, @item_id, @region, @name,
			@mrp_price, @selling_price, @discount_percent, @discount_price,
			@is_available,
			GREATEST(
				clock_timestamp(),
				COALESCE(
					(SELECT max(recorded_at) FROM price_history
					 WHERE item_id = @item_id AND region = @region),
					'-infinity'::timestamptz
				)
			)
		)
		RETURNING recorded_at`

	queryLatestPrice = `
		SELECT ` + historyColumns + `
		FROM price_history
		WHERE item_id = $1 AND region = $2
		ORDER BY recorded_at DESC, seq DESC
		LIMIT 1`
)

// Cycle run queries.
const (
	queryInsertCycleRun = `
		INSERT INTO cycle_runs (triggered_by)
		VALUES ($1)
		RETURNING id`

	queryCompleteCycleRun = `
		UPDATE cycle_runs SET
			completed_at       = now(),
			status             = $2,
			error_text         = NULLIF($3, ''),
			users_processed    = $4,
			users_failed       = $5,
			notifications_sent = $6
		WHERE id = $1`

	queryListCycleRuns = `
		SELECT id, triggered_by, started_at, completed_at, status,
			COALESCE(error_text, ''), users_processed, users_failed, notifications_sent
		FROM cycle_runs
		ORDER BY started_at DESC
		LIMIT $1`

	queryMarkStaleCycleRunsCrashed = `
		UPDATE cycle_runs SET
			status       = 'crashed',
			completed_at = now()
		WHERE status = 'running' AND started_at < $1`

	queryDeleteOldCycleRuns = `
		DELETE FROM cycle_runs WHERE started_at < now() - interval '90 days'`
)
