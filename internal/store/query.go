package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

const historyColumns = `id, item_id, region, name,
	mrp_price, selling_price, discount_percent, discount_price,
	is_available, recorded_at`

const baseHistorySelect = "SELECT " + historyColumns + "\nFROM price_history"

const countHistorySelect = "SELECT COUNT(*) FROM price_history"

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for a history query.
// It returns two SQL strings (one for the data query, one for the count query)
// and the positional parameters.
func (q *HistoryQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.ItemID != "" {
		conditions = append(conditions, fmt.Sprintf("item_id = $%d", paramIdx))
		args = append(args, q.ItemID)
		paramIdx++
	}

	if q.Region != nil {
		conditions = append(conditions, fmt.Sprintf("region = $%d", paramIdx))
		args = append(args, *q.Region)
		paramIdx++
	}

	if q.Since != nil {
		conditions = append(conditions, fmt.Sprintf("recorded_at >= $%d", paramIdx))
		args = append(args, *q.Since)
		paramIdx++
	}

	if q.Until != nil {
		conditions = append(conditions, fmt.Sprintf("recorded_at < $%d", paramIdx))
		args = append(args, *q.Until)
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := "recorded_at DESC, seq DESC"
	if q.Oldest {
		orderClause = "recorded_at ASC, seq ASC"
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		baseHistorySelect, whereClause, orderClause, limit, offset,
	)

	countSQL = countHistorySelect + whereClause

	return dataSQL, countSQL, args
}
