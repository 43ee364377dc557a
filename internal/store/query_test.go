package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestHistoryQuery_ToSQL(t *testing.T) {
	t.Parallel()

	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		query         HistoryQuery
		wantCountSQL  string
		wantArgs      []any
		wantDataHas   []string // substrings that must appear in dataSQL
		wantDataNotIn []string // substrings that must NOT appear
	}{
		{
			name:  "empty query uses defaults",
			query: HistoryQuery{},
			wantDataHas: []string{
				"FROM price_history",
				"ORDER BY recorded_at DESC, seq DESC",
				"LIMIT 50",
				"OFFSET 0",
			},
			wantDataNotIn: []string{"WHERE"},
			wantCountSQL:  "SELECT COUNT(*) FROM price_history",
			wantArgs:      nil,
		},
		{
			name:         "item filter",
			query:        HistoryQuery{ItemID: "590001234"},
			wantDataHas:  []string{"WHERE item_id = $1"},
			wantCountSQL: "SELECT COUNT(*) FROM price_history WHERE item_id = $1",
			wantArgs:     []any{"590001234"},
		},
		{
			name:  "item and region",
			query: HistoryQuery{ItemID: "42", Region: ptr("400001")},
			wantDataHas: []string{
				"WHERE item_id = $1 AND region = $2",
			},
			wantCountSQL: "SELECT COUNT(*) FROM price_history WHERE item_id = $1 AND region = $2",
			wantArgs:     []any{"42", "400001"},
		},
		{
			name:  "time window",
			query: HistoryQuery{Since: &since, Until: &until},
			wantDataHas: []string{
				"WHERE recorded_at >= $1 AND recorded_at < $2",
			},
			wantCountSQL: "SELECT COUNT(*) FROM price_history WHERE recorded_at >= $1 AND recorded_at < $2",
			wantArgs:     []any{since, until},
		},
		{
			name:  "oldest first with paging",
			query: HistoryQuery{Oldest: true, Limit: 10, Offset: 20},
			wantDataHas: []string{
				"ORDER BY recorded_at ASC, seq ASC",
				"LIMIT 10",
				"OFFSET 20",
			},
			wantCountSQL: "SELECT COUNT(*) FROM price_history",
		},
		{
			name:         "limit clamped to max",
			query:        HistoryQuery{Limit: 10_000},
			wantDataHas:  []string{"LIMIT 500"},
			wantCountSQL: "SELECT COUNT(*) FROM price_history",
		},
		{
			name:         "negative offset clamped",
			query:        HistoryQuery{Offset: -5},
			wantDataHas:  []string{"OFFSET 0"},
			wantCountSQL: "SELECT COUNT(*) FROM price_history",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dataSQL, countSQL, args := tt.query.ToSQL()

			for _, s := range tt.wantDataHas {
				assert.Contains(t, dataSQL, s)
			}
			for _, s := range tt.wantDataNotIn {
				assert.NotContains(t, dataSQL, s)
			}
			assert.Equal(t, tt.wantCountSQL, countSQL)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestMigrationVersions(t *testing.T) {
	t.Parallel()

	versions, err := migrationVersions(migrationsFS)
	assert.NoError(t, err)
	assert.NotEmpty(t, versions)
	assert.Equal(t, "001_init.sql", versions[0])
	assert.IsIncreasing(t, versions)
}
