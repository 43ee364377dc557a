package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"
	"time"

	domain "github.com/donaldgifford/pricewatch/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReport(w io.Writer, format string, r *domain.CycleReport) error {
	if format == "json" {
		return printJSON(w, r)
	}

	tw := newTabWriter(w)
	tw.writef("Cycle:\t%s\n", r.CycleID)
	tw.writef("Duration:\t%s\n", r.Duration().Round(time.Millisecond))
	tw.writef("Users:\t%d processed, %d failed of %d\n", r.UsersProcessed, r.UsersFailed, r.UsersTotal)
	tw.writef("Items updated:\t%d\n", r.ItemsUpdated)
	tw.writef("Items unavailable:\t%d\n", r.ItemsUnavailable)
	tw.writef("History appended:\t%d\n", r.HistoryAppended)
	tw.writef("Notifications:\t%d sent, %d failed\n", r.NotificationsSent, r.NotificationsFailed)
	tw.writef("Errors:\t%d\n", r.Errors)
	for _, kind := range slices.Sorted(maps.Keys(r.FailuresByKind)) {
		tw.writef("  %s:\t%d\n", kind, r.FailuresByKind[kind])
	}
	return tw.finish()
}

func printCycleRuns(w io.Writer, format string, runs []domain.CycleRun) error {
	if format == "json" {
		if runs == nil {
			runs = []domain.CycleRun{}
		}
		return printJSON(w, runs)
	}

	tw := newTabWriter(w)
	tw.writef("ID\tTRIGGER\tSTATUS\tSTARTED\tDURATION\tUSERS\tFAILED\tSENT\tERROR\n")
	for i := range runs {
		r := &runs[i]
		duration := "-"
		if r.CompletedAt != nil {
			duration = r.CompletedAt.Sub(r.StartedAt).Round(time.Second).String()
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.Trigger,
			r.Status,
			r.StartedAt.Local().Format(time.DateTime),
			duration,
			intOrDash(r.UsersProcessed),
			intOrDash(r.UsersFailed),
			intOrDash(r.NotificationsSent),
			truncate(r.ErrorText, 40),
		)
	}
	return tw.finish()
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
