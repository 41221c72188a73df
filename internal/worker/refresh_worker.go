package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"yutai/internal/amqp"
	"yutai/internal/catalog"
	"yutai/internal/core"
)

// RecordStore is the snapshot store the worker keeps up to date.
type RecordStore interface {
	ReplaceAll(ctx context.Context, records []core.BenefitRecord) (int, error)
	Count(ctx context.Context) (int, error)
	LastLoadedAt(ctx context.Context) (time.Time, error)
}

// RefreshWorker pulls the benefit catalog from its origin and rewrites the
// local snapshot store. It reacts to AMQP refresh messages and also runs on a
// timer so a quiet broker cannot leave the snapshot stale forever.
type RefreshWorker struct {
	origin         catalog.RecordSource
	store          RecordStore
	maxSnapshotAge time.Duration
}

func NewRefreshWorker(origin catalog.RecordSource, store RecordStore, maxSnapshotAge time.Duration) *RefreshWorker {
	return &RefreshWorker{
		origin:         origin,
		store:          store,
		maxSnapshotAge: maxSnapshotAge,
	}
}

// HandleRefreshMessage processes a single catalog refresh message from AMQP
func (w *RefreshWorker) HandleRefreshMessage(ctx context.Context, msg *amqp.CatalogRefreshMessage) error {
	slog.InfoContext(ctx, "Processing refresh message",
		"reason", msg.Reason,
		"requested_at", msg.RequestedAt)

	return w.Refresh(ctx)
}

// Refresh pulls the full catalog from the origin and replaces the stored
// snapshot. Invalid records are skipped with a warning, the rest still load.
func (w *RefreshWorker) Refresh(ctx context.Context) error {
	raw, err := w.origin.ListRecords(ctx)
	if err != nil {
		return fmt.Errorf("list records from origin: %w", err)
	}

	valid := make([]core.BenefitRecord, 0, len(raw))
	skipped := 0
	for _, r := range raw {
		if err := r.Validate(); err != nil {
			skipped++
			slog.WarnContext(ctx, "Skipping invalid record",
				"record_id", r.ID,
				"ticker", r.Ticker,
				"error", err)
			continue
		}
		valid = append(valid, r)
	}

	count, err := w.store.ReplaceAll(ctx, valid)
	if err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Catalog snapshot refreshed",
		"record_count", count,
		"skipped", skipped)

	return nil
}

// StartupCheck refreshes immediately when the stored snapshot is empty or
// older than the configured maximum age.
func (w *RefreshWorker) StartupCheck(ctx context.Context) error {
	count, err := w.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count stored records: %w", err)
	}

	if count == 0 {
		slog.InfoContext(ctx, "Snapshot store empty, refreshing")
		return w.Refresh(ctx)
	}

	loadedAt, err := w.store.LastLoadedAt(ctx)
	if err != nil {
		return fmt.Errorf("read snapshot age: %w", err)
	}

	age := time.Since(loadedAt)
	if loadedAt.IsZero() || age > w.maxSnapshotAge {
		slog.InfoContext(ctx, "Snapshot stale, refreshing",
			"loaded_at", loadedAt,
			"max_age", w.maxSnapshotAge)
		return w.Refresh(ctx)
	}

	slog.InfoContext(ctx, "Snapshot fresh, skipping startup refresh",
		"record_count", count,
		"loaded_at", loadedAt)
	return nil
}
