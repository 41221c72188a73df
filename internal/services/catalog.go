package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"yutai/internal/cache"
	"yutai/internal/catalog"
	"yutai/internal/core"
)

// ErrRecordNotFound is returned when a record ID is not in the current snapshot.
var ErrRecordNotFound = errors.New("record not found")

// RefreshPublisher notifies workers that the catalog origin should be re-read.
type RefreshPublisher interface {
	PublishCatalogRefresh(ctx context.Context, reason string) error
}

// QueryResult is one paginated view over the filtered catalog.
type QueryResult struct {
	Items   []core.BenefitRecord
	Total   int
	HasMore bool
}

// CatalogService holds the current record snapshot and serves filtered,
// paginated and calendar views over it. Snapshots are immutable; Reload swaps
// the whole slice and bumps the version, which invalidates both caches.
type CatalogService struct {
	mu      sync.RWMutex
	records []core.BenefitRecord
	version int64
	loaded  time.Time

	source    catalog.RecordSource
	publisher RefreshPublisher

	filterCache *cache.LRUCache[[]core.BenefitRecord]
	monthCache  *cache.LRUCache[core.MonthDates]
}

func NewCatalogService(source catalog.RecordSource, publisher RefreshPublisher, cacheSize int, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{
		source:      source,
		publisher:   publisher,
		filterCache: cache.NewLRUCache[[]core.BenefitRecord](cacheSize, cacheTTL),
		monthCache:  cache.NewLRUCache[core.MonthDates](cacheSize, cacheTTL),
	}
}

// RegisterCaches adds the service's caches to the cleanup rotation.
func (s *CatalogService) RegisterCaches(m *cache.Manager) {
	m.Register(s.filterCache)
	m.Register(s.monthCache)
}

// Reload pulls the catalog from the origin and swaps the snapshot. Records
// that fail validation are skipped with a warning rather than rejecting the
// whole document.
func (s *CatalogService) Reload(ctx context.Context) error {
	raw, err := s.source.ListRecords(ctx)
	if err != nil {
		return fmt.Errorf("list records: %w", err)
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

	s.mu.Lock()
	s.records = valid
	s.version++
	s.loaded = time.Now()
	version := s.version
	s.mu.Unlock()

	s.filterCache.Purge()
	s.monthCache.Purge()

	slog.InfoContext(ctx, "Catalog snapshot loaded",
		"record_count", len(valid),
		"skipped", skipped,
		"version", version)

	return nil
}

// Records returns the current snapshot. Callers must not mutate it.
func (s *CatalogService) Records() []core.BenefitRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Version returns the snapshot version, starting at 0 before the first load.
func (s *CatalogService) Version() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// LoadedAt returns when the current snapshot was installed.
func (s *CatalogService) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Query filters the snapshot and returns the first displayCount records.
// A displayCount below 1 falls back to the default.
func (s *CatalogService) Query(spec core.FilterSpec, displayCount int) QueryResult {
	if displayCount < 1 {
		displayCount = core.DefaultDisplayCount
	}

	s.mu.RLock()
	records := s.records
	version := s.version
	s.mu.RUnlock()

	key := fmt.Sprintf("v%d|%s", version, spec.Key())
	filtered, ok := s.filterCache.Get(key)
	if !ok {
		filtered = core.Filter(records, spec)
		s.filterCache.Set(key, filtered)
	}

	return QueryResult{
		Items:   core.Page(filtered, displayCount),
		Total:   len(filtered),
		HasMore: core.HasMore(filtered, displayCount),
	}
}

// MonthCalendar returns the ex-rights and ex-dividend dates falling in the
// given month, aggregated over the whole snapshot.
func (s *CatalogService) MonthCalendar(year int, month time.Month) core.MonthDates {
	s.mu.RLock()
	records := s.records
	version := s.version
	s.mu.RUnlock()

	key := fmt.Sprintf("v%d|%04d-%02d", version, year, int(month))
	dates, ok := s.monthCache.Get(key)
	if !ok {
		dates = core.AggregateMonth(records, year, month)
		s.monthCache.Set(key, dates)
	}
	return dates
}

// FilterOptions lists the sectors and benefit types actually present in the
// snapshot, in canonical enumeration order.
type FilterOptions struct {
	Sectors      []core.Sector
	BenefitTypes []core.BenefitType
	PriceRanges  []core.PriceRange
}

func (s *CatalogService) FilterOptions() FilterOptions {
	s.mu.RLock()
	records := s.records
	s.mu.RUnlock()

	haveSector := make(map[core.Sector]bool, len(records))
	haveType := make(map[core.BenefitType]bool, len(records))
	for _, r := range records {
		haveSector[r.Sector] = true
		haveType[r.BenefitType] = true
	}

	opts := FilterOptions{PriceRanges: core.PriceRanges()}
	for _, sec := range core.Sectors() {
		if haveSector[sec] {
			opts.Sectors = append(opts.Sectors, sec)
		}
	}
	for _, bt := range core.BenefitTypes() {
		if haveType[bt] {
			opts.BenefitTypes = append(opts.BenefitTypes, bt)
		}
	}
	return opts
}

// Record looks up a single record by ID.
func (s *CatalogService) Record(id string) (core.BenefitRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return core.BenefitRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
}

// RequestRefresh reloads the snapshot from the origin and, when a publisher
// is configured, asks workers to refresh their stores too. Publish failures
// are logged but do not fail the request, the local reload already happened.
func (s *CatalogService) RequestRefresh(ctx context.Context, reason string) error {
	if err := s.Reload(ctx); err != nil {
		return err
	}

	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping refresh message")
		return nil
	}
	if err := s.publisher.PublishCatalogRefresh(ctx, reason); err != nil {
		slog.ErrorContext(ctx, "Failed to publish refresh message",
			"reason", reason,
			"error", err)
	}
	return nil
}
