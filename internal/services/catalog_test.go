package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"yutai/internal/core"
)

type stubSource struct {
	records []core.BenefitRecord
	err     error
	calls   int
}

func (s *stubSource) ListRecords(ctx context.Context) ([]core.BenefitRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

type stubPublisher struct {
	reasons []string
	err     error
}

func (p *stubPublisher) PublishCatalogRefresh(ctx context.Context, reason string) error {
	p.reasons = append(p.reasons, reason)
	return p.err
}

func testRecord(id string, sector core.Sector, yen int64, exRights, exDividend core.Date) core.BenefitRecord {
	return core.BenefitRecord{
		ID:                 id,
		CompanyName:        "テスト株式会社 " + id,
		Ticker:             "9" + id,
		Sector:             sector,
		ExRightsDate:       exRights,
		ExDividendDate:     exDividend,
		MinInvestment:      core.Money{Yen: yen},
		BenefitType:        core.BenefitGiftVoucher,
		BenefitDescription: "クオカード500円",
	}
}

func testRecords() []core.BenefitRecord {
	return []core.BenefitRecord{
		testRecord("001", core.SectorFood, 50_000,
			core.NewDate(2026, time.March, 27), core.NewDate(2026, time.March, 26)),
		testRecord("002", core.SectorRetail, 600_000,
			core.NewDate(2026, time.March, 30), core.NewDate(2026, time.March, 27)),
		testRecord("003", core.SectorFood, 1_200_000,
			core.NewDate(2026, time.September, 28), core.NewDate(2026, time.September, 27)),
	}
}

func newTestService(t *testing.T, source *stubSource, publisher RefreshPublisher) *CatalogService {
	t.Helper()
	svc := NewCatalogService(source, publisher, 16, time.Minute)
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	return svc
}

func TestCatalogService_Reload(t *testing.T) {
	source := &stubSource{records: testRecords()}
	svc := newTestService(t, source, nil)

	if got := len(svc.Records()); got != 3 {
		t.Errorf("Records() len = %d, want 3", got)
	}
	if got := svc.Version(); got != 1 {
		t.Errorf("Version() = %d, want 1", got)
	}

	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got := svc.Version(); got != 2 {
		t.Errorf("Version() after second reload = %d, want 2", got)
	}
}

func TestCatalogService_ReloadSkipsInvalidRecords(t *testing.T) {
	records := testRecords()
	records = append(records, core.BenefitRecord{ID: "bad"}) // fails validation

	source := &stubSource{records: records}
	svc := newTestService(t, source, nil)

	if got := len(svc.Records()); got != 3 {
		t.Errorf("Records() len = %d, want 3 after skipping invalid record", got)
	}
}

func TestCatalogService_ReloadSourceError(t *testing.T) {
	wantErr := errors.New("origin unreachable")
	svc := NewCatalogService(&stubSource{err: wantErr}, nil, 16, time.Minute)

	err := svc.Reload(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("Reload() error = %v, want wrapping %v", err, wantErr)
	}
	if got := svc.Version(); got != 0 {
		t.Errorf("Version() after failed reload = %d, want 0", got)
	}
}

func TestCatalogService_Query(t *testing.T) {
	svc := newTestService(t, &stubSource{records: testRecords()}, nil)

	t.Run("empty spec returns everything", func(t *testing.T) {
		res := svc.Query(core.NewFilterSpec(), 50)
		if res.Total != 3 || len(res.Items) != 3 || res.HasMore {
			t.Errorf("Query() = {total %d, items %d, hasMore %v}, want {3, 3, false}",
				res.Total, len(res.Items), res.HasMore)
		}
	})

	t.Run("sector filter", func(t *testing.T) {
		spec := core.NewFilterSpec()
		spec.Sectors[core.SectorFood] = struct{}{}
		res := svc.Query(spec, 50)
		if res.Total != 2 {
			t.Fatalf("Query() total = %d, want 2", res.Total)
		}
		if res.Items[0].ID != "001" || res.Items[1].ID != "003" {
			t.Errorf("Query() items = [%s %s], want [001 003]", res.Items[0].ID, res.Items[1].ID)
		}
	})

	t.Run("pagination clamps and reports more", func(t *testing.T) {
		res := svc.Query(core.NewFilterSpec(), 2)
		if len(res.Items) != 2 || res.Total != 3 || !res.HasMore {
			t.Errorf("Query() = {total %d, items %d, hasMore %v}, want {3, 2, true}",
				res.Total, len(res.Items), res.HasMore)
		}
	})

	t.Run("non-positive display count uses default", func(t *testing.T) {
		res := svc.Query(core.NewFilterSpec(), 0)
		if len(res.Items) != 3 {
			t.Errorf("Query() items = %d, want 3", len(res.Items))
		}
	})

	t.Run("cached result matches fresh result", func(t *testing.T) {
		spec := core.NewFilterSpec()
		spec.Sectors[core.SectorRetail] = struct{}{}
		first := svc.Query(spec, 50)
		second := svc.Query(spec, 50)
		if first.Total != second.Total || len(first.Items) != len(second.Items) {
			t.Errorf("cached Query() = %+v, want %+v", second, first)
		}
	})
}

func TestCatalogService_QueryAfterReloadSeesNewSnapshot(t *testing.T) {
	source := &stubSource{records: testRecords()}
	svc := newTestService(t, source, nil)

	// Warm the cache, then shrink the origin and reload.
	svc.Query(core.NewFilterSpec(), 50)
	source.records = source.records[:1]
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	res := svc.Query(core.NewFilterSpec(), 50)
	if res.Total != 1 {
		t.Errorf("Query() total after reload = %d, want 1", res.Total)
	}
}

func TestCatalogService_MonthCalendar(t *testing.T) {
	svc := newTestService(t, &stubSource{records: testRecords()}, nil)

	march := svc.MonthCalendar(2026, time.March)
	if !march.ExRights.Contains("2026-03-27") || !march.ExRights.Contains("2026-03-30") {
		t.Errorf("MonthCalendar() ex-rights = %v, want 2026-03-27 and 2026-03-30", march.ExRights.Keys())
	}
	if !march.ExDividend.Contains("2026-03-26") || !march.ExDividend.Contains("2026-03-27") {
		t.Errorf("MonthCalendar() ex-dividend = %v, want 2026-03-26 and 2026-03-27", march.ExDividend.Keys())
	}

	june := svc.MonthCalendar(2026, time.June)
	if len(june.ExRights) != 0 || len(june.ExDividend) != 0 {
		t.Errorf("MonthCalendar() for empty month = %v / %v, want empty", june.ExRights, june.ExDividend)
	}
}

func TestCatalogService_FilterOptions(t *testing.T) {
	svc := newTestService(t, &stubSource{records: testRecords()}, nil)

	opts := svc.FilterOptions()
	if len(opts.Sectors) != 2 {
		t.Errorf("FilterOptions() sectors = %v, want [食品 小売]", opts.Sectors)
	} else if opts.Sectors[0] != core.SectorFood || opts.Sectors[1] != core.SectorRetail {
		t.Errorf("FilterOptions() sector order = %v, want canonical [食品 小売]", opts.Sectors)
	}
	if len(opts.BenefitTypes) != 1 || opts.BenefitTypes[0] != core.BenefitGiftVoucher {
		t.Errorf("FilterOptions() benefit types = %v, want [商品券]", opts.BenefitTypes)
	}
	if len(opts.PriceRanges) != 4 {
		t.Errorf("FilterOptions() price ranges = %v, want all 4", opts.PriceRanges)
	}
}

func TestCatalogService_Record(t *testing.T) {
	svc := newTestService(t, &stubSource{records: testRecords()}, nil)

	rec, err := svc.Record("002")
	if err != nil {
		t.Fatalf("Record(002) error = %v", err)
	}
	if rec.Sector != core.SectorRetail {
		t.Errorf("Record(002) sector = %v, want %v", rec.Sector, core.SectorRetail)
	}

	_, err = svc.Record("404")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("Record(404) error = %v, want ErrRecordNotFound", err)
	}
}

func TestCatalogService_RequestRefresh(t *testing.T) {
	t.Run("publishes after reloading", func(t *testing.T) {
		publisher := &stubPublisher{}
		source := &stubSource{records: testRecords()}
		svc := newTestService(t, source, publisher)

		if err := svc.RequestRefresh(context.Background(), "manual"); err != nil {
			t.Fatalf("RequestRefresh() error = %v", err)
		}
		if source.calls != 2 {
			t.Errorf("source calls = %d, want 2", source.calls)
		}
		if len(publisher.reasons) != 1 || publisher.reasons[0] != "manual" {
			t.Errorf("published reasons = %v, want [manual]", publisher.reasons)
		}
	})

	t.Run("publish failure is not fatal", func(t *testing.T) {
		publisher := &stubPublisher{err: errors.New("broker down")}
		svc := newTestService(t, &stubSource{records: testRecords()}, publisher)

		if err := svc.RequestRefresh(context.Background(), "manual"); err != nil {
			t.Errorf("RequestRefresh() error = %v, want nil despite publish failure", err)
		}
	})

	t.Run("reload failure is fatal", func(t *testing.T) {
		source := &stubSource{records: testRecords()}
		svc := newTestService(t, source, &stubPublisher{})

		source.err = errors.New("origin unreachable")
		if err := svc.RequestRefresh(context.Background(), "manual"); err == nil {
			t.Error("RequestRefresh() error = nil, want reload error")
		}
	})

	t.Run("nil publisher is tolerated", func(t *testing.T) {
		svc := newTestService(t, &stubSource{records: testRecords()}, nil)
		if err := svc.RequestRefresh(context.Background(), "manual"); err != nil {
			t.Errorf("RequestRefresh() error = %v, want nil", err)
		}
	})
}
