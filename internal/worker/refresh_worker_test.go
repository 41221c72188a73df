package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"yutai/internal/amqp"
	"yutai/internal/core"
)

type stubOrigin struct {
	records []core.BenefitRecord
	err     error
}

func (o *stubOrigin) ListRecords(ctx context.Context) ([]core.BenefitRecord, error) {
	if o.err != nil {
		return nil, o.err
	}
	return o.records, nil
}

type stubStore struct {
	stored     []core.BenefitRecord
	loadedAt   time.Time
	replaceErr error
	replaces   int
}

func (s *stubStore) ReplaceAll(ctx context.Context, records []core.BenefitRecord) (int, error) {
	if s.replaceErr != nil {
		return 0, s.replaceErr
	}
	s.replaces++
	s.stored = records
	s.loadedAt = time.Now()
	return len(records), nil
}

func (s *stubStore) Count(ctx context.Context) (int, error) {
	return len(s.stored), nil
}

func (s *stubStore) LastLoadedAt(ctx context.Context) (time.Time, error) {
	return s.loadedAt, nil
}

func validRecord(id string) core.BenefitRecord {
	return core.BenefitRecord{
		ID:                 id,
		CompanyName:        "テスト株式会社 " + id,
		Ticker:             "9" + id,
		Sector:             core.SectorFood,
		ExRightsDate:       core.NewDate(2026, time.March, 27),
		ExDividendDate:     core.NewDate(2026, time.March, 26),
		MinInvestment:      core.Money{Yen: 100_000},
		BenefitType:        core.BenefitGiftVoucher,
		BenefitDescription: "クオカード500円",
	}
}

func TestRefreshWorker_Refresh(t *testing.T) {
	origin := &stubOrigin{records: []core.BenefitRecord{validRecord("001"), validRecord("002")}}
	store := &stubStore{}
	w := NewRefreshWorker(origin, store, time.Hour)

	if err := w.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(store.stored) != 2 {
		t.Errorf("stored records = %d, want 2", len(store.stored))
	}
}

func TestRefreshWorker_RefreshSkipsInvalid(t *testing.T) {
	origin := &stubOrigin{records: []core.BenefitRecord{
		validRecord("001"),
		{ID: "bad"},
	}}
	store := &stubStore{}
	w := NewRefreshWorker(origin, store, time.Hour)

	if err := w.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(store.stored) != 1 || store.stored[0].ID != "001" {
		t.Errorf("stored records = %v, want only 001", store.stored)
	}
}

func TestRefreshWorker_RefreshErrors(t *testing.T) {
	t.Run("origin failure", func(t *testing.T) {
		wantErr := errors.New("origin unreachable")
		w := NewRefreshWorker(&stubOrigin{err: wantErr}, &stubStore{}, time.Hour)

		if err := w.Refresh(context.Background()); !errors.Is(err, wantErr) {
			t.Errorf("Refresh() error = %v, want wrapping %v", err, wantErr)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		wantErr := errors.New("disk full")
		origin := &stubOrigin{records: []core.BenefitRecord{validRecord("001")}}
		w := NewRefreshWorker(origin, &stubStore{replaceErr: wantErr}, time.Hour)

		if err := w.Refresh(context.Background()); !errors.Is(err, wantErr) {
			t.Errorf("Refresh() error = %v, want wrapping %v", err, wantErr)
		}
	})
}

func TestRefreshWorker_HandleRefreshMessage(t *testing.T) {
	origin := &stubOrigin{records: []core.BenefitRecord{validRecord("001")}}
	store := &stubStore{}
	w := NewRefreshWorker(origin, store, time.Hour)

	msg := amqp.NewCatalogRefreshMessage("manual")
	if err := w.HandleRefreshMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleRefreshMessage() error = %v", err)
	}
	if store.replaces != 1 {
		t.Errorf("store replaces = %d, want 1", store.replaces)
	}
}

func TestRefreshWorker_StartupCheck(t *testing.T) {
	origin := &stubOrigin{records: []core.BenefitRecord{validRecord("001")}}

	t.Run("empty store refreshes", func(t *testing.T) {
		store := &stubStore{}
		w := NewRefreshWorker(origin, store, time.Hour)

		if err := w.StartupCheck(context.Background()); err != nil {
			t.Fatalf("StartupCheck() error = %v", err)
		}
		if store.replaces != 1 {
			t.Errorf("store replaces = %d, want 1", store.replaces)
		}
	})

	t.Run("stale snapshot refreshes", func(t *testing.T) {
		store := &stubStore{
			stored:   []core.BenefitRecord{validRecord("001")},
			loadedAt: time.Now().Add(-2 * time.Hour),
		}
		w := NewRefreshWorker(origin, store, time.Hour)

		if err := w.StartupCheck(context.Background()); err != nil {
			t.Fatalf("StartupCheck() error = %v", err)
		}
		if store.replaces != 1 {
			t.Errorf("store replaces = %d, want 1", store.replaces)
		}
	})

	t.Run("fresh snapshot is left alone", func(t *testing.T) {
		store := &stubStore{
			stored:   []core.BenefitRecord{validRecord("001")},
			loadedAt: time.Now().Add(-time.Minute),
		}
		w := NewRefreshWorker(origin, store, time.Hour)

		if err := w.StartupCheck(context.Background()); err != nil {
			t.Fatalf("StartupCheck() error = %v", err)
		}
		if store.replaces != 0 {
			t.Errorf("store replaces = %d, want 0", store.replaces)
		}
	})
}
