// Package storage persists the benefit record snapshot in SQLite. The
// snapshot is write-once-per-refresh: the worker replaces it wholesale and
// the server reads it back in original document order. SQLite is a cache of
// the origin document, not a query engine; all filtering happens in memory.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"yutai/internal/core"

	_ "modernc.org/sqlite"
)

const metaKeyLoadedAt = "loaded_at"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListRecords implements catalog.RecordSource, returning the snapshot in the
// order the origin document listed it.
func (r *SQLiteRepository) ListRecords(ctx context.Context) ([]core.BenefitRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company_name, ticker, sector, ex_rights_date, ex_dividend_date,
		       min_investment_yen, benefit_type, benefit_description, benefit_details,
		       url, previous_close_yen, benefit_value_yen, dividend_yield, total_yield
		FROM benefits ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query benefits: %w", err)
	}
	defer rows.Close()

	var records []core.BenefitRecord
	for rows.Next() {
		var (
			rec                  core.BenefitRecord
			sector, benefitType  string
			exRights, exDividend string
		)
		if err := rows.Scan(
			&rec.ID, &rec.CompanyName, &rec.Ticker, &sector, &exRights, &exDividend,
			&rec.MinInvestment.Yen, &benefitType, &rec.BenefitDescription, &rec.BenefitDetails,
			&rec.URL, &rec.PreviousClosePrice.Yen, &rec.BenefitValue.Yen,
			&rec.DividendYield, &rec.TotalYield,
		); err != nil {
			return nil, fmt.Errorf("scan benefit row: %w", err)
		}
		rec.Sector = core.Sector(sector)
		rec.BenefitType = core.BenefitType(benefitType)
		if rec.ExRightsDate, err = core.ParseDate(exRights); err != nil {
			return nil, fmt.Errorf("record %s: ex-rights date %q: %w", rec.ID, exRights, err)
		}
		if rec.ExDividendDate, err = core.ParseDate(exDividend); err != nil {
			return nil, fmt.Errorf("record %s: ex-dividend date %q: %w", rec.ID, exDividend, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate benefit rows: %w", err)
	}
	return records, nil
}

// ReplaceAll swaps the whole snapshot in one transaction and stamps the load
// time. Returns the number of records written.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, records []core.BenefitRecord) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM benefits`); err != nil {
		return 0, fmt.Errorf("clear benefits: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO benefits (
			id, company_name, ticker, sector, ex_rights_date, ex_dividend_date,
			min_investment_yen, benefit_type, benefit_description, benefit_details,
			url, previous_close_yen, benefit_value_yen, dividend_yield, total_yield, position
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.ID, rec.CompanyName, rec.Ticker, string(rec.Sector),
			rec.ExRightsDate.Key(), rec.ExDividendDate.Key(),
			rec.MinInvestment.Yen, string(rec.BenefitType),
			rec.BenefitDescription, rec.BenefitDetails, rec.URL,
			rec.PreviousClosePrice.Yen, rec.BenefitValue.Yen,
			rec.DividendYield, rec.TotalYield, i,
		); err != nil {
			return 0, fmt.Errorf("insert record %s: %w", rec.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO catalog_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		metaKeyLoadedAt, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return 0, fmt.Errorf("stamp load time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Benefit snapshot replaced", "count", len(records))
	return len(records), nil
}

// Count returns the number of records in the snapshot.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM benefits`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count benefits: %w", err)
	}
	return n, nil
}

// LastLoadedAt returns the stamp of the latest ReplaceAll, or the zero time
// if the snapshot has never been written.
func (r *SQLiteRepository) LastLoadedAt(ctx context.Context) (time.Time, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM catalog_meta WHERE key = ?`, metaKeyLoadedAt).Scan(&raw)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read load time: %w", err)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse load time %q: %w", raw, err)
	}
	return t, nil
}
