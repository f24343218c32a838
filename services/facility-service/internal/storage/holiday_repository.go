package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/md-rashed-zaman/facilitycal/libs/db"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/calendar"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/holidays"
)

// HolidayRepository persists holidays and serves them as a holidays.Source.
type HolidayRepository struct {
	pool *db.Pool
}

func NewHolidayRepository(pool *db.Pool) *HolidayRepository {
	return &HolidayRepository{pool: pool}
}

var _ holidays.Source = (*HolidayRepository)(nil)

func (r *HolidayRepository) Holidays(ctx context.Context) ([]holidays.Holiday, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT country, local_date, name
		FROM holidays
		ORDER BY country, local_date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []holidays.Holiday
	for rows.Next() {
		var (
			h    holidays.Holiday
			date time.Time
		)
		if err := rows.Scan(&h.Country, &date, &h.Name); err != nil {
			return nil, err
		}
		// DATE columns decode as midnight UTC.
		h.Date = calendar.DateOf(date)
		out = append(out, h)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

// Import inserts holidays in one batch, replacing the name of existing
// (country, date) rows. It returns the number of rows written.
func (r *HolidayRepository) Import(ctx context.Context, hs []holidays.Holiday) (int, error) {
	if len(hs) == 0 {
		return 0, nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, h := range hs {
		batch.Queue(`
			INSERT INTO holidays (country, local_date, name)
			VALUES (lower($1), $2, $3)
			ON CONFLICT (country, local_date) DO UPDATE SET name = EXCLUDED.name
		`, h.Country, h.Date.Midnight(), truncate(h.Name, 25))
	}
	br := tx.SendBatch(ctx, batch)
	for range hs {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return 0, err
		}
	}
	if err := br.Close(); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(hs), nil
}

// CountByCountry returns the holiday count per country.
func (r *HolidayRepository) CountByCountry(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT country, count(*) FROM holidays GROUP BY country`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var (
			country string
			n       int
		)
		if err := rows.Scan(&country, &n); err != nil {
			return nil, err
		}
		out[country] = n
	}
	return out, rows.Err()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
