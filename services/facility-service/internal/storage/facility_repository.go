package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/md-rashed-zaman/facilitycal/libs/db"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/facility"
)

// FacilityRepository stores facility configs in health_facilities.
type FacilityRepository struct {
	pool *db.Pool
}

func NewFacilityRepository(pool *db.Pool) *FacilityRepository {
	return &FacilityRepository{pool: pool}
}

var _ facility.Store = (*FacilityRepository)(nil)

func (r *FacilityRepository) Get(ctx context.Context, name string) (facility.Config, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT name, country, open_days, slots, capacity, best_effort, notes
		FROM health_facilities
		WHERE lower(name) = lower($1)
	`, strings.TrimSpace(name))
	c, err := scanFacility(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return facility.Config{}, facility.ErrNotFound
	}
	return c, err
}

func (r *FacilityRepository) List(ctx context.Context) ([]facility.Config, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name, country, open_days, slots, capacity, best_effort, notes
		FROM health_facilities
		ORDER BY lower(name)
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []facility.Config
	for rows.Next() {
		c, err := scanFacility(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

// Upsert validates the config before writing it.
func (r *FacilityRepository) Upsert(ctx context.Context, c facility.Config) error {
	if _, err := c.Build(); err != nil {
		return err
	}
	bestEffort := true
	if c.BestEffort != nil {
		bestEffort = *c.BestEffort
	}
	days := c.Days
	if days == nil {
		days = []string{}
	}
	capacity := c.Capacity
	if capacity == nil {
		capacity = map[string]int{}
	}
	slots := make([]int32, len(c.Slots))
	for i, s := range c.Slots {
		slots[i] = int32(s)
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO health_facilities (name, country, open_days, slots, capacity, best_effort, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO UPDATE
		SET country = EXCLUDED.country,
			open_days = EXCLUDED.open_days,
			slots = EXCLUDED.slots,
			capacity = EXCLUDED.capacity,
			best_effort = EXCLUDED.best_effort,
			notes = EXCLUDED.notes,
			updated_at = now()
	`, strings.TrimSpace(c.Name), c.Country, days, slots, capacity, bestEffort, c.Notes)
	return err
}

func scanFacility(row pgx.Row) (facility.Config, error) {
	var (
		c          facility.Config
		slots      []int32
		bestEffort bool
	)
	if err := row.Scan(&c.Name, &c.Country, &c.Days, &slots, &c.Capacity, &bestEffort, &c.Notes); err != nil {
		return facility.Config{}, err
	}
	for _, s := range slots {
		c.Slots = append(c.Slots, int(s))
	}
	if len(c.Capacity) == 0 {
		c.Capacity = nil
	}
	c.BestEffort = &bestEffort
	return c, nil
}
