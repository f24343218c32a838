// Package slots counts bookings per facility and date in Redis and turns the
// counts into an availability hook.
package slots

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/availability"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/calendar"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/facility"
	"github.com/redis/go-redis/v9"
)

var ErrFull = errors.New("no open slots on date")

// Counter keys look like "<prefix>:<facility>:<YYYY-MM-DD>".
type Counter struct {
	rdb       redis.Cmdable
	prefix    string
	retention time.Duration
}

type Config struct {
	Prefix string
	// Retention is how long a counter survives after its date has passed.
	Retention time.Duration
}

// bookScript increments the counter unless it already reached the capacity in ARGV[1].
var bookScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
if current >= tonumber(ARGV[1]) then
  return -1
end
current = redis.call("INCR", KEYS[1])
redis.call("EXPIREAT", KEYS[1], ARGV[2])
return current
`)

func NewCounter(rdb redis.Cmdable, cfg Config) *Counter {
	if cfg.Prefix == "" {
		cfg.Prefix = "slots"
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 30 * 24 * time.Hour
	}
	return &Counter{rdb: rdb, prefix: cfg.Prefix, retention: cfg.Retention}
}

func (c *Counter) key(facilityName string, d calendar.Date) string {
	return fmt.Sprintf("%s:%s:%s", c.prefix, strings.ToLower(strings.TrimSpace(facilityName)), d)
}

// Book takes one slot on d, failing with ErrFull when the weekday capacity is used up.
func (c *Counter) Book(ctx context.Context, f *facility.Facility, d calendar.Date) (int64, error) {
	capacity := f.SlotsPerDay(d.Weekday())
	expireAt := d.Midnight().Add(24 * time.Hour)
	if now := time.Now(); expireAt.Before(now) {
		expireAt = now
	}
	n, err := bookScript.Run(ctx, c.rdb, []string{c.key(f.Name(), d)}, capacity, expireAt.Add(c.retention).Unix()).Int64()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s at %s", ErrFull, d, f.Name())
	}
	return n, nil
}

// Release gives back one slot on d. It never goes below zero.
func (c *Counter) Release(ctx context.Context, facilityName string, d calendar.Date) error {
	key := c.key(facilityName, d)
	n, err := c.rdb.Decr(ctx, key).Result()
	if err != nil {
		return err
	}
	if n <= 0 {
		return c.rdb.Del(ctx, key).Err()
	}
	return nil
}

// Booked returns the booked count for each date; missing counters count as zero.
func (c *Counter) Booked(ctx context.Context, facilityName string, dates []calendar.Date) (map[calendar.Date]int, error) {
	out := make(map[calendar.Date]int, len(dates))
	if len(dates) == 0 {
		return out, nil
	}
	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = c.key(facilityName, d)
	}
	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("counter %s: %w", keys[i], err)
		}
		out[dates[i]] = n
	}
	return out, nil
}

// OpenSlotFunc prefetches the counts for dates and returns a hook that rejects
// any date whose count reached the facility's capacity for that weekday.
func (c *Counter) OpenSlotFunc(ctx context.Context, f *facility.Facility, dates []calendar.Date) (availability.SlotFunc, error) {
	booked, err := c.Booked(ctx, f.Name(), dates)
	if err != nil {
		return nil, err
	}
	return func(d calendar.Date) bool {
		return booked[d] < f.SlotsPerDay(d.Weekday())
	}, nil
}
