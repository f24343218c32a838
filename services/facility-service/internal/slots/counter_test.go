package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/availability"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/calendar"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/facility"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCounter(t *testing.T) (*Counter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCounter(rdb, Config{Prefix: "test"}), mr
}

// 2024-01-01 is a Monday.
var monday = calendar.NewDate(2024, time.January, 1)

func TestCounter_BookUntilFull(t *testing.T) {
	c, mr := setupCounter(t)
	ctx := context.Background()
	f, err := facility.New("Clinic", []any{"mon"}, facility.WithSlots([]int{2}))
	require.NoError(t, err)

	n, err := c.Book(ctx, f, monday)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = c.Book(ctx, f, monday)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, err = c.Book(ctx, f, monday)
	assert.True(t, errors.Is(err, ErrFull), "expected ErrFull, got %v", err)

	assert.Equal(t, "2", mustGet(t, mr, "test:clinic:2024-01-01"))
	assert.True(t, mr.TTL("test:clinic:2024-01-01") > 0)

	require.NoError(t, c.Release(ctx, "Clinic", monday))
	booked, err := c.Booked(ctx, "clinic", []calendar.Date{monday, monday.AddDays(7)})
	require.NoError(t, err)
	assert.Equal(t, 1, booked[monday])
	assert.Equal(t, 0, booked[monday.AddDays(7)])
}

func TestCounter_ReleaseDeletesEmptyCounter(t *testing.T) {
	c, mr := setupCounter(t)
	ctx := context.Background()
	f, err := facility.New("Clinic", []any{"mon"})
	require.NoError(t, err)

	_, err = c.Book(ctx, f, monday)
	require.NoError(t, err)
	require.NoError(t, c.Release(ctx, "clinic", monday))
	assert.False(t, mr.Exists("test:clinic:2024-01-01"))
}

func TestCounter_OpenSlotFuncDrivesResolver(t *testing.T) {
	c, _ := setupCounter(t)
	ctx := context.Background()
	f, err := facility.New("Clinic", []any{"mon"}, facility.WithSlots([]int{1}), facility.WithBestEffort(false))
	require.NoError(t, err)

	_, err = c.Book(ctx, f, monday)
	require.NoError(t, err)

	suggested := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	span := availability.BuildSpan(monday, calendar.Days(14), calendar.Window{})
	hook, err := c.OpenSlotFunc(ctx, f, span.Candidates)
	require.NoError(t, err)

	got, err := availability.NewResolver(nil).Resolve(f, availability.Request{
		Suggested: &suggested,
		Forward:   calendar.Days(14),
		OpenSlot:  hook,
	})
	require.NoError(t, err)
	assert.Equal(t, monday.AddDays(7), calendar.DateOf(got))
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}
