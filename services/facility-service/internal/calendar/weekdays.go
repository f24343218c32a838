package calendar

import (
	"fmt"
	"strings"
)

// UnboundedCapacity is the slot count of an open weekday with no explicit capacity.
const UnboundedCapacity = 99999

// WeekdayCalendar holds the days a facility is open and the slot capacity per day.
type WeekdayCalendar struct {
	days     []Weekday
	open     [7]bool
	capacity map[Weekday]int
}

// NewWeekdayCalendar normalizes day tokens. Duplicates collapse onto their first position.
func NewWeekdayCalendar(tokens []any, capacity map[Weekday]int) (*WeekdayCalendar, error) {
	c := &WeekdayCalendar{capacity: make(map[Weekday]int, len(capacity))}
	for _, token := range tokens {
		w, err := ParseWeekday(token)
		if err != nil {
			return nil, err
		}
		if c.open[w] {
			continue
		}
		c.open[w] = true
		c.days = append(c.days, w)
	}
	for w, n := range capacity {
		if !w.Valid() {
			return nil, fmt.Errorf("%w: capacity for %v", ErrUnknownWeekday, int(w))
		}
		if n <= 0 {
			return nil, fmt.Errorf("capacity for %s must be positive, got %d", w, n)
		}
		c.capacity[w] = n
	}
	return c, nil
}

func (c *WeekdayCalendar) IsOpenOn(w Weekday) bool {
	return w.Valid() && c.open[w]
}

func (c *WeekdayCalendar) CapacityOn(w Weekday) int {
	if n, ok := c.capacity[w]; ok {
		return n
	}
	return UnboundedCapacity
}

// Weekdays returns the open days in configuration order.
func (c *WeekdayCalendar) Weekdays() []Weekday {
	out := make([]Weekday, len(c.days))
	copy(out, c.days)
	return out
}

// ClinicDays renders the open days as "Mon, Wed".
func (c *WeekdayCalendar) ClinicDays() string {
	parts := make([]string, 0, len(c.days))
	for _, w := range c.days {
		parts = append(parts, w.Short())
	}
	return strings.Join(parts, ", ")
}
