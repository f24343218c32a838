package holidays

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/calendar"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/aa"
	"github.com/rickar/cal/v2/us"
)

// Built-in national calendars, keyed by lower-case country name.
var builtin = map[string][]*cal.Holiday{
	"united states": us.Holidays,
	"botswana": {
		aa.NewYear, aa.GoodFriday, aa.EasterMonday, aa.WorkersDay,
		aa.AscensionDay, aa.ChristmasDay, aa.ChristmasDay2,
	},
	"uganda": {
		aa.NewYear, aa.GoodFriday, aa.EasterMonday, aa.WorkersDay, aa.ChristmasDay, aa.ChristmasDay2,
	},
}

// CalendarSource generates holidays for a country from a built-in calendar.
type CalendarSource struct {
	Country  string
	FromYear int
	ToYear   int
	// Observed uses the observed date (e.g. Monday for a Sunday holiday) instead of the actual one.
	Observed bool
}

// KnownCalendars lists the built-in calendar names, sorted.
func KnownCalendars() []string {
	out := make([]string, 0, len(builtin))
	for c := range builtin {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func (s CalendarSource) Holidays(_ context.Context) ([]Holiday, error) {
	defs, ok := builtin[normalizeCountry(s.Country)]
	if !ok {
		return nil, fmt.Errorf("no built-in holiday calendar for %q", s.Country)
	}
	if s.ToYear < s.FromYear {
		return nil, fmt.Errorf("invalid year range %d-%d", s.FromYear, s.ToYear)
	}
	var out []Holiday
	for year := s.FromYear; year <= s.ToYear; year++ {
		for _, def := range defs {
			actual, observed := def.Calc(year)
			day := actual
			if s.Observed {
				day = observed
			}
			if day.IsZero() {
				continue
			}
			out = append(out, Holiday{
				Country: strings.TrimSpace(s.Country),
				Date:    calendar.DateOf(day),
				Name:    def.Name,
			})
		}
	}
	return out, nil
}
