// Package holidays answers whether a calendar date is a public holiday in a country.
package holidays

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/calendar"
)

type Holiday struct {
	Country string        `json:"country"`
	Date    calendar.Date `json:"date"`
	Name    string        `json:"name"`
}

func (h Holiday) String() string {
	return fmt.Sprintf("%s on %s", h.Name, h.Date)
}

// Source bulk-supplies holidays, e.g. from a database table or a file.
type Source interface {
	Holidays(ctx context.Context) ([]Holiday, error)
}

type key struct {
	country string
	date    calendar.Date
}

// Registry is an append-only set of (country, date) holidays.
type Registry struct {
	mu   sync.RWMutex
	days map[key]Holiday
}

func NewRegistry(hs ...Holiday) *Registry {
	r := &Registry{days: make(map[key]Holiday, len(hs))}
	r.Add(hs...)
	return r
}

// Load appends every holiday from src and returns how many were read.
func (r *Registry) Load(ctx context.Context, src Source) (int, error) {
	hs, err := src.Holidays(ctx)
	if err != nil {
		return 0, err
	}
	r.Add(hs...)
	return len(hs), nil
}

// Add records holidays. A later entry for the same country and date replaces the name.
func (r *Registry) Add(hs ...Holiday) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range hs {
		h.Country = normalizeCountry(h.Country)
		r.days[key{h.Country, h.Date}] = h
	}
}

func (r *Registry) IsHoliday(country string, d calendar.Date) bool {
	_, ok := r.Lookup(country, d)
	return ok
}

// IsHolidayAt checks the UTC calendar date of t.
func (r *Registry) IsHolidayAt(country string, t time.Time) bool {
	return r.IsHoliday(country, calendar.UTCDateOf(t))
}

func (r *Registry) Lookup(country string, d calendar.Date) (Holiday, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.days[key{normalizeCountry(country), d}]
	return h, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.days)
}

func (r *Registry) CountFor(country string) int {
	country = normalizeCountry(country)
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for k := range r.days {
		if k.country == country {
			n++
		}
	}
	return n
}

// List returns the holidays of a country in date order.
func (r *Registry) List(country string) []Holiday {
	country = normalizeCountry(country)
	r.mu.RLock()
	var out []Holiday
	for k, h := range r.days {
		if k.country == country {
			out = append(out, h)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Countries lists the distinct countries with at least one holiday, sorted.
func (r *Registry) Countries() []string {
	r.mu.RLock()
	seen := make(map[string]struct{})
	for k := range r.days {
		seen[k.country] = struct{}{}
	}
	r.mu.RUnlock()
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Check returns warnings about an empty registry or a country with no holidays.
func (r *Registry) Check(country string) []string {
	if r.Len() == 0 {
		return []string{"holiday registry is empty; import holidays before scheduling"}
	}
	if country != "" && r.CountFor(country) == 0 {
		return []string{fmt.Sprintf("no holidays defined for country %q; expected one of %v", normalizeCountry(country), r.Countries())}
	}
	return nil
}

func normalizeCountry(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
