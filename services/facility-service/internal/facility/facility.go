// Package facility describes a health facility's opening schedule.
package facility

import (
	"errors"
	"fmt"
	"strings"

	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/calendar"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrConfiguration = errors.New("facility configuration error")

// ConfigurationError reports a facility that cannot be constructed.
type ConfigurationError struct {
	Name   string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("facility %q: %s", e.Name, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// Facility is immutable once built and safe to share between goroutines.
//
// A best-effort facility falls back to the suggested date when nothing in the
// window is available. That can violate a visit protocol and is meant for
// facilities open only one or two days a week.
type Facility struct {
	name       string
	calendar   *calendar.WeekdayCalendar
	bestEffort bool
}

type options struct {
	slots      []int
	capacity   map[calendar.Weekday]int
	bestEffort bool
}

type Option func(*options)

// WithSlots sets the slot capacity per configured day, positionally.
func WithSlots(slots []int) Option {
	return func(o *options) { o.slots = slots }
}

// WithCapacity sets the slot capacity per weekday.
func WithCapacity(capacity map[calendar.Weekday]int) Option {
	return func(o *options) {
		if o.capacity == nil {
			o.capacity = make(map[calendar.Weekday]int, len(capacity))
		}
		for w, n := range capacity {
			o.capacity[w] = n
		}
	}
}

func WithBestEffort(enabled bool) Option {
	return func(o *options) { o.bestEffort = enabled }
}

func New(name string, days []any, opts ...Option) (*Facility, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ConfigurationError{Reason: "name is required"}
	}
	o := options{bestEffort: true}
	for _, opt := range opts {
		opt(&o)
	}

	capacity := make(map[calendar.Weekday]int, len(o.capacity)+len(o.slots))
	if len(o.slots) > 0 {
		if len(o.slots) > len(days) {
			return nil, &ConfigurationError{Name: name, Reason: fmt.Sprintf("%d slot values for %d days", len(o.slots), len(days))}
		}
		for i, n := range o.slots {
			w, err := calendar.ParseWeekday(days[i])
			if err != nil {
				return nil, &ConfigurationError{Name: name, Reason: "invalid day", Err: err}
			}
			capacity[w] = n
		}
	}
	for w, n := range o.capacity {
		capacity[w] = n
	}

	cal, err := calendar.NewWeekdayCalendar(days, capacity)
	if err != nil {
		return nil, &ConfigurationError{Name: name, Reason: "invalid schedule", Err: err}
	}
	return &Facility{name: name, calendar: cal, bestEffort: o.bestEffort}, nil
}

func (f *Facility) Name() string { return f.name }

func (f *Facility) Calendar() *calendar.WeekdayCalendar { return f.calendar }

func (f *Facility) BestEffort() bool { return f.bestEffort }

func (f *Facility) IsOpenOn(w calendar.Weekday) bool { return f.calendar.IsOpenOn(w) }

// SlotsPerDay is the booking capacity on w.
func (f *Facility) SlotsPerDay(w calendar.Weekday) int { return f.calendar.CapacityOn(w) }

// String renders e.g. "Amana Clinic Monday(30 slots), Wednesday(99999 slots)".
func (f *Facility) String() string {
	days := f.calendar.Weekdays()
	parts := make([]string, 0, len(days))
	for _, w := range days {
		parts = append(parts, fmt.Sprintf("%s(%d slots)", w, f.calendar.CapacityOn(w)))
	}
	return strings.TrimSpace(cases.Title(language.Und).String(f.name) + " " + strings.Join(parts, ", "))
}

func (f *Facility) GoString() string {
	days := f.calendar.Weekdays()
	names := make([]string, 0, len(days))
	for _, w := range days {
		names = append(names, w.Short())
	}
	return fmt.Sprintf("Facility(name=%s, days=[%s])", f.name, strings.Join(names, ", "))
}
