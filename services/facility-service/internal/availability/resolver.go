package availability

import (
	"time"

	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/calendar"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/facility"
)

// DefaultForward is used when a request leaves the forward window empty.
var DefaultForward = calendar.Months(1)

// SlotFunc reports whether a date still has an open slot. It is the hook for
// load balancing, e.g. rejecting a Monday once 30 of 30 slots are booked.
type SlotFunc func(calendar.Date) bool

// HolidayChecker is satisfied by *holidays.Registry.
type HolidayChecker interface {
	IsHoliday(country string, d calendar.Date) bool
}

type Request struct {
	// Suggested is the ideal visit time. Nil means now.
	Suggested *time.Time
	Forward   calendar.Window
	Reverse   calendar.Window
	// Taken are already fully booked instants, compared by UTC date.
	Taken              []time.Time
	ScheduleOnHolidays bool
	Country            string
	// OpenSlot overrides the resolver's hook for this request.
	OpenSlot SlotFunc
}

type Result struct {
	At   time.Time
	Date calendar.Date
	// BestEffort is set when no date qualified and the suggested date was returned unchecked.
	BestEffort bool
	Span       Span
}

// Resolver is stateless and safe for concurrent use.
type Resolver struct {
	holidays HolidayChecker
	openSlot SlotFunc
	now      func() time.Time
}

type ResolverOption func(*Resolver)

func WithOpenSlot(fn SlotFunc) ResolverOption {
	return func(r *Resolver) { r.openSlot = fn }
}

func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

func NewResolver(holidays HolidayChecker, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		holidays: holidays,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the available date at the suggested time of day, in UTC.
func (r *Resolver) Resolve(f *facility.Facility, req Request) (time.Time, error) {
	res, err := r.ResolveDetailed(f, req)
	if err != nil {
		return time.Time{}, err
	}
	return res.At, nil
}

// Span returns the scan order Resolve would use for req, with defaults applied.
// Callers use it to prefetch per-date state for an OpenSlot hook.
func (r *Resolver) Span(req Request) Span {
	suggested, forward := r.defaults(req)
	return BuildSpan(calendar.DateOf(suggested), forward, req.Reverse)
}

func (r *Resolver) defaults(req Request) (time.Time, calendar.Window) {
	suggested := r.now()
	if req.Suggested != nil {
		suggested = *req.Suggested
	}
	forward := req.Forward
	if forward.IsZero() {
		forward = DefaultForward
	}
	return suggested, forward
}

func (r *Resolver) ResolveDetailed(f *facility.Facility, req Request) (Result, error) {
	suggested, forward := r.defaults(req)
	suggestedDate := calendar.DateOf(suggested)

	taken := make(map[calendar.Date]struct{}, len(req.Taken))
	for _, t := range req.Taken {
		taken[calendar.UTCDateOf(t)] = struct{}{}
	}

	openSlot := req.OpenSlot
	if openSlot == nil {
		openSlot = r.openSlot
	}

	span := BuildSpan(suggestedDate, forward, req.Reverse)
	for _, d := range span.Candidates {
		if !f.IsOpenOn(d.Weekday()) || !span.Contains(d) {
			continue
		}
		// Holidays are keyed on the UTC date of the candidate instant, not its local date.
		if !req.ScheduleOnHolidays && r.holidays != nil && r.holidays.IsHoliday(req.Country, calendar.UTCDateOf(d.At(suggested))) {
			continue
		}
		if _, ok := taken[d]; ok {
			continue
		}
		if openSlot != nil && !openSlot(d) {
			continue
		}
		return Result{At: d.At(suggested).UTC(), Date: d, Span: span}, nil
	}

	if f.BestEffort() {
		return Result{At: suggestedDate.At(suggested).UTC(), Date: suggestedDate, BestEffort: true, Span: span}, nil
	}
	return Result{}, &NoAvailabilityError{
		Facility:    f.GoString(),
		Suggested:   suggestedDate,
		ReverseDays: req.Reverse.DaysBefore(suggestedDate),
		ForwardDays: forward.DaysFrom(suggestedDate),
	}
}
