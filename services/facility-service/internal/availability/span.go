// Package availability finds the nearest date a facility can take a visit.
package availability

import "github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/calendar"

// Span is the ordered scan for one search. Min is inclusive. Max is produced by
// the closed enumeration but is exclusive when a candidate is accepted.
type Span struct {
	Candidates []calendar.Date
	Min        calendar.Date
	Max        calendar.Date
}

// Contains reports whether d may be accepted: Min <= d < Max.
func (s Span) Contains(d calendar.Date) bool {
	return !d.Before(s.Min) && d.Before(s.Max)
}

// BuildSpan orders every date in [suggested-reverse, suggested+forward] by
// distance from suggested. At equal distance the later date comes first, and
// suggested itself always leads.
func BuildSpan(suggested calendar.Date, forward, reverse calendar.Window) Span {
	minDate := reverse.SubtractFrom(suggested)
	maxDate := forward.AddTo(suggested)

	var before, after []calendar.Date
	for d := minDate; !d.After(maxDate); d = d.AddDays(1) {
		switch {
		case d.Before(suggested):
			before = append(before, d)
		case d.After(suggested):
			after = append(after, d)
		}
	}
	// nearest first
	for i, j := 0, len(before)-1; i < j; i, j = i+1, j-1 {
		before[i], before[j] = before[j], before[i]
	}

	candidates := make([]calendar.Date, 0, 1+len(before)+len(after))
	candidates = append(candidates, suggested)
	for i := 0; i < len(after) || i < len(before); i++ {
		if i < len(after) {
			candidates = append(candidates, after[i])
		}
		if i < len(before) {
			candidates = append(candidates, before[i])
		}
	}
	return Span{Candidates: candidates, Min: minDate, Max: maxDate}
}
