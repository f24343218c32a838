package calendar

import (
	"fmt"
	"time"
)

// Window is a calendar-based duration. Months are applied before days and
// clamp to the last day of the target month instead of rolling over.
type Window struct {
	Years  int `json:"years,omitempty" yaml:"years,omitempty"`
	Months int `json:"months,omitempty" yaml:"months,omitempty"`
	Days   int `json:"days,omitempty" yaml:"days,omitempty"`
}

func Months(n int) Window { return Window{Months: n} }
func Days(n int) Window   { return Window{Days: n} }

func (w Window) IsZero() bool { return w == Window{} }

func (w Window) AddTo(d Date) Date {
	return shift(d, w.Years, w.Months, w.Days)
}

func (w Window) SubtractFrom(d Date) Date {
	return shift(d, -w.Years, -w.Months, -w.Days)
}

// DaysFrom is the number of days covered by the window applied forward from d.
func (w Window) DaysFrom(d Date) int {
	return d.DaysUntil(w.AddTo(d))
}

// DaysBefore is the number of days covered by the window applied backward from d.
func (w Window) DaysBefore(d Date) int {
	return w.SubtractFrom(d).DaysUntil(d)
}

func (w Window) String() string {
	return fmt.Sprintf("%dy%dm%dd", w.Years, w.Months, w.Days)
}

func shift(d Date, years, months, days int) Date {
	total := d.Year*12 + int(d.Month-1) + years*12 + months
	y, m := total/12, time.Month(total%12+1)
	if total < 0 && total%12 != 0 {
		y, m = total/12-1, time.Month(total%12+13)
	}
	day := d.Day
	if last := daysIn(y, m); day > last {
		day = last
	}
	return Date{Year: y, Month: m, Day: day}.AddDays(days)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
