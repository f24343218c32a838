package availability

import (
	"errors"
	"fmt"

	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/calendar"
)

var ErrNoAvailability = errors.New("no available appointment dates")

// NoAvailabilityError is returned by a strict facility when no date in the window is free.
type NoAvailabilityError struct {
	Facility    string
	Suggested   calendar.Date
	ReverseDays int
	ForwardDays int
}

func (e *NoAvailabilityError) Error() string {
	return fmt.Sprintf("no available appointment dates at facility for period: got no available dates within %d-%d days of %s; facility is %s",
		e.ReverseDays, e.ForwardDays, e.Suggested, e.Facility)
}

func (e *NoAvailabilityError) Is(target error) bool { return target == ErrNoAvailability }
