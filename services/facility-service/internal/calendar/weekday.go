package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Weekday indexes days from Monday (0) to Sunday (6).
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var ErrUnknownWeekday = errors.New("unknown weekday")

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var weekdayTokens = func() map[string]Weekday {
	m := make(map[string]Weekday, len(weekdayNames)*3)
	for i, name := range weekdayNames {
		lower := strings.ToLower(name)
		m[lower] = Weekday(i)
		m[lower[:3]] = Weekday(i)
		m[lower[:2]] = Weekday(i)
	}
	return m
}()

func (w Weekday) Valid() bool { return w >= Monday && w <= Sunday }

func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// Short returns the three-letter abbreviation, e.g. "Mon".
func (w Weekday) Short() string {
	return w.String()[:3]
}

func FromTimeWeekday(w time.Weekday) Weekday {
	return Weekday((int(w) + 6) % 7)
}

// ParseWeekday normalizes a day token: an English name or its two/three-letter
// abbreviation (any case), an integer 0-6, a Weekday or a time.Weekday.
func ParseWeekday(token any) (Weekday, error) {
	switch v := token.(type) {
	case Weekday:
		return checkIndex(int(v), token)
	case time.Weekday:
		if v < time.Sunday || v > time.Saturday {
			return 0, fmt.Errorf("%w: %v", ErrUnknownWeekday, token)
		}
		return FromTimeWeekday(v), nil
	case string:
		if w, ok := weekdayTokens[strings.ToLower(strings.TrimSpace(v))]; ok {
			return w, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, v)
	case int:
		return checkIndex(v, token)
	case int8:
		return checkIndex(int(v), token)
	case int16:
		return checkIndex(int(v), token)
	case int32:
		return checkIndex(int(v), token)
	case int64:
		if v < 0 || v > int64(Sunday) {
			return 0, fmt.Errorf("%w: %v", ErrUnknownWeekday, token)
		}
		return checkIndex(int(v), token)
	case uint:
		return checkUnsigned(uint64(v), token)
	case uint8:
		return checkUnsigned(uint64(v), token)
	case uint16:
		return checkUnsigned(uint64(v), token)
	case uint32:
		return checkUnsigned(uint64(v), token)
	case uint64:
		return checkUnsigned(v, token)
	case uintptr:
		return checkUnsigned(uint64(v), token)
	default:
		return 0, fmt.Errorf("%w: unsupported token %v (%T)", ErrUnknownWeekday, token, token)
	}
}

func checkIndex(i int, token any) (Weekday, error) {
	w := Weekday(i)
	if !w.Valid() {
		return 0, fmt.Errorf("%w: %v", ErrUnknownWeekday, token)
	}
	return w, nil
}

// checkUnsigned range-checks before converting so large values cannot wrap into 0-6.
func checkUnsigned(v uint64, token any) (Weekday, error) {
	if v > uint64(Sunday) {
		return 0, fmt.Errorf("%w: %v", ErrUnknownWeekday, token)
	}
	return Weekday(v), nil
}
