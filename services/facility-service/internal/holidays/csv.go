package holidays

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/calendar"
)

// CSVSource reads "local_date,label,country" rows (header required) from a file.
// Column order is taken from the header.
type CSVSource struct {
	Path string
}

func (s CSVSource) Holidays(_ context.Context) ([]Holiday, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

func ReadCSV(r io.Reader) ([]Holiday, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read holiday header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	dateCol, ok := firstColumn(cols, "local_date", "date")
	if !ok {
		return nil, errors.New("holiday csv: missing local_date column")
	}
	countryCol, ok := firstColumn(cols, "country")
	if !ok {
		return nil, errors.New("holiday csv: missing country column")
	}
	nameCol, hasName := firstColumn(cols, "label", "name")

	var out []Holiday
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("holiday csv line %d: %w", line, err)
		}
		d, err := calendar.ParseDate(strings.TrimSpace(rec[dateCol]))
		if err != nil {
			return nil, fmt.Errorf("holiday csv line %d: %w", line, err)
		}
		h := Holiday{Country: strings.TrimSpace(rec[countryCol]), Date: d}
		if hasName {
			h.Name = strings.TrimSpace(rec[nameCol])
		}
		out = append(out, h)
	}
	return out, nil
}

func firstColumn(cols map[string]int, names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := cols[n]; ok {
			return i, true
		}
	}
	return 0, false
}
