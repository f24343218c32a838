package facility

import (
	"fmt"
	"io"
	"os"

	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/calendar"
	"gopkg.in/yaml.v3"
)

// Config is the declarative form of a facility, as stored or seeded from YAML.
// Slots align positionally with Days. Capacity sets slots by weekday token,
// e.g. {"mon": 30}, and wins over Slots.
type Config struct {
	Name       string         `yaml:"name" json:"name"`
	Country    string         `yaml:"country" json:"country"`
	Days       []string       `yaml:"days" json:"days"`
	Slots      []int          `yaml:"slots,omitempty" json:"slots,omitempty"`
	Capacity   map[string]int `yaml:"capacity,omitempty" json:"capacity,omitempty"`
	BestEffort *bool          `yaml:"best_effort,omitempty" json:"best_effort,omitempty"`
	Notes      string         `yaml:"notes,omitempty" json:"notes,omitempty"`
}

type seedFile struct {
	Facilities []Config `yaml:"facilities"`
}

// Build validates the config and returns the facility.
func (c Config) Build() (*Facility, error) {
	days := make([]any, len(c.Days))
	for i, d := range c.Days {
		days[i] = d
	}
	opts := []Option{WithSlots(c.Slots)}
	if len(c.Capacity) > 0 {
		capacity := make(map[calendar.Weekday]int, len(c.Capacity))
		for token, n := range c.Capacity {
			w, err := calendar.ParseWeekday(token)
			if err != nil {
				return nil, &ConfigurationError{Name: c.Name, Reason: "invalid capacity day", Err: err}
			}
			capacity[w] = n
		}
		opts = append(opts, WithCapacity(capacity))
	}
	if c.BestEffort != nil {
		opts = append(opts, WithBestEffort(*c.BestEffort))
	}
	return New(c.Name, days, opts...)
}

// DecodeYAML reads a seed document of the form `facilities: [...]`.
func DecodeYAML(r io.Reader) ([]Config, error) {
	var doc seedFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode facilities yaml: %w", err)
	}
	for i, c := range doc.Facilities {
		if _, err := c.Build(); err != nil {
			return nil, fmt.Errorf("facility #%d: %w", i, err)
		}
	}
	return doc.Facilities, nil
}

func LoadYAMLFile(path string) ([]Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeYAML(f)
}
