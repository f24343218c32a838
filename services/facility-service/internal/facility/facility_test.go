package facility

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/calendar"
)

func TestNew_RequiresName(t *testing.T) {
	_, err := New("  ", []any{"mon"})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestNew_RejectsUnknownDay(t *testing.T) {
	_, err := New("clinic", []any{"mon", "someday"})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if !errors.Is(err, calendar.ErrUnknownWeekday) {
		t.Fatalf("expected wrapped ErrUnknownWeekday, got %v", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	f, err := New("clinic", []any{"mon", 2})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !f.BestEffort() {
		t.Fatal("expected best effort by default")
	}
	if !f.IsOpenOn(calendar.Wednesday) || f.IsOpenOn(calendar.Tuesday) {
		t.Fatal("unexpected open days")
	}
	if f.SlotsPerDay(calendar.Monday) != calendar.UnboundedCapacity {
		t.Fatalf("expected unbounded slots, got %d", f.SlotsPerDay(calendar.Monday))
	}
}

func TestNew_SlotsAlignWithDays(t *testing.T) {
	f, err := New("amana clinic", []any{"wed", "mon"}, WithSlots([]int{10, 30}), WithBestEffort(false))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if f.BestEffort() {
		t.Fatal("expected strict facility")
	}
	if f.SlotsPerDay(calendar.Wednesday) != 10 || f.SlotsPerDay(calendar.Monday) != 30 {
		t.Fatalf("unexpected slots: %s", f)
	}
	if got := f.String(); got != "Amana Clinic Wednesday(10 slots), Monday(30 slots)" {
		t.Fatalf("unexpected String(): %q", got)
	}
	if got := f.GoString(); got != "Facility(name=amana clinic, days=[Wed, Mon])" {
		t.Fatalf("unexpected GoString(): %q", got)
	}
}

func TestNew_TooManySlots(t *testing.T) {
	if _, err := New("clinic", []any{"mon"}, WithSlots([]int{1, 2})); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestDecodeYAML(t *testing.T) {
	doc := `
facilities:
  - name: Gaborone Clinic
    country: botswana
    days: [mon, wed, fri]
    slots: [20, 20, 10]
  - name: Outreach
    country: botswana
    days: [Thursday]
    best_effort: false
`
	configs, err := DecodeYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeYAML failed: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("expected 2 facilities, got %d", len(configs))
	}
	f, err := configs[1].Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if f.BestEffort() || !f.IsOpenOn(calendar.Thursday) {
		t.Fatalf("unexpected facility %#v", f)
	}
}

func TestDecodeYAML_InvalidDay(t *testing.T) {
	doc := "facilities:\n  - name: x\n    days: [noday]\n"
	if _, err := DecodeYAML(strings.NewReader(doc)); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(Config{Name: "Clinic A", Days: []string{"mon"}})
	if _, err := s.Get(ctx, "clinic a"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Upsert(ctx, Config{Name: "Clinic B", Days: []string{"xx"}}); err == nil {
		t.Fatal("expected invalid config to be rejected")
	}
	if err := s.Upsert(ctx, Config{Name: "Clinic B", Days: []string{"tue"}}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	all, _ := s.List(ctx)
	if len(all) != 2 || all[0].Name != "Clinic A" {
		t.Fatalf("unexpected list %+v", all)
	}
}

func TestLoadYAMLFile_Sample(t *testing.T) {
	configs, err := LoadYAMLFile("../../testdata/facilities.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("expected 2 facilities, got %d", len(configs))
	}
	f, err := configs[0].Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := f.String(); got != "Amana Clinic Wednesday(10 slots), Monday(30 slots)" {
		t.Fatalf("unexpected description %q", got)
	}
	strict, err := configs[1].Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if strict.BestEffort() || strict.SlotsPerDay(calendar.Tuesday) != 40 {
		t.Fatalf("unexpected facility %s", strict)
	}
}

func TestConfigBuild_CapacityByWeekday(t *testing.T) {
	c := Config{Name: "Clinic", Days: []string{"mon", "wed"}, Slots: []int{5, 5}, Capacity: map[string]int{"Monday": 30}}
	f, err := c.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if f.SlotsPerDay(calendar.Monday) != 30 || f.SlotsPerDay(calendar.Wednesday) != 5 {
		t.Fatalf("unexpected capacity: %s", f)
	}

	c.Capacity = map[string]int{"someday": 3}
	if _, err := c.Build(); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	c.Capacity = map[string]int{"wed": 0}
	if _, err := c.Build(); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for zero capacity, got %v", err)
	}
}

func TestNew_WithCapacity(t *testing.T) {
	f, err := New("clinic", []any{calendar.Friday}, WithCapacity(map[calendar.Weekday]int{calendar.Friday: 12}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := f.String(); got != "Clinic Friday(12 slots)" {
		t.Fatalf("unexpected String(): %q", got)
	}
}
