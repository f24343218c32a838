// Package handlers exposes the facility service over HTTP.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/md-rashed-zaman/facilitycal/libs/httpx"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/availability"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/calendar"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/events"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/facility"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/holidays"
)

// SlotCounter is implemented by *slots.Counter.
type SlotCounter interface {
	Book(ctx context.Context, f *facility.Facility, d calendar.Date) (int64, error)
	Release(ctx context.Context, facilityName string, d calendar.Date) error
	OpenSlotFunc(ctx context.Context, f *facility.Facility, dates []calendar.Date) (availability.SlotFunc, error)
}

// HolidayImporter persists imported holidays; implemented by *storage.HolidayRepository.
type HolidayImporter interface {
	Import(ctx context.Context, hs []holidays.Holiday) (int, error)
}

type Deps struct {
	Facilities     facility.Store
	Holidays       *holidays.Registry
	HolidayStore   HolidayImporter
	Resolver       *availability.Resolver
	Slots          SlotCounter
	Events         events.Publisher
	Logger         *slog.Logger
	DefaultCountry string
	Now            func() time.Time
}

type Handler struct {
	Deps
	validate *validator.Validate
}

func New(d Deps) *Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Events == nil {
		d.Events = events.LogPublisher{Logger: d.Logger}
	}
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	if d.Holidays == nil {
		d.Holidays = holidays.NewRegistry()
	}
	if d.Resolver == nil {
		d.Resolver = availability.NewResolver(d.Holidays)
	}
	return &Handler{Deps: d, validate: validator.New()}
}

// Mount registers the API on r. admin guards mutating routes.
func (h *Handler) Mount(r chi.Router, admin func(http.Handler) http.Handler) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/facilities", func(r chi.Router) {
			r.Get("/", h.ListFacilities)
			r.Get("/{name}", h.GetFacility)
			r.Post("/{name}/available-date", h.ResolveAvailableDate)
			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Put("/{name}", h.UpsertFacility)
				r.Post("/{name}/bookings", h.Book)
				r.Delete("/{name}/bookings/{date}", h.ReleaseBooking)
			})
		})
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Get("/check", h.CheckHoliday)
			r.With(admin).Post("/", h.ImportHolidays)
		})
	})
}

func (h *Handler) publish(ctx context.Context, topic, key string, payload any) {
	if err := h.Events.Publish(ctx, topic, key, payload); err != nil {
		h.Logger.Warn("event publish failed", "topic", topic, "key", key, "err", err,
			"request_id", httpx.RequestIDFromContext(ctx))
	}
}

func (h *Handler) country(explicit, configured string) string {
	switch {
	case explicit != "":
		return explicit
	case configured != "":
		return configured
	default:
		return h.DefaultCountry
	}
}
