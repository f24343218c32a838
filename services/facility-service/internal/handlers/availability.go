package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/md-rashed-zaman/facilitycal/libs/httpx"
	otelx "github.com/md-rashed-zaman/facilitycal/libs/otel"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/availability"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/calendar"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/events"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otelx.Tracer("facility-service/handlers")

type windowBody struct {
	Years  int `json:"years" validate:"gte=0,lte=5"`
	Months int `json:"months" validate:"gte=0,lte=60"`
	Days   int `json:"days" validate:"gte=0,lte=1825"`
}

func (b *windowBody) window() calendar.Window {
	if b == nil {
		return calendar.Window{}
	}
	return calendar.Window{Years: b.Years, Months: b.Months, Days: b.Days}
}

type resolveRequest struct {
	SuggestedDatetime  *time.Time  `json:"suggested_datetime"`
	Forward            *windowBody `json:"forward"`
	Reverse            *windowBody `json:"reverse"`
	TakenDatetimes     []time.Time `json:"taken_datetimes" validate:"max=5000"`
	ScheduleOnHolidays bool        `json:"schedule_on_holidays"`
	Country            string      `json:"country" validate:"max=25"`
	UseCapacity        bool        `json:"use_capacity"`
}

type resolveResponse struct {
	Facility          string    `json:"facility"`
	SuggestedDatetime time.Time `json:"suggested_datetime"`
	AvailableDatetime time.Time `json:"available_datetime"`
	AvailableDate     string    `json:"available_date"`
	BestEffort        bool      `json:"best_effort"`
	WindowStart       string    `json:"window_start"`
	WindowEnd         string    `json:"window_end"`
}

func (h *Handler) ResolveAvailableDate(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	cfg, f, ok := h.loadFacility(w, r)
	if !ok {
		return
	}

	ctx, span := tracer.Start(r.Context(), "availability.resolve")
	defer span.End()

	suggested := h.Now()
	if req.SuggestedDatetime != nil {
		suggested = *req.SuggestedDatetime
	}
	areq := availability.Request{
		Suggested:          &suggested,
		Forward:            req.Forward.window(),
		Reverse:            req.Reverse.window(),
		Taken:              req.TakenDatetimes,
		ScheduleOnHolidays: req.ScheduleOnHolidays,
		Country:            h.country(req.Country, cfg.Country),
	}
	if req.UseCapacity && h.Slots != nil {
		hook, err := h.Slots.OpenSlotFunc(ctx, f, h.Resolver.Span(areq).Candidates)
		if err != nil {
			span.RecordError(err)
			h.Logger.Error("slot counters unavailable", "facility", f.Name(), "err", err)
			httpx.WriteError(w, http.StatusServiceUnavailable, "slot counters unavailable")
			return
		}
		areq.OpenSlot = hook
	}

	res, err := h.Resolver.ResolveDetailed(f, areq)
	span.SetAttributes(
		attribute.String("facility", f.Name()),
		attribute.String("country", areq.Country),
		attribute.Int("taken", len(areq.Taken)),
	)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, availability.ErrNoAvailability) {
			httpx.WriteError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.Logger.Error("resolve failed", "facility", f.Name(), "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "resolve failed")
		return
	}
	span.SetAttributes(attribute.Bool("best_effort", res.BestEffort))
	if res.BestEffort {
		h.Logger.Warn("no available date in window, using suggested date",
			"facility", f.Name(), "suggested", suggested, "request_id", httpx.RequestIDFromContext(ctx))
	}

	h.publish(ctx, events.TopicVisitDateResolved, f.Name(), events.VisitDateResolved{
		Facility:    f.Name(),
		SuggestedAt: suggested.UTC(),
		AvailableAt: res.At,
		BestEffort:  res.BestEffort,
		Country:     areq.Country,
		RequestID:   httpx.RequestIDFromContext(ctx),
		ResolvedAt:  h.Now(),
	})

	httpx.WriteJSON(w, http.StatusOK, resolveResponse{
		Facility:          f.Name(),
		SuggestedDatetime: suggested.UTC(),
		AvailableDatetime: res.At,
		AvailableDate:     res.Date.String(),
		BestEffort:        res.BestEffort,
		WindowStart:       res.Span.Min.String(),
		WindowEnd:         res.Span.Max.String(),
	})
}
