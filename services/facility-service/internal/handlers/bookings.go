package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/md-rashed-zaman/facilitycal/libs/httpx"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/calendar"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/slots"
)

type bookRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type bookResponse struct {
	Facility string `json:"facility"`
	Date     string `json:"date"`
	Booked   int64  `json:"booked"`
	Capacity int    `json:"capacity"`
}

func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	if h.Slots == nil {
		httpx.WriteError(w, http.StatusNotImplemented, "slot counters are not configured")
		return
	}
	var req bookRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := calendar.ParseDate(req.Date)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	_, f, ok := h.loadFacility(w, r)
	if !ok {
		return
	}
	if !f.IsOpenOn(d.Weekday()) {
		httpx.WriteError(w, http.StatusUnprocessableEntity, "facility is closed on "+d.Weekday().String())
		return
	}
	n, err := h.Slots.Book(r.Context(), f, d)
	if errors.Is(err, slots.ErrFull) {
		httpx.WriteError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.Logger.Error("book slot failed", "facility", f.Name(), "date", d, "err", err)
		httpx.WriteError(w, http.StatusServiceUnavailable, "slot counters unavailable")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, bookResponse{
		Facility: f.Name(),
		Date:     d.String(),
		Booked:   n,
		Capacity: f.SlotsPerDay(d.Weekday()),
	})
}

func (h *Handler) ReleaseBooking(w http.ResponseWriter, r *http.Request) {
	if h.Slots == nil {
		httpx.WriteError(w, http.StatusNotImplemented, "slot counters are not configured")
		return
	}
	d, err := calendar.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	_, f, ok := h.loadFacility(w, r)
	if !ok {
		return
	}
	if err := h.Slots.Release(r.Context(), f.Name(), d); err != nil {
		h.Logger.Error("release slot failed", "facility", f.Name(), "date", d, "err", err)
		httpx.WriteError(w, http.StatusServiceUnavailable, "slot counters unavailable")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
