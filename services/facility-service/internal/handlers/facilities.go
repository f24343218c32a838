package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/md-rashed-zaman/facilitycal/libs/httpx"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/facility"
)

type facilityItem struct {
	Name        string         `json:"name"`
	Country     string         `json:"country,omitempty"`
	Days        []string       `json:"days"`
	Slots       []int          `json:"slots,omitempty"`
	Capacity    map[string]int `json:"capacity,omitempty"`
	BestEffort  bool           `json:"best_effort"`
	ClinicDays  string         `json:"clinic_days"`
	Description string         `json:"description"`
	Notes       string         `json:"notes,omitempty"`
}

type upsertFacilityRequest struct {
	Country    string         `json:"country" validate:"max=25"`
	Days       []string       `json:"days" validate:"required,min=1,max=7,dive,required"`
	Slots      []int          `json:"slots" validate:"omitempty,max=7,dive,gt=0"`
	Capacity   map[string]int `json:"capacity" validate:"omitempty,max=7,dive,keys,required,endkeys,gt=0"`
	BestEffort *bool          `json:"best_effort"`
	Notes      string         `json:"notes" validate:"max=500"`
}

func toItem(c facility.Config, f *facility.Facility) facilityItem {
	return facilityItem{
		Name:        c.Name,
		Country:     c.Country,
		Days:        c.Days,
		Slots:       c.Slots,
		Capacity:    c.Capacity,
		BestEffort:  f.BestEffort(),
		ClinicDays:  f.Calendar().ClinicDays(),
		Description: f.String(),
		Notes:       c.Notes,
	}
}

func (h *Handler) ListFacilities(w http.ResponseWriter, r *http.Request) {
	configs, err := h.Facilities.List(r.Context())
	if err != nil {
		h.Logger.Error("list facilities failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "db error")
		return
	}
	out := make([]facilityItem, 0, len(configs))
	for _, c := range configs {
		f, err := c.Build()
		if err != nil {
			h.Logger.Warn("skipping invalid stored facility", "facility", c.Name, "err", err)
			continue
		}
		out = append(out, toItem(c, f))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) GetFacility(w http.ResponseWriter, r *http.Request) {
	c, f, ok := h.loadFacility(w, r)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toItem(c, f))
}

func (h *Handler) UpsertFacility(w http.ResponseWriter, r *http.Request) {
	var req upsertFacilityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	c := facility.Config{
		Name:       strings.TrimSpace(chi.URLParam(r, "name")),
		Country:    strings.TrimSpace(req.Country),
		Days:       req.Days,
		Slots:      req.Slots,
		Capacity:   req.Capacity,
		BestEffort: req.BestEffort,
		Notes:      req.Notes,
	}
	f, err := c.Build()
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Facilities.Upsert(r.Context(), c); err != nil {
		h.Logger.Error("upsert facility failed", "facility", c.Name, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "db error")
		return
	}
	h.Logger.Info("facility saved", "facility", c.Name, "days", f.Calendar().ClinicDays(), "best_effort", f.BestEffort())
	httpx.WriteJSON(w, http.StatusOK, toItem(c, f))
}

// loadFacility writes the error response itself when ok is false.
func (h *Handler) loadFacility(w http.ResponseWriter, r *http.Request) (facility.Config, *facility.Facility, bool) {
	name := chi.URLParam(r, "name")
	c, err := h.Facilities.Get(r.Context(), name)
	if errors.Is(err, facility.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "facility not found")
		return facility.Config{}, nil, false
	}
	if err != nil {
		h.Logger.Error("load facility failed", "facility", name, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "db error")
		return facility.Config{}, nil, false
	}
	f, err := c.Build()
	if err != nil {
		h.Logger.Error("stored facility is invalid", "facility", name, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
		return facility.Config{}, nil, false
	}
	return c, f, true
}
