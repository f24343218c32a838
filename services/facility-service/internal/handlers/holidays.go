package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/md-rashed-zaman/facilitycal/libs/httpx"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/calendar"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/events"
	"github.com/md-rashed-zaman/facilitycal/services/facility-service/internal/holidays"
)

type holidayItem struct {
	Country string `json:"country" validate:"required,max=25"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Name    string `json:"name" validate:"max=25"`
}

type importHolidaysRequest struct {
	Holidays []holidayItem `json:"holidays" validate:"required,min=1,max=10000,dive"`
}

type importHolidaysResponse struct {
	Imported  int      `json:"imported"`
	Countries []string `json:"countries"`
}

type checkHolidayResponse struct {
	Country string `json:"country"`
	Date    string `json:"date"`
	Holiday bool   `json:"holiday"`
	Name    string `json:"name,omitempty"`
}

func (h *Handler) CheckHoliday(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	d, err := calendar.ParseDate(q.Get("date"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	country := h.country(strings.TrimSpace(q.Get("country")), "")
	hol, ok := h.Holidays.Lookup(country, d)
	httpx.WriteJSON(w, http.StatusOK, checkHolidayResponse{
		Country: country,
		Date:    d.String(),
		Holiday: ok,
		Name:    hol.Name,
	})
}

func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	country := h.country(strings.TrimSpace(r.URL.Query().Get("country")), "")
	list := h.Holidays.List(country)
	out := make([]holidayItem, 0, len(list))
	for _, hol := range list {
		out = append(out, holidayItem{Country: hol.Country, Date: hol.Date.String(), Name: hol.Name})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) ImportHolidays(w http.ResponseWriter, r *http.Request) {
	var req importHolidaysRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	hs := make([]holidays.Holiday, 0, len(req.Holidays))
	countries := map[string]struct{}{}
	for _, item := range req.Holidays {
		d, err := calendar.ParseDate(item.Date)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		country := strings.ToLower(strings.TrimSpace(item.Country))
		countries[country] = struct{}{}
		hs = append(hs, holidays.Holiday{Country: country, Date: d, Name: strings.TrimSpace(item.Name)})
	}

	if h.HolidayStore != nil {
		if _, err := h.HolidayStore.Import(r.Context(), hs); err != nil {
			h.Logger.Error("holiday import failed", "count", len(hs), "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "db error")
			return
		}
	}
	h.Holidays.Add(hs...)

	names := make([]string, 0, len(countries))
	for c := range countries {
		names = append(names, c)
	}
	sort.Strings(names)
	h.Logger.Info("holidays imported", "count", len(hs), "countries", names)
	h.publish(r.Context(), events.TopicHolidaysImported, strings.Join(names, ","), events.HolidaysImported{
		Countries: names,
		Count:     len(hs),
		At:        h.Now(),
	})
	httpx.WriteJSON(w, http.StatusCreated, importHolidaysResponse{Imported: len(hs), Countries: names})
}
