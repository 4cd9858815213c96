package reports

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type DashboardResponse struct {
	Success bool            `json:"success"`
	Stats   *DashboardStats `json:"stats"`
}

type TrendResponse struct {
	Success bool              `json:"success"`
	Months  []MonthlyTrendRow `json:"months"`
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DashboardResponse{
		Success: true,
		Stats:   stats,
	})
}

func (h *Handler) MonthlyTrend(w http.ResponseWriter, r *http.Request) {
	months := 0
	if monthsStr := r.URL.Query().Get("months"); monthsStr != "" {
		if m, err := strconv.Atoi(monthsStr); err == nil {
			months = m
		}
	}

	trend, err := h.service.MonthlyTrend(r.Context(), months)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TrendResponse{
		Success: true,
		Months:  trend,
	})
}

func (h *Handler) ExportAppointments(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseRange(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="appointments.csv"`)

	if err := h.service.WriteAppointmentsCSV(r.Context(), w, from, to); err != nil {
		// Headers are already sent; nothing left but to log via the
		// outer middleware. Abort the stream.
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) ExportBills(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseRange(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="bills.csv"`)

	if err := h.service.WriteBillsCSV(r.Context(), w, from, to); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// parseRange reads the optional from/to query parameters. It writes a
// 400 response and returns ok=false when either date is malformed.
func parseRange(w http.ResponseWriter, r *http.Request) (from, to string, ok bool) {
	from = r.URL.Query().Get("from")
	to = r.URL.Query().Get("to")

	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			respondError(w, http.StatusBadRequest, "validation_error", "dates must be formatted YYYY-MM-DD")
			return "", "", false
		}
	}
	return from, to, true
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
