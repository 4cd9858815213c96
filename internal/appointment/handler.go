package appointment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/medicore-systems/hospital-service/internal/pagination"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type AppointmentSuccessResponse struct {
	Success     bool                 `json:"success"`
	Message     string               `json:"message"`
	Appointment *AppointmentResponse `json:"appointment,omitempty"`
}

type AppointmentListResponse struct {
	Success      bool                  `json:"success"`
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
	Pagination   *pagination.Meta      `json:"pagination,omitempty"`
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	a, err := h.service.CreateAppointment(r.Context(), req)
	if err != nil {
		status, errType := classifyError(err)
		respondError(w, status, errType, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(AppointmentSuccessResponse{
		Success:     true,
		Message:     "Appointment booked successfully",
		Appointment: a,
	})
}

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)
	status := r.URL.Query().Get("status")

	appointments, total, err := h.service.ListAppointments(r.Context(), status, params.Limit, params.Offset())
	if err != nil {
		statusCode, errType := classifyError(err)
		respondError(w, statusCode, errType, err.Error())
		return
	}

	meta := params.CalculateMeta(total)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AppointmentListResponse{
		Success:      true,
		Appointments: appointments,
		Total:        total,
		Pagination:   &meta,
	})
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment ID is required")
		return
	}

	a, err := h.service.GetAppointment(r.Context(), id)
	if err != nil {
		status, errType := classifyError(err)
		respondError(w, status, errType, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AppointmentSuccessResponse{
		Success:     true,
		Message:     "Appointment retrieved successfully",
		Appointment: a,
	})
}

func (h *Handler) ListByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID := mux.Vars(r)["id"]
	if doctorID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Doctor ID is required")
		return
	}

	appointments, err := h.service.ListByDoctor(r.Context(), doctorID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	respondList(w, appointments)
}

func (h *Handler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["id"]
	if patientID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Patient ID is required")
		return
	}

	appointments, err := h.service.ListByPatient(r.Context(), patientID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	respondList(w, appointments)
}

func (h *Handler) ListToday(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.ListToday(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	respondList(w, appointments)
}

func (h *Handler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	days := 0
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil {
			days = d
		}
	}

	appointments, err := h.service.ListUpcoming(r.Context(), days)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	respondList(w, appointments)
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment ID is required")
		return
	}

	var req UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	a, err := h.service.UpdateAppointment(r.Context(), id, req)
	if err != nil {
		status, errType := classifyError(err)
		respondError(w, status, errType, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AppointmentSuccessResponse{
		Success:     true,
		Message:     "Appointment updated successfully",
		Appointment: a,
	})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment ID is required")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	a, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		status, errType := classifyError(err)
		respondError(w, status, errType, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AppointmentSuccessResponse{
		Success:     true,
		Message:     "Appointment status updated successfully",
		Appointment: a,
	})
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment ID is required")
		return
	}

	if err := h.service.DeleteAppointment(r.Context(), id); err != nil {
		status, errType := classifyError(err)
		respondError(w, status, errType, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Appointment deleted successfully",
	})
}

func respondList(w http.ResponseWriter, appointments []AppointmentResponse) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AppointmentListResponse{
		Success:      true,
		Appointments: appointments,
		Total:        len(appointments),
	})
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrAppointmentNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrSlotTaken):
		return http.StatusConflict, "slot_taken"
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, ErrDoctorNotFound),
		errors.Is(err, ErrPatientNotFound),
		errors.Is(err, ErrMissingDoctorID),
		errors.Is(err, ErrMissingPatientID),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidTime),
		errors.Is(err, ErrInvalidStatus):
		return http.StatusBadRequest, "validation_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
