package doctor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type DoctorSuccessResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Doctor  *DoctorResponse `json:"doctor,omitempty"`
}

type DoctorListResponse struct {
	Success bool             `json:"success"`
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

func (h *Handler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	d, err := h.service.CreateDoctor(r.Context(), req)
	if err != nil {
		status, errType := classifyError(err)
		respondError(w, status, errType, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(DoctorSuccessResponse{
		Success: true,
		Message: "Doctor created successfully",
		Doctor:  d,
	})
}

func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	var (
		doctors []DoctorResponse
		err     error
	)

	if r.URL.Query().Get("available") == "true" {
		doctors, err = h.service.ListAvailableDoctors(r.Context())
	} else {
		doctors, err = h.service.ListDoctors(r.Context())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DoctorListResponse{
		Success: true,
		Doctors: doctors,
		Total:   len(doctors),
	})
}

func (h *Handler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Doctor ID is required")
		return
	}

	d, err := h.service.GetDoctor(r.Context(), id)
	if err != nil {
		status, errType := classifyError(err)
		respondError(w, status, errType, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DoctorSuccessResponse{
		Success: true,
		Message: "Doctor retrieved successfully",
		Doctor:  d,
	})
}

func (h *Handler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Doctor ID is required")
		return
	}

	var req UpdateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	d, err := h.service.UpdateDoctor(r.Context(), id, req)
	if err != nil {
		status, errType := classifyError(err)
		respondError(w, status, errType, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DoctorSuccessResponse{
		Success: true,
		Message: "Doctor updated successfully",
		Doctor:  d,
	})
}

func (h *Handler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Doctor ID is required")
		return
	}

	if err := h.service.DeleteDoctor(r.Context(), id); err != nil {
		status, errType := classifyError(err)
		respondError(w, status, errType, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Doctor deleted successfully",
	})
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrDoctorNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrDoctorInUse):
		return http.StatusConflict, "doctor_in_use"
	case errors.Is(err, ErrMissingName),
		errors.Is(err, ErrMissingSpecialization),
		errors.Is(err, ErrInvalidTimeWindow),
		errors.Is(err, ErrNegativeFee):
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
