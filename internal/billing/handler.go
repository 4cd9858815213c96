package billing

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/medicore-systems/hospital-service/internal/pagination"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type BillSuccessResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Bill    *BillResponse `json:"bill,omitempty"`
}

type BillListResponse struct {
	Success    bool             `json:"success"`
	Bills      []BillResponse   `json:"bills"`
	Total      int              `json:"total"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

type RevenueReportResponse struct {
	Success bool           `json:"success"`
	From    string         `json:"from"`
	To      string         `json:"to"`
	Days    []DailyRevenue `json:"days"`
}

func (h *Handler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	b, err := h.service.CreateBill(r.Context(), req)
	if err != nil {
		status, errType := classifyError(err)
		respondError(w, status, errType, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(BillSuccessResponse{
		Success: true,
		Message: "Bill created successfully",
		Bill:    b,
	})
}

func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)
	status := r.URL.Query().Get("status")

	bills, total, err := h.service.ListBills(r.Context(), status, params.Limit, params.Offset())
	if err != nil {
		statusCode, errType := classifyError(err)
		respondError(w, statusCode, errType, err.Error())
		return
	}

	meta := params.CalculateMeta(total)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BillListResponse{
		Success:    true,
		Bills:      bills,
		Total:      total,
		Pagination: &meta,
	})
}

func (h *Handler) GetBill(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Bill ID is required")
		return
	}

	b, err := h.service.GetBill(r.Context(), id)
	if err != nil {
		status, errType := classifyError(err)
		respondError(w, status, errType, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BillSuccessResponse{
		Success: true,
		Message: "Bill retrieved successfully",
		Bill:    b,
	})
}

func (h *Handler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["id"]
	if patientID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Patient ID is required")
		return
	}

	bills, err := h.service.ListByPatient(r.Context(), patientID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BillListResponse{
		Success: true,
		Bills:   bills,
		Total:   len(bills),
	})
}

func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	bills, err := h.service.ListPending(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BillListResponse{
		Success: true,
		Bills:   bills,
		Total:   len(bills),
	})
}

func (h *Handler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Bill ID is required")
		return
	}

	var req UpdateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	b, err := h.service.UpdateBill(r.Context(), id, req)
	if err != nil {
		status, errType := classifyError(err)
		respondError(w, status, errType, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BillSuccessResponse{
		Success: true,
		Message: "Bill updated successfully",
		Bill:    b,
	})
}

func (h *Handler) PayBill(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Bill ID is required")
		return
	}

	var req PayBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	b, err := h.service.PayBill(r.Context(), id, req)
	if err != nil {
		status, errType := classifyError(err)
		respondError(w, status, errType, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BillSuccessResponse{
		Success: true,
		Message: "Bill paid successfully",
		Bill:    b,
	})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Bill ID is required")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	b, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		status, errType := classifyError(err)
		respondError(w, status, errType, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BillSuccessResponse{
		Success: true,
		Message: "Bill status updated successfully",
		Bill:    b,
	})
}

func (h *Handler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Bill ID is required")
		return
	}

	if err := h.service.DeleteBill(r.Context(), id); err != nil {
		status, errType := classifyError(err)
		respondError(w, status, errType, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Bill deleted successfully",
	})
}

func (h *Handler) RevenueReport(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "from and to query parameters are required")
		return
	}

	days, err := h.service.RevenueReport(r.Context(), from, to)
	if err != nil {
		status, errType := classifyError(err)
		respondError(w, status, errType, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RevenueReportResponse{
		Success: true,
		From:    from,
		To:      to,
		Days:    days,
	})
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBillNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrBillNotPending):
		return http.StatusConflict, "bill_not_pending"
	case errors.Is(err, ErrMissingPatientID),
		errors.Is(err, ErrMissingDescription),
		errors.Is(err, ErrInvalidBillDate),
		errors.Is(err, ErrNegativeCharge),
		errors.Is(err, ErrDiscountExceedsSum),
		errors.Is(err, ErrPatientNotFound),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidRange),
		errors.Is(err, ErrMissingPayment):
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
