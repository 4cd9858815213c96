package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill lifecycle statuses. Pending is the only non-terminal state.
const (
	StatusPending   = "Pending"
	StatusPaid      = "Paid"
	StatusCancelled = "Cancelled"
)

// CreateBillRequest represents the payload for raising a bill.
// Subtotal, tax and total are derived server-side and never accepted
// from the client.
type CreateBillRequest struct {
	PatientID          string          `json:"patient_id"`
	AppointmentID      string          `json:"appointment_id,omitempty"`
	BillDate           string          `json:"bill_date"` // YYYY-MM-DD, defaults to today
	Description        string          `json:"description"`
	ConsultationCharge decimal.Decimal `json:"consultation_charge"`
	MedicineCharge     decimal.Decimal `json:"medicine_charge"`
	RoomCharge         decimal.Decimal `json:"room_charge"`
	OtherCharge        decimal.Decimal `json:"other_charge"`
	Discount           decimal.Decimal `json:"discount"`
	TaxPercent         decimal.Decimal `json:"tax_percent"`
}

// UpdateBillRequest replaces the charge fields of a pending bill.
// The derived amounts are recomputed on every update.
type UpdateBillRequest struct {
	BillDate           string          `json:"bill_date"`
	Description        string          `json:"description"`
	ConsultationCharge decimal.Decimal `json:"consultation_charge"`
	MedicineCharge     decimal.Decimal `json:"medicine_charge"`
	RoomCharge         decimal.Decimal `json:"room_charge"`
	OtherCharge        decimal.Decimal `json:"other_charge"`
	Discount           decimal.Decimal `json:"discount"`
	TaxPercent         decimal.Decimal `json:"tax_percent"`
}

// PayBillRequest carries the settlement details
type PayBillRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// UpdateStatusRequest carries a status transition
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// BillResponse represents a bill with its derived amounts
type BillResponse struct {
	ID                 string          `json:"id"`
	PatientID          string          `json:"patient_id"`
	PatientName        string          `json:"patient_name"`
	AppointmentID      *string         `json:"appointment_id,omitempty"`
	BillDate           string          `json:"bill_date"`
	Description        string          `json:"description"`
	ConsultationCharge decimal.Decimal `json:"consultation_charge"`
	MedicineCharge     decimal.Decimal `json:"medicine_charge"`
	RoomCharge         decimal.Decimal `json:"room_charge"`
	OtherCharge        decimal.Decimal `json:"other_charge"`
	Discount           decimal.Decimal `json:"discount"`
	TaxPercent         decimal.Decimal `json:"tax_percent"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	TaxAmount          decimal.Decimal `json:"tax_amount"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	Status             string          `json:"status"`
	PaymentMethod      string          `json:"payment_method,omitempty"`
	PaidDate           *string         `json:"paid_date,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// DailyRevenue is one row of a revenue report
type DailyRevenue struct {
	Date    string          `json:"date"`
	Bills   int             `json:"bills"`
	Revenue decimal.Decimal `json:"revenue"`
}
