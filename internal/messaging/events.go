package messaging

import (
	"fmt"
	"time"
)

// Event routing keys as constants
const (
	// Appointment events
	EventAppointmentBooked        = "appointment.booked"
	EventAppointmentUpdated       = "appointment.updated"
	EventAppointmentStatusChanged = "appointment.status_changed"
	EventAppointmentDeleted       = "appointment.deleted"

	// Billing events
	EventBillCreated = "bill.created"
	EventBillPaid    = "bill.paid"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// AppointmentBookedEvent represents a successful booking
type AppointmentBookedEvent struct {
	BaseEvent
	Data AppointmentBookedData `json:"data"`
}

type AppointmentBookedData struct {
	AppointmentID   string    `json:"appointment_id"`
	DoctorID        string    `json:"doctor_id"`
	PatientID       string    `json:"patient_id"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	CreatedAt       time.Time `json:"created_at"`
}

// AppointmentStatusChangedEvent represents an appointment status transition
type AppointmentStatusChangedEvent struct {
	BaseEvent
	Data AppointmentStatusChangedData `json:"data"`
}

type AppointmentStatusChangedData struct {
	AppointmentID string    `json:"appointment_id"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	ChangedAt     time.Time `json:"changed_at"`
}

// BillCreatedEvent represents a new bill
type BillCreatedEvent struct {
	BaseEvent
	Data BillCreatedData `json:"data"`
}

type BillCreatedData struct {
	BillID      string    `json:"bill_id"`
	PatientID   string    `json:"patient_id"`
	BillDate    string    `json:"bill_date"`
	TotalAmount string    `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// BillPaidEvent represents a bill settlement
type BillPaidEvent struct {
	BaseEvent
	Data BillPaidData `json:"data"`
}

type BillPaidData struct {
	BillID        string    `json:"bill_id"`
	PatientID     string    `json:"patient_id"`
	TotalAmount   string    `json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
	PaidDate      string    `json:"paid_date"`
	PaidAt        time.Time `json:"paid_at"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     fmt.Sprintf("%d", time.Now().UnixNano()),
		Timestamp:   time.Now().UTC(),
		ServiceName: "hospital-service",
	}
}
