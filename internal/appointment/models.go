package appointment

import "time"

// Appointment lifecycle statuses. Scheduled is the only non-terminal state.
const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
	StatusNoShow    = "NoShow"
)

// CreateAppointmentRequest represents the payload for booking an appointment
type CreateAppointmentRequest struct {
	DoctorID        string `json:"doctor_id"`
	PatientID       string `json:"patient_id"`
	AppointmentDate string `json:"appointment_date"` // YYYY-MM-DD
	AppointmentTime string `json:"appointment_time"` // HH:MM
	Description     string `json:"description"`
	Symptoms        string `json:"symptoms"`
}

// UpdateAppointmentRequest replaces the scheduling and clinical fields of
// an appointment. Status transitions go through UpdateStatusRequest instead.
type UpdateAppointmentRequest struct {
	DoctorID        string `json:"doctor_id"`
	PatientID       string `json:"patient_id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Description     string `json:"description"`
	Symptoms        string `json:"symptoms"`
	Diagnosis       string `json:"diagnosis"`
	Prescription    string `json:"prescription"`
}

// UpdateStatusRequest carries a status transition
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AppointmentResponse represents an appointment with joined doctor and patient names
type AppointmentResponse struct {
	ID              string    `json:"id"`
	DoctorID        string    `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name"`
	PatientID       string    `json:"patient_id"`
	PatientName     string    `json:"patient_name"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Status          string    `json:"status"`
	Description     string    `json:"description"`
	Symptoms        string    `json:"symptoms"`
	Diagnosis       string    `json:"diagnosis"`
	Prescription    string    `json:"prescription"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
