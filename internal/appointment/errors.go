package appointment

import "errors"

var (
	ErrMissingDoctorID     = errors.New("doctor_id is required")
	ErrMissingPatientID    = errors.New("patient_id is required")
	ErrInvalidDate         = errors.New("appointment_date must be YYYY-MM-DD")
	ErrInvalidTime         = errors.New("appointment_time must be HH:MM")
	ErrSlotTaken           = errors.New("doctor already has an appointment at this date and time")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDoctorNotFound      = errors.New("referenced doctor does not exist")
	ErrPatientNotFound     = errors.New("referenced patient does not exist")
	ErrInvalidStatus       = errors.New("status must be one of Scheduled, Completed, Cancelled, NoShow")
	ErrInvalidTransition   = errors.New("appointment status cannot change once Completed, Cancelled or NoShow")
)
