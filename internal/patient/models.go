package patient

import "time"

// CreatePatientRequest represents the payload for registering a patient
type CreatePatientRequest struct {
	Name             string `json:"name"`
	DateOfBirth      string `json:"date_of_birth"` // YYYY-MM-DD
	Gender           string `json:"gender"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Address          string `json:"address"`
	BloodGroup       string `json:"blood_group"`
	EmergencyContact string `json:"emergency_contact"`
	MedicalHistory   string `json:"medical_history"`
}

// UpdatePatientRequest replaces the mutable fields of a patient record
type UpdatePatientRequest struct {
	Name             string `json:"name"`
	DateOfBirth      string `json:"date_of_birth"`
	Gender           string `json:"gender"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Address          string `json:"address"`
	BloodGroup       string `json:"blood_group"`
	EmergencyContact string `json:"emergency_contact"`
	MedicalHistory   string `json:"medical_history"`
}

// PatientResponse represents a patient record returned by the API
type PatientResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	DateOfBirth      string    `json:"date_of_birth"`
	Gender           string    `json:"gender"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	Address          string    `json:"address"`
	BloodGroup       string    `json:"blood_group"`
	EmergencyContact string    `json:"emergency_contact"`
	MedicalHistory   string    `json:"medical_history"`
	CreatedAt        time.Time `json:"created_at"`
}
