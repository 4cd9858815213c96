package doctor

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDoctorRequest represents the request to register a new doctor
type CreateDoctorRequest struct {
	Name            string          `json:"name" validate:"required"`
	Specialization  string          `json:"specialization" validate:"required"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	AvailableFrom   string          `json:"available_from"` // Format: HH:MM
	AvailableTo     string          `json:"available_to"`   // Format: HH:MM
	Address         string          `json:"address"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	ExperienceYears int             `json:"experience_years"`
	Qualification   string          `json:"qualification"`
}

// UpdateDoctorRequest replaces the full doctor record. Partial patches are
// not supported at the domain level.
type UpdateDoctorRequest struct {
	Name            string          `json:"name" validate:"required"`
	Specialization  string          `json:"specialization" validate:"required"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	AvailableFrom   string          `json:"available_from"`
	AvailableTo     string          `json:"available_to"`
	IsAvailable     bool            `json:"is_available"`
	Address         string          `json:"address"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	ExperienceYears int             `json:"experience_years"`
	Qualification   string          `json:"qualification"`
}

// DoctorResponse represents the doctor data returned to clients
type DoctorResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Specialization  string          `json:"specialization"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	AvailableFrom   string          `json:"available_from"`
	AvailableTo     string          `json:"available_to"`
	IsAvailable     bool            `json:"is_available"`
	Address         string          `json:"address"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	ExperienceYears int             `json:"experience_years"`
	Qualification   string          `json:"qualification"`
	CreatedAt       time.Time       `json:"created_at"`
}
