package patient

import "errors"

var (
	ErrMissingName        = errors.New("patient name is required")
	ErrMissingDateOfBirth = errors.New("date of birth is required")
	ErrInvalidDateOfBirth = errors.New("date of birth must be YYYY-MM-DD and not in the future")
	ErrMissingPhone       = errors.New("phone number is required")
	ErrPatientNotFound    = errors.New("patient not found")
	ErrPatientInUse       = errors.New("patient has appointments or bills and cannot be deleted")
)
