package doctor

import "errors"

var (
	ErrMissingName           = errors.New("doctor name is required")
	ErrMissingSpecialization = errors.New("specialization is required")
	ErrInvalidTimeWindow     = errors.New("availability window must be HH:MM times with from before to")
	ErrNegativeFee           = errors.New("consultation fee cannot be negative")
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrDoctorInUse           = errors.New("doctor has appointments and cannot be deleted")
)
