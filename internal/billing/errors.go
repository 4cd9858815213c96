package billing

import "errors"

var (
	ErrMissingPatientID   = errors.New("patient_id is required")
	ErrMissingDescription = errors.New("description is required")
	ErrInvalidBillDate    = errors.New("bill_date must be YYYY-MM-DD")
	ErrNegativeCharge     = errors.New("charges, discount and tax percent must not be negative")
	ErrDiscountExceedsSum = errors.New("discount cannot exceed the sum of charges")
	ErrBillNotFound       = errors.New("bill not found")
	ErrPatientNotFound    = errors.New("referenced patient does not exist")
	ErrBillNotPending     = errors.New("bill is already Paid or Cancelled")
	ErrInvalidStatus      = errors.New("status must be one of Pending, Paid, Cancelled")
	ErrInvalidRange       = errors.New("from and to must be YYYY-MM-DD with from <= to")
	ErrMissingPayment     = errors.New("payment_method is required")
)
