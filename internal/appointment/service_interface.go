package appointment

import "context"

// ServiceInterface defines the contract for appointment business logic operations
type ServiceInterface interface {
	CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error)
	GetAppointment(ctx context.Context, id string) (*AppointmentResponse, error)
	ListAppointments(ctx context.Context, status string, limit, offset int) ([]AppointmentResponse, int, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]AppointmentResponse, error)
	ListByPatient(ctx context.Context, patientID string) ([]AppointmentResponse, error)
	ListToday(ctx context.Context) ([]AppointmentResponse, error)
	ListUpcoming(ctx context.Context, days int) ([]AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, id string, req UpdateAppointmentRequest) (*AppointmentResponse, error)
	UpdateStatus(ctx context.Context, id, status string) (*AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
