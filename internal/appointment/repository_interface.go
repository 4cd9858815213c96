package appointment

import "context"

// RepositoryInterface defines the contract for appointment data access
type RepositoryInterface interface {
	IsSlotAvailable(ctx context.Context, doctorID, date, timeOfDay, excludeID string) (bool, error)
	CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error)
	GetAppointment(ctx context.Context, id string) (*AppointmentResponse, error)
	ListAppointments(ctx context.Context, status string, limit, offset int) ([]AppointmentResponse, int, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]AppointmentResponse, error)
	ListByPatient(ctx context.Context, patientID string) ([]AppointmentResponse, error)
	ListToday(ctx context.Context) ([]AppointmentResponse, error)
	ListUpcoming(ctx context.Context, days int) ([]AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, id string, req UpdateAppointmentRequest) (*AppointmentResponse, error)
	UpdateAppointmentStatus(ctx context.Context, id, status string) (*AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id string) error
	CountAppointments(ctx context.Context) (int, error)
	CountToday(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
