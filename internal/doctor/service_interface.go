package doctor

import "context"

// ServiceInterface defines the contract for doctor business logic operations
type ServiceInterface interface {
	CreateDoctor(ctx context.Context, req CreateDoctorRequest) (*DoctorResponse, error)
	ListDoctors(ctx context.Context) ([]DoctorResponse, error)
	ListAvailableDoctors(ctx context.Context) ([]DoctorResponse, error)
	GetDoctor(ctx context.Context, id string) (*DoctorResponse, error)
	UpdateDoctor(ctx context.Context, id string, req UpdateDoctorRequest) (*DoctorResponse, error)
	DeleteDoctor(ctx context.Context, id string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
