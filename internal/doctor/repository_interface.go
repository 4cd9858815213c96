package doctor

import "context"

// RepositoryInterface defines the contract for doctor data access
type RepositoryInterface interface {
	CreateDoctor(ctx context.Context, req CreateDoctorRequest) (*DoctorResponse, error)
	ListDoctors(ctx context.Context) ([]DoctorResponse, error)
	ListAvailableDoctors(ctx context.Context) ([]DoctorResponse, error)
	GetDoctor(ctx context.Context, id string) (*DoctorResponse, error)
	UpdateDoctor(ctx context.Context, id string, req UpdateDoctorRequest) (*DoctorResponse, error)
	DeleteDoctor(ctx context.Context, id string) error
	CountDoctors(ctx context.Context) (int, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
