package repository

import (
	"context"

	"github.com/slt-fleet/tireflow/internal/domain/model"
)

// EmployeeRepository describes persistence operations with employees.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) (*model.Employee, error)
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	GetByEmail(ctx context.Context, email string) (*model.Employee, error)
	GetByServiceNo(ctx context.Context, serviceNo string) (*model.Employee, error)
}
