package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/slt-fleet/tireflow/internal/domain/errors"
	"github.com/slt-fleet/tireflow/internal/domain/model"
	"github.com/slt-fleet/tireflow/internal/domain/repository"
	pkgAuth "github.com/slt-fleet/tireflow/internal/pkg/auth"
)

// AuthUseCase handles employee registration, sign-in and token management.
type AuthUseCase struct {
	employees repository.EmployeeRepository
	hasher    pkgAuth.PasswordHasher
	tokens    pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(employees repository.EmployeeRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{employees: employees, hasher: hasher, tokens: strategy}
}

// Register creates a new employee and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, email, serviceNo, section, password string) (*model.Employee, string, error) {
	email = strings.TrimSpace(email)
	serviceNo = strings.TrimSpace(serviceNo)
	if email == "" || serviceNo == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	employee, err := u.employees.Create(ctx, &model.Employee{
		ID:           uuid.NewString(),
		Email:        email,
		ServiceNo:    serviceNo,
		Section:      section,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(employee.ID)
	if err != nil {
		return nil, "", err
	}

	return employee, token, nil
}

// Authenticate validates credentials and returns an auth token. The login
// field may be an email address or a service number.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.Employee, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	var (
		employee *model.Employee
		err      error
	)
	if strings.Contains(login, "@") {
		employee, err = u.employees.GetByEmail(ctx, login)
	} else {
		employee, err = u.employees.GetByServiceNo(ctx, login)
	}
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(employee.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(employee.ID)
	if err != nil {
		return nil, "", err
	}

	return employee, token, nil
}

// ParseToken extracts the employee ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (string, error) {
	if token == "" {
		return "", pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches an employee by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	return u.employees.GetByID(ctx, id)
}
