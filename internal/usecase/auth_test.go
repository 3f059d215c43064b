package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domainErrors "github.com/slt-fleet/tireflow/internal/domain/errors"
	"github.com/slt-fleet/tireflow/internal/domain/model"
	pkgAuth "github.com/slt-fleet/tireflow/internal/pkg/auth"
)

type employeeRepoStub struct {
	mu        sync.Mutex
	employees map[string]*model.Employee
}

func newEmployeeRepoStub() *employeeRepoStub {
	return &employeeRepoStub{employees: make(map[string]*model.Employee)}
}

func (s *employeeRepoStub) Create(_ context.Context, employee *model.Employee) (*model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.employees {
		if existing.Email == employee.Email || existing.ServiceNo == employee.ServiceNo {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	clone := *employee
	s.employees[employee.ID] = &clone
	return employee, nil
}

func (s *employeeRepoStub) GetByID(_ context.Context, id string) (*model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if employee, ok := s.employees[id]; ok {
		clone := *employee
		return &clone, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *employeeRepoStub) GetByEmail(_ context.Context, email string) (*model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, employee := range s.employees {
		if employee.Email == email {
			clone := *employee
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *employeeRepoStub) GetByServiceNo(_ context.Context, serviceNo string) (*model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, employee := range s.employees {
		if employee.ServiceNo == serviceNo {
			clone := *employee
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func newAuthUseCase() (*AuthUseCase, *employeeRepoStub) {
	repo := newEmployeeRepoStub()
	hasher := pkgAuth.NewBcryptHasher(4)
	strategy := pkgAuth.NewHMACStrategy("test-secret", pkgAuth.Options{TTL: time.Hour})
	return NewAuthUseCase(repo, hasher, strategy), repo
}

func TestRegisterAndAuthenticateByEmail(t *testing.T) {
	uc, _ := newAuthUseCase()

	employee, token, err := uc.Register(context.Background(), "user@example.com", "EMP001", "IT", "secret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if employee.ID == "" || token == "" {
		t.Fatal("expected id and token to be issued")
	}

	authed, token2, err := uc.Authenticate(context.Background(), "user@example.com", "secret")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if authed.ID != employee.ID || token2 == "" {
		t.Fatal("expected the registered employee back with a fresh token")
	}

	parsed, err := uc.ParseToken(token2)
	if err != nil || parsed != employee.ID {
		t.Fatalf("expected token to resolve to %s, got %s (%v)", employee.ID, parsed, err)
	}
}

func TestAuthenticateByServiceNumber(t *testing.T) {
	uc, _ := newAuthUseCase()
	if _, _, err := uc.Register(context.Background(), "user@example.com", "EMP001", "IT", "secret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := uc.Authenticate(context.Background(), "EMP001", "secret"); err != nil {
		t.Fatalf("expected service-number login to succeed, got %v", err)
	}
}

func TestAuthenticateRejectsWrongPassword(t *testing.T) {
	uc, _ := newAuthUseCase()
	if _, _, err := uc.Register(context.Background(), "user@example.com", "EMP001", "IT", "secret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := uc.Authenticate(context.Background(), "user@example.com", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateUnknownLogin(t *testing.T) {
	uc, _ := newAuthUseCase()
	if _, _, err := uc.Authenticate(context.Background(), "nobody@example.com", "secret"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterRejectsBlankFields(t *testing.T) {
	uc, _ := newAuthUseCase()
	if _, _, err := uc.Register(context.Background(), " ", "EMP001", "IT", "secret"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	uc, _ := newAuthUseCase()
	if _, _, err := uc.Register(context.Background(), "user@example.com", "EMP001", "IT", "secret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := uc.Register(context.Background(), "user@example.com", "EMP002", "IT", "secret"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestParseTokenEmpty(t *testing.T) {
	uc, _ := newAuthUseCase()
	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
