package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/watrakon/Sgdatapos/internal/models"
	"github.com/watrakon/Sgdatapos/internal/repositories"
)

// EmployeeService handles the admin-side employee directory.
type EmployeeService struct {
	employeeRepo repositories.EmployeeRepositoryInterface
}

func NewEmployeeService(employeeRepo repositories.EmployeeRepositoryInterface) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// List returns all employees without password hashes.
func (s *EmployeeService) List() ([]models.Employee, error) {
	employees, err := s.employeeRepo.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range employees {
		employees[i].Password = ""
	}
	return employees, nil
}

// Get returns one employee without the password hash. Nil when the id
// matches nothing.
func (s *EmployeeService) Get(id string) (*models.Employee, error) {
	emp, err := s.employeeRepo.FindByID(id)
	if err != nil || emp == nil {
		return nil, err
	}
	emp.Password = ""
	return emp, nil
}

// GetByEmail returns one employee without the password hash. Nil when the
// email matches nothing.
func (s *EmployeeService) GetByEmail(email string) (*models.Employee, error) {
	emp, err := s.employeeRepo.FindByEmail(email)
	if err != nil || emp == nil {
		return nil, err
	}
	emp.Password = ""
	return emp, nil
}

// Create adds an employee. A plaintext password arrives from the admin
// form and is hashed before storage.
func (s *EmployeeService) Create(emp *models.Employee, password string) error {
	if emp.Email == "" {
		return errors.New("email is required")
	}
	if password == "" {
		return errors.New("password is required")
	}
	if emp.Role == "" {
		emp.Role = models.RoleEmployee
	}

	existing, err := s.employeeRepo.FindByEmail(emp.Email)
	if err != nil {
		return fmt.Errorf("check existing email: %w", err)
	}
	if existing != nil {
		return errors.New("an employee with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	emp.Password = string(hash)

	if err := s.employeeRepo.Create(emp); err != nil {
		return err
	}
	emp.Password = ""
	return nil
}

// Update replaces the employee profile. An empty password keeps the stored
// hash; a non-empty one is re-hashed.
func (s *EmployeeService) Update(emp *models.Employee, password string) error {
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		emp.Password = string(hash)
	} else {
		emp.Password = ""
	}
	return s.employeeRepo.Update(emp)
}

// Delete hard-deletes the employee. No cascade: dependent jobs, leaves and
// ledgers keep their references and lookups degrade to nil.
func (s *EmployeeService) Delete(id string) error {
	return s.employeeRepo.Delete(id)
}
