package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/watrakon/Sgdatapos/internal/models"
)

// ErrEmployeeNotFound is returned when a lookup matches no employee row.
var ErrEmployeeNotFound = errors.New("employee not found")

// EmployeeRepositoryInterface defines the employee data-access methods.
type EmployeeRepositoryInterface interface {
	GetAll() ([]models.Employee, error)
	FindByID(id string) (*models.Employee, error)
	FindByEmail(email string) (*models.Employee, error)
	Create(emp *models.Employee) error
	Update(emp *models.Employee) error
	Delete(id string) error
	UpdatePassword(email, passwordHash string) error
}

// EmployeeRepository implements EmployeeRepositoryInterface over MySQL.
type EmployeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = `id, name_th, name_en, nickname_th, nickname_en, position, phone, email, password, role`

func scanEmployee(row interface{ Scan(...interface{}) error }) (*models.Employee, error) {
	emp := &models.Employee{}
	err := row.Scan(
		&emp.ID, &emp.NameTh, &emp.NameEn, &emp.NicknameTh, &emp.NicknameEn,
		&emp.Position, &emp.Phone, &emp.Email, &emp.Password, &emp.Role,
	)
	if err != nil {
		return nil, err
	}
	return emp, nil
}

// GetAll returns every employee, newest first.
func (r *EmployeeRepository) GetAll() ([]models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, *emp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return employees, nil
}

func (r *EmployeeRepository) FindByID(id string) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ?`
	emp, err := scanEmployee(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find employee by id: %w", err)
	}
	return emp, nil
}

func (r *EmployeeRepository) FindByEmail(email string) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = ?`
	emp, err := scanEmployee(r.db.QueryRow(query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find employee by email: %w", err)
	}
	return emp, nil
}

// Create inserts a new employee. The id is generated server-side when the
// caller leaves it empty. Password must already be hashed.
func (r *EmployeeRepository) Create(emp *models.Employee) error {
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}

	query := `
		INSERT INTO employees (id, name_th, name_en, nickname_th, nickname_en, position, phone, email, password, role)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		emp.ID, emp.NameTh, emp.NameEn, emp.NicknameTh, emp.NicknameEn,
		emp.Position, emp.Phone, emp.Email, emp.Password, emp.Role,
	)
	if err != nil {
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

// Update replaces the profile fields of an existing employee. The password
// is only overwritten when a non-empty hash is supplied.
func (r *EmployeeRepository) Update(emp *models.Employee) error {
	query := `
		UPDATE employees SET
			name_th = ?, name_en = ?, nickname_th = ?, nickname_en = ?,
			position = ?, phone = ?, email = ?, role = ?`
	args := []interface{}{
		emp.NameTh, emp.NameEn, emp.NicknameTh, emp.NicknameEn,
		emp.Position, emp.Phone, emp.Email, emp.Role,
	}
	if emp.Password != "" {
		query += `, password = ?`
		args = append(args, emp.Password)
	}
	query += ` WHERE id = ?`
	args = append(args, emp.ID)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update employee rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

// Delete removes the employee row. Hard delete with no cascade: dependent
// jobs and requests keep their employeeId and lookups degrade to nil.
func (r *EmployeeRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

// UpdatePassword unconditionally overwrites the password hash for the
// given email.
func (r *EmployeeRepository) UpdatePassword(email, passwordHash string) error {
	result, err := r.db.Exec(`UPDATE employees SET password = ? WHERE email = ?`, passwordHash, email)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}
