package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/watrakon/Sgdatapos/internal/models"
)

// ErrTaskNotFound is returned when a status update matches no task row.
var ErrTaskNotFound = errors.New("assigned task not found")

// AssignmentRepositoryInterface defines the assigned-task data-access
// methods.
type AssignmentRepositoryInterface interface {
	Create(task *models.AssignedTask) error
	ListAll() ([]models.AssignedTask, error)
	ListByEmployee(employeeID string) ([]models.AssignedTask, error)
	UpdateStatus(id, status string) error
	Delete(id string) error
}

// AssignmentRepository implements AssignmentRepositoryInterface over MySQL.
type AssignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

const taskColumns = `id, assigner_id, employee_id, date, time, customer_name, activity, remark, status, timestamp`

func (r *AssignmentRepository) Create(task *models.AssignedTask) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	query := `
		INSERT INTO assigned_tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		task.ID, task.AssignerID, task.EmployeeID, task.Date, task.Time,
		task.CustomerName, task.Activity, task.Remark, task.Status, task.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("create assigned task: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) ListAll() ([]models.AssignedTask, error) {
	return r.queryTasks(`SELECT ` + taskColumns + ` FROM assigned_tasks ORDER BY timestamp DESC`)
}

func (r *AssignmentRepository) ListByEmployee(employeeID string) ([]models.AssignedTask, error) {
	return r.queryTasks(`SELECT `+taskColumns+` FROM assigned_tasks WHERE employee_id = ? ORDER BY timestamp DESC`, employeeID)
}

func (r *AssignmentRepository) UpdateStatus(id, status string) error {
	result, err := r.db.Exec(`UPDATE assigned_tasks SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task status rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *AssignmentRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM assigned_tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete assigned task: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) queryTasks(query string, args ...interface{}) ([]models.AssignedTask, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assigned tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.AssignedTask
	for rows.Next() {
		var task models.AssignedTask
		if err := rows.Scan(
			&task.ID, &task.AssignerID, &task.EmployeeID, &task.Date, &task.Time,
			&task.CustomerName, &task.Activity, &task.Remark, &task.Status, &task.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan assigned task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assigned tasks: %w", err)
	}
	return tasks, nil
}
