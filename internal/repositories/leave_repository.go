package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/watrakon/Sgdatapos/internal/models"
)

// LeaveRepositoryInterface defines the leave-request data-access methods.
type LeaveRepositoryInterface interface {
	Save(req *models.LeaveRequest) error
	FindByID(id string) (*models.LeaveRequest, error)
	ListAll() ([]models.LeaveRequest, error)
	ListByEmployee(employeeID string) ([]models.LeaveRequest, error)
	ListPendingForCoordinator(coordinatorID string) ([]models.LeaveRequest, error)
}

// LeaveRepository implements LeaveRepositoryInterface over MySQL.
type LeaveRepository struct {
	db *sql.DB
}

func NewLeaveRepository(db *sql.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

const leaveColumns = `id, employee_id, type, start_date, end_date, days, reason, status, timestamp, coordinator_id, coordinator_status`

// Save upserts the request by id. Approvals clone the record with a new
// status and write it back through here; last write wins.
func (r *LeaveRepository) Save(req *models.LeaveRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	query := `
		INSERT INTO leave_requests (` + leaveColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			employee_id = VALUES(employee_id), type = VALUES(type),
			start_date = VALUES(start_date), end_date = VALUES(end_date),
			days = VALUES(days), reason = VALUES(reason), status = VALUES(status),
			timestamp = VALUES(timestamp), coordinator_id = VALUES(coordinator_id),
			coordinator_status = VALUES(coordinator_status)`

	_, err := r.db.Exec(query,
		req.ID, req.EmployeeID, req.Type, req.StartDate, req.EndDate,
		req.Days, req.Reason, req.Status, req.Timestamp,
		req.CoordinatorID, req.CoordinatorStatus,
	)
	if err != nil {
		return fmt.Errorf("save leave request: %w", err)
	}
	return nil
}

func (r *LeaveRepository) FindByID(id string) (*models.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE id = ?`
	req, err := scanLeave(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find leave request: %w", err)
	}
	return req, nil
}

func (r *LeaveRepository) ListAll() ([]models.LeaveRequest, error) {
	return r.queryLeaves(`SELECT ` + leaveColumns + ` FROM leave_requests ORDER BY timestamp DESC`)
}

func (r *LeaveRepository) ListByEmployee(employeeID string) ([]models.LeaveRequest, error) {
	return r.queryLeaves(`SELECT `+leaveColumns+` FROM leave_requests WHERE employee_id = ? ORDER BY timestamp DESC`, employeeID)
}

// ListPendingForCoordinator returns the handover asks addressed to the
// given coordinator that they have not acknowledged yet.
func (r *LeaveRepository) ListPendingForCoordinator(coordinatorID string) ([]models.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE coordinator_id = ? AND coordinator_status = ? ORDER BY timestamp DESC`
	return r.queryLeaves(query, coordinatorID, models.StatusPending)
}

func (r *LeaveRepository) queryLeaves(query string, args ...interface{}) ([]models.LeaveRequest, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []models.LeaveRequest
	for rows.Next() {
		req, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leave request: %w", err)
		}
		requests = append(requests, *req)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leave requests: %w", err)
	}
	return requests, nil
}

func scanLeave(row interface{ Scan(...interface{}) error }) (*models.LeaveRequest, error) {
	req := &models.LeaveRequest{}
	var coordinatorID, coordinatorStatus sql.NullString

	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Type, &req.StartDate, &req.EndDate,
		&req.Days, &req.Reason, &req.Status, &req.Timestamp,
		&coordinatorID, &coordinatorStatus,
	)
	if err != nil {
		return nil, err
	}

	if coordinatorID.Valid {
		req.CoordinatorID = &coordinatorID.String
	}
	if coordinatorStatus.Valid {
		req.CoordinatorStatus = &coordinatorStatus.String
	}
	return req, nil
}
