package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/watrakon/Sgdatapos/internal/models"
)

// OTRepositoryInterface defines the overtime-request data-access methods.
type OTRepositoryInterface interface {
	Save(req *models.OTRequest) error
	FindByID(id string) (*models.OTRequest, error)
	ListAll() ([]models.OTRequest, error)
	ListByEmployee(employeeID string) ([]models.OTRequest, error)
}

// OTRepository implements OTRepositoryInterface over MySQL.
type OTRepository struct {
	db *sql.DB
}

func NewOTRepository(db *sql.DB) *OTRepository {
	return &OTRepository{db: db}
}

const otColumns = `id, employee_id, date, start_time, end_time, reason, status, timestamp`

func (r *OTRepository) Save(req *models.OTRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	query := `
		INSERT INTO ot_requests (` + otColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			employee_id = VALUES(employee_id), date = VALUES(date),
			start_time = VALUES(start_time), end_time = VALUES(end_time),
			reason = VALUES(reason), status = VALUES(status),
			timestamp = VALUES(timestamp)`

	_, err := r.db.Exec(query,
		req.ID, req.EmployeeID, req.Date, req.StartTime, req.EndTime,
		req.Reason, req.Status, req.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("save ot request: %w", err)
	}
	return nil
}

func (r *OTRepository) FindByID(id string) (*models.OTRequest, error) {
	query := `SELECT ` + otColumns + ` FROM ot_requests WHERE id = ?`
	req := &models.OTRequest{}
	err := r.db.QueryRow(query, id).Scan(
		&req.ID, &req.EmployeeID, &req.Date, &req.StartTime, &req.EndTime,
		&req.Reason, &req.Status, &req.Timestamp,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find ot request: %w", err)
	}
	return req, nil
}

func (r *OTRepository) ListAll() ([]models.OTRequest, error) {
	return r.queryOT(`SELECT ` + otColumns + ` FROM ot_requests ORDER BY timestamp DESC`)
}

func (r *OTRepository) ListByEmployee(employeeID string) ([]models.OTRequest, error) {
	return r.queryOT(`SELECT `+otColumns+` FROM ot_requests WHERE employee_id = ? ORDER BY timestamp DESC`, employeeID)
}

func (r *OTRepository) queryOT(query string, args ...interface{}) ([]models.OTRequest, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ot requests: %w", err)
	}
	defer rows.Close()

	var requests []models.OTRequest
	for rows.Next() {
		var req models.OTRequest
		if err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.Date, &req.StartTime, &req.EndTime,
			&req.Reason, &req.Status, &req.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan ot request: %w", err)
		}
		requests = append(requests, req)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ot requests: %w", err)
	}
	return requests, nil
}
