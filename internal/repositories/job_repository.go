package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/watrakon/Sgdatapos/internal/models"
)

// JobRepositoryInterface defines the job data-access methods. Upsert
// semantics are by id: saving an existing id replaces the row in place,
// saving a new id appends.
type JobRepositoryInterface interface {
	GetAll() ([]models.Job, error)
	FindByID(id string) (*models.Job, error)
	Upsert(job *models.Job) error
	Delete(id string) error
	ListByDate(date string, employeeID *string) ([]models.Job, error)
	ListByRange(from, to string, employeeID *string) ([]models.Job, error)
	ListWithPackingLists() ([]models.Job, error)
}

// JobRepository implements JobRepositoryInterface over MySQL.
type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, employee_id, date, customer_name, activity, status, remark, kind, approval_state, packing_list, trip_distance_km`

// Upsert writes the job, replacing an existing row with the same id.
// Last write wins; there is no version check.
func (r *JobRepository) Upsert(job *models.Job) error {
	var packingJSON interface{}
	if job.PackingList != nil {
		data, err := json.Marshal(job.PackingList)
		if err != nil {
			return fmt.Errorf("marshal packing list: %w", err)
		}
		packingJSON = string(data)
	}

	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			employee_id = VALUES(employee_id), date = VALUES(date),
			customer_name = VALUES(customer_name), activity = VALUES(activity),
			status = VALUES(status), remark = VALUES(remark),
			kind = VALUES(kind), approval_state = VALUES(approval_state),
			packing_list = VALUES(packing_list), trip_distance_km = VALUES(trip_distance_km)`

	_, err := r.db.Exec(query,
		job.ID, job.EmployeeID, job.Date, job.CustomerName, job.Activity,
		job.Status, job.Remark, job.Kind, job.ApprovalState,
		packingJSON, job.TripDistanceKm,
	)
	if err != nil {
		return fmt.Errorf("upsert job: %w", err)
	}
	return nil
}

func (r *JobRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

func (r *JobRepository) FindByID(id string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`
	job, err := scanJob(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find job by id: %w", err)
	}
	return job, nil
}

func (r *JobRepository) GetAll() ([]models.Job, error) {
	return r.queryJobs(`SELECT `+jobColumns+` FROM jobs ORDER BY date DESC, id DESC`)
}

// ListByDate filters by exact date-string equality, optionally narrowed to
// one employee.
func (r *JobRepository) ListByDate(date string, employeeID *string) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE date = ?`
	args := []interface{}{date}
	if employeeID != nil {
		query += ` AND employee_id = ?`
		args = append(args, *employeeID)
	}
	query += ` ORDER BY id`
	return r.queryJobs(query, args...)
}

// ListByRange filters by inclusive date range (week/month views).
func (r *JobRepository) ListByRange(from, to string, employeeID *string) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE date >= ? AND date <= ?`
	args := []interface{}{from, to}
	if employeeID != nil {
		query += ` AND employee_id = ?`
		args = append(args, *employeeID)
	}
	query += ` ORDER BY date, id`
	return r.queryJobs(query, args...)
}

// ListWithPackingLists returns the jobs that carry an equipment checklist,
// newest first, for the "load previous project" lookup.
func (r *JobRepository) ListWithPackingLists() ([]models.Job, error) {
	return r.queryJobs(`SELECT ` + jobColumns + ` FROM jobs WHERE packing_list IS NOT NULL ORDER BY date DESC, id DESC`)
}

func (r *JobRepository) queryJobs(query string, args ...interface{}) ([]models.Job, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, nil
}

func scanJob(row interface{ Scan(...interface{}) error }) (*models.Job, error) {
	job := &models.Job{}
	var packingJSON sql.NullString
	var distance sql.NullFloat64

	err := row.Scan(
		&job.ID, &job.EmployeeID, &job.Date, &job.CustomerName, &job.Activity,
		&job.Status, &job.Remark, &job.Kind, &job.ApprovalState,
		&packingJSON, &distance,
	)
	if err != nil {
		return nil, err
	}

	if packingJSON.Valid && packingJSON.String != "" {
		var list models.PackingList
		if err := json.Unmarshal([]byte(packingJSON.String), &list); err != nil {
			return nil, fmt.Errorf("unmarshal packing list for job %s: %w", job.ID, err)
		}
		job.PackingList = &list
	}
	if distance.Valid {
		job.TripDistanceKm = &distance.Float64
	}
	return job, nil
}
