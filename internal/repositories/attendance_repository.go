package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/watrakon/Sgdatapos/internal/models"
)

// AttendanceRepositoryInterface defines the time-record ledger methods.
// The ledger is append-only and partitioned by employee email.
type AttendanceRepositoryInterface interface {
	Save(record *models.TimeRecord) error
	HistoryByEmail(email string) ([]models.TimeRecord, error)
	LatestByEmail(email string) (*models.TimeRecord, error)
}

// AttendanceRepository implements AttendanceRepositoryInterface over MySQL.
type AttendanceRepository struct {
	db *sql.DB
}

func NewAttendanceRepository(db *sql.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Save appends one check-in/check-out event. Records are never updated.
func (r *AttendanceRepository) Save(record *models.TimeRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	var lat, lng interface{}
	if record.Coords != nil {
		lat = record.Coords.Latitude
		lng = record.Coords.Longitude
	}

	query := `
		INSERT INTO time_records (id, email, type, status, timestamp, location, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		record.ID, record.Email, record.Type, record.Status,
		record.Timestamp, record.Location, lat, lng,
	)
	if err != nil {
		return fmt.Errorf("save time record: %w", err)
	}
	return nil
}

// HistoryByEmail returns the employee's ledger newest-first, matching the
// prepend order the UI expects.
func (r *AttendanceRepository) HistoryByEmail(email string) ([]models.TimeRecord, error) {
	query := `
		SELECT id, email, type, status, timestamp, location, latitude, longitude
		FROM time_records
		WHERE email = ?
		ORDER BY timestamp DESC, id DESC`

	rows, err := r.db.Query(query, email)
	if err != nil {
		return nil, fmt.Errorf("query time records: %w", err)
	}
	defer rows.Close()

	var records []models.TimeRecord
	for rows.Next() {
		record, err := scanTimeRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan time record: %w", err)
		}
		records = append(records, *record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time records: %w", err)
	}
	return records, nil
}

// LatestByEmail returns the newest record, or nil for an empty ledger.
func (r *AttendanceRepository) LatestByEmail(email string) (*models.TimeRecord, error) {
	query := `
		SELECT id, email, type, status, timestamp, location, latitude, longitude
		FROM time_records
		WHERE email = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT 1`

	record, err := scanTimeRecord(r.db.QueryRow(query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest time record: %w", err)
	}
	return record, nil
}

func scanTimeRecord(row interface{ Scan(...interface{}) error }) (*models.TimeRecord, error) {
	record := &models.TimeRecord{}
	var lat, lng sql.NullFloat64

	err := row.Scan(
		&record.ID, &record.Email, &record.Type, &record.Status,
		&record.Timestamp, &record.Location, &lat, &lng,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid && lng.Valid {
		record.Coords = &models.Coords{Latitude: lat.Float64, Longitude: lng.Float64}
	}
	return record, nil
}
