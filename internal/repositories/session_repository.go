package repositories

import (
	"database/sql"
	"fmt"

	"github.com/watrakon/Sgdatapos/internal/models"
)

// SessionRepositoryInterface defines the login-session methods. One row
// per employee per local calendar day, upserted on login.
type SessionRepositoryInterface interface {
	Upsert(session *models.LoginSession) error
	ListByDate(date string) ([]models.LoginSession, error)
}

// SessionRepository implements SessionRepositoryInterface over MySQL.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Upsert records which office the employee logged in from today. A repeat
// login the same day just updates the office.
func (r *SessionRepository) Upsert(session *models.LoginSession) error {
	query := `
		INSERT INTO login_sessions (employee_id, office, date)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE office = VALUES(office)`

	_, err := r.db.Exec(query, session.EmployeeID, session.Office, session.Date)
	if err != nil {
		return fmt.Errorf("upsert login session: %w", err)
	}
	return nil
}

func (r *SessionRepository) ListByDate(date string) ([]models.LoginSession, error) {
	rows, err := r.db.Query(`SELECT employee_id, office, date FROM login_sessions WHERE date = ?`, date)
	if err != nil {
		return nil, fmt.Errorf("query login sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.LoginSession
	for rows.Next() {
		var session models.LoginSession
		if err := rows.Scan(&session.EmployeeID, &session.Office, &session.Date); err != nil {
			return nil, fmt.Errorf("scan login session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate login sessions: %w", err)
	}
	return sessions, nil
}
