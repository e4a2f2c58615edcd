package repositories

import (
	"database/sql"
	"fmt"

	"github.com/watrakon/Sgdatapos/internal/models"
)

// HolidayRepositoryInterface defines the uploaded-holiday methods.
type HolidayRepositoryInterface interface {
	ReplaceAll(holidays []models.Holiday) error
	ListAll() ([]models.Holiday, error)
	DeleteAll() error
}

// HolidayRepository implements HolidayRepositoryInterface over MySQL.
type HolidayRepository struct {
	db *sql.DB
}

func NewHolidayRepository(db *sql.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// ReplaceAll swaps the holiday set in one transaction so a failed upload
// leaves the previous data untouched.
func (r *HolidayRepository) ReplaceAll(holidays []models.Holiday) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin holiday replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM holidays`); err != nil {
		return fmt.Errorf("clear holidays: %w", err)
	}
	for _, h := range holidays {
		_, err := tx.Exec(
			`INSERT INTO holidays (date, name_th, name_en) VALUES (?, ?, ?)
			 ON DUPLICATE KEY UPDATE name_th = VALUES(name_th), name_en = VALUES(name_en)`,
			h.Date, h.NameTh, h.NameEn,
		)
		if err != nil {
			return fmt.Errorf("insert holiday %s: %w", h.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit holiday replace: %w", err)
	}
	return nil
}

func (r *HolidayRepository) ListAll() ([]models.Holiday, error) {
	rows, err := r.db.Query(`SELECT date, name_th, name_en FROM holidays ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []models.Holiday
	for rows.Next() {
		var h models.Holiday
		if err := rows.Scan(&h.Date, &h.NameTh, &h.NameEn); err != nil {
			return nil, fmt.Errorf("scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate holidays: %w", err)
	}
	return holidays, nil
}

func (r *HolidayRepository) DeleteAll() error {
	if _, err := r.db.Exec(`DELETE FROM holidays`); err != nil {
		return fmt.Errorf("delete holidays: %w", err)
	}
	return nil
}
