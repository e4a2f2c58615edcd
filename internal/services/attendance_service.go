package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/watrakon/Sgdatapos/internal/geocode"
	"github.com/watrakon/Sgdatapos/internal/models"
	"github.com/watrakon/Sgdatapos/internal/repositories"
)

// lateCutoffHour: a check-in after 09:00 local time is LATE.
const lateCutoffHour = 9

// AttendanceService records check-in/out events and derives the live
// roster views.
type AttendanceService struct {
	attendanceRepo repositories.AttendanceRepositoryInterface
	employeeRepo   repositories.EmployeeRepositoryInterface
	sessionRepo    repositories.SessionRepositoryInterface
	resolver       geocode.Resolver
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo repositories.AttendanceRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	sessionRepo repositories.SessionRepositoryInterface,
	resolver geocode.Resolver,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		sessionRepo:    sessionRepo,
		resolver:       resolver,
		now:            time.Now,
	}
}

// RecordEvent appends a check-in/check-out to the employee's ledger.
// Lateness is computed once from the server wall clock and frozen into the
// record. Location resolution is best-effort: geocode chain when coords
// are present, the caller's manual text otherwise; the record is stored
// either way and coords may stay nil. There is deliberately no protection
// against double check-in; the ledger does not enforce alternation.
func (s *AttendanceService) RecordEvent(ctx context.Context, email, eventType string, coords *models.Coords, manualLocation string) (*models.TimeRecord, error) {
	if eventType != models.EventCheckIn && eventType != models.EventCheckOut {
		return nil, fmt.Errorf("unknown attendance event type %q", eventType)
	}

	now := s.now()

	status := models.AttendanceNone
	if eventType == models.EventCheckIn {
		if now.Hour() > lateCutoffHour || (now.Hour() == lateCutoffHour && now.Minute() > 0) {
			status = models.AttendanceLate
		} else {
			status = models.AttendanceNormal
		}
	}

	location := manualLocation
	if coords != nil && location == "" {
		location = s.resolver.ReverseGeocode(ctx, *coords)
	}
	if location == "" {
		location = "Manual entry required"
	}

	record := &models.TimeRecord{
		Email:     email,
		Type:      eventType,
		Status:    status,
		Timestamp: now,
		Location:  location,
		Coords:    coords,
	}
	if err := s.attendanceRepo.Save(record); err != nil {
		return nil, err
	}
	return record, nil
}

// History returns the employee's ledger newest-first.
func (s *AttendanceService) History(email string) ([]models.TimeRecord, error) {
	return s.attendanceRepo.HistoryByEmail(email)
}

// IsCurrentlyCheckedIn reports whether the newest ledger entry is a
// check-in. The alternation invariant is expected, not enforced: two
// consecutive check-ins leave this true.
func (s *AttendanceService) IsCurrentlyCheckedIn(email string) (bool, error) {
	latest, err := s.attendanceRepo.LatestByEmail(email)
	if err != nil {
		return false, err
	}
	return latest != nil && latest.Type == models.EventCheckIn, nil
}

// TeamLocations pairs every employee with their newest time record for the
// roster/map view. Employees with an empty ledger are skipped.
func (s *AttendanceService) TeamLocations() ([]models.TeamLocation, error) {
	employees, err := s.employeeRepo.GetAll()
	if err != nil {
		return nil, err
	}

	var locations []models.TeamLocation
	for _, emp := range employees {
		latest, err := s.attendanceRepo.LatestByEmail(emp.Email)
		if err != nil {
			return nil, fmt.Errorf("latest record for %s: %w", emp.Email, err)
		}
		if latest == nil {
			continue
		}
		emp.Password = ""
		locations = append(locations, models.TeamLocation{Employee: emp, Record: latest})
	}
	return locations, nil
}

// TodaySessions lists who logged in from which office today.
func (s *AttendanceService) TodaySessions() ([]models.LoginSession, error) {
	return s.sessionRepo.ListByDate(s.now().Format(models.DateLayout))
}

// SaveSession upserts the caller's login session for today.
func (s *AttendanceService) SaveSession(employeeID, office string) error {
	if employeeID == "" {
		return errors.New("employee id is required")
	}
	return s.sessionRepo.Upsert(&models.LoginSession{
		EmployeeID: employeeID,
		Office:     office,
		Date:       s.now().Format(models.DateLayout),
	})
}
