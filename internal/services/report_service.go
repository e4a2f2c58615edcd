package services

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/watrakon/Sgdatapos/internal/models"
	"github.com/watrakon/Sgdatapos/internal/repositories"
)

// ReportService builds the downloadable Excel reports. Every export is
// scoped to a single employee and mirrors what that employee sees on
// screen, one row per record.
type ReportService struct {
	attendanceRepo repositories.AttendanceRepositoryInterface
	leaveRepo      repositories.LeaveRepositoryInterface
	otRepo         repositories.OTRepositoryInterface
	jobRepo        repositories.JobRepositoryInterface

	now func() time.Time
}

func NewReportService(
	attendanceRepo repositories.AttendanceRepositoryInterface,
	leaveRepo repositories.LeaveRepositoryInterface,
	otRepo repositories.OTRepositoryInterface,
	jobRepo repositories.JobRepositoryInterface,
) *ReportService {
	return &ReportService{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		otRepo:         otRepo,
		jobRepo:        jobRepo,
		now:            time.Now,
	}
}

// AttendanceWorkbook exports the employee's full check-in/out history.
func (s *ReportService) AttendanceWorkbook(employee *models.Employee) (string, []byte, error) {
	history, err := s.attendanceRepo.HistoryByEmail(employee.Email)
	if err != nil {
		return "", nil, fmt.Errorf("load attendance history: %w", err)
	}

	rows := make([][]interface{}, 0, len(history))
	for _, r := range history {
		eventLabel := "Out"
		if r.Type == models.EventCheckIn {
			eventLabel = "In"
		}
		rows = append(rows, []interface{}{
			r.Timestamp.Format(models.DateLayout),
			r.Timestamp.Format("15:04:05"),
			eventLabel,
			r.Location,
			r.Status,
		})
	}

	data, err := buildWorkbook(sheetDef{
		Name:    "Attendance",
		Headers: []interface{}{"Date", "Time", "Type", "Location", "Status"},
		Rows:    rows,
	})
	if err != nil {
		return "", nil, err
	}
	return s.reportFilename("Attendance", employee), data, nil
}

// RequestsWorkbook exports leave and OT requests as two sheets in one
// workbook.
func (s *ReportService) RequestsWorkbook(employee *models.Employee) (string, []byte, error) {
	leaves, err := s.leaveRepo.ListByEmployee(employee.ID)
	if err != nil {
		return "", nil, fmt.Errorf("load leave requests: %w", err)
	}
	ots, err := s.otRepo.ListByEmployee(employee.ID)
	if err != nil {
		return "", nil, fmt.Errorf("load ot requests: %w", err)
	}

	leaveRows := make([][]interface{}, 0, len(leaves))
	for _, l := range leaves {
		leaveRows = append(leaveRows, []interface{}{
			l.Type, l.StartDate, l.EndDate, l.Days, l.Reason, l.Status,
		})
	}
	otRows := make([][]interface{}, 0, len(ots))
	for _, o := range ots {
		otRows = append(otRows, []interface{}{
			o.Date, o.StartTime, o.EndTime, o.Reason, o.Status,
		})
	}

	data, err := buildWorkbook(
		sheetDef{
			Name:    "Leaves",
			Headers: []interface{}{"Leave Type", "Start", "End", "Days", "Reason", "Status"},
			Rows:    leaveRows,
		},
		sheetDef{
			Name:    "OT",
			Headers: []interface{}{"OT Date", "Start", "End", "Reason", "Status"},
			Rows:    otRows,
		},
	)
	if err != nil {
		return "", nil, err
	}
	return s.reportFilename("Requests", employee), data, nil
}

// JobsWorkbook exports the employee's job history.
func (s *ReportService) JobsWorkbook(employee *models.Employee) (string, []byte, error) {
	all, err := s.jobRepo.GetAll()
	if err != nil {
		return "", nil, fmt.Errorf("load jobs: %w", err)
	}

	rows := make([][]interface{}, 0)
	for _, j := range all {
		if j.EmployeeID != employee.ID {
			continue
		}
		rows = append(rows, []interface{}{
			j.Date, j.CustomerName, j.Activity, j.Status, j.Remark,
		})
	}

	data, err := buildWorkbook(sheetDef{
		Name:    "Jobs",
		Headers: []interface{}{"Date", "Customer", "Activity", "Status", "Remark"},
		Rows:    rows,
	})
	if err != nil {
		return "", nil, err
	}
	return s.reportFilename("Jobs", employee), data, nil
}

func (s *ReportService) reportFilename(kind string, employee *models.Employee) string {
	name := employee.NicknameEn
	if name == "" {
		name = employee.ID
	}
	return fmt.Sprintf("SGDATA_%s_%s_%s.xlsx", kind, name, s.now().Format(models.DateLayout))
}

// sheetDef describes one worksheet: a header row followed by data rows.
type sheetDef struct {
	Name    string
	Headers []interface{}
	Rows    [][]interface{}
}

func buildWorkbook(sheets ...sheetDef) ([]byte, error) {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	for i, sheet := range sheets {
		if i == 0 {
			if err := file.SetSheetName(file.GetSheetName(0), sheet.Name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := file.NewSheet(sheet.Name); err != nil {
				return nil, fmt.Errorf("add sheet %s: %w", sheet.Name, err)
			}
		}
		if err := file.SetSheetRow(sheet.Name, "A1", &sheet.Headers); err != nil {
			return nil, fmt.Errorf("write header row: %w", err)
		}
		for rowIdx, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := file.SetSheetRow(sheet.Name, cell, &row); err != nil {
				return nil, fmt.Errorf("write row %d: %w", rowIdx+2, err)
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
