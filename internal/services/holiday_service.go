package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/watrakon/Sgdatapos/internal/models"
	"github.com/watrakon/Sgdatapos/internal/repositories"
)

// ErrNoParsableRows - the upload yielded nothing usable; the previous
// holiday set is left untouched.
var ErrNoParsableRows = errors.New("no parsable holiday rows in upload")

// HolidayService manages the uploaded company holiday list.
type HolidayService struct {
	holidayRepo repositories.HolidayRepositoryInterface
}

func NewHolidayService(holidayRepo repositories.HolidayRepositoryInterface) *HolidayService {
	return &HolidayService{holidayRepo: holidayRepo}
}

func (s *HolidayService) List() ([]models.Holiday, error) {
	return s.holidayRepo.ListAll()
}

func (s *HolidayService) Clear() error {
	return s.holidayRepo.DeleteAll()
}

// Upload replaces the holiday set from a .json array or a spreadsheet.
// The JSON path is all-or-nothing; the spreadsheet path accepts whatever
// subset of rows parsed. Either way a failed parse commits nothing.
func (s *HolidayService) Upload(filename string, data []byte) (int, error) {
	var holidays []models.Holiday
	var err error

	if strings.HasSuffix(strings.ToLower(filename), ".json") {
		holidays, err = parseHolidayJSON(data)
	} else {
		holidays, err = parseHolidaySheet(data)
	}
	if err != nil {
		return 0, err
	}
	if len(holidays) == 0 {
		return 0, ErrNoParsableRows
	}

	if err := s.holidayRepo.ReplaceAll(holidays); err != nil {
		return 0, err
	}
	return len(holidays), nil
}

func parseHolidayJSON(data []byte) ([]models.Holiday, error) {
	var holidays []models.Holiday
	if err := json.Unmarshal(data, &holidays); err != nil {
		return nil, fmt.Errorf("parse holiday json: %w", err)
	}
	for i, h := range holidays {
		date, ok := normalizeHolidayDate(strings.TrimSpace(h.Date))
		if !ok {
			// One bad date fails the whole JSON import.
			return nil, fmt.Errorf("invalid holiday date %q", h.Date)
		}
		holidays[i].Date = date
	}
	return holidays, nil
}

// parseHolidaySheet reads the first worksheet, skips the header row, and
// keeps every row whose date parses. Column order: date, Thai name,
// English name.
func parseHolidaySheet(data []byte) ([]models.Holiday, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("no worksheet found")
	}
	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read worksheet: %w", err)
	}

	var holidays []models.Holiday
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		date, ok := normalizeHolidayDate(strings.TrimSpace(row[0]))
		if !ok {
			continue
		}
		holiday := models.Holiday{Date: date}
		if len(row) > 1 {
			holiday.NameTh = strings.TrimSpace(row[1])
		}
		if len(row) > 2 {
			holiday.NameEn = strings.TrimSpace(row[2])
		}
		holidays = append(holidays, holiday)
	}
	return holidays, nil
}

// normalizeHolidayDate accepts an Excel numeric date serial, YYYY-MM-DD,
// or DD/MM/YYYY with "/", "." or "-" separators, and returns YYYY-MM-DD.
func normalizeHolidayDate(value string) (string, bool) {
	if value == "" {
		return "", false
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > 20000 && serial < 80000 {
		if parsed, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return parsed.Format(models.DateLayout), true
		}
	}

	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == '/' || r == '.' || r == '-'
	})
	if len(parts) != 3 {
		return "", false
	}

	var year, month, day int
	if len(parts[0]) == 4 {
		year, month, day = atoi(parts[0]), atoi(parts[1]), atoi(parts[2])
	} else {
		year, month, day = atoi(parts[2]), atoi(parts[1]), atoi(parts[0])
	}
	normalized := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	if _, err := time.Parse(models.DateLayout, normalized); err != nil {
		return "", false
	}
	return normalized, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
