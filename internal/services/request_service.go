package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/watrakon/Sgdatapos/internal/models"
	"github.com/watrakon/Sgdatapos/internal/repositories"
)

// ErrRequestNotFound - the referenced leave/OT request does not exist.
var ErrRequestNotFound = errors.New("request not found")

// ErrRequestFinalized - the request already left PENDING. APPROVED and
// REJECTED are terminal; nothing transitions a request back.
var ErrRequestFinalized = errors.New("request has already been finalized")

// ErrNotCoordinator - the caller is not the nominated coordinator of the
// leave request.
var ErrNotCoordinator = errors.New("caller is not the nominated coordinator")

// RequestService owns the leave and overtime request workflows. Both share
// the same PENDING -> APPROVED/REJECTED machine.
type RequestService struct {
	leaveRepo repositories.LeaveRepositoryInterface
	otRepo    repositories.OTRepositoryInterface
	now       func() time.Time
}

func NewRequestService(leaveRepo repositories.LeaveRepositoryInterface, otRepo repositories.OTRepositoryInterface) *RequestService {
	return &RequestService{
		leaveRepo: leaveRepo,
		otRepo:    otRepo,
		now:       time.Now,
	}
}

// CalculateLeaveDays returns the inclusive day count of a leave range:
// whole days between the endpoints plus one. 2025-03-10..2025-03-12 is 3.
func CalculateLeaveDays(startDate, endDate string) (int, error) {
	start, err := time.Parse(models.DateLayout, startDate)
	if err != nil {
		return 0, fmt.Errorf("parse start date: %w", err)
	}
	end, err := time.Parse(models.DateLayout, endDate)
	if err != nil {
		return 0, fmt.Errorf("parse end date: %w", err)
	}
	diff := math.Abs(end.Sub(start).Hours())
	return int(math.Ceil(diff/24)) + 1, nil
}

// OTDurationMinutes derives the overtime length from HH:MM endpoints.
// End before start wraps past midnight: 22:00..02:00 is 240 minutes.
func OTDurationMinutes(startTime, endTime string) (int, error) {
	start, err := parseClock(startTime)
	if err != nil {
		return 0, err
	}
	end, err := parseClock(endTime)
	if err != nil {
		return 0, err
	}
	diff := end - start
	if diff < 0 {
		diff += 24 * 60
	}
	return diff, nil
}

func parseClock(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("parse time %q: %w", value, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// SubmitLeave creates a PENDING leave request. The inclusive day count is
// computed here and frozen into the record. A nominated coordinator opens
// the independent handover sub-workflow at PENDING.
func (s *RequestService) SubmitLeave(req *models.LeaveRequest) error {
	if req.EmployeeID == "" {
		return errors.New("employee id is required")
	}
	if req.StartDate == "" || req.EndDate == "" {
		return errors.New("start and end dates are required")
	}

	days, err := CalculateLeaveDays(req.StartDate, req.EndDate)
	if err != nil {
		return err
	}
	req.Days = days
	req.Status = models.StatusPending
	req.Timestamp = s.now()

	if req.CoordinatorID != nil && *req.CoordinatorID != "" {
		pending := models.StatusPending
		req.CoordinatorStatus = &pending
	} else {
		req.CoordinatorID = nil
		req.CoordinatorStatus = nil
	}

	return s.leaveRepo.Save(req)
}

func (s *RequestService) LeavesByEmployee(employeeID string) ([]models.LeaveRequest, error) {
	return s.leaveRepo.ListByEmployee(employeeID)
}

func (s *RequestService) AllLeaves() ([]models.LeaveRequest, error) {
	return s.leaveRepo.ListAll()
}

// DecideLeave transitions a PENDING leave request to APPROVED or REJECTED.
// Finalized requests are immutable.
func (s *RequestService) DecideLeave(requestID, decision string) (*models.LeaveRequest, error) {
	if decision != models.StatusApproved && decision != models.StatusRejected {
		return nil, fmt.Errorf("invalid decision %q", decision)
	}

	req, err := s.leaveRepo.FindByID(requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.Status != models.StatusPending {
		return nil, ErrRequestFinalized
	}

	req.Status = decision
	if err := s.leaveRepo.Save(req); err != nil {
		return nil, err
	}
	return req, nil
}

// AcceptHandover lets the nominated coordinator acknowledge covering for
// the leave. It touches only coordinatorStatus; the primary approval is
// unaffected.
func (s *RequestService) AcceptHandover(requestID, coordinatorID string) (*models.LeaveRequest, error) {
	req, err := s.leaveRepo.FindByID(requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.CoordinatorID == nil || *req.CoordinatorID != coordinatorID {
		return nil, ErrNotCoordinator
	}

	accepted := models.StatusAccepted
	req.CoordinatorStatus = &accepted
	if err := s.leaveRepo.Save(req); err != nil {
		return nil, err
	}
	return req, nil
}

// PendingHandovers lists the handover asks waiting on the given
// coordinator.
func (s *RequestService) PendingHandovers(coordinatorID string) ([]models.LeaveRequest, error) {
	return s.leaveRepo.ListPendingForCoordinator(coordinatorID)
}

// SubmitOT creates a PENDING overtime request. The time range is validated
// for shape; duration stays derived, never stored.
func (s *RequestService) SubmitOT(req *models.OTRequest) error {
	if req.EmployeeID == "" {
		return errors.New("employee id is required")
	}
	if req.Date == "" {
		return errors.New("date is required")
	}
	if _, err := OTDurationMinutes(req.StartTime, req.EndTime); err != nil {
		return err
	}

	req.Status = models.StatusPending
	req.Timestamp = s.now()
	return s.otRepo.Save(req)
}

func (s *RequestService) OTByEmployee(employeeID string) ([]models.OTRequest, error) {
	return s.otRepo.ListByEmployee(employeeID)
}

func (s *RequestService) AllOT() ([]models.OTRequest, error) {
	return s.otRepo.ListAll()
}

// DecideOT transitions a PENDING overtime request; same terminal machine
// as leave.
func (s *RequestService) DecideOT(requestID, decision string) (*models.OTRequest, error) {
	if decision != models.StatusApproved && decision != models.StatusRejected {
		return nil, fmt.Errorf("invalid decision %q", decision)
	}

	req, err := s.otRepo.FindByID(requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.Status != models.StatusPending {
		return nil, ErrRequestFinalized
	}

	req.Status = decision
	if err := s.otRepo.Save(req); err != nil {
		return nil, err
	}
	return req, nil
}
