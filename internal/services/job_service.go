package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/watrakon/Sgdatapos/internal/models"
	"github.com/watrakon/Sgdatapos/internal/repositories"
)

// ErrJobNotFound - the referenced job does not exist.
var ErrJobNotFound = errors.New("job not found")

// mergeRequestMarker is the legacy approval-request tag kept inside the
// activity text for display; approval strips it. The typed kind field is
// what drives the workflow.
const mergeRequestMarker = "[ขออนุมัติรวมทีม] "

// JobService owns the job calendar, the busy/ready roster and the job
// approval queues.
type JobService struct {
	jobRepo        repositories.JobRepositoryInterface
	employeeRepo   repositories.EmployeeRepositoryInterface
	attendanceRepo repositories.AttendanceRepositoryInterface
	sessionRepo    repositories.SessionRepositoryInterface
	now            func() time.Time
}

func NewJobService(
	jobRepo repositories.JobRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	attendanceRepo repositories.AttendanceRepositoryInterface,
	sessionRepo repositories.SessionRepositoryInterface,
) *JobService {
	return &JobService{
		jobRepo:        jobRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		sessionRepo:    sessionRepo,
		now:            time.Now,
	}
}

// SaveJob upserts a job by id. New jobs get a generated id and default to
// a NORMAL kind outside any approval queue.
func (s *JobService) SaveJob(job *models.Job) error {
	if job.EmployeeID == "" {
		return errors.New("employee id is required")
	}
	if job.Date == "" {
		return errors.New("date is required")
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = models.JobNotStarted
	}
	if job.Kind == "" {
		job.Kind = models.JobKindNormal
	}
	if job.ApprovalState == "" {
		job.ApprovalState = models.ApprovalNone
	}
	return s.jobRepo.Upsert(job)
}

func (s *JobService) DeleteJob(id string) error {
	return s.jobRepo.Delete(id)
}

func (s *JobService) AllJobs() ([]models.Job, error) {
	return s.jobRepo.GetAll()
}

// JobsForDay filters by date-string equality with an optional employee
// predicate.
func (s *JobService) JobsForDay(date string, employeeID *string) ([]models.Job, error) {
	return s.jobRepo.ListByDate(date, employeeID)
}

// JobsForRange filters by inclusive date range (week and month views).
func (s *JobService) JobsForRange(from, to string, employeeID *string) ([]models.Job, error) {
	return s.jobRepo.ListByRange(from, to, employeeID)
}

// WeeklyBoard groups seven days of jobs by employee, then date, then
// customer. Display-only; never stored.
func (s *JobService) WeeklyBoard(weekStart string) ([]models.EmployeeWeek, error) {
	start, err := time.Parse(models.DateLayout, weekStart)
	if err != nil {
		return nil, fmt.Errorf("parse week start: %w", err)
	}
	end := start.AddDate(0, 0, 6)

	jobs, err := s.jobRepo.ListByRange(weekStart, end.Format(models.DateLayout), nil)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[string]map[string]map[string][]models.Job)
	for _, job := range jobs {
		if byEmployee[job.EmployeeID] == nil {
			byEmployee[job.EmployeeID] = make(map[string]map[string][]models.Job)
		}
		if byEmployee[job.EmployeeID][job.Date] == nil {
			byEmployee[job.EmployeeID][job.Date] = make(map[string][]models.Job)
		}
		byEmployee[job.EmployeeID][job.Date][job.CustomerName] = append(byEmployee[job.EmployeeID][job.Date][job.CustomerName], job)
	}

	weeks := make([]models.EmployeeWeek, 0, len(byEmployee))
	for employeeID, days := range byEmployee {
		week := models.EmployeeWeek{EmployeeID: employeeID}
		dates := make([]string, 0, len(days))
		for date := range days {
			dates = append(dates, date)
		}
		sort.Strings(dates)
		for _, date := range dates {
			day := models.DayGroup{Date: date}
			customers := make([]string, 0, len(days[date]))
			for customer := range days[date] {
				customers = append(customers, customer)
			}
			sort.Strings(customers)
			for _, customer := range customers {
				day.Customers = append(day.Customers, models.CustomerGroup{
					CustomerName: customer,
					Jobs:         days[date][customer],
				})
			}
			week.Days = append(week.Days, day)
		}
		weeks = append(weeks, week)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].EmployeeID < weeks[j].EmployeeID })
	return weeks, nil
}

// TeamStatus derives the live busy/ready roster. An employee is BUSY when
// they have a job today that is not DONE and is not an unapproved merge
// request; a pending merge request never counts.
func (s *JobService) TeamStatus() ([]models.EmployeeDayStatus, error) {
	today := s.now().Format(models.DateLayout)

	employees, err := s.employeeRepo.GetAll()
	if err != nil {
		return nil, err
	}
	todayJobs, err := s.jobRepo.ListByDate(today, nil)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListByDate(today)
	if err != nil {
		return nil, err
	}
	sessionByEmployee := make(map[string]models.LoginSession, len(sessions))
	for _, session := range sessions {
		sessionByEmployee[session.EmployeeID] = session
	}

	statuses := make([]models.EmployeeDayStatus, 0, len(employees))
	for _, emp := range employees {
		emp.Password = ""
		status := models.EmployeeDayStatus{Employee: emp}

		for i := range todayJobs {
			job := todayJobs[i]
			if job.EmployeeID != emp.ID || job.Status == models.JobDone || job.IsPendingMergeRequest() {
				continue
			}
			status.Busy = true
			status.ActiveJob = &todayJobs[i]
			break
		}

		latest, err := s.attendanceRepo.LatestByEmail(emp.Email)
		if err != nil {
			return nil, fmt.Errorf("latest record for %s: %w", emp.Email, err)
		}
		if latest != nil && latest.Type == models.EventCheckIn && latest.Timestamp.Format(models.DateLayout) == today {
			status.CheckedInToday = true
		}

		if session, ok := sessionByEmployee[emp.ID]; ok {
			status.Session = &session
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// PendingApprovals assembles the admin job queue: merge requests awaiting
// a decision plus completed normal jobs awaiting confirmation.
func (s *JobService) PendingApprovals() (*models.PendingJobApprovals, error) {
	jobs, err := s.jobRepo.GetAll()
	if err != nil {
		return nil, err
	}

	pending := &models.PendingJobApprovals{}
	for _, job := range jobs {
		switch {
		case job.IsPendingMergeRequest():
			pending.MergeRequests = append(pending.MergeRequests, job)
		case job.Kind != models.JobKindMergeRequest && job.Status == models.JobDone && job.ApprovalState != models.ApprovalApproved:
			pending.CompletedJobs = append(pending.CompletedJobs, job)
		}
	}
	return pending, nil
}

// DecideJob resolves one entry of the job approval queue. For a merge
// request: approve moves it to IN_PROGRESS (it starts counting as busy)
// and strips the request marker from the activity text; reject closes it
// as DONE. For a completed normal job: approve confirms the work, reject
// sends it back to NOT_STARTED. Last write wins on concurrent decisions.
func (s *JobService) DecideJob(jobID, decision string) (*models.Job, error) {
	if decision != models.StatusApproved && decision != models.StatusRejected {
		return nil, fmt.Errorf("invalid decision %q", decision)
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	if job.Kind == models.JobKindMergeRequest {
		if job.ApprovalState != models.ApprovalPending {
			return nil, ErrRequestFinalized
		}
		if decision == models.StatusApproved {
			job.Status = models.JobInProgress
			job.ApprovalState = models.ApprovalApproved
			job.Activity = strings.Replace(job.Activity, mergeRequestMarker, "", 1)
		} else {
			job.Status = models.JobDone
			job.ApprovalState = models.ApprovalRejected
		}
	} else {
		if decision == models.StatusApproved {
			job.Status = models.JobDone
			job.ApprovalState = models.ApprovalApproved
		} else {
			job.Status = models.JobNotStarted
			job.ApprovalState = models.ApprovalNone
		}
	}

	if err := s.jobRepo.Upsert(job); err != nil {
		return nil, err
	}
	return job, nil
}
