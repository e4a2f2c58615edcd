package services

import (
	"context"
	"sort"

	"github.com/watrakon/Sgdatapos/internal/models"
	"github.com/watrakon/Sgdatapos/internal/repositories"
)

// In-memory repository fakes shared by the service tests.

type fakeEmployeeRepo struct {
	employees map[string]models.Employee
}

func newFakeEmployeeRepo(employees ...models.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{employees: map[string]models.Employee{}}
	for _, emp := range employees {
		repo.employees[emp.ID] = emp
	}
	return repo
}

func (f *fakeEmployeeRepo) GetAll() ([]models.Employee, error) {
	var out []models.Employee
	for _, emp := range f.employees {
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEmployeeRepo) FindByID(id string) (*models.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return nil, nil
	}
	cp := emp
	return &cp, nil
}

func (f *fakeEmployeeRepo) FindByEmail(email string) (*models.Employee, error) {
	for _, emp := range f.employees {
		if emp.Email == email {
			cp := emp
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeEmployeeRepo) Create(emp *models.Employee) error {
	if emp.ID == "" {
		emp.ID = "emp-" + emp.Email
	}
	f.employees[emp.ID] = *emp
	return nil
}

func (f *fakeEmployeeRepo) Update(emp *models.Employee) error {
	existing, ok := f.employees[emp.ID]
	if !ok {
		return repositories.ErrEmployeeNotFound
	}
	// Mirrors the SQL contract: an empty password keeps the stored hash.
	updated := *emp
	if updated.Password == "" {
		updated.Password = existing.Password
	}
	f.employees[emp.ID] = updated
	return nil
}

func (f *fakeEmployeeRepo) Delete(id string) error {
	delete(f.employees, id)
	return nil
}

func (f *fakeEmployeeRepo) UpdatePassword(email, passwordHash string) error {
	for id, emp := range f.employees {
		if emp.Email == email {
			emp.Password = passwordHash
			f.employees[id] = emp
			return nil
		}
	}
	return repositories.ErrEmployeeNotFound
}

type fakeAttendanceRepo struct {
	records []models.TimeRecord
	saveErr error
}

func (f *fakeAttendanceRepo) Save(record *models.TimeRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if record.ID == "" {
		record.ID = "rec-" + record.Email
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeAttendanceRepo) HistoryByEmail(email string) ([]models.TimeRecord, error) {
	var out []models.TimeRecord
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].Email == email {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) LatestByEmail(email string) (*models.TimeRecord, error) {
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].Email == email {
			cp := f.records[i]
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeJobRepo struct {
	jobs      map[string]models.Job
	upsertErr error
}

func newFakeJobRepo(jobs ...models.Job) *fakeJobRepo {
	repo := &fakeJobRepo{jobs: map[string]models.Job{}}
	for _, job := range jobs {
		repo.jobs[job.ID] = job
	}
	return repo
}

func (f *fakeJobRepo) GetAll() ([]models.Job, error) {
	var out []models.Job
	for _, job := range f.jobs {
		out = append(out, job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeJobRepo) FindByID(id string) (*models.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := job
	return &cp, nil
}

func (f *fakeJobRepo) Upsert(job *models.Job) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.jobs[job.ID] = *job
	return nil
}

func (f *fakeJobRepo) Delete(id string) error {
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobRepo) ListByDate(date string, employeeID *string) ([]models.Job, error) {
	all, _ := f.GetAll()
	var out []models.Job
	for _, job := range all {
		if job.Date != date {
			continue
		}
		if employeeID != nil && job.EmployeeID != *employeeID {
			continue
		}
		out = append(out, job)
	}
	return out, nil
}

func (f *fakeJobRepo) ListByRange(from, to string, employeeID *string) ([]models.Job, error) {
	all, _ := f.GetAll()
	var out []models.Job
	for _, job := range all {
		if job.Date < from || job.Date > to {
			continue
		}
		if employeeID != nil && job.EmployeeID != *employeeID {
			continue
		}
		out = append(out, job)
	}
	return out, nil
}

func (f *fakeJobRepo) ListWithPackingLists() ([]models.Job, error) {
	all, _ := f.GetAll()
	var out []models.Job
	for _, job := range all {
		if job.PackingList != nil {
			out = append(out, job)
		}
	}
	return out, nil
}

type fakeLeaveRepo struct {
	requests map[string]models.LeaveRequest
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: map[string]models.LeaveRequest{}}
}

func (f *fakeLeaveRepo) Save(req *models.LeaveRequest) error {
	if req.ID == "" {
		req.ID = "leave-" + req.EmployeeID
	}
	f.requests[req.ID] = *req
	return nil
}

func (f *fakeLeaveRepo) FindByID(id string) (*models.LeaveRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	cp := req
	return &cp, nil
}

func (f *fakeLeaveRepo) ListAll() ([]models.LeaveRequest, error) {
	var out []models.LeaveRequest
	for _, req := range f.requests {
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeLeaveRepo) ListByEmployee(employeeID string) ([]models.LeaveRequest, error) {
	all, _ := f.ListAll()
	var out []models.LeaveRequest
	for _, req := range all {
		if req.EmployeeID == employeeID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListPendingForCoordinator(coordinatorID string) ([]models.LeaveRequest, error) {
	all, _ := f.ListAll()
	var out []models.LeaveRequest
	for _, req := range all {
		if req.CoordinatorID != nil && *req.CoordinatorID == coordinatorID &&
			req.CoordinatorStatus != nil && *req.CoordinatorStatus == models.StatusPending {
			out = append(out, req)
		}
	}
	return out, nil
}

type fakeOTRepo struct {
	requests map[string]models.OTRequest
}

func newFakeOTRepo() *fakeOTRepo {
	return &fakeOTRepo{requests: map[string]models.OTRequest{}}
}

func (f *fakeOTRepo) Save(req *models.OTRequest) error {
	if req.ID == "" {
		req.ID = "ot-" + req.EmployeeID
	}
	f.requests[req.ID] = *req
	return nil
}

func (f *fakeOTRepo) FindByID(id string) (*models.OTRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	cp := req
	return &cp, nil
}

func (f *fakeOTRepo) ListAll() ([]models.OTRequest, error) {
	var out []models.OTRequest
	for _, req := range f.requests {
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeOTRepo) ListByEmployee(employeeID string) ([]models.OTRequest, error) {
	all, _ := f.ListAll()
	var out []models.OTRequest
	for _, req := range all {
		if req.EmployeeID == employeeID {
			out = append(out, req)
		}
	}
	return out, nil
}

type fakeSessionRepo struct {
	sessions  map[string]models.LoginSession // keyed employeeID+date
	upsertErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]models.LoginSession{}}
}

func (f *fakeSessionRepo) Upsert(session *models.LoginSession) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.sessions[session.EmployeeID+"|"+session.Date] = *session
	return nil
}

func (f *fakeSessionRepo) ListByDate(date string) ([]models.LoginSession, error) {
	var out []models.LoginSession
	for _, session := range f.sessions {
		if session.Date == date {
			out = append(out, session)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

type fakeHolidayRepo struct {
	holidays []models.Holiday
}

func (f *fakeHolidayRepo) ReplaceAll(holidays []models.Holiday) error {
	f.holidays = append([]models.Holiday(nil), holidays...)
	return nil
}

func (f *fakeHolidayRepo) ListAll() ([]models.Holiday, error) {
	out := append([]models.Holiday(nil), f.holidays...)
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeHolidayRepo) DeleteAll() error {
	f.holidays = nil
	return nil
}

type fakeAssignmentRepo struct {
	tasks map[string]models.AssignedTask
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{tasks: map[string]models.AssignedTask{}}
}

func (f *fakeAssignmentRepo) Create(task *models.AssignedTask) error {
	if task.ID == "" {
		task.ID = "task-" + task.EmployeeID
	}
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeAssignmentRepo) ListAll() ([]models.AssignedTask, error) {
	var out []models.AssignedTask
	for _, task := range f.tasks {
		out = append(out, task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAssignmentRepo) ListByEmployee(employeeID string) ([]models.AssignedTask, error) {
	all, _ := f.ListAll()
	var out []models.AssignedTask
	for _, task := range all {
		if task.EmployeeID == employeeID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) UpdateStatus(id, status string) error {
	task, ok := f.tasks[id]
	if !ok {
		return repositories.ErrTaskNotFound
	}
	task.Status = status
	f.tasks[id] = task
	return nil
}

func (f *fakeAssignmentRepo) Delete(id string) error {
	delete(f.tasks, id)
	return nil
}

// fakeResolver stands in for the geocoding/distance collaborators.
type fakeResolver struct {
	location string
	distance *float64
	calls    int
}

func (f *fakeResolver) ReverseGeocode(ctx context.Context, coords models.Coords) string {
	f.calls++
	return f.location
}

func (f *fakeResolver) Distance(ctx context.Context, origin, dest models.Coords) *float64 {
	f.calls++
	return f.distance
}
