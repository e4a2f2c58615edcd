package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/watrakon/Sgdatapos/internal/models"
	"github.com/watrakon/Sgdatapos/internal/repositories"
	"github.com/watrakon/Sgdatapos/internal/services"
)

// StringQueryParam returns a pointer to a non-empty query parameter, nil
// otherwise. Repositories take nil to mean "no filter".
func StringQueryParam(c *gin.Context, paramName string) *string {
	val := c.Query(paramName)
	if val == "" {
		return nil
	}
	return &val
}

func currentEmployeeID(c *gin.Context) string {
	id, _ := c.Get("employeeID")
	s, _ := id.(string)
	return s
}

func currentEmail(c *gin.Context) string {
	email, _ := c.Get("email")
	s, _ := email.(string)
	return s
}

// AppHandler bundles the HTTP handlers for the application routes.
type AppHandler struct {
	employeeService   *services.EmployeeService
	attendanceService *services.AttendanceService
	requestService    *services.RequestService
	jobService        *services.JobService
	fieldService      *services.FieldServiceService
	taskService       *services.TaskService
	holidayService    *services.HolidayService
	reportService     *services.ReportService
}

func NewAppHandler(
	es *services.EmployeeService,
	as *services.AttendanceService,
	rs *services.RequestService,
	js *services.JobService,
	fs *services.FieldServiceService,
	ts *services.TaskService,
	hs *services.HolidayService,
	reps *services.ReportService,
) *AppHandler {
	return &AppHandler{
		employeeService:   es,
		attendanceService: as,
		requestService:    rs,
		jobService:        js,
		fieldService:      fs,
		taskService:       ts,
		holidayService:    hs,
		reportService:     reps,
	}
}

// --- Employees ---

func (h *AppHandler) GetEmployees(c *gin.Context) {
	employees, err := h.employeeService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load employees: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, employees)
}

// employeeInput carries the admin form: profile fields plus the plaintext
// password, which never appears in responses.
type employeeInput struct {
	models.Employee
	Password string `json:"password"`
}

func (h *AppHandler) CreateEmployee(c *gin.Context) {
	var input employeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee data: " + err.Error()})
		return
	}

	if err := h.employeeService.Create(&input.Employee, input.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": input.Employee.ID})
}

func (h *AppHandler) UpdateEmployee(c *gin.Context) {
	var input employeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee data: " + err.Error()})
		return
	}
	input.Employee.ID = c.Param("id")

	if err := h.employeeService.Update(&input.Employee, input.Password); err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AppHandler) DeleteEmployee(c *gin.Context) {
	if err := h.employeeService.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete employee: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- Attendance ---

func (h *AppHandler) RecordAttendance(c *gin.Context) {
	var input struct {
		Type           string         `json:"type" binding:"required"`
		Coords         *models.Coords `json:"coords"`
		ManualLocation string         `json:"manualLocation"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attendance data: " + err.Error()})
		return
	}

	record, err := h.attendanceService.RecordEvent(c.Request.Context(), currentEmail(c), input.Type, input.Coords, input.ManualLocation)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *AppHandler) GetAttendanceHistory(c *gin.Context) {
	history, err := h.attendanceService.History(c.Param("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load attendance history: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *AppHandler) GetCheckedIn(c *gin.Context) {
	checkedIn, err := h.attendanceService.IsCurrentlyCheckedIn(c.Param("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load attendance state: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkedIn": checkedIn})
}

func (h *AppHandler) GetTeamLocations(c *gin.Context) {
	locations, err := h.attendanceService.TeamLocations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load team locations: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, locations)
}

// --- Login sessions ---

func (h *AppHandler) SaveSession(c *gin.Context) {
	var input struct {
		Office string `json:"office"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session data: " + err.Error()})
		return
	}

	if err := h.attendanceService.SaveSession(currentEmployeeID(c), input.Office); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AppHandler) GetTodaySessions(c *gin.Context) {
	sessions, err := h.attendanceService.TodaySessions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sessions: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// --- Leave requests ---

func (h *AppHandler) CreateLeave(c *gin.Context) {
	var req models.LeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid leave data: " + err.Error()})
		return
	}
	req.EmployeeID = currentEmployeeID(c)

	if err := h.requestService.SubmitLeave(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, req)
}

// GetLeaves returns the caller's own requests when employeeId is given,
// or every request for admins.
func (h *AppHandler) GetLeaves(c *gin.Context) {
	if employeeID := StringQueryParam(c, "employeeId"); employeeID != nil {
		leaves, err := h.requestService.LeavesByEmployee(*employeeID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leave requests: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, leaves)
		return
	}

	role, _ := c.Get("role")
	if role != models.RoleExecutive && role != models.RoleHR {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}
	leaves, err := h.requestService.AllLeaves()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leave requests: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, leaves)
}

func (h *AppHandler) ApproveLeave(c *gin.Context) {
	h.decideLeave(c, models.StatusApproved)
}

func (h *AppHandler) RejectLeave(c *gin.Context) {
	h.decideLeave(c, models.StatusRejected)
}

func (h *AppHandler) decideLeave(c *gin.Context, decision string) {
	req, err := h.requestService.DecideLeave(c.Param("id"), decision)
	if err != nil {
		c.JSON(requestErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *AppHandler) AcceptHandover(c *gin.Context) {
	req, err := h.requestService.AcceptHandover(c.Param("id"), currentEmployeeID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotCoordinator) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(requestErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *AppHandler) GetPendingHandovers(c *gin.Context) {
	handovers, err := h.requestService.PendingHandovers(currentEmployeeID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load handovers: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, handovers)
}

// --- OT requests ---

func (h *AppHandler) CreateOT(c *gin.Context) {
	var req models.OTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OT data: " + err.Error()})
		return
	}
	req.EmployeeID = currentEmployeeID(c)

	if err := h.requestService.SubmitOT(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, req)
}

func (h *AppHandler) GetOT(c *gin.Context) {
	if employeeID := StringQueryParam(c, "employeeId"); employeeID != nil {
		ots, err := h.requestService.OTByEmployee(*employeeID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load OT requests: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, ots)
		return
	}

	role, _ := c.Get("role")
	if role != models.RoleExecutive && role != models.RoleHR {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}
	ots, err := h.requestService.AllOT()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load OT requests: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, ots)
}

func (h *AppHandler) ApproveOT(c *gin.Context) {
	h.decideOT(c, models.StatusApproved)
}

func (h *AppHandler) RejectOT(c *gin.Context) {
	h.decideOT(c, models.StatusRejected)
}

func (h *AppHandler) decideOT(c *gin.Context, decision string) {
	req, err := h.requestService.DecideOT(c.Param("id"), decision)
	if err != nil {
		c.JSON(requestErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, req)
}

// --- Jobs / calendar ---

func (h *AppHandler) UpsertJob(c *gin.Context) {
	var job models.Job
	if err := c.ShouldBindJSON(&job); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job data: " + err.Error()})
		return
	}

	if err := h.jobService.SaveJob(&job); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *AppHandler) DeleteJob(c *gin.Context) {
	if err := h.jobService.DeleteJob(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete job: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetJobs dispatches on the query shape: a single day, a date range, one
// employee's full history, or everything.
func (h *AppHandler) GetJobs(c *gin.Context) {
	employeeID := StringQueryParam(c, "employeeId")

	var jobs []models.Job
	var err error
	switch {
	case c.Query("date") != "":
		jobs, err = h.jobService.JobsForDay(c.Query("date"), employeeID)
	case c.Query("from") != "" && c.Query("to") != "":
		jobs, err = h.jobService.JobsForRange(c.Query("from"), c.Query("to"), employeeID)
	case employeeID != nil:
		var all []models.Job
		all, err = h.jobService.AllJobs()
		for _, job := range all {
			if job.EmployeeID == *employeeID {
				jobs = append(jobs, job)
			}
		}
	default:
		jobs, err = h.jobService.AllJobs()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load jobs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *AppHandler) GetWeeklyBoard(c *gin.Context) {
	start := c.Query("start")
	if start == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'start' is required"})
		return
	}

	board, err := h.jobService.WeeklyBoard(start)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build weekly board: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *AppHandler) GetTeamStatus(c *gin.Context) {
	statuses, err := h.jobService.TeamStatus()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load team status: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, statuses)
}

func (h *AppHandler) GetPendingJobApprovals(c *gin.Context) {
	pending, err := h.jobService.PendingApprovals()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pending approvals: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, pending)
}

func (h *AppHandler) ApproveJob(c *gin.Context) {
	h.decideJob(c, models.StatusApproved)
}

func (h *AppHandler) RejectJob(c *gin.Context) {
	h.decideJob(c, models.StatusRejected)
}

func (h *AppHandler) decideJob(c *gin.Context, decision string) {
	job, err := h.jobService.DecideJob(c.Param("id"), decision)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(requestErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, job)
}

// --- Assigned tasks ---

func (h *AppHandler) CreateAssignment(c *gin.Context) {
	var task models.AssignedTask
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task data: " + err.Error()})
		return
	}
	task.AssignerID = currentEmployeeID(c)

	if err := h.taskService.Assign(&task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign task: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *AppHandler) GetAssignments(c *gin.Context) {
	var tasks []models.AssignedTask
	var err error
	if employeeID := StringQueryParam(c, "employeeId"); employeeID != nil {
		tasks, err = h.taskService.ListByEmployee(*employeeID)
	} else {
		tasks, err = h.taskService.ListAll()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tasks: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *AppHandler) AcceptAssignment(c *gin.Context) {
	h.decideAssignment(c, "accept")
}

func (h *AppHandler) RejectAssignment(c *gin.Context) {
	h.decideAssignment(c, "reject")
}

func (h *AppHandler) decideAssignment(c *gin.Context, decision string) {
	if err := h.taskService.Decide(c.Param("id"), decision); err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AppHandler) DeleteAssignment(c *gin.Context) {
	if err := h.taskService.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- Field service ---

func (h *AppHandler) SubmitFieldServiceTrip(c *gin.Context) {
	var trip services.FieldServiceTrip
	if err := c.ShouldBindJSON(&trip); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip data: " + err.Error()})
		return
	}

	caller, err := h.employeeService.Get(currentEmployeeID(c))
	if err != nil || caller == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown employee"})
		return
	}

	jobs, err := h.fieldService.SubmitTrip(c.Request.Context(), caller, &trip)
	if err != nil {
		// Earlier participant records may already be persisted.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "created": jobs})
		return
	}
	c.JSON(http.StatusCreated, jobs)
}

func (h *AppHandler) CreateMergeRequest(c *gin.Context) {
	var form services.MergeRequestForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid merge request data: " + err.Error()})
		return
	}

	caller, err := h.employeeService.Get(currentEmployeeID(c))
	if err != nil || caller == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown employee"})
		return
	}

	job, err := h.fieldService.CreateMergeRequest(caller, &form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *AppHandler) GetPreviousPackingLists(c *gin.Context) {
	matches, err := h.fieldService.PreviousPackingLists(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search packing lists: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, matches)
}

// --- Holidays ---

func (h *AppHandler) UploadHolidays(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Upload requires a 'file' form field"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open upload: " + err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read upload: " + err.Error()})
		return
	}

	count, err := h.holidayService.Upload(fileHeader.Filename, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "imported": count})
}

func (h *AppHandler) GetHolidays(c *gin.Context) {
	holidays, err := h.holidayService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load holidays: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, holidays)
}

func (h *AppHandler) ClearHolidays(c *gin.Context) {
	if err := h.holidayService.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear holidays: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- Reports ---

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *AppHandler) ExportAttendanceReport(c *gin.Context) {
	employee, err := h.employeeService.GetByEmail(c.Param("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load employee: " + err.Error()})
		return
	}
	if employee == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	filename, data, err := h.reportService.AttendanceWorkbook(employee)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report: " + err.Error()})
		return
	}
	serveWorkbook(c, filename, data)
}

func (h *AppHandler) ExportRequestsReport(c *gin.Context) {
	h.exportByEmployeeID(c, h.reportService.RequestsWorkbook)
}

func (h *AppHandler) ExportJobsReport(c *gin.Context) {
	h.exportByEmployeeID(c, h.reportService.JobsWorkbook)
}

func (h *AppHandler) exportByEmployeeID(c *gin.Context, build func(*models.Employee) (string, []byte, error)) {
	employee, err := h.employeeService.Get(c.Param("employeeId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load employee: " + err.Error()})
		return
	}
	if employee == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	filename, data, err := build(employee)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report: " + err.Error()})
		return
	}
	serveWorkbook(c, filename, data)
}

func serveWorkbook(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// requestErrorStatus maps the request-workflow sentinel errors to HTTP
// status codes.
func requestErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrRequestFinalized):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// AuthHandler holds the authentication endpoints, public except Profile.
type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(as *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Login verifies credentials and returns a signed token with the employee
// profile. The optional office tag is recorded as today's login session.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Office   string `json:"office"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid login data: " + err.Error()})
		return
	}

	token, employee, err := h.authService.Login(credentials.Email, credentials.Password, credentials.Office)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"employee": employee,
	})
}

// UpdatePassword overwrites the password for a known email. The original
// exposes this without authentication as a self-service reset.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var input struct {
		Email       string `json:"email" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data: " + err.Error()})
		return
	}

	if err := h.authService.UpdatePassword(input.Email, input.NewPassword); err != nil {
		if errors.Is(err, services.ErrEmailNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Profile returns the authenticated employee.
func (h *AuthHandler) Profile(c *gin.Context) {
	employeeID, exists := c.Get("employeeID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	employee, err := h.authService.Profile(employeeID.(string))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}
	c.JSON(http.StatusOK, employee)
}
