package models

import "time"

// --- Roles ---
const (
	RoleExecutive = "EXECUTIVE"
	RoleHR        = "HR"
	RoleEmployee  = "EMPLOYEE"
)

// --- Attendance event types and statuses ---
const (
	EventCheckIn  = "CHECK_IN"
	EventCheckOut = "CHECK_OUT"

	AttendanceNormal = "NORMAL"
	AttendanceLate   = "LATE"
	AttendanceNone   = "NONE" // check-out records carry no lateness
)

// --- Request statuses (leave, OT, assigned tasks, coordinator handover) ---
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusAccepted = "ACCEPTED"
)

// --- Leave types ---
const (
	LeaveSick     = "SICK"
	LeaveBusiness = "BUSINESS"
	LeaveVacation = "VACATION"
)

// --- Job statuses ---
const (
	JobNotStarted = "NOT_STARTED"
	JobInProgress = "IN_PROGRESS"
	JobDone       = "DONE"
)

// Job kinds. The old data model tagged team-merge requests with a
// "REQ_MERGE_" id prefix and field-service trips with a marker inside the
// activity text; both are now explicit columns.
const (
	JobKindNormal       = "NORMAL"
	JobKindMergeRequest = "MERGE_REQUEST"
	JobKindFieldService = "FIELD_SERVICE"
)

// Job approval states. NONE means the record is not (or not yet) part of an
// approval queue. Replaces the "[APPROVED]"/"[REJECTED]" remark markers.
const (
	ApprovalNone     = "NONE"
	ApprovalPending  = "PENDING"
	ApprovalApproved = "APPROVED"
	ApprovalRejected = "REJECTED"
)

// DateLayout is the local calendar-day format used for job dates, leave
// ranges, sessions and holidays.
const DateLayout = "2006-01-02"

// Employee - identity and profile. Email doubles as the login key and the
// attendance-ledger partition key.
type Employee struct {
	ID         string `json:"id" db:"id"`
	NameTh     string `json:"nameTh" db:"name_th"`
	NameEn     string `json:"nameEn" db:"name_en"`
	NicknameTh string `json:"nicknameTh" db:"nickname_th"`
	NicknameEn string `json:"nicknameEn" db:"nickname_en"`
	Position   string `json:"position" db:"position"`
	Phone      string `json:"phone" db:"phone"`
	Email      string `json:"email" db:"email"`
	Password   string `json:"-" db:"password"` // bcrypt hash, never serialized
	Role       string `json:"role" db:"role"`
}

// IsAdmin reports whether the employee has admin capability. EXECUTIVE and
// HR are equivalent throughout the application.
func (e *Employee) IsAdmin() bool {
	return e.Role == RoleExecutive || e.Role == RoleHR
}

// Coords - a GPS fix attached to a time record. Nil when the device denied
// geolocation.
type Coords struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TimeRecord - one check-in or check-out event. Lateness is computed once
// at creation and frozen into the record.
type TimeRecord struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Type      string    `json:"type" db:"type"`
	Status    string    `json:"status" db:"status"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Location  string    `json:"location" db:"location"`
	Coords    *Coords   `json:"coords" db:"-"` // latitude/longitude columns
}

// PackingList - equipment checklist embedded in a field-service job. Value
// object with no independent lifecycle; persisted as a JSON column.
type PackingList struct {
	CustomerBrand string `json:"customerBrand"`
	Project       string `json:"project"`
	DeliveryDate  string `json:"deliveryDate"`
	MainSet       struct {
		POSTerminal struct {
			Model string `json:"model"`
			Qty   string `json:"qty"`
		} `json:"posTerminal"`
		POSLicense struct {
			Qty string `json:"qty"`
		} `json:"posLicense"`
	} `json:"mainSet"`
	Peripherals struct {
		CashDrawer      bool `json:"cashDrawer"`
		ReceiptPrinter  bool `json:"receiptPrinter"`
		BarcodeScanner  bool `json:"barcodeScanner"`
		CustomerDisplay bool `json:"customerDisplay"`
	} `json:"peripherals"`
	DigitalSignage struct {
		Screen struct {
			Size string `json:"size"`
		} `json:"screen"`
		PowerAdapter bool   `json:"powerAdapter"`
		Accessories  string `json:"accessories"`
	} `json:"digitalSignage"`
	Cables struct {
		PowerCable       bool   `json:"powerCable"`
		LanCable         bool   `json:"lanCable"`
		USBCable         bool   `json:"usbCable"`
		HdmiVga          bool   `json:"hdmiVga"`
		AdapterConverter bool   `json:"adapterConverter"`
		Others           string `json:"others"`
	} `json:"cables"`
	SpecialRemarks string `json:"specialRemarks"`
	Signatures     struct {
		Orderer      string `json:"orderer"`
		OrderDate    string `json:"orderDate"`
		Packer       string `json:"packer"`
		PackDate     string `json:"packDate"`
		Deliverer    string `json:"deliverer"`
		DeliveryDate string `json:"deliveryDate"`
	} `json:"signatures"`
}

// Job - a schedulable unit of customer-facing work assigned to one
// employee per record.
type Job struct {
	ID             string       `json:"id" db:"id"`
	EmployeeID     string       `json:"employeeId" db:"employee_id"`
	Date           string       `json:"date" db:"date"` // YYYY-MM-DD local
	CustomerName   string       `json:"customerName" db:"customer_name"`
	Activity       string       `json:"activity" db:"activity"`
	Status         string       `json:"status" db:"status"`
	Remark         string       `json:"remark" db:"remark"`
	Kind           string       `json:"kind" db:"kind"`
	ApprovalState  string       `json:"approvalState" db:"approval_state"`
	PackingList    *PackingList `json:"packingList,omitempty" db:"packing_list"`
	TripDistanceKm *float64     `json:"tripDistanceKm,omitempty" db:"trip_distance_km"`
}

// IsPendingMergeRequest reports whether the job is a team-merge approval
// request still waiting for an admin decision. Such jobs never count toward
// the busy indicator.
func (j *Job) IsPendingMergeRequest() bool {
	return j.Kind == JobKindMergeRequest && j.ApprovalState == ApprovalPending
}

// LeaveRequest - employee leave ask. The coordinator fields carry an
// independent handover-acknowledgement sub-workflow that never affects the
// primary status.
type LeaveRequest struct {
	ID                string    `json:"id" db:"id"`
	EmployeeID        string    `json:"employeeId" db:"employee_id"`
	Type              string    `json:"type" db:"type"`
	StartDate         string    `json:"startDate" db:"start_date"`
	EndDate           string    `json:"endDate" db:"end_date"`
	Days              int       `json:"days" db:"days"` // inclusive, frozen at submission
	Reason            string    `json:"reason" db:"reason"`
	Status            string    `json:"status" db:"status"`
	Timestamp         time.Time `json:"timestamp" db:"timestamp"`
	CoordinatorID     *string   `json:"coordinatorId,omitempty" db:"coordinator_id"`
	CoordinatorStatus *string   `json:"coordinatorStatus,omitempty" db:"coordinator_status"`
}

// OTRequest - overtime ask. End before start means the shift wraps past
// midnight; duration is derived on demand, never stored.
type OTRequest struct {
	ID         string    `json:"id" db:"id"`
	EmployeeID string    `json:"employeeId" db:"employee_id"`
	Date       string    `json:"date" db:"date"`
	StartTime  string    `json:"startTime" db:"start_time"` // HH:MM
	EndTime    string    `json:"endTime" db:"end_time"`     // HH:MM
	Reason     string    `json:"reason" db:"reason"`
	Status     string    `json:"status" db:"status"`
	Timestamp  time.Time `json:"timestamp" db:"timestamp"`
}

// AssignedTask - a manager-to-employee task, distinct from Job.
type AssignedTask struct {
	ID           string    `json:"id" db:"id"`
	AssignerID   string    `json:"assignerId" db:"assigner_id"`
	EmployeeID   string    `json:"employeeId" db:"employee_id"`
	Date         string    `json:"date" db:"date"`
	Time         string    `json:"time" db:"time"`
	CustomerName string    `json:"customerName" db:"customer_name"`
	Activity     string    `json:"activity" db:"activity"`
	Remark       string    `json:"remark" db:"remark"`
	Status       string    `json:"status" db:"status"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
}

// LoginSession - one row per employee per local calendar day, upserted on
// login. Renders "which office is this person logged in from today".
type LoginSession struct {
	EmployeeID string `json:"employeeId" db:"employee_id"`
	Office     string `json:"office" db:"office"`
	Date       string `json:"date" db:"date"`
}

// Holiday - one uploaded company holiday.
type Holiday struct {
	Date   string `json:"date" db:"date"`
	NameTh string `json:"nameTh" db:"name_th"`
	NameEn string `json:"nameEn" db:"name_en"`
}

// TeamLocation - an employee together with their newest time record, for
// the roster/map view. Record is nil when the ledger is empty.
type TeamLocation struct {
	Employee Employee    `json:"employee"`
	Record   *TimeRecord `json:"record,omitempty"`
}

// EmployeeDayStatus - live busy/ready roster entry for one employee.
type EmployeeDayStatus struct {
	Employee       Employee      `json:"employee"`
	Busy           bool          `json:"busy"`
	ActiveJob      *Job          `json:"activeJob,omitempty"`
	CheckedInToday bool          `json:"checkedInToday"`
	Session        *LoginSession `json:"session,omitempty"`
}

// CustomerGroup / DayGroup / EmployeeWeek - three-level grouping of a
// week's jobs (employee, then date, then customer) used purely for the
// weekly board display, never stored.
type CustomerGroup struct {
	CustomerName string `json:"customerName"`
	Jobs         []Job  `json:"jobs"`
}

type DayGroup struct {
	Date      string          `json:"date"`
	Customers []CustomerGroup `json:"customers"`
}

type EmployeeWeek struct {
	EmployeeID string     `json:"employeeId"`
	Days       []DayGroup `json:"days"`
}

// PendingJobApprovals - the admin job review queue: team-merge requests
// awaiting a decision plus completed jobs awaiting confirmation.
type PendingJobApprovals struct {
	MergeRequests []Job `json:"mergeRequests"`
	CompletedJobs []Job `json:"completedJobs"`
}
