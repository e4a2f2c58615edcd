package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watrakon/Sgdatapos/internal/models"
)

func newJobServiceForTest(jobRepo *fakeJobRepo, employeeRepo *fakeEmployeeRepo, at time.Time) *JobService {
	svc := NewJobService(jobRepo, employeeRepo, &fakeAttendanceRepo{}, newFakeSessionRepo())
	svc.now = func() time.Time { return at }
	return svc
}

func TestSaveJobUpsertIsIdempotentById(t *testing.T) {
	jobRepo := newFakeJobRepo()
	svc := newJobServiceForTest(jobRepo, newFakeEmployeeRepo(), time.Now())

	job := &models.Job{EmployeeID: "emp-1", Date: "2025-06-02", CustomerName: "Cafe Siam"}
	require.NoError(t, svc.SaveJob(job))
	require.NotEmpty(t, job.ID)
	assert.Equal(t, models.JobNotStarted, job.Status)
	assert.Equal(t, models.JobKindNormal, job.Kind)
	assert.Equal(t, models.ApprovalNone, job.ApprovalState)
	assert.Len(t, jobRepo.jobs, 1)

	// Re-saving the same id replaces, never duplicates.
	job.Status = models.JobDone
	require.NoError(t, svc.SaveJob(job))
	assert.Len(t, jobRepo.jobs, 1)
	saved, _ := jobRepo.FindByID(job.ID)
	assert.Equal(t, models.JobDone, saved.Status)

	// A fresh id grows the set by one.
	other := &models.Job{EmployeeID: "emp-1", Date: "2025-06-03", CustomerName: "Cafe Siam"}
	require.NoError(t, svc.SaveJob(other))
	assert.Len(t, jobRepo.jobs, 2)
}

func TestTeamStatusBusyRule(t *testing.T) {
	today := "2025-06-02"
	at := time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local)
	employeeRepo := newFakeEmployeeRepo(
		models.Employee{ID: "emp-1", Email: "a@sgdata.co.th"},
		models.Employee{ID: "emp-2", Email: "b@sgdata.co.th"},
		models.Employee{ID: "emp-3", Email: "c@sgdata.co.th"},
		models.Employee{ID: "emp-4", Email: "d@sgdata.co.th"},
	)
	jobRepo := newFakeJobRepo(
		// In-progress normal job: busy.
		models.Job{ID: "j1", EmployeeID: "emp-1", Date: today, Status: models.JobInProgress, Kind: models.JobKindNormal},
		// Finished job: not busy.
		models.Job{ID: "j2", EmployeeID: "emp-2", Date: today, Status: models.JobDone, Kind: models.JobKindNormal},
		// Pending merge request: never busy.
		models.Job{ID: "j3", EmployeeID: "emp-3", Date: today, Status: models.JobNotStarted, Kind: models.JobKindMergeRequest, ApprovalState: models.ApprovalPending},
		// Approved merge request in progress: busy again.
		models.Job{ID: "j4", EmployeeID: "emp-4", Date: today, Status: models.JobInProgress, Kind: models.JobKindMergeRequest, ApprovalState: models.ApprovalApproved},
	)
	svc := newJobServiceForTest(jobRepo, employeeRepo, at)

	statuses, err := svc.TeamStatus()
	require.NoError(t, err)
	require.Len(t, statuses, 4)

	byID := map[string]models.EmployeeDayStatus{}
	for _, s := range statuses {
		byID[s.Employee.ID] = s
	}
	assert.True(t, byID["emp-1"].Busy)
	assert.False(t, byID["emp-2"].Busy)
	assert.False(t, byID["emp-3"].Busy, "pending merge request must not count as busy")
	assert.True(t, byID["emp-4"].Busy, "approved merge request counts as busy")
	require.NotNil(t, byID["emp-1"].ActiveJob)
	assert.Equal(t, "j1", byID["emp-1"].ActiveJob.ID)
}

func TestDecideJobMergeRequestApprove(t *testing.T) {
	jobRepo := newFakeJobRepo(models.Job{
		ID:            "j1",
		EmployeeID:    "emp-1",
		Date:          "2025-06-02",
		Activity:      mergeRequestMarker + "งาน: POS install | กิจกรรม: setup",
		Status:        models.JobNotStarted,
		Kind:          models.JobKindMergeRequest,
		ApprovalState: models.ApprovalPending,
	})
	svc := newJobServiceForTest(jobRepo, newFakeEmployeeRepo(), time.Now())

	job, err := svc.DecideJob("j1", models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.JobInProgress, job.Status)
	assert.Equal(t, models.ApprovalApproved, job.ApprovalState)
	assert.False(t, strings.Contains(job.Activity, mergeRequestMarker), "approval strips the request marker")

	// The decision is terminal.
	_, err = svc.DecideJob("j1", models.StatusRejected)
	assert.ErrorIs(t, err, ErrRequestFinalized)
}

func TestDecideJobMergeRequestReject(t *testing.T) {
	jobRepo := newFakeJobRepo(models.Job{
		ID:            "j1",
		EmployeeID:    "emp-1",
		Date:          "2025-06-02",
		Status:        models.JobNotStarted,
		Remark:        "Team: North",
		Kind:          models.JobKindMergeRequest,
		ApprovalState: models.ApprovalPending,
	})
	svc := newJobServiceForTest(jobRepo, newFakeEmployeeRepo(), time.Now())

	job, err := svc.DecideJob("j1", models.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.JobDone, job.Status)
	assert.Equal(t, models.ApprovalRejected, job.ApprovalState)
	assert.Equal(t, "Team: North", job.Remark, "remark stays untouched")
}

func TestDecideJobCompletedNormalJob(t *testing.T) {
	jobRepo := newFakeJobRepo(
		models.Job{ID: "j1", EmployeeID: "emp-1", Date: "2025-06-02", Status: models.JobDone, Kind: models.JobKindNormal},
		models.Job{ID: "j2", EmployeeID: "emp-2", Date: "2025-06-02", Status: models.JobDone, Kind: models.JobKindNormal},
	)
	svc := newJobServiceForTest(jobRepo, newFakeEmployeeRepo(), time.Now())

	confirmed, err := svc.DecideJob("j1", models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.JobDone, confirmed.Status)
	assert.Equal(t, models.ApprovalApproved, confirmed.ApprovalState)

	rejected, err := svc.DecideJob("j2", models.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.JobNotStarted, rejected.Status, "rejected work goes back to the queue")

	_, err = svc.DecideJob("missing", models.StatusApproved)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestPendingApprovalsQueues(t *testing.T) {
	jobRepo := newFakeJobRepo(
		models.Job{ID: "j1", EmployeeID: "emp-1", Date: "2025-06-02", Status: models.JobNotStarted, Kind: models.JobKindMergeRequest, ApprovalState: models.ApprovalPending},
		models.Job{ID: "j2", EmployeeID: "emp-1", Date: "2025-06-02", Status: models.JobDone, Kind: models.JobKindNormal, ApprovalState: models.ApprovalNone},
		models.Job{ID: "j3", EmployeeID: "emp-1", Date: "2025-06-02", Status: models.JobDone, Kind: models.JobKindNormal, ApprovalState: models.ApprovalApproved},
		models.Job{ID: "j4", EmployeeID: "emp-1", Date: "2025-06-02", Status: models.JobInProgress, Kind: models.JobKindNormal},
	)
	svc := newJobServiceForTest(jobRepo, newFakeEmployeeRepo(), time.Now())

	pending, err := svc.PendingApprovals()
	require.NoError(t, err)
	require.Len(t, pending.MergeRequests, 1)
	assert.Equal(t, "j1", pending.MergeRequests[0].ID)
	require.Len(t, pending.CompletedJobs, 1)
	assert.Equal(t, "j2", pending.CompletedJobs[0].ID, "already-confirmed jobs stay out of the queue")
}

func TestWeeklyBoardGrouping(t *testing.T) {
	jobRepo := newFakeJobRepo(
		models.Job{ID: "j1", EmployeeID: "emp-1", Date: "2025-06-02", CustomerName: "Cafe Siam", Status: models.JobInProgress},
		models.Job{ID: "j2", EmployeeID: "emp-1", Date: "2025-06-02", CustomerName: "Cafe Siam", Status: models.JobNotStarted},
		models.Job{ID: "j3", EmployeeID: "emp-1", Date: "2025-06-04", CustomerName: "Thonglor Mall", Status: models.JobNotStarted},
		models.Job{ID: "j4", EmployeeID: "emp-2", Date: "2025-06-03", CustomerName: "Cafe Siam", Status: models.JobNotStarted},
		// Outside the week.
		models.Job{ID: "j5", EmployeeID: "emp-1", Date: "2025-06-09", CustomerName: "Cafe Siam", Status: models.JobNotStarted},
	)
	svc := newJobServiceForTest(jobRepo, newFakeEmployeeRepo(), time.Now())

	weeks, err := svc.WeeklyBoard("2025-06-02")
	require.NoError(t, err)
	require.Len(t, weeks, 2)

	assert.Equal(t, "emp-1", weeks[0].EmployeeID)
	require.Len(t, weeks[0].Days, 2)
	assert.Equal(t, "2025-06-02", weeks[0].Days[0].Date)
	require.Len(t, weeks[0].Days[0].Customers, 1)
	assert.Len(t, weeks[0].Days[0].Customers[0].Jobs, 2)

	assert.Equal(t, "emp-2", weeks[1].EmployeeID)
}
