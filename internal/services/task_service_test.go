package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watrakon/Sgdatapos/internal/models"
	"github.com/watrakon/Sgdatapos/internal/repositories"
)

func TestAssignTaskStartsPending(t *testing.T) {
	repo := newFakeAssignmentRepo()
	svc := NewTaskService(repo)
	svc.now = func() time.Time { return time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local) }

	task := &models.AssignedTask{
		AssignerID:   "emp-boss",
		EmployeeID:   "emp-1",
		Date:         "2025-06-03",
		Time:         "10:00",
		CustomerName: "Cafe Siam",
		Activity:     "follow-up visit",
	}
	require.NoError(t, svc.Assign(task))
	assert.Equal(t, models.StatusPending, task.Status)
	assert.False(t, task.Timestamp.IsZero())

	mine, err := svc.ListByEmployee("emp-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestDecideTask(t *testing.T) {
	repo := newFakeAssignmentRepo()
	svc := NewTaskService(repo)

	task := &models.AssignedTask{AssignerID: "emp-boss", EmployeeID: "emp-1"}
	require.NoError(t, svc.Assign(task))

	require.NoError(t, svc.Decide(task.ID, "accept"))
	stored, _ := repo.ListByEmployee("emp-1")
	assert.Equal(t, models.StatusAccepted, stored[0].Status)

	// The assignee may change their mind.
	require.NoError(t, svc.Decide(task.ID, "reject"))
	stored, _ = repo.ListByEmployee("emp-1")
	assert.Equal(t, models.StatusRejected, stored[0].Status)

	assert.ErrorIs(t, svc.Decide(task.ID, "maybe"), ErrInvalidTaskDecision)
	assert.ErrorIs(t, svc.Decide("missing", "accept"), repositories.ErrTaskNotFound)
}
