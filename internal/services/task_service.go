package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/watrakon/Sgdatapos/internal/models"
	"github.com/watrakon/Sgdatapos/internal/repositories"
)

// ErrInvalidTaskDecision is returned for a decision outside accept/reject.
var ErrInvalidTaskDecision = errors.New("invalid task decision")

// TaskService owns the manager-to-employee assigned tasks. Accept and
// reject come from the assignee; delete is the assigner withdrawing.
type TaskService struct {
	assignmentRepo repositories.AssignmentRepositoryInterface

	now func() time.Time
}

func NewTaskService(assignmentRepo repositories.AssignmentRepositoryInterface) *TaskService {
	return &TaskService{assignmentRepo: assignmentRepo, now: time.Now}
}

func (s *TaskService) Assign(task *models.AssignedTask) error {
	task.Status = models.StatusPending
	task.Timestamp = s.now()
	if err := s.assignmentRepo.Create(task); err != nil {
		return fmt.Errorf("assign task: %w", err)
	}
	return nil
}

func (s *TaskService) ListAll() ([]models.AssignedTask, error) {
	return s.assignmentRepo.ListAll()
}

func (s *TaskService) ListByEmployee(employeeID string) ([]models.AssignedTask, error) {
	return s.assignmentRepo.ListByEmployee(employeeID)
}

// Decide records the assignee's answer. Unlike leave and OT approvals the
// status is freely overwritable; the original lets an employee change
// their mind.
func (s *TaskService) Decide(taskID, decision string) error {
	var status string
	switch decision {
	case "accept":
		status = models.StatusAccepted
	case "reject":
		status = models.StatusRejected
	default:
		return ErrInvalidTaskDecision
	}
	return s.assignmentRepo.UpdateStatus(taskID, status)
}

func (s *TaskService) Delete(taskID string) error {
	return s.assignmentRepo.Delete(taskID)
}
