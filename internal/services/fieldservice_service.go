package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/watrakon/Sgdatapos/internal/geocode"
	"github.com/watrakon/Sgdatapos/internal/models"
	"github.com/watrakon/Sgdatapos/internal/repositories"
)

// FieldServiceTrip is the employee trip form: one customer visit with an
// equipment checklist and optional companions.
type FieldServiceTrip struct {
	TaskName     string              `json:"taskName"`
	CustomerName string              `json:"customerName"`
	Team         string              `json:"team"`
	Activity     string              `json:"activity"`
	Date         string              `json:"date"`
	Remark       string              `json:"remark"`
	CompanionIDs []string            `json:"companionIds"`
	PackingList  *models.PackingList `json:"packingList"`
	Origin       *models.Coords      `json:"origin,omitempty"`
	Destination  *models.Coords      `json:"destination,omitempty"`
}

// MergeRequestForm asks admins to recognize a job as a team effort.
type MergeRequestForm struct {
	TaskName     string   `json:"taskName"`
	CustomerName string   `json:"customerName"`
	Team         string   `json:"team"`
	Activity     string   `json:"activity"`
	Date         string   `json:"date"`
	CompanionIDs []string `json:"companionIds"`
}

// PackingListMatch is a previous-project lookup hit; the list is a copy
// for pre-filling the form, not a reference.
type PackingListMatch struct {
	JobID        string             `json:"jobId"`
	Date         string             `json:"date"`
	CustomerName string             `json:"customerName"`
	PackingList  models.PackingList `json:"packingList"`
}

// FieldServiceService owns the trip-logging flow and its packing lists.
type FieldServiceService struct {
	jobRepo      repositories.JobRepositoryInterface
	employeeRepo repositories.EmployeeRepositoryInterface
	resolver     geocode.Resolver
	now          func() time.Time
}

func NewFieldServiceService(
	jobRepo repositories.JobRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	resolver geocode.Resolver,
) *FieldServiceService {
	return &FieldServiceService{
		jobRepo:      jobRepo,
		employeeRepo: employeeRepo,
		resolver:     resolver,
		now:          time.Now,
	}
}

// SubmitTrip creates one field-service job per participant. The primary
// employee's record carries the packing list; each companion gets a clone
// with the activity suffixed "(Companion)" and no list. The clones are
// written one by one with no transactionality: a failure partway leaves
// the earlier records persisted. Trip distance is best-effort and an
// unavailable provider never blocks the submission.
func (s *FieldServiceService) SubmitTrip(ctx context.Context, primary *models.Employee, trip *FieldServiceTrip) ([]models.Job, error) {
	if trip.CustomerName == "" {
		return nil, errors.New("customer name is required")
	}
	if trip.Date == "" {
		trip.Date = s.now().Format(models.DateLayout)
	}

	var distance *float64
	if trip.Origin != nil && trip.Destination != nil {
		distance = s.resolver.Distance(ctx, *trip.Origin, *trip.Destination)
		if distance == nil {
			log.Printf("[FieldService] Trip distance unavailable for %s", trip.CustomerName)
		}
	}

	activity := fmt.Sprintf("[Field Service Trip] %s", trip.Activity)
	if trip.TaskName != "" {
		activity = fmt.Sprintf("[Field Service Trip] [%s] %s", trip.TaskName, trip.Activity)
	}
	remark := s.buildTeamRemark(trip.Team, trip.CompanionIDs, trip.Remark)

	primaryJob := models.Job{
		ID:             uuid.NewString(),
		EmployeeID:     primary.ID,
		Date:           trip.Date,
		CustomerName:   trip.CustomerName,
		Activity:       activity,
		Status:         models.JobInProgress,
		Remark:         remark,
		Kind:           models.JobKindFieldService,
		ApprovalState:  models.ApprovalNone,
		PackingList:    trip.PackingList,
		TripDistanceKm: distance,
	}
	if err := s.jobRepo.Upsert(&primaryJob); err != nil {
		return nil, err
	}

	created := []models.Job{primaryJob}
	for _, companionID := range trip.CompanionIDs {
		clone := primaryJob
		clone.ID = uuid.NewString()
		clone.EmployeeID = companionID
		clone.Activity = activity + " (Companion)"
		clone.PackingList = nil
		clone.TripDistanceKm = nil
		if err := s.jobRepo.Upsert(&clone); err != nil {
			// Already-written participants stay persisted.
			return created, fmt.Errorf("save companion job for %s: %w", companionID, err)
		}
		created = append(created, clone)
	}
	return created, nil
}

// CreateMergeRequest files a team-recognition ask as a job with an
// explicit MERGE_REQUEST kind and a PENDING approval state. It does not
// count as busy until an admin approves it.
func (s *FieldServiceService) CreateMergeRequest(requester *models.Employee, form *MergeRequestForm) (*models.Job, error) {
	if form.TaskName == "" || form.CustomerName == "" {
		return nil, errors.New("task name and customer name are required")
	}
	if form.Date == "" {
		form.Date = s.now().Format(models.DateLayout)
	}

	job := &models.Job{
		ID:            uuid.NewString(),
		EmployeeID:    requester.ID,
		Date:          form.Date,
		CustomerName:  form.CustomerName,
		Activity:      fmt.Sprintf("%sงาน: %s | กิจกรรม: %s", mergeRequestMarker, form.TaskName, form.Activity),
		Status:        models.JobNotStarted,
		Remark:        s.buildTeamRemark(form.Team, form.CompanionIDs, ""),
		Kind:          models.JobKindMergeRequest,
		ApprovalState: models.ApprovalPending,
	}
	if err := s.jobRepo.Upsert(job); err != nil {
		return nil, err
	}
	return job, nil
}

// PreviousPackingLists scans jobs that carry an equipment checklist and
// filters by case-insensitive substring on customer brand or project.
func (s *FieldServiceService) PreviousPackingLists(query string) ([]PackingListMatch, error) {
	jobs, err := s.jobRepo.ListWithPackingLists()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	var matches []PackingListMatch
	for _, job := range jobs {
		if job.PackingList == nil {
			continue
		}
		if needle != "" {
			brand := strings.ToLower(job.PackingList.CustomerBrand)
			project := strings.ToLower(job.PackingList.Project)
			if !strings.Contains(brand, needle) && !strings.Contains(project, needle) {
				continue
			}
		}
		matches = append(matches, PackingListMatch{
			JobID:        job.ID,
			Date:         job.Date,
			CustomerName: job.CustomerName,
			PackingList:  *job.PackingList,
		})
	}
	return matches, nil
}

// buildTeamRemark formats the office team and companion nicknames into the
// remark line shown on the job card.
func (s *FieldServiceService) buildTeamRemark(team string, companionIDs []string, extra string) string {
	var names []string
	for _, id := range companionIDs {
		emp, err := s.employeeRepo.FindByID(id)
		if err != nil || emp == nil {
			// Orphaned companion ids silently fail lookup.
			continue
		}
		name := emp.NicknameEn
		if name == "" {
			name = emp.NameEn
		}
		names = append(names, name)
	}

	parts := []string{}
	if len(names) > 0 {
		parts = append(parts, "Companions: "+strings.Join(names, ", "))
	}
	if team != "" {
		parts = append(parts, "Team: "+team)
	}
	if extra != "" {
		parts = append(parts, extra)
	}
	return strings.Join(parts, " | ")
}
