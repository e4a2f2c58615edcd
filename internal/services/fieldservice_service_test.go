package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watrakon/Sgdatapos/internal/models"
)

func testPackingList() *models.PackingList {
	list := &models.PackingList{
		CustomerBrand: "Cafe Siam",
		Project:       "POS rollout phase 2",
	}
	list.MainSet.POSTerminal.Model = "SG-T2"
	list.MainSet.POSTerminal.Qty = "2"
	list.Peripherals.ReceiptPrinter = true
	return list
}

func TestSubmitTripClonesCompanions(t *testing.T) {
	jobRepo := newFakeJobRepo()
	employeeRepo := newFakeEmployeeRepo(
		models.Employee{ID: "emp-1", Email: "a@sgdata.co.th", NicknameEn: "Arm"},
		models.Employee{ID: "emp-2", Email: "b@sgdata.co.th", NicknameEn: "Bee"},
		models.Employee{ID: "emp-3", Email: "c@sgdata.co.th", NicknameEn: "Chai"},
	)
	km := 42.5
	svc := NewFieldServiceService(jobRepo, employeeRepo, &fakeResolver{distance: &km})

	primary, _ := employeeRepo.FindByID("emp-1")
	jobs, err := svc.SubmitTrip(context.Background(), primary, &FieldServiceTrip{
		TaskName:     "POS install",
		CustomerName: "Cafe Siam",
		Team:         "North",
		Activity:     "install and train",
		Date:         "2025-06-02",
		CompanionIDs: []string{"emp-2", "emp-3"},
		PackingList:  testPackingList(),
		Origin:       &models.Coords{Latitude: 13.7, Longitude: 100.5},
		Destination:  &models.Coords{Latitude: 13.9, Longitude: 100.6},
	})
	require.NoError(t, err)
	require.Len(t, jobs, 3, "one record per participant")
	assert.Len(t, jobRepo.jobs, 3)

	var withList int
	for _, job := range jobs {
		assert.Equal(t, "2025-06-02", job.Date)
		assert.Equal(t, "Cafe Siam", job.CustomerName)
		assert.Equal(t, models.JobInProgress, job.Status)
		assert.Equal(t, models.JobKindFieldService, job.Kind)
		if job.PackingList != nil {
			withList++
		}
	}
	assert.Equal(t, 1, withList, "only the primary record carries the packing list")

	assert.Equal(t, "emp-1", jobs[0].EmployeeID)
	require.NotNil(t, jobs[0].TripDistanceKm)
	assert.Equal(t, 42.5, *jobs[0].TripDistanceKm)
	assert.False(t, strings.HasSuffix(jobs[0].Activity, "(Companion)"))

	for _, clone := range jobs[1:] {
		assert.True(t, strings.HasSuffix(clone.Activity, "(Companion)"))
		assert.Nil(t, clone.PackingList)
		assert.Nil(t, clone.TripDistanceKm)
	}

	assert.Contains(t, jobs[0].Remark, "Bee")
	assert.Contains(t, jobs[0].Remark, "Chai")
	assert.Contains(t, jobs[0].Remark, "Team: North")
}

func TestSubmitTripSurvivesDistanceOutage(t *testing.T) {
	jobRepo := newFakeJobRepo()
	employeeRepo := newFakeEmployeeRepo(models.Employee{ID: "emp-1", Email: "a@sgdata.co.th"})
	svc := NewFieldServiceService(jobRepo, employeeRepo, &fakeResolver{distance: nil})

	primary, _ := employeeRepo.FindByID("emp-1")
	jobs, err := svc.SubmitTrip(context.Background(), primary, &FieldServiceTrip{
		CustomerName: "Cafe Siam",
		Activity:     "maintenance",
		Date:         "2025-06-02",
		Origin:       &models.Coords{Latitude: 13.7, Longitude: 100.5},
		Destination:  &models.Coords{Latitude: 13.9, Longitude: 100.6},
	})
	require.NoError(t, err, "an unreachable distance provider never blocks the trip")
	require.Len(t, jobs, 1)
	assert.Nil(t, jobs[0].TripDistanceKm)
}

func TestSubmitTripSkipsOrphanedCompanionsInRemark(t *testing.T) {
	jobRepo := newFakeJobRepo()
	employeeRepo := newFakeEmployeeRepo(
		models.Employee{ID: "emp-1", Email: "a@sgdata.co.th"},
		models.Employee{ID: "emp-2", Email: "b@sgdata.co.th", NicknameEn: "Bee"},
	)
	svc := NewFieldServiceService(jobRepo, employeeRepo, &fakeResolver{})

	primary, _ := employeeRepo.FindByID("emp-1")
	jobs, err := svc.SubmitTrip(context.Background(), primary, &FieldServiceTrip{
		CustomerName: "Cafe Siam",
		Activity:     "survey",
		Date:         "2025-06-02",
		CompanionIDs: []string{"emp-2", "emp-deleted"},
	})
	require.NoError(t, err)
	// The orphaned id still gets a clone record; only its name is missing
	// from the remark.
	assert.Len(t, jobs, 3)
	assert.Contains(t, jobs[0].Remark, "Bee")
	assert.NotContains(t, jobs[0].Remark, "emp-deleted")
}

func TestCreateMergeRequest(t *testing.T) {
	jobRepo := newFakeJobRepo()
	employeeRepo := newFakeEmployeeRepo(models.Employee{ID: "emp-1", Email: "a@sgdata.co.th"})
	svc := NewFieldServiceService(jobRepo, employeeRepo, &fakeResolver{})

	requester, _ := employeeRepo.FindByID("emp-1")
	job, err := svc.CreateMergeRequest(requester, &MergeRequestForm{
		TaskName:     "POS install",
		CustomerName: "Cafe Siam",
		Activity:     "joint install",
		Date:         "2025-06-02",
	})
	require.NoError(t, err)
	assert.Equal(t, models.JobKindMergeRequest, job.Kind)
	assert.Equal(t, models.ApprovalPending, job.ApprovalState)
	assert.Equal(t, models.JobNotStarted, job.Status)
	assert.True(t, strings.HasPrefix(job.Activity, mergeRequestMarker))

	_, err = svc.CreateMergeRequest(requester, &MergeRequestForm{CustomerName: "Cafe Siam"})
	assert.Error(t, err, "task name is required")
}

func TestPreviousPackingListsSubstringMatch(t *testing.T) {
	listA := testPackingList()
	listB := testPackingList()
	listB.CustomerBrand = "Thonglor Mall"
	listB.Project = "Signage refresh"

	jobRepo := newFakeJobRepo(
		models.Job{ID: "j1", EmployeeID: "emp-1", Date: "2025-05-01", CustomerName: "Cafe Siam", PackingList: listA},
		models.Job{ID: "j2", EmployeeID: "emp-1", Date: "2025-05-10", CustomerName: "Thonglor Mall", PackingList: listB},
		models.Job{ID: "j3", EmployeeID: "emp-1", Date: "2025-05-12", CustomerName: "No list"},
	)
	svc := NewFieldServiceService(jobRepo, newFakeEmployeeRepo(), &fakeResolver{})

	matches, err := svc.PreviousPackingLists("cafe")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "j1", matches[0].JobID)

	matches, err = svc.PreviousPackingLists("SIGNAGE")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "j2", matches[0].JobID)

	matches, err = svc.PreviousPackingLists("")
	require.NoError(t, err)
	assert.Len(t, matches, 2, "empty query returns every list")
}
