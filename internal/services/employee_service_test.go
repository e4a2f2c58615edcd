package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/watrakon/Sgdatapos/internal/models"
)

func TestCreateEmployeeHashesPasswordAndDefaultsRole(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo)

	emp := &models.Employee{NameEn: "Arm", Email: "a@sgdata.co.th"}
	require.NoError(t, svc.Create(emp, "secret123"))

	stored, _ := repo.FindByEmail("a@sgdata.co.th")
	require.NotNil(t, stored)
	assert.Equal(t, models.RoleEmployee, stored.Role)
	assert.NotEqual(t, "secret123", stored.Password, "plaintext never reaches storage")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))
}

func TestCreateEmployeeRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeEmployeeRepo(models.Employee{ID: "emp-1", Email: "a@sgdata.co.th"})
	svc := NewEmployeeService(repo)

	err := svc.Create(&models.Employee{Email: "a@sgdata.co.th"}, "secret123")
	assert.Error(t, err)
	assert.Len(t, repo.employees, 1)
}

func TestUpdateEmployeeKeepsHashWhenPasswordEmpty(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo)

	emp := &models.Employee{NameEn: "Arm", Email: "a@sgdata.co.th"}
	require.NoError(t, svc.Create(emp, "secret123"))
	originalHash := repo.employees[emp.ID].Password

	emp.Position = "Senior Technician"
	require.NoError(t, svc.Update(emp, ""))
	assert.Equal(t, originalHash, repo.employees[emp.ID].Password)

	require.NoError(t, svc.Update(emp, "rotated"))
	assert.NotEqual(t, originalHash, repo.employees[emp.ID].Password)
}

func TestListStripsPasswordHashes(t *testing.T) {
	repo := newFakeEmployeeRepo(
		models.Employee{ID: "emp-1", Email: "a@sgdata.co.th", Password: "hash-a"},
		models.Employee{ID: "emp-2", Email: "b@sgdata.co.th", Password: "hash-b"},
	)
	svc := NewEmployeeService(repo)

	employees, err := svc.List()
	require.NoError(t, err)
	require.Len(t, employees, 2)
	for _, emp := range employees {
		assert.Empty(t, emp.Password)
	}
}
