package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/watrakon/Sgdatapos/internal/models"
	"github.com/watrakon/Sgdatapos/internal/repositories"
)

// ErrInvalidCredentials is surfaced as HTTP 401.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailNotFound is surfaced as HTTP 404 on password reset.
var ErrEmailNotFound = errors.New("email not found")

// AuthService authenticates employees and manages their passwords.
// Passwords are stored as bcrypt hashes; the session is a signed JWT, not
// stored credentials.
type AuthService struct {
	employeeRepo repositories.EmployeeRepositoryInterface
	sessionRepo  repositories.SessionRepositoryInterface
	jwtSecret    string
	now          func() time.Time
}

func NewAuthService(employeeRepo repositories.EmployeeRepositoryInterface, sessionRepo repositories.SessionRepositoryInterface, jwtSecret string) *AuthService {
	return &AuthService{
		employeeRepo: employeeRepo,
		sessionRepo:  sessionRepo,
		jwtSecret:    jwtSecret,
		now:          time.Now,
	}
}

// Login verifies the credentials, records today's login session for the
// office roster, and returns a 72h token plus the employee profile.
func (s *AuthService) Login(email, password, office string) (string, *models.Employee, error) {
	emp, err := s.employeeRepo.FindByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("look up employee: %w", err)
	}
	if emp == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"employee_id": emp.ID,
		"email":       emp.Email,
		"role":        emp.Role,
		"exp":         s.now().Add(72 * time.Hour).Unix(),
		"iat":         s.now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	// One session row per employee per local day; a repeat login only
	// updates the office. A session write failure never blocks login.
	session := &models.LoginSession{
		EmployeeID: emp.ID,
		Office:     office,
		Date:       s.now().Format(models.DateLayout),
	}
	if err := s.sessionRepo.Upsert(session); err != nil {
		log.Printf("[Login] Session upsert failed for %s: %v", emp.ID, err)
	}

	emp.Password = ""
	return tokenString, emp, nil
}

// UpdatePassword unconditionally overwrites the password for an existing
// email; unknown emails report ErrEmailNotFound.
func (s *AuthService) UpdatePassword(email, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.employeeRepo.UpdatePassword(email, string(hash)); err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return ErrEmailNotFound
		}
		return err
	}
	return nil
}

// Profile returns the employee for the authenticated id, without the
// password hash.
func (s *AuthService) Profile(employeeID string) (*models.Employee, error) {
	emp, err := s.employeeRepo.FindByID(employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, errors.New("employee no longer exists")
	}
	emp.Password = ""
	return emp, nil
}
