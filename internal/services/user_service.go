package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"amarthrift-backend/internal/models"
	"amarthrift-backend/internal/utils"
)

// ErrUserNotFound is returned when no profile matches the lookup
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidCredentials is returned on a failed email/password sign-in
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserService handles profile and credential logic
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new user service
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new profile with a local password credential.
// New profiles always start with the customer role.
func (s *UserService) Register(registration *models.UserRegistration) (*models.User, error) {
	if err := utils.ValidateStruct(registration); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	if passwordErrors := utils.ValidatePassword(registration.Password); len(passwordErrors) > 0 {
		return nil, fmt.Errorf("password validation failed: %s", strings.Join(passwordErrors, ", "))
	}

	email := strings.ToLower(strings.TrimSpace(registration.Email))
	fullName := utils.SanitizeString(registration.FullName)
	if len(fullName) < 2 {
		return nil, errors.New("full name must be at least 2 characters")
	}

	if _, err := s.GetByEmail(email); err == nil {
		return nil, errors.New("user with this email already exists")
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleCustomer,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.insert(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies an email/password pair and returns the profile
func (s *UserService) Authenticate(login *models.UserLogin) (*models.User, error) {
	if err := utils.ValidateStruct(login); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	user, err := s.GetByEmail(strings.ToLower(strings.TrimSpace(login.Email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.HasPassword() {
		// Federated profile with no local credential
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(login.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// EnsureFederatedProfile returns the profile for a federated identity,
// creating a default customer profile on first login. The full name falls
// back to the identity's display name, then to the email local part.
func (s *UserService) EnsureFederatedProfile(email, displayName string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("federated identity has no email")
	}

	user, err := s.GetByEmail(email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	fullName := strings.TrimSpace(displayName)
	if fullName == "" {
		fullName = utils.EmailLocalPart(email)
	}

	user = &models.User{
		ID:        uuid.New().String(),
		Email:     email,
		FullName:  fullName,
		Role:      models.UserRoleCustomer,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.insert(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a profile by id
func (s *UserService) GetByID(id string) (*models.User, error) {
	return s.getOne("SELECT id, email, full_name, password_hash, role, created_at, updated_at FROM users WHERE id = ?", id)
}

// GetByEmail retrieves a profile by email
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	return s.getOne("SELECT id, email, full_name, password_hash, role, created_at, updated_at FROM users WHERE email = ?", email)
}

func (s *UserService) getOne(query string, arg interface{}) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Email, &user.FullName, &user.PasswordHash,
		&user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *UserService) insert(user *models.User) error {
	query := `
		INSERT INTO users (id, email, full_name, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		user.ID, user.Email, user.FullName, user.PasswordHash,
		user.Role, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}
