package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"stockive-backend/internal/models"
	"stockive-backend/internal/utils"
)

// UserService handles user-related business logic
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new user service
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser creates a new user
func (s *UserService) CreateUser(registration *models.UserRegistration) (*models.User, error) {
	if err := utils.ValidateStruct(registration); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	registration.Email = utils.SanitizeString(registration.Email)
	registration.FirstName = utils.SanitizeString(registration.FirstName)
	registration.LastName = utils.SanitizeString(registration.LastName)

	// Normalize email for consistent storage and comparison
	registration.Email = strings.ToLower(strings.TrimSpace(registration.Email))

	exists, err := s.UserExists(registration.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, errors.New("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:               uuid.New().String(),
		Email:            registration.Email,
		Phone:            registration.Phone,
		FirstName:        registration.FirstName,
		LastName:         registration.LastName,
		PasswordHash:     string(hashedPassword),
		Role:             models.UserRoleUser,
		Status:           models.UserStatusActive,
		SubscriptionPlan: models.PlanBasic,
		Language:         registration.Language,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if user.Language == "" {
		user.Language = "en"
	}

	query := `
		INSERT INTO users (
			id, email, phone, first_name, last_name, password_hash, role, status,
			subscription_plan, language, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.Exec(query,
		user.ID, user.Email, user.Phone, user.FirstName, user.LastName,
		user.PasswordHash, user.Role, user.Status, user.SubscriptionPlan,
		user.Language, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

// AuthenticateUser verifies credentials and returns the user
func (s *UserService) AuthenticateUser(login *models.UserLogin) (*models.User, error) {
	if err := utils.ValidateStruct(login); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(login.Email))
	user, err := s.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(login.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	if !user.IsActive() {
		return nil, errors.New("account is not active")
	}

	return user, nil
}

// GetUserByID fetches a user by id
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	query := `
		SELECT id, email, phone, first_name, last_name, password_hash, role,
			status, subscription_plan, language, created_at, updated_at
		FROM users WHERE id = ?
	`
	return s.scanUser(s.db.QueryRow(query, id))
}

// GetUserByEmail fetches a user by email
func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, email, phone, first_name, last_name, password_hash, role,
			status, subscription_plan, language, created_at, updated_at
		FROM users WHERE email = ?
	`
	return s.scanUser(s.db.QueryRow(query, email))
}

// UserExists checks whether a user with the email exists
func (s *UserService) UserExists(email string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", email).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateProfile applies a partial profile update
func (s *UserService) UpdateProfile(userID string, update *models.UserProfileUpdate) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if update.FirstName != nil {
		user.FirstName = utils.SanitizeString(*update.FirstName)
	}
	if update.LastName != nil {
		user.LastName = utils.SanitizeString(*update.LastName)
	}
	if update.Phone != nil {
		user.Phone = utils.SanitizeString(*update.Phone)
	}
	if update.Language != nil {
		user.Language = utils.SanitizeString(*update.Language)
	}
	user.UpdatedAt = time.Now()

	query := `
		UPDATE users SET first_name = ?, last_name = ?, phone = ?, language = ?, updated_at = ?
		WHERE id = ?
	`
	if _, err := s.db.Exec(query, user.FirstName, user.LastName, user.Phone, user.Language, user.UpdatedAt, user.ID); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

// ChangePlan updates the user's subscription plan. Unknown plan names are
// rejected here rather than silently normalized; the read path is where
// fall-through to basic happens.
func (s *UserService) ChangePlan(userID string, plan models.SubscriptionPlan) (*models.User, error) {
	switch plan {
	case models.PlanBasic, models.PlanStandard, models.PlanPremium:
	default:
		return nil, fmt.Errorf("unknown subscription plan: %s", plan)
	}

	now := time.Now()
	result, err := s.db.Exec("UPDATE users SET subscription_plan = ?, updated_at = ? WHERE id = ?", plan, now, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to change plan: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, sql.ErrNoRows
	}

	return s.GetUserByID(userID)
}

func (s *UserService) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Phone, &user.FirstName, &user.LastName,
		&user.PasswordHash, &user.Role, &user.Status, &user.SubscriptionPlan,
		&user.Language, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
