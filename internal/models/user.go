package models

import (
	"time"
)

// UserRole represents user roles in the system
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// UserStatus represents user account status
type UserStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// SubscriptionPlan represents the billing tier of a user account.
// Unrecognized plan strings are treated as basic everywhere a plan is
// consulted.
type SubscriptionPlan string

const (
	PlanBasic    SubscriptionPlan = "basic"
	PlanStandard SubscriptionPlan = "standard"
	PlanPremium  SubscriptionPlan = "premium"
)

// Normalize collapses unknown plan strings to the basic tier
func (p SubscriptionPlan) Normalize() SubscriptionPlan {
	switch p {
	case PlanStandard, PlanPremium:
		return p
	default:
		return PlanBasic
	}
}

// AtLeast reports whether the plan includes everything the given tier offers.
// Tiers are strictly additive: premium includes standard includes basic.
func (p SubscriptionPlan) AtLeast(tier SubscriptionPlan) bool {
	rank := map[SubscriptionPlan]int{PlanBasic: 0, PlanStandard: 1, PlanPremium: 2}
	return rank[p.Normalize()] >= rank[tier.Normalize()]
}

// User represents a user in the Stockive system
type User struct {
	ID               string           `json:"id" db:"id"`
	Email            string           `json:"email" db:"email"`
	Phone            string           `json:"phone" db:"phone"`
	FirstName        string           `json:"firstName" db:"first_name"`
	LastName         string           `json:"lastName" db:"last_name"`
	PasswordHash     string           `json:"-" db:"password_hash"`
	Role             UserRole         `json:"role" db:"role"`
	Status           UserStatus       `json:"status" db:"status"`
	SubscriptionPlan SubscriptionPlan `json:"subscriptionPlan" db:"subscription_plan"`
	Language         string           `json:"language" db:"language"`
	CreatedAt        time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time        `json:"updatedAt" db:"updated_at"`
}

// UserRegistration represents user registration data
type UserRegistration struct {
	Email     string `json:"email" validate:"required,email,max=100"`
	Phone     string `json:"phone" validate:"max=20"`
	FirstName string `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	Language  string `json:"language" validate:"max=5"`
}

// UserLogin represents user login data
type UserLogin struct {
	Email    string `json:"email" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=128"`
}

// UserProfileUpdate represents user profile update data
type UserProfileUpdate struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Language  *string `json:"language,omitempty"`
}

// GetFullName returns the user's full name
func (u *User) GetFullName() string {
	return u.FirstName + " " + u.LastName
}

// IsActive checks if the user account is active
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// Plan returns the user's normalized subscription plan
func (u *User) Plan() SubscriptionPlan {
	return u.SubscriptionPlan.Normalize()
}
