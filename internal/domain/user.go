package domain

import (
	"fmt"
	"math"
	"net/mail"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// DefaultDailyHours is the contracted working day used when none is given.
const DefaultDailyHours = 8.0

// ValidateDailyHours rejects contracted hours outside a single day.
func ValidateDailyHours(h float64) error {
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 || h > 24 {
		return InvalidArgument("daily hours must be between 0 and 24")
	}
	return nil
}

type User struct {
	ID         string
	Email      string
	FirstName  string
	LastName   string
	Role       Role
	DailyHours float64
	CreatedAt  time.Time

	// CurrentSessionID is derived from the user's single open work session.
	// It is never stored on the user row.
	CurrentSessionID *string
}

// IsWorking reports whether the user has an open work session.
func (u *User) IsWorking() bool {
	return u.CurrentSessionID != nil
}

// FullName joins first and last name, skipping empty parts.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Normalize trims input fields and fills defaults for role.
func (u *User) Normalize() {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	if u.Role == "" {
		u.Role = RoleUser
	}
	u.Role = Role(strings.ToUpper(string(u.Role)))
}

// Validate checks the fields required to create a user.
func (u *User) Validate() error {
	if u.Email == "" {
		return InvalidArgument("email is required")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return InvalidArgument(fmt.Sprintf("email %q is not a valid address", u.Email))
	}
	if u.FirstName == "" {
		return InvalidArgument("first name is required")
	}
	if u.Role != RoleAdmin && u.Role != RoleUser {
		return InvalidArgument(fmt.Sprintf("role %q must be ADMIN or USER", u.Role))
	}
	return ValidateDailyHours(u.DailyHours)
}
