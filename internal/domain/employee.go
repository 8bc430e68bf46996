package domain

import (
	"strings"
	"time"
)

// Employee represents a member of staff tracked by the system
type Employee struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	HireDate   time.Time `json:"hireDate"`
	Department string    `json:"department"`
}

// FullName returns the employee's display name
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// TenureYears returns the number of whole years since the hire date
func (e Employee) TenureYears(now time.Time) int {
	years := now.Year() - e.HireDate.Year()
	anniversary := e.HireDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// EmployeeInput represents input for creating or updating an employee
type EmployeeInput struct {
	FirstName  string `json:"firstName" validate:"required,min=1,max=100"`
	LastName   string `json:"lastName" validate:"required,min=1,max=100"`
	Email      string `json:"email" validate:"required,email"`
	HireDate   string `json:"hireDate" validate:"required,datetime=2006-01-02"`
	Department string `json:"department" validate:"required,min=1,max=100"`
}

// NormalizeEmail canonicalizes an email address before storage or
// uniqueness checks. Addresses are compared case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
