package domain

import "time"

// ProjectStatus represents the lifecycle stage of a project
type ProjectStatus string

const (
	ProjectStatusPlanning    ProjectStatus = "Planning"
	ProjectStatusDevelopment ProjectStatus = "Development"
	ProjectStatusOnHold      ProjectStatus = "On Hold"
	ProjectStatusCompleted   ProjectStatus = "Completed"
)

// IsValid checks if the project status is valid
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusDevelopment, ProjectStatusOnHold, ProjectStatusCompleted:
		return true
	}
	return false
}

// Project represents a project that employees can be assigned to
type Project struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	StartDate time.Time     `json:"startDate"`
	EndDate   *time.Time    `json:"endDate,omitempty"`
	Status    ProjectStatus `json:"status"`
}

// ProjectInput represents input for creating or updating a project
type ProjectInput struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status    string `json:"status,omitempty"`
}
