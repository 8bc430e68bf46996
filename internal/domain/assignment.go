package domain

import "time"

// Assignment links an employee to a project with a role.
// At most one assignment exists per (employee, project) pair; role
// changes are modeled as delete plus recreate, never update in place.
type Assignment struct {
	ID             int64     `json:"id"`
	EmployeeID     int64     `json:"employeeId"`
	ProjectID      int64     `json:"projectId"`
	Role           string    `json:"role"`
	AssignmentDate time.Time `json:"assignmentDate"`
}

// AssignmentInput represents input for assigning an employee to a project
type AssignmentInput struct {
	EmployeeID     int64  `json:"employeeId" validate:"required,gt=0"`
	ProjectID      int64  `json:"projectId" validate:"required,gt=0"`
	Role           string `json:"role" validate:"required,min=1,max=100"`
	AssignmentDate string `json:"assignmentDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// EmployeeProject is a project joined with the employee's role on it
type EmployeeProject struct {
	Project        Project   `json:"project"`
	Role           string    `json:"role"`
	AssignmentDate time.Time `json:"assignmentDate"`
}

// ProjectMember is an employee joined with their role on a project
type ProjectMember struct {
	Employee       Employee  `json:"employee"`
	Role           string    `json:"role"`
	AssignmentDate time.Time `json:"assignmentDate"`
}
