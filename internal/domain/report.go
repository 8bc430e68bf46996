package domain

import "time"

// AssignmentReportRow is one row of the employee-project roster report
type AssignmentReportRow struct {
	EmployeeID     int64         `json:"employeeId"`
	EmployeeName   string        `json:"employeeName"`
	Department     string        `json:"department"`
	ProjectID      int64         `json:"projectId"`
	ProjectName    string        `json:"projectName"`
	ProjectStatus  ProjectStatus `json:"projectStatus"`
	Role           string        `json:"role"`
	AssignmentDate time.Time     `json:"assignmentDate"`
}

// PerformanceSummary aggregates an employee's reviews in memory.
// Review data is pulled in full and reduced on the calling side; this
// bounds the report to datasets that fit in memory.
type PerformanceSummary struct {
	Employee      Employee `json:"employee"`
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"averageRating"`
	ReviewCount   int      `json:"reviewCount"`
	TenureYears   int      `json:"tenureYears"`
}

// Overview holds top-level dashboard counts and breakdowns
type Overview struct {
	EmployeeCount   int64                   `json:"employeeCount"`
	ProjectCount    int64                   `json:"projectCount"`
	AssignmentCount int64                   `json:"assignmentCount"`
	Departments     map[string]int64        `json:"departments"`
	ProjectStatuses map[ProjectStatus]int64 `json:"projectStatuses"`
}
