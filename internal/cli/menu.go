// Package cli implements the interactive text-menu console. It drives
// the same service layer as the HTTP API, so validation and error
// semantics are identical across both surfaces.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/perfboard/perfboard/internal/domain"
	apperrors "github.com/perfboard/perfboard/internal/pkg/errors"
	"github.com/perfboard/perfboard/internal/service"
)

// Menu is the interactive console. Reads are line-oriented; every
// prompt consumes exactly one line of input.
type Menu struct {
	employees   *service.EmployeeService
	projects    *service.ProjectService
	assignments *service.AssignmentService
	reviews     *service.ReviewService
	reports     *service.ReportService

	in  *bufio.Scanner
	out io.Writer
}

// NewMenu creates a menu bound to the given input and output streams
func NewMenu(
	employees *service.EmployeeService,
	projects *service.ProjectService,
	assignments *service.AssignmentService,
	reviews *service.ReviewService,
	reports *service.ReportService,
	in io.Reader,
	out io.Writer,
) *Menu {
	return &Menu{
		employees:   employees,
		projects:    projects,
		assignments: assignments,
		reviews:     reviews,
		reports:     reports,
		in:          bufio.NewScanner(in),
		out:         out,
	}
}

// Run loops over the main menu until the user exits or input ends.
// Returns nil on a normal exit, including EOF on the input stream.
func (m *Menu) Run(ctx context.Context) error {
	fmt.Fprintln(m.out, "Perfboard - Employee Performance Console")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(m.out, `
1. Add employee
2. Add project
3. Assign employee to project
4. Submit performance review
5. View employee's projects
6. View employee's reviews
7. Reports
8. Exit
`)
		choice, ok := m.prompt("Select an option: ")
		if !ok {
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "1":
			m.runAction(ctx, m.addEmployee)
		case "2":
			m.runAction(ctx, m.addProject)
		case "3":
			m.runAction(ctx, m.assignEmployee)
		case "4":
			m.runAction(ctx, m.submitReview)
		case "5":
			m.runAction(ctx, m.viewEmployeeProjects)
		case "6":
			m.runAction(ctx, m.viewEmployeeReviews)
		case "7":
			m.runAction(ctx, m.reportsMenu)
		case "8":
			fmt.Fprintln(m.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid option, please choose 1-8.")
		}
	}
}

// runAction runs a single menu action and prints its error, if any.
// Action errors never terminate the menu loop.
func (m *Menu) runAction(ctx context.Context, action func(context.Context) error) {
	if err := action(ctx); err != nil {
		if appErr := apperrors.GetAppError(err); appErr != nil {
			fmt.Fprintf(m.out, "Error: %s\n", appErr.Message)
			for field, detail := range appErr.Details {
				fmt.Fprintf(m.out, "  %s: %s\n", field, detail)
			}
			return
		}
		fmt.Fprintf(m.out, "Error: %v\n", err)
	}
}

func (m *Menu) addEmployee(ctx context.Context) error {
	input := &domain.EmployeeInput{}
	fields := []struct {
		label string
		dst   *string
	}{
		{"First name: ", &input.FirstName},
		{"Last name: ", &input.LastName},
		{"Email: ", &input.Email},
		{"Hire date (YYYY-MM-DD): ", &input.HireDate},
		{"Department: ", &input.Department},
	}
	for _, f := range fields {
		value, ok := m.prompt(f.label)
		if !ok {
			return nil
		}
		*f.dst = value
	}

	employee, err := m.employees.Create(ctx, input)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Created employee #%d: %s\n", employee.ID, employee.FullName())
	return nil
}

func (m *Menu) addProject(ctx context.Context) error {
	name, ok := m.prompt("Project name: ")
	if !ok {
		return nil
	}
	startDate, ok := m.prompt("Start date (YYYY-MM-DD): ")
	if !ok {
		return nil
	}
	endDate, ok := m.prompt("End date (YYYY-MM-DD, blank for none): ")
	if !ok {
		return nil
	}
	status, ok := m.prompt("Status (Planning/Development/On Hold/Completed, blank for Planning): ")
	if !ok {
		return nil
	}

	project, err := m.projects.Create(ctx, &domain.ProjectInput{
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    status,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Created project #%d: %s [%s]\n", project.ID, project.Name, project.Status)
	return nil
}

func (m *Menu) assignEmployee(ctx context.Context) error {
	employeeID, ok := m.promptID("Employee ID: ")
	if !ok {
		return nil
	}
	projectID, ok := m.promptID("Project ID: ")
	if !ok {
		return nil
	}
	role, ok := m.prompt("Role: ")
	if !ok {
		return nil
	}
	date, ok := m.prompt("Assignment date (YYYY-MM-DD, blank for today): ")
	if !ok {
		return nil
	}

	assignment, err := m.assignments.Assign(ctx, &domain.AssignmentInput{
		EmployeeID:     employeeID,
		ProjectID:      projectID,
		Role:           role,
		AssignmentDate: date,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Assigned employee #%d to project #%d as %s\n",
		assignment.EmployeeID, assignment.ProjectID, assignment.Role)
	return nil
}

func (m *Menu) submitReview(ctx context.Context) error {
	employeeID, ok := m.promptID("Employee ID: ")
	if !ok {
		return nil
	}
	reviewDate, ok := m.prompt("Review date (YYYY-MM-DD): ")
	if !ok {
		return nil
	}
	reviewerName, ok := m.prompt("Reviewer name: ")
	if !ok {
		return nil
	}
	ratingText, ok := m.prompt("Overall rating: ")
	if !ok {
		return nil
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(ratingText), 64)
	if err != nil {
		return apperrors.Validation("rating must be a number")
	}
	strengths, ok := m.promptList("Strengths (comma-separated, blank for none): ")
	if !ok {
		return nil
	}
	improvements, ok := m.promptList("Areas for improvement (comma-separated, blank for none): ")
	if !ok {
		return nil
	}
	comments, ok := m.prompt("Comments: ")
	if !ok {
		return nil
	}
	goals, ok := m.promptList("Goals for next period (comma-separated, blank for none): ")
	if !ok {
		return nil
	}

	review, err := m.reviews.Submit(ctx, employeeID, &domain.ReviewInput{
		ReviewDate:          reviewDate,
		ReviewerName:        reviewerName,
		OverallRating:       rating,
		Strengths:           strengths,
		AreasForImprovement: improvements,
		Comments:            comments,
		GoalsForNextPeriod:  goals,
	})
	if err != nil {
		return err
	}
	m.reports.InvalidateSummary(ctx, employeeID)

	fmt.Fprintf(m.out, "Submitted review %s for employee #%d\n", review.ID, review.EmployeeID)
	return nil
}

func (m *Menu) viewEmployeeProjects(ctx context.Context) error {
	employeeID, ok := m.promptID("Employee ID: ")
	if !ok {
		return nil
	}

	projects, err := m.assignments.ProjectsForEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Fprintln(m.out, "No project assignments.")
		return nil
	}

	for _, p := range projects {
		fmt.Fprintf(m.out, "#%d %s [%s] as %s since %s\n",
			p.Project.ID, p.Project.Name, p.Project.Status, p.Role,
			p.AssignmentDate.Format("2006-01-02"))
	}
	return nil
}

func (m *Menu) viewEmployeeReviews(ctx context.Context) error {
	employeeID, ok := m.promptID("Employee ID: ")
	if !ok {
		return nil
	}

	reviews, err := m.reviews.ListForEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		fmt.Fprintln(m.out, "No reviews on record.")
		return nil
	}

	for _, r := range reviews {
		fmt.Fprintf(m.out, "%s by %s, rating %.1f\n", r.ReviewDate, r.ReviewerName, r.OverallRating)
		if r.Comments != "" {
			fmt.Fprintf(m.out, "  %s\n", r.Comments)
		}
	}
	return nil
}

func (m *Menu) reportsMenu(ctx context.Context) error {
	fmt.Fprint(m.out, `
1. Assignment roster
2. Employee performance summary
3. Overview
`)
	choice, ok := m.prompt("Select a report: ")
	if !ok {
		return nil
	}

	switch strings.TrimSpace(choice) {
	case "1":
		return m.printRoster(ctx)
	case "2":
		return m.printSummary(ctx)
	case "3":
		return m.printOverview(ctx)
	default:
		fmt.Fprintln(m.out, "Invalid report, please choose 1-3.")
		return nil
	}
}

func (m *Menu) printRoster(ctx context.Context) error {
	rows, err := m.reports.AssignmentRoster(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(m.out, "No assignments recorded.")
		return nil
	}

	for _, row := range rows {
		fmt.Fprintf(m.out, "%s (%s) -> %s [%s] as %s\n",
			row.EmployeeName, row.Department, row.ProjectName, row.ProjectStatus, row.Role)
	}
	return nil
}

func (m *Menu) printSummary(ctx context.Context) error {
	employeeID, ok := m.promptID("Employee ID: ")
	if !ok {
		return nil
	}

	summary, err := m.reports.PerformanceSummary(ctx, employeeID)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "%s (%s), %d year(s) tenure\n",
		summary.Employee.FullName(), summary.Employee.Department, summary.TenureYears)
	fmt.Fprintf(m.out, "Reviews: %d, average rating %.2f\n", summary.ReviewCount, summary.AverageRating)
	for _, r := range summary.Reviews {
		fmt.Fprintf(m.out, "  %s by %s, rating %.1f\n", r.ReviewDate, r.ReviewerName, r.OverallRating)
	}
	return nil
}

func (m *Menu) printOverview(ctx context.Context) error {
	overview, err := m.reports.Overview(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Employees: %d, Projects: %d, Assignments: %d\n",
		overview.EmployeeCount, overview.ProjectCount, overview.AssignmentCount)
	for dept, count := range overview.Departments {
		fmt.Fprintf(m.out, "  %s: %d employee(s)\n", dept, count)
	}
	for status, count := range overview.ProjectStatuses {
		fmt.Fprintf(m.out, "  %s: %d project(s)\n", status, count)
	}
	return nil
}

// prompt prints a label and reads one line. The second return is false
// when the input stream has ended.
func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) promptID(label string) (int64, bool) {
	for {
		text, ok := m.prompt(label)
		if !ok {
			return 0, false
		}
		id, err := strconv.ParseInt(text, 10, 64)
		if err == nil && id > 0 {
			return id, true
		}
		fmt.Fprintln(m.out, "Please enter a positive numeric ID.")
	}
}

func (m *Menu) promptList(label string) ([]string, bool) {
	text, ok := m.prompt(label)
	if !ok {
		return nil, false
	}
	if text == "" {
		return nil, true
	}
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, true
}
