package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes registers all HTTP routes
func registerRoutes(app *fiber.App, deps *Dependencies) {
	// Health check routes
	app.Get("/health", deps.HealthHandler.Health)
	app.Get("/healthz", deps.HealthHandler.Liveness)
	app.Get("/livez", deps.HealthHandler.Liveness)
	app.Get("/readyz", deps.HealthHandler.Readiness)
	app.Get("/version", deps.HealthHandler.Version)

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/v1")
	{
		// Employees
		v1.Get("/employees", deps.EmployeesHandler.ListEmployees)
		v1.Get("/employees/:employeeId", deps.EmployeesHandler.GetEmployee)
		v1.Post("/employees", deps.EmployeesHandler.CreateEmployee)
		v1.Put("/employees/:employeeId", deps.EmployeesHandler.UpdateEmployee)
		v1.Delete("/employees/:employeeId", deps.EmployeesHandler.DeleteEmployee)

		// Projects
		v1.Get("/projects", deps.ProjectsHandler.ListProjects)
		v1.Get("/projects/:projectId", deps.ProjectsHandler.GetProject)
		v1.Post("/projects", deps.ProjectsHandler.CreateProject)
		v1.Put("/projects/:projectId", deps.ProjectsHandler.UpdateProject)
		v1.Delete("/projects/:projectId", deps.ProjectsHandler.DeleteProject)
		v1.Get("/projects/:projectId/employees", deps.ProjectsHandler.ListProjectMembers)

		// Assignments
		v1.Post("/assignments", deps.AssignmentsHandler.CreateAssignment)
		v1.Get("/employees/:employeeId/projects", deps.AssignmentsHandler.ListEmployeeProjects)
		v1.Delete("/employees/:employeeId/projects/:projectId", deps.AssignmentsHandler.DeleteAssignment)

		// Performance reviews
		v1.Post("/employees/:employeeId/reviews", deps.ReviewsHandler.SubmitReview)
		v1.Get("/employees/:employeeId/reviews", deps.ReviewsHandler.ListReviews)
		v1.Get("/employees/:employeeId/summary", deps.ReportsHandler.GetPerformanceSummary)

		// Reports
		v1.Get("/reports/overview", deps.ReportsHandler.GetOverview)
		v1.Get("/reports/assignments", deps.ReportsHandler.GetAssignmentRoster)
		v1.Get("/reports/performance/:employeeId", deps.ReportsHandler.GetPerformanceSummary)
	}
}
