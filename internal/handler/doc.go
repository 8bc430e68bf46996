// Package handler contains HTTP request handlers for Perfboard.
//
// Handlers are the entry point for HTTP requests, responsible for:
//   - Request parsing
//   - Calling appropriate services
//   - Response formatting
//   - Error response mapping
//
// # Route Organization
//
// Routes are organized by resource under /v1:
//   - /v1/employees - Employee CRUD, their projects and reviews
//   - /v1/projects - Project CRUD and member listings
//   - /v1/assignments - Employee-project assignment creation
//   - /v1/reports - Aggregate dashboard reports
//
// # Error Handling
//
// Handlers convert domain errors to appropriate HTTP status codes
// using the apperrors package for consistent error responses.
//
// # Thread Safety
//
// All handlers are safe for concurrent use.
package handler
