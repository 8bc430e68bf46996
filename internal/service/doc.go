// Package service contains the business logic layer for Perfboard.
//
// Services coordinate between handlers and repositories, implementing
// domain rules and orchestrating operations across both stores.
//
// Services depend on repository interfaces defined in this package,
// following the dependency inversion principle. Each service handles a
// specific domain area (employees, projects, assignments, reviews,
// reports).
//
// # Architecture
//
// The service layer sits between:
//   - HTTP handlers and the CLI (presentation layer)
//   - Repository implementations (data access layer)
//
// Services are responsible for:
//   - Input validation and date parsing
//   - Referential checks that span the relational and document stores
//   - Aggregation for reports
//
// # Thread Safety
//
// All services are designed to be safe for concurrent use from
// multiple goroutines.
package service
