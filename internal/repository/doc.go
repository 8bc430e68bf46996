// Package repository contains data access implementations for Perfboard.
//
// Repositories provide persistence operations for domain entities,
// abstracting the underlying data stores (PostgreSQL, MongoDB).
//
// # Architecture
//
// Repository interfaces are defined at the service layer (consumer-defined
// interfaces) following Go's dependency inversion best practices.
// This package contains the concrete implementations.
//
// # Data Stores
//
// The system uses two specialized data stores:
//   - PostgreSQL: Transactional data (employees, projects, assignments)
//     and the referential-integrity constraints between them
//   - MongoDB: Schema-flexible performance review documents
//
// Cross-store consistency is advisory only: a review's employee_id is
// not enforced by the document store, so callers must verify the
// employee exists before writing a review.
//
// # Thread Safety
//
// All repository implementations are safe for concurrent use.
// Connection pools are managed at the database layer.
package repository
