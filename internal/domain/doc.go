// Package domain contains the core business entities and types for Perfboard.
//
// This package defines:
//   - Entity types (Employee, Project, Assignment, Review)
//   - Value objects and enums (ProjectStatus)
//   - Input/output types for service operations
//   - Defensive parsing helpers for document-store fields
//
// # Design Philosophy
//
// Domain types are persistence-agnostic and represent the core
// business concepts independent of how they are stored or transmitted.
// Review documents are deliberately permissive on write: rating and
// date validation happens on the read/aggregation side.
//
// # Naming Conventions
//
// Types ending in "Input" are used for create/update operations.
package domain
