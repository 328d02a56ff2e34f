// Package service implements the data-access layer: one service per entity,
// each operation wrapped in a single transaction over the shared gorm DB.
package service

// MutationOutcome tags the result of an ownership-gated update or delete.
// Absence and foreign ownership are distinct outcomes here; the route layer
// deliberately maps both to 403 so a caller cannot probe which rows exist.
type MutationOutcome int

const (
	OutcomeOK MutationOutcome = iota
	OutcomeNotFound
	OutcomeForbidden
)
