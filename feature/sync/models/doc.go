// Package models defines the entities mirrored between the booking platform
// and the ledger.
//
// Every entity shares a common shape: a local surrogate id, the booking
// platform's external id (the sole re-entry key for idempotent processing),
// a nullable ledger-assigned sink id, and a synced flag that is false
// whenever the local state has not been confirmed in the ledger. Entities
// are never hard-deleted; cancellation and deletion are status values.
//
// The Record interface exposes this shape plus each entity's canonical field
// set, which the sync feature's table registry translates into ledger
// columns.
package models
