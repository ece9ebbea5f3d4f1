// Package sink implements the client for the downstream ledger platform.
//
// The ledger is a no-code database mirroring reconciled entities for
// reporting. Every table exposes the same three operations: a natural-key
// filtered List (wrapped in a {data:{items:[...]}} envelope), a Create that
// echoes the stored record including its minted id_<table-code> column, and
// an Update that expects that id column embedded in the payload.
//
// Column naming is the ledger's own; the sync feature's table registry owns
// the mapping from canonical field names to ledger columns.
package sink
