// Package sync implements the reservation reconciliation engine.
//
// It mirrors booking platform entities into the property management ledger,
// keeping a local copy of every record's last known state alongside its
// three identities: local row id, platform external id and ledger internal id.
//
// # Pipeline
//
// Webhook deliveries are acknowledged immediately and queued on a
// single-consumer FIFO worker, so writes reach the ledger in arrival order.
// Each job runs the dependency orchestrator, which reconciles upstream
// entities (condominium, owner, property, agent, channel) before the
// reservation or block itself, and guest/fee line items only after the
// reservation's ledger id is known.
//
// # Components
//
//   - Registry: per-entity ledger table mapping (table, id column, columns,
//     natural key), validated at startup.
//   - Repository: gorm-backed local mirror of all entity tables.
//   - Reconciler: lookup-else-create-else-update against the ledger.
//   - FaultLedger: durable failure records, themselves mirrored to the
//     ledger with recursion capped at depth one.
//   - Orchestrator: dependency-ordered sync runs with graceful degradation
//     on source fetch failures.
//   - Service/Handler: webhook intake, status reporting and resync.
//
// # HTTP Endpoints
//
//   - POST /webhook      : Accept a change event.
//   - GET  /sync/status  : Queue depth and unsynced record counts.
//   - POST /sync/resync  : Queue a refresh for every unsynced record.
package sync
