// Package source implements the client for the upstream booking platform.
//
// The platform originates webhook events and holds authoritative entity
// detail. Webhook payloads only carry partial references, so the sync engine
// calls back into this client to fetch full reservation, listing, building
// and guest detail before mirroring anything.
//
// Lookups that miss return ErrNotFound so callers can degrade to partial
// data instead of aborting a synchronization run.
package source
