// Package memstore implements an in-memory, single-process storage engine
// based on the storage.IStorage interface. It is a thin wrapper around a
// concurrent map with value copying on both read and write paths, so callers
// can never alias the engine's internal buffers.
//
// Data is not persisted between process restarts. The engine is intended for
// tests, the conformance suite and ephemeral CLI runs; durable deployments
// should use the filestore package instead.
//
// Thread Safety:
//
//	All operations are safe for concurrent use. The engine delegates its
//	synchronization to xsync.MapOf, which provides lock-free reads and
//	fine-grained locking for writes.
package memstore
