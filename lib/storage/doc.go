// Package storage defines the backing-store contract that the participant
// manager is layered on: a small asynchronous key-value surface with Set, Get,
// Remove and Has operations plus unified error reporting. It is an abstraction
// layer over the concrete engines, so consumers can switch between them
// without code changes.
//
// The package focuses on:
//   - A unified interface (IStorage) for key-value operations across engines
//   - Pluggable engine architecture through the Factory pattern
//   - Structured error reporting with typed return codes
//
// Implementations:
//
//	The repository includes three implementations of the IStorage interface:
//
//	- Memory engine (memstore): a thread-safe in-memory map. Data does not
//	  survive process restarts; intended for tests and ephemeral runs.
//	  Available in "github.com/miyamoto-hai-lab/participants-id/lib/storage/memstore".
//
//	- File engine (filestore): a durable single-file engine that snapshots
//	  its contents on every write. This is the engine that gives identifiers
//	  their cross-session durability on a single machine.
//	  Available in "github.com/miyamoto-hai-lab/participants-id/lib/storage/filestore".
//
//	- Remote engine (rpc/client): a client speaking the repository's RPC
//	  protocol, so several hosts can share one identifier namespace served by
//	  a single storage server.
//	  Available in "github.com/miyamoto-hai-lab/participants-id/rpc/client".
//
// All engines are exercised by the shared conformance suite in the storagetest
// subpackage.
package storage
