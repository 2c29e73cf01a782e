// Package filestore implements a durable, single-file storage engine based on
// the storage.IStorage interface. It keeps the full key set in a concurrent
// in-memory map and rewrites a JSON snapshot of the map on every mutation.
//
// The snapshot is written to a temporary file in the same directory and then
// renamed over the previous snapshot, so a crash mid-write leaves the old
// snapshot intact rather than a truncated file. Snapshots carry a magic
// string and a format version; loading rejects files that do not match.
//
// The engine is sized for its actual workload: a handful of identifier,
// timestamp and attribute keys per participant. Rewriting the whole snapshot
// per write is deliberate - it keeps recovery trivial and is far below any
// noticeable cost at this key count.
//
// Thread Safety:
//
//	In-memory reads and writes are safe for concurrent use via xsync.MapOf.
//	Snapshot writes are serialized by an internal mutex so the on-disk file
//	always reflects some consistent point in the write order.
package filestore
