// Package storagetest provides a reusable conformance test suite for
// storage.IStorage implementations. Every engine in the repository (memory,
// file, RPC client) runs the same suite, so behavioral differences between
// engines surface as test failures rather than production surprises.
//
// Usage:
//
//	func Test(t *testing.T) {
//		storagetest.RunStorageTests(t, "MemoryStorage", func() storage.IStorage {
//			return memstore.NewMemoryStorage()
//		})
//	}
package storagetest
