// Package serializer provides message serialization for the storage RPC
// system. It defines a common interface and two implementations for
// serializing and deserializing messages between client and server.
//
// Key Components:
//
//   - IRPCSerializer: core interface that all serializer implementations
//     must satisfy.
//
//   - jsonSerializerImpl: JSON encoding. Human-readable, useful for debugging
//     and for interoperability with non-Go consumers of the wire format.
//     This is the default.
//
//   - gobSerializerImpl: Go's built-in gob encoding. More compact than JSON
//     for messages carrying binary values, but Go-only.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	Serializers are typically created once and reused:
//
//	  s := serializer.NewJSONSerializer()
//	  data, err := s.Serialize(message)
//	  // ... send data ...
//	  var received common.Message
//	  err = s.Deserialize(data, &received)
package serializer
