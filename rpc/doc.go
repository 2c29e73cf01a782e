// Package rpc ties together the pieces that expose a storage engine over a
// network boundary: the wire protocol and configuration (common), message
// encodings (serializer), byte transports (transport, transport/http), the
// remote storage.IStorage implementation (client) and the serving side
// (server).
//
// The layering is strict. Transports move opaque bytes, serializers map
// bytes to Messages, the adapter maps Messages to storage operations. Any
// layer can be swapped without touching the others.
package rpc
