// Package transport defines the interfaces for moving serialized RPC
// messages between participant clients and the storage server. The transport
// layer is deliberately payload-agnostic: it ships opaque byte slices and
// leaves their meaning to the serializer and adapter layers.
//
// The http subpackage provides the HTTP implementation of both interfaces.
package transport
