// Package client provides the remote implementation of the storage.IStorage
// interface: every operation is serialized into a wire Message, shipped over
// a pluggable transport, and the response mapped back onto the interface's
// return values. A participant manager built on this engine lets several
// hosts share one identifier namespace served by a single storage server.
//
// The client performs no caching; every call is one round trip. Transport
// retry behavior is configured via common.ClientConfig.
package client
