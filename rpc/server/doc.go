// Package server implements the storage RPC server: a transport listener
// that decodes wire Messages, dispatches them onto a local storage engine
// (memory or file) through the adapter, and encodes the responses.
//
// The server carries no participant logic at all. It only serves the four
// storage primitives, which keeps identifier semantics entirely client-side
// and the server reusable for any consumer of the key-value surface.
package server
