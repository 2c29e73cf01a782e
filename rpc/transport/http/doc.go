// Package http implements an HTTP-based transport layer for the storage RPC
// system. It provides concrete implementations of the transport interfaces
// defined in the parent package, enabling communication between participant
// clients and a shared storage server over HTTP.
//
// Key Components:
//
//   - httpClientTransport: Implements the IRPCClientTransport interface.
//     Requests are POSTed to the /storage path of an endpoint chosen by
//     round-robin; transport-level failures are retried up to the configured
//     retry count.
//
//   - httpServerTransport: Implements the IRPCServerTransport interface.
//     It serves POST /storage with the registered handler, optionally wrapped
//     in a request-logging middleware at debug level, and exposes Prometheus
//     metrics on GET /metrics when enabled.
//
// Thread Safety:
//
//	The client transport is safe for concurrent use. It uses an atomic
//	counter for endpoint selection and net/http's connection pooling.
package http
