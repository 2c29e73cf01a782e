// Package cmd implements the command-line interface for the participants-id
// identifier manager. It provides a hierarchical command structure with
// operations for running the storage server and interacting with identifiers
// and attributes as a client.
//
// The package is organized into several subpackages:
//
//   - id: Commands for the participant identifier (get, regenerate, exists, etc.)
//   - attr: Commands for namespaced attribute operations (set, get, del, has)
//   - serve: Commands for starting and configuring the storage server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See participants-id -help for a list of all commands.
package cmd
