// Package idgen provides the identifier generation capability used by the
// participant manager: a 128-bit time-ordered unique value in canonical
// textual encoding.
//
// The capability is deliberately narrow. Managers depend on the IGenerator
// interface only, and the concrete scheme is resolved exactly once at
// construction time via Resolve. The scheme order passed to Resolve is the
// explicit startup configuration for fallback behavior - there is no hidden
// import-time fallback chain, and an unresolvable configuration fails loudly
// with an actionable message rather than on first use.
//
// Two schemes are supported:
//   - uuidv7 (default): time-ordered, so identifiers created later compare
//     later. This is what gives stored identifiers their creation-time
//     ordering without a separate sequence.
//   - uuidv4: random, offered only as an explicitly configured fallback.
package idgen
