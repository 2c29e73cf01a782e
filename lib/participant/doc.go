// Package participant manages a durable, per-client anonymous identifier
// (the "browser ID") together with namespaced key/value attributes, layered
// on any storage.IStorage backing store. The identifier is generated once,
// persisted, and reused across sessions, which lets experiment applications
// correlate activity by the same client without any form of authentication.
//
// Identifier lifecycle:
//
//	BrowserID() is idempotent get-or-create: a stored identifier is returned
//	unchanged, and only an absent identifier triggers the generation
//	procedure. Generation produces time-ordered UUIDv7 candidates and, when a
//	validator is configured, awaits its accept/reject decision for each
//	candidate before persisting anything. Up to MaxRetryValidation candidates
//	are tried; rejected candidates are never written. On the first accepted
//	candidate the identifier is persisted and timestamp bookkeeping runs:
//	created_at is written exactly once per prefix, every later successful
//	generation writes updated_at instead.
//
// The generation procedure has two distinct terminal failure causes,
// ErrValidationExhausted and ErrStorageRejected, distinguishable with
// errors.Is.
//
// Key layout (shared contract with every consumer of the same store):
//
//	<prefix>.browser_id
//	<prefix>.created_at
//	<prefix>.updated_at
//	<prefix>.<app_name>.<field>
//
// Attribute semantics:
//
//	Attributes hold one of five kinds: integer, float, bool, string, or
//	string list. GetAttribute returns the configured default not only when
//	the key is absent but also when the stored value is falsy (0, 0.0,
//	false, "", empty list). A stored zero is therefore indistinguishable
//	from "not set". This quirk is inherited contract - downstream consumers
//	rely on it, so it must not be "fixed". HasAttribute reports raw key
//	presence and is exempt from the quirk.
//
// Concurrency:
//
//	A manager instance serves a single logical caller and takes no locks of
//	its own; the backing store is expected to make its primitive operations
//	safe. Two managers racing through get-or-create on the same prefix
//	resolve last-write-wins, silently discarding one generated identifier.
//	That risk is accepted for the client-local, single-consumer deployment
//	model this package targets. No timeout is applied around the validator;
//	a hanging validator stalls generation indefinitely.
package participant
