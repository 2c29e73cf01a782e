package participant

import (
	"errors"
	"time"

	"github.com/miyamoto-hai-lab/participants-id/lib/idgen"
)

// MaxRetryValidation is the maximum number of identifier candidates generated
// per generation procedure before giving up. Rejected candidates consume one
// attempt each; the bound never resets within a single call.
const MaxRetryValidation = 10

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IParticipant manages a durable, per-client anonymous identifier and a set
// of namespaced key/value attributes, both layered on a storage.IStorage
// backing store.
//
// A manager instance assumes a single logical caller. Operations performed by
// concurrent managers on the same backing store are last-write-wins; see the
// package documentation.
type IParticipant interface {
	// BrowserID returns the stored identifier, generating and persisting a new
	// one first if none exists. A stored identifier is returned unchanged with
	// no timestamp bookkeeping.
	BrowserID() (id string, err error)

	// Regenerate unconditionally runs the generation procedure and overwrites
	// any stored identifier.
	//
	// [Caution] Regenerating the identifier affects every other experiment
	// project keyed on the same prefix. Coordinate with the other project
	// owners before calling this.
	Regenerate() (id string, err error)

	// Exists reports whether an identifier is currently persisted. It has no
	// side effects.
	Exists() (ok bool, err error)

	// Delete removes the identifier; on success it also removes both timestamp
	// keys (best effort). Attributes are unaffected. It returns whether the
	// identifier removal itself succeeded.
	//
	// [Caution] Deleting the identifier invalidates correlation for every
	// consumer keyed on this prefix. Not meant for routine use.
	Delete() (ok bool, err error)

	// Version returns the version field decoded from the stored identifier's
	// encoding. The boolean is false if no identifier is stored.
	Version() (version int, loaded bool, err error)

	// CreatedAt returns the identifier creation timestamp (ISO-8601, UTC).
	// The boolean is false if no identifier has ever been persisted.
	CreatedAt() (ts string, loaded bool, err error)

	// UpdatedAt returns the identifier update timestamp (ISO-8601, UTC).
	// The boolean is false until a second successful generation occurs.
	UpdatedAt() (ts string, loaded bool, err error)

	// SetAttribute stores a value under the namespaced attribute key.
	// Permitted value types: integer (any width), float, bool, string, []string.
	SetAttribute(field string, value any) (err error)

	// GetAttribute returns the stored attribute value, or def if the key is
	// absent, the stored value is falsy (0, 0.0, false, "", empty list), or the
	// stored bytes are not decodable. Integers come back as int64 and floats
	// as float64 regardless of the width passed to SetAttribute.
	GetAttribute(field string, def any) (value any, err error)

	// HasAttribute reports raw key presence, unaffected by the falsy-value
	// behavior of GetAttribute.
	HasAttribute(field string) (ok bool, err error)

	// DeleteAttribute removes the attribute key.
	DeleteAttribute(field string) (err error)
}

// --------------------------------------------------------------------------
// Failure kinds
// --------------------------------------------------------------------------

// The two terminal failure causes of the generation procedure are exposed as
// distinct sentinels so callers can branch with errors.Is.
var (
	// ErrValidationExhausted means MaxRetryValidation candidates were generated
	// and the validator rejected every one of them.
	ErrValidationExhausted = errors.New("participant: no identifier candidate accepted after maximum validation retries")

	// ErrStorageRejected means a candidate was accepted but the backing store
	// reported failure persisting it.
	ErrStorageRejected = errors.New("participant: backing store rejected the identifier write")
)

// --------------------------------------------------------------------------
// Options
// --------------------------------------------------------------------------

// Options configures a manager during construction.
type Options struct {
	// Prefix is the storage key prefix isolating this identifier namespace.
	// Empty means DefaultPrefix.
	Prefix string

	// Validator, if set, is consulted for every generated candidate before it
	// is persisted. Nil means every candidate is accepted.
	Validator IValidator

	// Schemes is the identifier generation fallback order, resolved once at
	// construction. Empty means the idgen default (uuidv7).
	Schemes []idgen.Scheme

	// Generator overrides Schemes with a pre-built generator. Intended for
	// tests.
	Generator idgen.IGenerator

	// Clock overrides the timestamp source. Intended for tests.
	Clock func() time.Time
}

// DefaultOptions returns the default manager options.
func DefaultOptions() *Options {
	return &Options{
		Prefix: DefaultPrefix,
	}
}
