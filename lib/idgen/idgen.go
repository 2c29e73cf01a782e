package idgen

import (
	"fmt"

	"github.com/google/uuid"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Scheme identifies an identifier generation scheme.
type Scheme string

const (
	// SchemeUUIDv7 produces time-ordered identifiers (RFC 9562 version 7).
	// This is the default scheme: ids generated later sort later.
	SchemeUUIDv7 Scheme = "uuidv7"
	// SchemeUUIDv4 produces purely random identifiers. Offered only as an
	// explicit fallback for environments where v7 generation is unavailable.
	SchemeUUIDv4 Scheme = "uuidv4"
)

// IGenerator is the capability for producing fresh unique identifier
// candidates. A single generator is resolved once at construction time of a
// manager; per-call failures (e.g. entropy exhaustion) are reported via the
// error return.
type IGenerator interface {
	// NewID returns a fresh identifier in canonical textual encoding.
	NewID() (id string, err error)
	// Scheme returns the scheme the generator implements.
	Scheme() Scheme
}

// --------------------------------------------------------------------------
// Resolution
// --------------------------------------------------------------------------

// Resolve returns a generator for the first resolvable scheme in the given
// order. Passing no schemes resolves the default (uuidv7). An unknown scheme
// fails immediately with a remediation hint - this is a startup error, never
// deferred to first use.
func Resolve(schemes ...Scheme) (IGenerator, error) {
	if len(schemes) == 0 {
		schemes = []Scheme{SchemeUUIDv7}
	}

	for _, scheme := range schemes {
		switch scheme {
		case SchemeUUIDv7:
			return &uuidV7Generator{}, nil
		case SchemeUUIDv4:
			return &uuidV4Generator{}, nil
		default:
			return nil, fmt.Errorf(
				"idgen: unknown scheme %q - supported schemes are %q (time-ordered, default) and %q (random fallback)",
				scheme, SchemeUUIDv7, SchemeUUIDv4,
			)
		}
	}

	// unreachable, every known scheme resolves
	return nil, fmt.Errorf("idgen: no scheme could be resolved")
}

// --------------------------------------------------------------------------
// Implementations
// --------------------------------------------------------------------------

type uuidV7Generator struct{}

func (g *uuidV7Generator) NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("idgen: failed to generate UUIDv7: %w", err)
	}
	return id.String(), nil
}

func (g *uuidV7Generator) Scheme() Scheme {
	return SchemeUUIDv7
}

type uuidV4Generator struct{}

func (g *uuidV4Generator) NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("idgen: failed to generate UUIDv4: %w", err)
	}
	return id.String(), nil
}

func (g *uuidV4Generator) Scheme() Scheme {
	return SchemeUUIDv4
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// Version decodes the version field embedded in an identifier's textual
// encoding. The boolean return value indicates whether the id could be
// decoded at all.
func Version(id string) (int, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return 0, false
	}
	return int(parsed.Version()), true
}
