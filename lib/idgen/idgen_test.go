package idgen

import (
	"testing"
)

func TestResolveDefault(t *testing.T) {
	gen, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if gen.Scheme() != SchemeUUIDv7 {
		t.Errorf("Expected default scheme %q, got %q", SchemeUUIDv7, gen.Scheme())
	}
}

func TestResolveUnknownScheme(t *testing.T) {
	_, err := Resolve(Scheme("uuidv9"))
	if err == nil {
		t.Fatalf("Expected error for unknown scheme")
	}
}

func TestGeneratedIDs(t *testing.T) {
	schemes := map[Scheme]int{
		SchemeUUIDv7: 7,
		SchemeUUIDv4: 4,
	}

	for scheme, wantVersion := range schemes {
		t.Run(string(scheme), func(t *testing.T) {
			gen, err := Resolve(scheme)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}

			id, err := gen.NewID()
			if err != nil {
				t.Fatalf("NewID failed: %v", err)
			}

			version, ok := Version(id)
			if !ok {
				t.Fatalf("Generated id %q is not decodable", id)
			}
			if version != wantVersion {
				t.Errorf("Expected version %d, got %d", wantVersion, version)
			}

			// fresh values must differ
			id2, err := gen.NewID()
			if err != nil {
				t.Fatalf("NewID failed: %v", err)
			}
			if id == id2 {
				t.Errorf("Expected distinct ids, got %q twice", id)
			}
		})
	}
}

func TestVersionOfGarbage(t *testing.T) {
	if _, ok := Version("not-a-uuid"); ok {
		t.Errorf("Expected Version to reject undecodable input")
	}
	if _, ok := Version(""); ok {
		t.Errorf("Expected Version to reject empty input")
	}
}
