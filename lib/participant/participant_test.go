package participant

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/miyamoto-hai-lab/participants-id/lib/idgen"
	"github.com/miyamoto-hai-lab/participants-id/lib/storage"
	"github.com/miyamoto-hai-lab/participants-id/lib/storage/memstore"
)

// --------------------------------------------------------------------------
// Test doubles
// --------------------------------------------------------------------------

// failingStorage wraps a real engine and fails operations for selected keys.
type failingStorage struct {
	storage.IStorage
	failSetKeys    map[string]bool
	failRemoveKeys map[string]bool
}

func newFailingStorage() *failingStorage {
	return &failingStorage{
		IStorage:       memstore.NewMemoryStorage(),
		failSetKeys:    map[string]bool{},
		failRemoveKeys: map[string]bool{},
	}
}

func (s *failingStorage) Set(key string, value []byte) error {
	if s.failSetKeys[key] {
		return storage.NewError(storage.RetCInternalError, "injected set failure")
	}
	return s.IStorage.Set(key, value)
}

func (s *failingStorage) Remove(key string) error {
	if s.failRemoveKeys[key] {
		return storage.NewError(storage.RetCInternalError, "injected remove failure")
	}
	return s.IStorage.Remove(key)
}

// countingGenerator wraps a real generator and counts how many candidates
// were produced.
type countingGenerator struct {
	inner idgen.IGenerator
	count int
}

func newCountingGenerator(t *testing.T) *countingGenerator {
	t.Helper()
	gen, err := idgen.Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	return &countingGenerator{inner: gen}
}

func (g *countingGenerator) NewID() (string, error) {
	g.count++
	return g.inner.NewID()
}

func (g *countingGenerator) Scheme() idgen.Scheme {
	return g.inner.Scheme()
}

func newManager(t *testing.T, st storage.IStorage, opts *Options) IParticipant {
	t.Helper()
	p, err := New(st, "test_app", opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p
}

// --------------------------------------------------------------------------
// Construction
// --------------------------------------------------------------------------

func TestNewValidation(t *testing.T) {
	if _, err := New(nil, "app", nil); err == nil {
		t.Errorf("Expected error for nil storage")
	}
	if _, err := New(memstore.NewMemoryStorage(), "", nil); err == nil {
		t.Errorf("Expected error for empty app name")
	}
	// generator resolution failures must surface at construction time
	_, err := New(memstore.NewMemoryStorage(), "app", &Options{Schemes: []idgen.Scheme{"nope"}})
	if err == nil {
		t.Errorf("Expected error for unknown generation scheme")
	}
}

// --------------------------------------------------------------------------
// Get-or-create
// --------------------------------------------------------------------------

func TestBrowserIDIdempotence(t *testing.T) {
	p := newManager(t, memstore.NewMemoryStorage(), nil)

	id1, err := p.BrowserID()
	if err != nil {
		t.Fatalf("BrowserID failed: %v", err)
	}
	if id1 == "" {
		t.Fatalf("Expected non-empty identifier")
	}

	id2, err := p.BrowserID()
	if err != nil {
		t.Fatalf("BrowserID failed: %v", err)
	}
	if id1 != id2 {
		t.Errorf("Expected identical identifier on second call, got %q then %q", id1, id2)
	}
}

func TestBrowserIDGeneratesOnlyWhenAbsent(t *testing.T) {
	gen := newCountingGenerator(t)
	p := newManager(t, memstore.NewMemoryStorage(), &Options{Generator: gen})

	if _, err := p.BrowserID(); err != nil {
		t.Fatalf("BrowserID failed: %v", err)
	}
	if _, err := p.BrowserID(); err != nil {
		t.Fatalf("BrowserID failed: %v", err)
	}

	if gen.count != 1 {
		t.Errorf("Expected exactly 1 generated candidate, got %d", gen.count)
	}
}

func TestUniquenessOnRegeneration(t *testing.T) {
	p := newManager(t, memstore.NewMemoryStorage(), nil)

	id1, err := p.BrowserID()
	if err != nil {
		t.Fatalf("BrowserID failed: %v", err)
	}

	if ok, err := p.Delete(); err != nil || !ok {
		t.Fatalf("Delete failed: ok=%v err=%v", ok, err)
	}

	id2, err := p.BrowserID()
	if err != nil {
		t.Fatalf("BrowserID failed: %v", err)
	}
	if id1 == id2 {
		t.Errorf("Expected fresh identifier after deletion, got %q twice", id1)
	}
}

// --------------------------------------------------------------------------
// Validation gating and retry bound
// --------------------------------------------------------------------------

func TestValidationAlwaysAccept(t *testing.T) {
	gen := newCountingGenerator(t)
	validated := 0
	p := newManager(t, memstore.NewMemoryStorage(), &Options{
		Generator: gen,
		Validator: ValidatorFunc(func(id string) (bool, error) {
			validated++
			return true, nil
		}),
	})

	id, err := p.BrowserID()
	if err != nil {
		t.Fatalf("BrowserID failed: %v", err)
	}
	if id == "" {
		t.Fatalf("Expected non-empty identifier")
	}
	if gen.count != 1 {
		t.Errorf("Expected exactly 1 candidate on first acceptance, got %d", gen.count)
	}
	if validated != 1 {
		t.Errorf("Expected validator to be called once, got %d", validated)
	}
}

func TestValidationAlwaysReject(t *testing.T) {
	gen := newCountingGenerator(t)
	p := newManager(t, memstore.NewMemoryStorage(), &Options{
		Generator: gen,
		Validator: ValidatorFunc(func(id string) (bool, error) {
			return false, nil
		}),
	})

	_, err := p.BrowserID()
	if !errors.Is(err, ErrValidationExhausted) {
		t.Fatalf("Expected ErrValidationExhausted, got %v", err)
	}
	if gen.count != MaxRetryValidation {
		t.Errorf("Expected exactly %d candidates before giving up, got %d", MaxRetryValidation, gen.count)
	}

	// nothing may be persisted on the exhaustion path
	if ok, _ := p.Exists(); ok {
		t.Errorf("Expected no identifier to be persisted after exhaustion")
	}
	if _, loaded, _ := p.CreatedAt(); loaded {
		t.Errorf("Expected no creation timestamp after exhaustion")
	}
}

func TestRetryBound(t *testing.T) {
	for n := 1; n <= MaxRetryValidation; n++ {
		t.Run(fmt.Sprintf("acceptAt%d", n), func(t *testing.T) {
			gen := newCountingGenerator(t)
			rejected := 0
			p := newManager(t, memstore.NewMemoryStorage(), &Options{
				Generator: gen,
				Validator: ValidatorFunc(func(id string) (bool, error) {
					if rejected < n-1 {
						rejected++
						return false, nil
					}
					return true, nil
				}),
			})

			id, err := p.BrowserID()
			if err != nil {
				t.Fatalf("BrowserID failed: %v", err)
			}
			if gen.count != n {
				t.Errorf("Expected exactly %d candidates, got %d", n, gen.count)
			}

			// the accepted (last) candidate is the persisted one
			stored, err := p.BrowserID()
			if err != nil {
				t.Fatalf("BrowserID failed: %v", err)
			}
			if stored != id {
				t.Errorf("Expected persisted identifier %q, got %q", id, stored)
			}
		})
	}
}

func TestValidatorError(t *testing.T) {
	wantErr := errors.New("registration server unreachable")
	p := newManager(t, memstore.NewMemoryStorage(), &Options{
		Validator: ValidatorFunc(func(id string) (bool, error) {
			return false, wantErr
		}),
	})

	_, err := p.BrowserID()
	if !errors.Is(err, wantErr) {
		t.Fatalf("Expected wrapped validator error, got %v", err)
	}
	if errors.Is(err, ErrValidationExhausted) {
		t.Errorf("Validator errors must not be reported as exhaustion")
	}
}

// --------------------------------------------------------------------------
// Persistence failure
// --------------------------------------------------------------------------

func TestStorageRejectedWrite(t *testing.T) {
	st := newFailingStorage()
	st.failSetKeys[BrowserIDKey(DefaultPrefix)] = true
	p := newManager(t, st, nil)

	_, err := p.BrowserID()
	if !errors.Is(err, ErrStorageRejected) {
		t.Fatalf("Expected ErrStorageRejected, got %v", err)
	}

	// timestamp bookkeeping happens regardless of the identifier write outcome
	if _, loaded, _ := p.CreatedAt(); !loaded {
		t.Errorf("Expected creation timestamp to be written despite identifier write failure")
	}
}

// --------------------------------------------------------------------------
// Timestamps
// --------------------------------------------------------------------------

func TestTimestampOrdering(t *testing.T) {
	current := time.Date(2026, 8, 1, 12, 0, 0, 123456000, time.UTC)
	p := newManager(t, memstore.NewMemoryStorage(), &Options{
		Clock: func() time.Time { return current },
	})

	if _, err := p.BrowserID(); err != nil {
		t.Fatalf("BrowserID failed: %v", err)
	}

	created, loaded, err := p.CreatedAt()
	if err != nil || !loaded {
		t.Fatalf("Expected creation timestamp, got loaded=%v err=%v", loaded, err)
	}
	if created != "2026-08-01T12:00:00.123456Z" {
		t.Errorf("Unexpected creation timestamp format: %q", created)
	}

	if _, loaded, _ := p.UpdatedAt(); loaded {
		t.Errorf("Expected no update timestamp after first generation")
	}

	// second generation: created_at untouched, updated_at reflects new time
	current = current.Add(42 * time.Minute)
	if _, err := p.Regenerate(); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}

	createdAfter, _, _ := p.CreatedAt()
	if createdAfter != created {
		t.Errorf("Creation timestamp changed on regeneration: %q -> %q", created, createdAfter)
	}

	updated, loaded, err := p.UpdatedAt()
	if err != nil || !loaded {
		t.Fatalf("Expected update timestamp after second generation, got loaded=%v err=%v", loaded, err)
	}
	if updated != "2026-08-01T12:42:00.123456Z" {
		t.Errorf("Unexpected update timestamp: %q", updated)
	}
}

// --------------------------------------------------------------------------
// Existence, deletion, version
// --------------------------------------------------------------------------

func TestExists(t *testing.T) {
	p := newManager(t, memstore.NewMemoryStorage(), nil)

	if ok, err := p.Exists(); err != nil || ok {
		t.Fatalf("Expected no identifier initially, got ok=%v err=%v", ok, err)
	}
	if _, err := p.BrowserID(); err != nil {
		t.Fatalf("BrowserID failed: %v", err)
	}
	if ok, err := p.Exists(); err != nil || !ok {
		t.Fatalf("Expected identifier to exist, got ok=%v err=%v", ok, err)
	}
}

func TestDeleteCascade(t *testing.T) {
	st := memstore.NewMemoryStorage()
	p := newManager(t, st, nil)

	if _, err := p.BrowserID(); err != nil {
		t.Fatalf("BrowserID failed: %v", err)
	}
	if _, err := p.Regenerate(); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	if err := p.SetAttribute("condition", "treatment"); err != nil {
		t.Fatalf("SetAttribute failed: %v", err)
	}

	ok, err := p.Delete()
	if err != nil || !ok {
		t.Fatalf("Delete failed: ok=%v err=%v", ok, err)
	}

	if ok, _ := p.Exists(); ok {
		t.Errorf("Expected identifier to be gone")
	}
	if _, loaded, _ := p.CreatedAt(); loaded {
		t.Errorf("Expected creation timestamp to be removed with identifier")
	}
	if _, loaded, _ := p.UpdatedAt(); loaded {
		t.Errorf("Expected update timestamp to be removed with identifier")
	}

	// attribute keys under the same app name are unaffected
	if has, _ := p.HasAttribute("condition"); !has {
		t.Errorf("Expected attributes to survive identifier deletion")
	}
}

func TestDeleteFailureSkipsCascade(t *testing.T) {
	st := newFailingStorage()
	p := newManager(t, st, nil)

	if _, err := p.BrowserID(); err != nil {
		t.Fatalf("BrowserID failed: %v", err)
	}

	st.failRemoveKeys[BrowserIDKey(DefaultPrefix)] = true
	ok, err := p.Delete()
	if ok || err == nil {
		t.Fatalf("Expected Delete to report failure, got ok=%v err=%v", ok, err)
	}

	// primary removal failed, so the timestamps must be untouched
	if _, loaded, _ := p.CreatedAt(); !loaded {
		t.Errorf("Expected creation timestamp to remain after failed deletion")
	}
}

func TestVersion(t *testing.T) {
	p := newManager(t, memstore.NewMemoryStorage(), nil)

	if _, loaded, err := p.Version(); err != nil || loaded {
		t.Fatalf("Expected no version before generation, got loaded=%v err=%v", loaded, err)
	}

	if _, err := p.BrowserID(); err != nil {
		t.Fatalf("BrowserID failed: %v", err)
	}

	version, loaded, err := p.Version()
	if err != nil || !loaded {
		t.Fatalf("Version failed: loaded=%v err=%v", loaded, err)
	}
	if version != 7 {
		t.Errorf("Expected UUID version 7, got %d", version)
	}
}

// --------------------------------------------------------------------------
// Attributes
// --------------------------------------------------------------------------

func TestAttributeRoundTrip(t *testing.T) {
	cases := map[string]struct {
		in   any
		want any
	}{
		"int":        {in: 42, want: int64(42)},
		"int64":      {in: int64(-7), want: int64(-7)},
		"float":      {in: 3.25, want: 3.25},
		"bool":       {in: true, want: true},
		"string":     {in: "worker-123", want: "worker-123"},
		"stringList": {in: []string{"a", "b", "c"}, want: []string{"a", "b", "c"}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := newManager(t, memstore.NewMemoryStorage(), nil)

			if err := p.SetAttribute("field", tc.in); err != nil {
				t.Fatalf("SetAttribute failed: %v", err)
			}

			got, err := p.GetAttribute("field", nil)
			if err != nil {
				t.Fatalf("GetAttribute failed: %v", err)
			}

			switch want := tc.want.(type) {
			case []string:
				gotList, ok := got.([]string)
				if !ok || len(gotList) != len(want) {
					t.Fatalf("Expected %v, got %v", want, got)
				}
				for i := range want {
					if gotList[i] != want[i] {
						t.Errorf("Expected %v, got %v", want, gotList)
					}
				}
			default:
				if got != tc.want {
					t.Errorf("Expected %v (%T), got %v (%T)", tc.want, tc.want, got, got)
				}
			}
		})
	}
}

func TestAttributeDefaultAndDelete(t *testing.T) {
	p := newManager(t, memstore.NewMemoryStorage(), nil)

	got, err := p.GetAttribute("missing", "fallback")
	if err != nil {
		t.Fatalf("GetAttribute failed: %v", err)
	}
	if got != "fallback" {
		t.Errorf("Expected default for missing attribute, got %v", got)
	}

	if err := p.SetAttribute("field", "value"); err != nil {
		t.Fatalf("SetAttribute failed: %v", err)
	}
	if err := p.DeleteAttribute("field"); err != nil {
		t.Fatalf("DeleteAttribute failed: %v", err)
	}

	got, _ = p.GetAttribute("field", "fallback")
	if got != "fallback" {
		t.Errorf("Expected default after deletion, got %v", got)
	}
	if has, _ := p.HasAttribute("field"); has {
		t.Errorf("Expected attribute to be gone after deletion")
	}
}

// Falsy stored values are indistinguishable from absence in GetAttribute.
// That is specified behavior, not a defect.
func TestAttributeFalsyAmbiguity(t *testing.T) {
	falsy := map[string]any{
		"zeroInt":   0,
		"zeroFloat": 0.0,
		"false":     false,
		"empty":     "",
		"emptyList": []string{},
	}

	for name, value := range falsy {
		t.Run(name, func(t *testing.T) {
			p := newManager(t, memstore.NewMemoryStorage(), nil)

			if err := p.SetAttribute("field", value); err != nil {
				t.Fatalf("SetAttribute failed: %v", err)
			}

			got, err := p.GetAttribute("field", "default")
			if err != nil {
				t.Fatalf("GetAttribute failed: %v", err)
			}
			if got != "default" {
				t.Errorf("Expected default for falsy stored value, got %v", got)
			}

			// existence is exempt from the ambiguity
			if has, _ := p.HasAttribute("field"); !has {
				t.Errorf("Expected HasAttribute to report true for a stored falsy value")
			}
		})
	}
}

func TestAttributeUnsupportedType(t *testing.T) {
	p := newManager(t, memstore.NewMemoryStorage(), nil)

	if err := p.SetAttribute("field", map[string]int{"a": 1}); err == nil {
		t.Errorf("Expected error for unsupported attribute type")
	}
	if err := p.SetAttribute("field", []int{1, 2}); err == nil {
		t.Errorf("Expected error for unsupported list element type")
	}
}

// --------------------------------------------------------------------------
// Namespace isolation
// --------------------------------------------------------------------------

func TestNamespaceIsolation(t *testing.T) {
	st := memstore.NewMemoryStorage()

	p1 := newManager(t, st, &Options{Prefix: "study_alpha"})
	p2 := newManager(t, st, &Options{Prefix: "study_beta"})

	id1, err := p1.BrowserID()
	if err != nil {
		t.Fatalf("BrowserID failed: %v", err)
	}

	// p2 must not observe p1's identifier
	if ok, _ := p2.Exists(); ok {
		t.Fatalf("Expected prefixes to be isolated")
	}

	id2, err := p2.BrowserID()
	if err != nil {
		t.Fatalf("BrowserID failed: %v", err)
	}
	if id1 == id2 {
		t.Errorf("Expected distinct identifiers per prefix")
	}

	// attributes are isolated as well
	if err := p1.SetAttribute("group", "a"); err != nil {
		t.Fatalf("SetAttribute failed: %v", err)
	}
	if has, _ := p2.HasAttribute("group"); has {
		t.Errorf("Expected attribute namespaces to be isolated")
	}

	// and p1 still reads back its own identifier untouched
	again, _ := p1.BrowserID()
	if again != id1 {
		t.Errorf("Expected p1 identifier to be unaffected, got %q", again)
	}
}
