package storagetest

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/miyamoto-hai-lab/participants-id/lib/storage"
)

// RunStorageTests runs a conformance test suite for an IStorage implementation.
// The factory must return a fresh, empty engine on every call.
func RunStorageTests(t *testing.T, name string, factory storage.Factory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory())
		})

		t.Run("Remove", func(t *testing.T) {
			testRemove(t, factory())
		})

		t.Run("Has", func(t *testing.T) {
			testHas(t, factory())
		})

		t.Run("EdgeCases", func(t *testing.T) {
			testEdgeCases(t, factory())
		})

		t.Run("ConcurrentAccess", func(t *testing.T) {
			testConcurrentAccess(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testSetGet(t *testing.T, st storage.IStorage) {
	testKey := "test-key"
	testValue1 := []byte("test-value1")
	testValue2 := []byte("test-value2")

	if err := st.Set(testKey, testValue1); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	result, exists, err := st.Get(testKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !exists {
		t.Errorf("Expected key %s to exist after Set", testKey)
	}
	if !bytes.Equal(result, testValue1) {
		t.Errorf("Expected value %s, got %s", testValue1, result)
	}

	// overwrite
	if err := st.Set(testKey, testValue2); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	result, exists, _ = st.Get(testKey)
	if !exists {
		t.Errorf("Expected key %s to exist after overwrite", testKey)
	}
	if !bytes.Equal(result, testValue2) {
		t.Errorf("Expected value %s, got %s", testValue2, result)
	}

	_, exists, _ = st.Get("nonexistent-key")
	if exists {
		t.Errorf("Expected nonexistent key to return exists=false")
	}

	// Get must return a copy, not a reference to the stored value
	retrievedValue, _, _ := st.Get(testKey)
	if len(retrievedValue) > 0 {
		retrievedValue[0] = 'X'
		originalValue, _, _ := st.Get(testKey)
		if bytes.Equal(retrievedValue, originalValue) {
			t.Errorf("Get should return a copy, not a reference to the stored value")
		}
	}
}

func testRemove(t *testing.T, st storage.IStorage) {
	testKey := "remove-key"
	testValue := []byte("remove-value")

	if err := st.Set(testKey, testValue); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := st.Remove(testKey); err != nil {
		t.Errorf("Remove failed: %v", err)
	}

	_, exists, _ := st.Get(testKey)
	if exists {
		t.Errorf("Expected key %s to be gone after Remove", testKey)
	}

	has, _ := st.Has(testKey)
	if has {
		t.Errorf("Expected Has to report false after Remove")
	}

	// removing a key that does not exist is not an error
	if err := st.Remove("nonexistent-key"); err != nil {
		t.Errorf("Remove of nonexistent key should not fail: %v", err)
	}
}

func testHas(t *testing.T, st storage.IStorage) {
	testKey := "has-key"

	has, err := st.Has(testKey)
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if has {
		t.Errorf("Expected Has to report false for unset key")
	}

	if err := st.Set(testKey, []byte("v")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	has, _ = st.Has(testKey)
	if !has {
		t.Errorf("Expected Has to report true after Set")
	}
}

func testEdgeCases(t *testing.T, st storage.IStorage) {
	// empty value is a valid value and distinct from absence
	if err := st.Set("empty-value", []byte{}); err != nil {
		t.Fatalf("Set of empty value failed: %v", err)
	}
	val, exists, _ := st.Get("empty-value")
	if !exists {
		t.Errorf("Expected empty value to be retrievable")
	}
	if len(val) != 0 {
		t.Errorf("Expected empty value, got %q", val)
	}

	// keys with the namespacing separator round-trip unchanged
	dottedKey := "participants_id.my_app.some.field"
	if err := st.Set(dottedKey, []byte("dotted")); err != nil {
		t.Fatalf("Set of dotted key failed: %v", err)
	}
	val, exists, _ = st.Get(dottedKey)
	if !exists || !bytes.Equal(val, []byte("dotted")) {
		t.Errorf("Expected dotted key to round-trip, got exists=%v value=%q", exists, val)
	}

	// binary values round-trip unchanged
	binary := []byte{0x00, 0xff, 0x7f, 0x80, '\n'}
	if err := st.Set("binary", binary); err != nil {
		t.Fatalf("Set of binary value failed: %v", err)
	}
	val, _, _ = st.Get("binary")
	if !bytes.Equal(val, binary) {
		t.Errorf("Expected binary value to round-trip, got %v", val)
	}
}

func testConcurrentAccess(t *testing.T, st storage.IStorage) {
	const numWriters = 8
	const numKeys = 50

	var wg sync.WaitGroup
	for w := 0; w < numWriters; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < numKeys; i++ {
				key := fmt.Sprintf("writer-%d-key-%d", w, i)
				if err := st.Set(key, []byte(key)); err != nil {
					t.Errorf("concurrent Set failed: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < numWriters; w++ {
		for i := 0; i < numKeys; i++ {
			key := fmt.Sprintf("writer-%d-key-%d", w, i)
			val, exists, err := st.Get(key)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if !exists {
				t.Errorf("Key %s missing after concurrent writes", key)
			}
			if !bytes.Equal(val, []byte(key)) {
				t.Errorf("Expected value %s, got %s", key, val)
			}
		}
	}
}
