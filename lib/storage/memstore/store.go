package memstore

import (
	"github.com/miyamoto-hai-lab/participants-id/lib/storage"
	"github.com/puzpuzpuz/xsync/v3"
)

type storeImpl struct {
	data *xsync.MapOf[string, []byte]
}

// NewMemoryStorage creates a new in-memory storage instance.
// Data is held entirely in process memory and is lost on restart.
func NewMemoryStorage() storage.IStorage {
	return &storeImpl{
		data: xsync.NewMapOf[string, []byte](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see storage/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Set(key string, value []byte) error {
	// defensive copy, callers may reuse the slice
	buf := make([]byte, len(value))
	copy(buf, value)
	s.data.Store(key, buf)
	return nil
}

func (s *storeImpl) Get(key string) ([]byte, bool, error) {
	val, ok := s.data.Load(key)
	if !ok {
		return nil, false, nil
	}
	buf := make([]byte, len(val))
	copy(buf, val)
	return buf, true, nil
}

func (s *storeImpl) Remove(key string) error {
	s.data.Delete(key)
	return nil
}

func (s *storeImpl) Has(key string) (bool, error) {
	_, ok := s.data.Load(key)
	return ok, nil
}

func (s *storeImpl) GetStorageInfo() (storage.Info, error) {
	return storage.Info{
		Engine:  storage.EngineMemory,
		NumKeys: s.data.Size(),
	}, nil
}
