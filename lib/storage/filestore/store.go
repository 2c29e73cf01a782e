package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/miyamoto-hai-lab/participants-id/lib/storage"
	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	fileMagic   = "PIDSTORE" // File format identifier
	fileVersion = 1          // Snapshot format version
)

// snapshot is the on-disk representation of the engine contents.
type snapshot struct {
	Magic   string            `json:"magic"`
	Version int               `json:"version"`
	Data    map[string][]byte `json:"data"`
}

// --------------------------------------------------------------------------
// Core file storage structure
// --------------------------------------------------------------------------

type storeImpl struct {
	path string
	data *xsync.MapOf[string, []byte]

	// flushMu serializes snapshot writes so a later write can never be
	// overwritten on disk by an earlier one.
	flushMu sync.Mutex
}

// NewFileStorage creates a durable storage instance backed by a single
// snapshot file at path. If the file exists it is loaded; otherwise it is
// created on the first write. The snapshot is rewritten atomically
// (temp file + rename) on every mutation.
func NewFileStorage(path string) (storage.IStorage, error) {
	s := &storeImpl{
		path: path,
		data: xsync.NewMapOf[string, []byte](),
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see storage/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Set(key string, value []byte) error {
	buf := make([]byte, len(value))
	copy(buf, value)
	s.data.Store(key, buf)
	return s.flush()
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
	return s.flush()
}

func (s *storeImpl) Has(key string) (bool, error) {
	_, ok := s.data.Load(key)
	return ok, nil
}

func (s *storeImpl) GetStorageInfo() (storage.Info, error) {
	return storage.Info{
		Engine:   storage.EngineFile,
		NumKeys:  s.data.Size(),
		Location: s.path,
	}, nil
}

// --------------------------------------------------------------------------
// Persistence
// --------------------------------------------------------------------------

// load reads the snapshot file into memory. A missing file is treated as an
// empty store.
func (s *storeImpl) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return storage.NewError(storage.RetCInternalError, fmt.Sprintf("failed to read snapshot file %s: %v", s.path, err))
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return storage.NewError(storage.RetCInternalError, fmt.Sprintf("corrupt snapshot file %s: %v", s.path, err))
	}
	if snap.Magic != fileMagic {
		return storage.NewError(storage.RetCInternalError, fmt.Sprintf("file %s is not a storage snapshot", s.path))
	}
	if snap.Version != fileVersion {
		return storage.NewError(storage.RetCInternalError, fmt.Sprintf("unsupported snapshot version %d in %s", snap.Version, s.path))
	}

	for k, v := range snap.Data {
		s.data.Store(k, v)
	}
	return nil
}

// flush writes the full engine contents to disk. The write goes to a
// temporary file in the same directory which is then renamed over the
// snapshot, so readers never observe a partially written file.
func (s *storeImpl) flush() error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	snap := snapshot{
		Magic:   fileMagic,
		Version: fileVersion,
		Data:    make(map[string][]byte, s.data.Size()),
	}
	s.data.Range(func(key string, value []byte) bool {
		snap.Data[key] = value
		return true
	})

	raw, err := json.Marshal(&snap)
	if err != nil {
		return storage.NewError(storage.RetCInternalError, fmt.Sprintf("failed to encode snapshot: %v", err))
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".pidstore-*")
	if err != nil {
		return storage.NewError(storage.RetCInternalError, fmt.Sprintf("failed to create temp snapshot: %v", err))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return storage.NewError(storage.RetCInternalError, fmt.Sprintf("failed to write snapshot: %v", err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return storage.NewError(storage.RetCInternalError, fmt.Sprintf("failed to close snapshot: %v", err))
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return storage.NewError(storage.RetCInternalError, fmt.Sprintf("failed to replace snapshot: %v", err))
	}
	return nil
}
