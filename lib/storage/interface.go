package storage

import (
	"fmt"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Factory is a function type that creates a new IStorage instance.
// This is used to abstract the creation of the storage engine from its consumers
// (the participant manager, the RPC server and the test suites).
type Factory func() IStorage

// IStorage is the generic interface for the key-value backing store that holds
// identifiers, timestamps and attributes. All write operations return only an
// error (nil on success), while read operations return the requested data along
// with an error (nil on success).
//
// Implementations may suspend (network round trip, disk write) but must be safe
// for concurrent use; no caller-side locking is expected.
type IStorage interface {
	// Set inserts or updates a key-value pair.
	Set(key string, value []byte) (err error)
	// Get returns the value for a key. The boolean return value indicates
	// whether a value for the key was found.
	Get(key string) (value []byte, loaded bool, err error)
	// Remove deletes a key-value pair. Removing a key that does not exist
	// is not an error.
	Remove(key string) (err error)
	// Has returns whether a key exists in the storage, without reading the value.
	Has(key string) (loaded bool, err error)
	// GetStorageInfo returns metadata about the engine backing the storage.
	// It is not guaranteed that all fields are filled in.
	GetStorageInfo() (info Info, err error)
}

// Engine identifies a storage engine implementation.
type Engine string

const (
	EngineMemory Engine = "memory"
	EngineFile   Engine = "file"
	EngineRemote Engine = "remote"
)

// Info holds metadata about a storage engine.
type Info struct {
	Engine   Engine `json:"engine"`
	NumKeys  int    `json:"num_keys"`
	Location string `json:"location,omitempty"` // file path or endpoint, if any
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message
}

// Error implements the error interface.
func (e *Error) Error() string {
	errorCode := ""
	switch e.Code {
	case RetCInternalError:
		errorCode = "InternalError"
	case RetCUnsupportedOperation:
		errorCode = "UnsupportedOperation"
	case RetCInvalidOperation:
		errorCode = "InvalidOperation"
	default:
		errorCode = "Unknown"
	}

	return fmt.Sprintf("StorageError (code %s): %s", errorCode, e.Msg)
}

// NewError creates a new storage Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess              RetCode = iota // 0: Operation executed successfully.
	RetCInternalError                       // 1: Operation failed due to an internal error.
	RetCUnsupportedOperation                // 2: Operation is not supported by the engine.
	RetCInvalidOperation                    // 3: Invalid operation.
)
