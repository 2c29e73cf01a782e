package server

import (
	"fmt"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/miyamoto-hai-lab/participants-id/lib/storage"
	"github.com/miyamoto-hai-lab/participants-id/lib/storage/filestore"
	"github.com/miyamoto-hai-lab/participants-id/lib/storage/memstore"
	"github.com/miyamoto-hai-lab/participants-id/rpc/common"
	"github.com/miyamoto-hai-lab/participants-id/rpc/serializer"
	"github.com/miyamoto-hai-lab/participants-id/rpc/transport"
)

var Logger = logger.GetLogger("rpc")

// NewRPCServer creates a new storage RPC server.
// It takes a config, transport and serializer as parameters; the storage
// engine is created from the config.
//
// Usage:
//
//	s, err := server.NewRPCServer(
//		config,
//		http.NewHttpServerTransport(),
//		serializer.NewJSONSerializer(),
//	)
//	if err != nil {
//		panic(err)
//	}
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
	serializer serializer.IRPCSerializer,
) (*RPCServer, error) {

	// Create the storage engine from the config
	var st storage.IStorage
	switch config.Engine {
	case string(storage.EngineMemory), "":
		st = memstore.NewMemoryStorage()
	case string(storage.EngineFile):
		if config.DataFile == "" {
			return nil, fmt.Errorf("file engine requires a data file path")
		}
		var err error
		st, err = filestore.NewFileStorage(config.DataFile)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("invalid storage engine %q (expected one of: memory, file)", config.Engine)
	}

	Logger.Infof("Created RPC server")
	Logger.Infof(config.String())

	return &RPCServer{
		config:     config,
		transport:  transport,
		serializer: serializer,
		storage:    st,
		adapter:    NewStorageServerAdapter(),
	}, nil
}

// RPCServer binds a transport and a serializer to a local storage engine.
type RPCServer struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	storage    storage.IStorage
	adapter    IRPCServerAdapter
}

// Serve registers the request handler and blocks listening for requests.
func (s *RPCServer) Serve() error {
	s.transport.RegisterHandler(s.handleRequest)
	return s.transport.Listen(s.config)
}

// Storage exposes the engine the server operates on (used by tests).
func (s *RPCServer) Storage() storage.IStorage {
	return s.storage
}

// handleRequest decodes a raw request, dispatches it onto the storage engine
// and encodes the response. Serialization failures are answered with an
// error response rather than a dropped connection.
func (s *RPCServer) handleRequest(req []byte) []byte {
	msg := &common.Message{}
	if err := s.serializer.Deserialize(req, msg); err != nil {
		return s.mustSerialize(common.NewErrorResponse(fmt.Sprintf("undecodable request: %v", err)))
	}

	resp := s.adapter.Handle(msg, s.storage)
	return s.mustSerialize(resp)
}

// mustSerialize encodes a response message. If even the error response fails
// to encode something is deeply wrong with the serializer; an empty payload
// is returned and the failure logged.
func (s *RPCServer) mustSerialize(msg *common.Message) []byte {
	raw, err := s.serializer.Serialize(*msg)
	if err != nil {
		Logger.Errorf("Failed to serialize response: %v", err)
		return nil
	}
	return raw
}
