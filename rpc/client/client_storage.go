package client

import (
	"github.com/miyamoto-hai-lab/participants-id/lib/storage"
	"github.com/miyamoto-hai-lab/participants-id/rpc/common"
	"github.com/miyamoto-hai-lab/participants-id/rpc/serializer"
	"github.com/miyamoto-hai-lab/participants-id/rpc/transport"
)

// NewRPCStorage creates a storage.IStorage implementation that forwards every
// operation to a remote storage server. The function connects the transport
// before returning.
func NewRPCStorage(
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (storage.IStorage, error) {

	// Connect the transport
	err := transport.Connect(config)
	if err != nil {
		return nil, err
	}

	// Create the remote storage
	s := rpcStorage{
		config:     config,
		transport:  transport,
		serializer: serializer,
	}

	return &s, nil
}

type rpcStorage struct {
	config     common.ClientConfig
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer
}

// --------------------------------------------------------------------------
// Interface Methods (docu see the storage package in interface.go)
// --------------------------------------------------------------------------

func (s *rpcStorage) Set(key string, value []byte) (err error) {
	req := common.NewSetRequest(key, value)
	_, err = invokeRPCRequest(req, s.transport, s.serializer)
	return err
}

func (s *rpcStorage) Get(key string) (value []byte, loaded bool, err error) {
	req := common.NewGetRequest(key)
	resp, err := invokeRPCRequest(req, s.transport, s.serializer)
	if err != nil {
		return nil, false, err
	}
	return resp.Value, resp.Ok, nil
}

func (s *rpcStorage) Remove(key string) (err error) {
	req := common.NewRemoveRequest(key)
	_, err = invokeRPCRequest(req, s.transport, s.serializer)
	return err
}

func (s *rpcStorage) Has(key string) (loaded bool, err error) {
	req := common.NewHasRequest(key)
	resp, err := invokeRPCRequest(req, s.transport, s.serializer)
	if err != nil {
		return false, err
	}
	return resp.Ok, nil
}

// GetStorageInfo reports the remote endpoint; key counts are not tracked
// through the wire protocol.
func (s *rpcStorage) GetStorageInfo() (storage.Info, error) {
	info := storage.Info{Engine: storage.EngineRemote}
	if len(s.config.Endpoints) > 0 {
		info.Location = s.config.Endpoints[0]
	}
	return info, nil
}
