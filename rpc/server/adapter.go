package server

import (
	"fmt"

	"github.com/miyamoto-hai-lab/participants-id/lib/storage"
	"github.com/miyamoto-hai-lab/participants-id/rpc/common"
)

// IRPCServerAdapter dispatches a decoded request Message onto a storage
// engine and produces the response Message.
type IRPCServerAdapter interface {
	Handle(req *common.Message, st storage.IStorage) (resp *common.Message)
}

func NewStorageServerAdapter() IRPCServerAdapter {
	return &storageServerAdapterImpl{}
}

type storageServerAdapterImpl struct{}

func (adapter *storageServerAdapterImpl) Handle(req *common.Message, st storage.IStorage) *common.Message {
	// Check for nil storage
	if st == nil {
		return common.NewErrorResponse("handler: storage is nil")
	}

	// Handle different message types
	switch req.MsgType {
	case common.MsgTSet:
		err := st.Set(req.Key, req.Value)
		return common.NewSetResponse(err)
	case common.MsgTGet:
		val, ok, err := st.Get(req.Key)
		return common.NewGetResponse(val, ok, err)
	case common.MsgTRemove:
		err := st.Remove(req.Key)
		return common.NewRemoveResponse(err)
	case common.MsgTHas:
		ok, err := st.Has(req.Key)
		return common.NewHasResponse(ok, err)
	default:
		return common.NewErrorResponse(
			fmt.Sprintf("RPC storage adapter - unsupported message type: %s", req.MsgType),
		)
	}
}
