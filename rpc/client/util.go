package client

import (
	"fmt"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/miyamoto-hai-lab/participants-id/rpc/common"
	"github.com/miyamoto-hai-lab/participants-id/rpc/serializer"
	"github.com/miyamoto-hai-lab/participants-id/rpc/transport"
)

var Logger = logger.GetLogger("rpc")

// invokeRPCRequest is a helper used to send a single request over a transport.
// It serializes the request, ships it, deserializes the response, and checks
// both for error responses and for a response type mismatch.
func invokeRPCRequest(req *common.Message, transport transport.IRPCClientTransport, serializer serializer.IRPCSerializer) (*common.Message, error) {
	// Serialize the request
	reqBytes, err := serializer.Serialize(*req)
	if err != nil {
		return nil, err
	}

	// Send the request
	respBytes, err := transport.Send(reqBytes)
	if err != nil {
		return nil, err
	}

	// Deserialize the response
	resp := &common.Message{}
	err = serializer.Deserialize(respBytes, resp)
	if err != nil {
		return nil, fmt.Errorf("RPC storage client - error: %s", err)
	}

	// Check if the response is an error response
	if resp.MsgType == common.MsgTError || resp.Err != "" {
		return nil, fmt.Errorf("RPC storage client - error: %s", resp.Err)
	}

	// Check if the type of the response is the expected type
	if resp.MsgType != req.MsgType {
		return nil, fmt.Errorf("RPC storage client - unexpected message type: %s, expected %s", resp.MsgType, req.MsgType)
	}

	// Return the response
	return resp, nil
}
