package common

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and responses.
// Which fields are used depends on the type of message.
type Message struct {
	// Type of message
	MsgType MessageType `json:"msg_type"`

	// General fields
	Key   string `json:"key,omitempty"`   // Used for: Set, Get, Remove, Has
	Value []byte `json:"value,omitempty"` // Used for: Set (request), Get (response)

	// Response only fields
	Ok  bool   `json:"ok,omitempty"`  // Used for: Get, Has responses
	Err string `json:"err,omitempty"` // Empty if no error, otherwise contains the error message

	// Meta information
	Meta []byte `json:"meta,omitempty"` // Unused, reserved for additional adapters
}

// --------------------------------------------------------------------------
// Message Types
// --------------------------------------------------------------------------

type MessageType uint8

const (
	MsgTUnknown MessageType = iota
	MsgTError
	MsgTSet
	MsgTGet
	MsgTRemove
	MsgTHas
)

func (t MessageType) String() string {
	switch t {
	case MsgTError:
		return "Error"
	case MsgTSet:
		return "Set"
	case MsgTGet:
		return "Get"
	case MsgTRemove:
		return "Remove"
	case MsgTHas:
		return "Has"
	default:
		return "Unknown"
	}
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewSetRequest creates a new Set request
func NewSetRequest(key string, value []byte) *Message {
	return &Message{
		MsgType: MsgTSet,
		Key:     key,
		Value:   value,
	}
}

// NewSetResponse creates a new Set response
func NewSetResponse(err error) *Message {
	msg := &Message{
		MsgType: MsgTSet,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewGetRequest creates a new Get request
func NewGetRequest(key string) *Message {
	return &Message{
		MsgType: MsgTGet,
		Key:     key,
	}
}

// NewGetResponse creates a new Get response
func NewGetResponse(value []byte, loaded bool, err error) *Message {
	msg := &Message{
		MsgType: MsgTGet,
		Value:   value,
		Ok:      loaded,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewRemoveRequest creates a new Remove request
func NewRemoveRequest(key string) *Message {
	return &Message{
		MsgType: MsgTRemove,
		Key:     key,
	}
}

// NewRemoveResponse creates a new Remove response
func NewRemoveResponse(err error) *Message {
	msg := &Message{
		MsgType: MsgTRemove,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewHasRequest creates a new Has request
func NewHasRequest(key string) *Message {
	return &Message{
		MsgType: MsgTHas,
		Key:     key,
	}
}

// NewHasResponse creates a new Has response
func NewHasResponse(loaded bool, err error) *Message {
	msg := &Message{
		MsgType: MsgTHas,
		Ok:      loaded,
	}
	if err != nil {
		msg.Err = err.Error()
	}
	return msg
}

// NewErrorResponse creates a new generic error response
func NewErrorResponse(errMsg string) *Message {
	return &Message{
		MsgType: MsgTError,
		Err:     errMsg,
	}
}
