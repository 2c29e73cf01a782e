package participant

import (
	"encoding/json"
	"fmt"

	"github.com/miyamoto-hai-lab/participants-id/lib/storage"
)

// --------------------------------------------------------------------------
// Attribute value codec
// --------------------------------------------------------------------------

// attributeKind tags the stored representation of an attribute value so all
// permitted kinds round-trip exactly through the []byte-valued backing store.
type attributeKind string

const (
	kindInt        attributeKind = "int"
	kindFloat      attributeKind = "float"
	kindBool       attributeKind = "bool"
	kindString     attributeKind = "string"
	kindStringList attributeKind = "string_list"
)

// attributeEnvelope is the wire representation of an attribute value.
type attributeEnvelope struct {
	Kind  attributeKind   `json:"kind"`
	Value json.RawMessage `json:"value"`
}

// encodeAttribute serializes one of the five permitted attribute kinds.
// Integer inputs of any Go width are normalized to int64, floats to float64;
// GetAttribute returns the normalized forms.
func encodeAttribute(value any) ([]byte, error) {
	var kind attributeKind
	var normalized any

	switch v := value.(type) {
	case int:
		kind, normalized = kindInt, int64(v)
	case int8:
		kind, normalized = kindInt, int64(v)
	case int16:
		kind, normalized = kindInt, int64(v)
	case int32:
		kind, normalized = kindInt, int64(v)
	case int64:
		kind, normalized = kindInt, v
	case uint:
		kind, normalized = kindInt, int64(v)
	case uint8:
		kind, normalized = kindInt, int64(v)
	case uint16:
		kind, normalized = kindInt, int64(v)
	case uint32:
		kind, normalized = kindInt, int64(v)
	case float32:
		kind, normalized = kindFloat, float64(v)
	case float64:
		kind, normalized = kindFloat, v
	case bool:
		kind, normalized = kindBool, v
	case string:
		kind, normalized = kindString, v
	case []string:
		kind, normalized = kindStringList, v
	default:
		return nil, storage.NewError(storage.RetCInvalidOperation,
			fmt.Sprintf("unsupported attribute type %T (allowed: integer, float, bool, string, []string)", value))
	}

	raw, err := json.Marshal(normalized)
	if err != nil {
		return nil, storage.NewError(storage.RetCInternalError, fmt.Sprintf("failed to encode attribute value: %v", err))
	}

	return json.Marshal(attributeEnvelope{Kind: kind, Value: raw})
}

// decodeAttribute deserializes a stored attribute value. Undecodable bytes
// are reported as an error; the caller maps that to the configured default.
func decodeAttribute(raw []byte) (any, error) {
	var env attributeEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("undecodable attribute envelope: %w", err)
	}

	switch env.Kind {
	case kindInt:
		var v int64
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return nil, fmt.Errorf("undecodable int attribute: %w", err)
		}
		return v, nil
	case kindFloat:
		var v float64
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return nil, fmt.Errorf("undecodable float attribute: %w", err)
		}
		return v, nil
	case kindBool:
		var v bool
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return nil, fmt.Errorf("undecodable bool attribute: %w", err)
		}
		return v, nil
	case kindString:
		var v string
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return nil, fmt.Errorf("undecodable string attribute: %w", err)
		}
		return v, nil
	case kindStringList:
		var v []string
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return nil, fmt.Errorf("undecodable string list attribute: %w", err)
		}
		if v == nil {
			v = []string{}
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unknown attribute kind %q", env.Kind)
	}
}

// isFalsy reports whether a decoded attribute value is a zero value.
// GetAttribute treats falsy and absent identically; see the package docs for
// why this quirk is contract, not defect.
func isFalsy(value any) bool {
	switch v := value.(type) {
	case int64:
		return v == 0
	case float64:
		return v == 0
	case bool:
		return !v
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	default:
		return false
	}
}
