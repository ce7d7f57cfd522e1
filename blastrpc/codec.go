package blastrpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// codecName is registered with grpc/encoding so every Client/Server in this
// package negotiates the JSON codec below instead of protobuf wire format.
// There is no .proto schema for blastrpc messages, so there is nothing for
// the default protobuf codec to marshal.
const codecName = "blastrpc-json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec implements encoding.Codec over plain Go structs using
// encoding/json, standing in for the protobuf codec grpc-go normally
// registers for generated message types.
type jsonCodec struct{}

func (jsonCodec) Name() string {
	return codecName
}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("blastrpc: marshal: %w", err)
	}
	return b, nil
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("blastrpc: unmarshal: %w", err)
	}
	return nil
}
