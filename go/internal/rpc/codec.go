package rpc

import (
	"encoding/json"
	"fmt"
)

// JSONCodec serializes plain Go structs. It replaces connect's built-in "json"
// codecs, which only accept protobuf messages.
type JSONCodec struct {
	// UTF8 registers the codec under "json; charset=utf-8"
	UTF8 bool
}

func (c JSONCodec) Name() string {
	if c.UTF8 {
		return "json; charset=utf-8"
	}
	return "json"
}

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}
