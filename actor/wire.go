package actor

import (
	"encoding/json"
	"fmt"
)

// A Codec converts messages to and from bytes for a runtime that moves them
// over a real network. The checker itself never serializes messages.
type Codec[M any] interface {
	Serialize(msg M) ([]byte, error)
	Deserialize(data []byte) (M, error)
}

// DecodeError reports a message that could not be deserialized. Malformed
// input is never a panic and never silently dropped: the runtime owning the
// connection decides how to handle it.
type DecodeError struct {
	Data []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("actor: decoding %d byte message: %v", len(e.Data), e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// JSONCodec is the default codec: a structured, self-describing text
// encoding. Substitute another Codec for a different wire format.
type JSONCodec[M any] struct{}

func (JSONCodec[M]) Serialize(msg M) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("actor: encoding message: %w", err)
	}
	return data, nil
}

func (JSONCodec[M]) Deserialize(data []byte) (M, error) {
	var msg M
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, &DecodeError{Data: data, Err: err}
	}
	return msg, nil
}
