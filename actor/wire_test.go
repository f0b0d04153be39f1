package actor

import (
	"errors"
	"testing"
)

type wireMsg struct {
	Seq  int    `json:"seq"`
	Body string `json:"body"`
}

func TestJSONCodecRoundTrip(t *testing.T) {
	codec := JSONCodec[wireMsg]{}
	msg := wireMsg{Seq: 42, Body: "prepare"}

	data, err := codec.Serialize(msg)
	if err != nil {
		t.Fatalf("Unexpected serialize error: %v", err)
	}
	got, err := codec.Deserialize(data)
	if err != nil {
		t.Fatalf("Unexpected deserialize error: %v", err)
	}
	if got != msg {
		t.Errorf("Unexpected round trip result. Got %v. Expected %v.", got, msg)
	}
}

func TestDeserializeFailureIsTyped(t *testing.T) {
	codec := JSONCodec[wireMsg]{}

	_, err := codec.Deserialize([]byte(`{"seq": `))
	if err == nil {
		t.Fatalf("Expected malformed input to fail deserialization")
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("Unexpected error type. Got %T. Expected *DecodeError.", err)
	}
}
