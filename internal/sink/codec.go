package sink

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/CristiGvl/picoSensingKit/internal/sensor"
)

// Message is the envelope published for every reading.
type Message struct {
	Kind    string         `json:"kind" msgpack:"kind"`
	Reading sensor.Reading `json:"reading" msgpack:"reading"`
}

// Codec serializes messages for transport.
type Codec interface {
	Name() string
	ContentType() string
	Encode(msg Message) ([]byte, error)
}

var ErrUnknownCodec = errors.New("unknown codec")

// NewCodec returns the codec called name ("json" or "msgpack").
func NewCodec(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return JSONCodec{}, nil
	case "msgpack":
		return MsgpackCodec{}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownCodec, "%q", name)
	}
}

type JSONCodec struct{}

func (JSONCodec) Name() string        { return "json" }
func (JSONCodec) ContentType() string { return "application/json" }

func (JSONCodec) Encode(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

type MsgpackCodec struct{}

func (MsgpackCodec) Name() string        { return "msgpack" }
func (MsgpackCodec) ContentType() string { return "application/msgpack" }

func (MsgpackCodec) Encode(msg Message) ([]byte, error) {
	return msgpack.Marshal(msg)
}
