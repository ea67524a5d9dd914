// Package queue defines the vault's change-notification events: every
// mutation of the entity graph or the blob store can publish a message so an
// external UI or indexer re-queries instead of polling.
//
// Overview
//   - Publish/subscribe; the vault itself never consumes its own events
//   - Uniform envelope: Message[Payload] = Header + Payload
//   - Topic constants live in topics.go, payload structs in payloads.go
//   - JSON encoding via bytedance/sonic
//
// Envelope JSON structure
//
//	{
//	  "header": {
//	    "topic": "av.artwork.created",
//	    "trace_id": "optional-trace-id",
//	    "producer": "artvault",
//	    "occurred_at": "2026-01-02T03:04:05.123456Z",
//	    "version": "v1"
//	  },
//	  "payload": { ... depends on the topic ... }
//	}
//
// Publishing is always fire-and-forget: a broker outage degrades to a log
// line, never to a failed vault mutation.
package queue

import (
	"time"

	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bytedance/sonic"
)

const (
	PayloadVersionV1 string = "v1"
)

// EventHeader is the common metadata carried by every event.
type EventHeader struct {
	// Topic repeats the message topic so dumped messages stay
	// self-describing.
	Topic string `json:"topic"`
	// TraceID links the event to the request trace that caused it.
	TraceID string `json:"trace_id,omitempty"`
	// Producer names the emitting service or node.
	Producer string `json:"producer,omitempty"`
	// OccurredAt is UTC, RFC3339.
	OccurredAt time.Time `json:"occurred_at"`
	// Version allows payloads to evolve backward-compatibly.
	Version string `json:"version,omitempty"`
}

// Message is the uniform envelope: Header plus a topic-specific payload.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// NewEventHeader builds an event header for topic.
func NewEventHeader(topic string, opts ...func(*EventHeader)) EventHeader {
	hdr := EventHeader{
		Topic:      topic,
		OccurredAt: time.Now().UTC(),
		Version:    PayloadVersionV1,
	}
	for _, opt := range opts {
		opt(&hdr)
	}

	return hdr
}

// WithTraceID sets the trace ID header.
func WithTraceID(id string) func(*EventHeader) { return func(h *EventHeader) { h.TraceID = id } }

// WithProducer sets the producer header.
func WithProducer(p string) func(*EventHeader) { return func(h *EventHeader) { h.Producer = p } }

// Encode serialises the envelope to JSON.
func Encode[T any](msg Message[T]) ([]byte, error) { return sonic.Marshal(msg) }

// Decode deserialises a JSON envelope.
func Decode[T any](b []byte) (Message[T], error) {
	var m Message[T]

	err := sonic.Unmarshal(b, &m)

	return m, err
}

// NewWatermillMessage builds a watermill message carrying the envelope, with
// the header mirrored into message metadata.
func NewWatermillMessage[T any](topic string, payload T, opts ...func(*EventHeader)) (*message.Message, error) {
	header := NewEventHeader(topic, opts...)
	env := Message[T]{Header: header, Payload: payload}

	data, err := Encode(env)
	if err != nil {
		return nil, err
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("topic", topic)

	if header.TraceID != "" {
		msg.Metadata.Set("trace_id", header.TraceID)
	}

	if header.Producer != "" {
		msg.Metadata.Set("producer", header.Producer)
	}

	msg.Metadata.Set("occurred_at", header.OccurredAt.Format(time.RFC3339Nano))

	if header.Version != "" {
		msg.Metadata.Set("version", header.Version)
	}

	return msg, nil
}

// ParseWatermillMessage decodes the typed envelope out of a watermill
// message.
func ParseWatermillMessage[T any](msg *message.Message) (Message[T], error) {
	return Decode[T](msg.Payload)
}
