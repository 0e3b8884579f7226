// Package channel implements the persistent bidirectional message
// channel to the shop backend: JSON tuples of the form
// [domain, verb, ...payload] over a websocket, with a per-topic
// dispatcher so concurrent screens never clobber each other's messages.
package channel

import (
	"encoding/json/jsontext"
	"encoding/json/v2"
	"fmt"
)

// Message is one channel tuple. Domain and verb identify the operation
// ("cards"/"filter", "order"/"new", ...); Args carries the remaining
// tuple elements as raw JSON, decoded lazily by the consumer that knows
// their shape.
type Message struct {
	Domain string
	Verb   string
	Args   []jsontext.Value
}

// NewMessage builds a tuple, marshaling each payload element.
func NewMessage(domain, verb string, args ...any) (Message, error) {
	msg := Message{Domain: domain, Verb: verb, Args: make([]jsontext.Value, 0, len(args))}
	for i, arg := range args {
		raw, err := json.Marshal(arg)
		if err != nil {
			return Message{}, fmt.Errorf("marshal tuple element %d: %w", i+2, err)
		}
		msg.Args = append(msg.Args, jsontext.Value(raw))
	}
	return msg, nil
}

// Encode renders the message as a JSON array.
func (m Message) Encode() ([]byte, error) {
	tuple := make([]any, 0, 2+len(m.Args))
	tuple = append(tuple, m.Domain, m.Verb)
	for _, arg := range m.Args {
		tuple = append(tuple, arg)
	}
	data, err := json.Marshal(tuple)
	if err != nil {
		return nil, fmt.Errorf("encode tuple: %w", err)
	}
	return data, nil
}

// DecodeMessage parses a JSON tuple. The first element must be a string
// domain. The second element is the verb when it is a string; tuples
// like ["error", "something broke"] have no verb position, so the
// second element stays in Args and Verb is empty.
func DecodeMessage(data []byte) (Message, error) {
	var tuple []jsontext.Value
	if err := json.Unmarshal(data, &tuple); err != nil {
		return Message{}, fmt.Errorf("decode tuple: %w", err)
	}
	if len(tuple) == 0 {
		return Message{}, fmt.Errorf("decode tuple: empty array")
	}

	var msg Message
	if err := json.Unmarshal(tuple[0], &msg.Domain); err != nil {
		return Message{}, fmt.Errorf("decode tuple domain: %w", err)
	}

	rest := tuple[1:]
	if msg.Domain != "error" && len(rest) > 0 {
		var verb string
		if err := json.Unmarshal(rest[0], &verb); err == nil {
			msg.Verb = verb
			rest = rest[1:]
		}
	}
	msg.Args = rest
	return msg, nil
}

// Arg unmarshals payload element i into dest.
func (m Message) Arg(i int, dest any) error {
	if i < 0 || i >= len(m.Args) {
		return fmt.Errorf("tuple has no payload element %d", i)
	}
	if err := json.Unmarshal(m.Args[i], dest); err != nil {
		return fmt.Errorf("decode payload element %d: %w", i, err)
	}
	return nil
}
