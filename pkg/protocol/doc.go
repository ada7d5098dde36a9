// Package protocol defines the binary wire format between a live engine
// session and a remote client: document mutations flow out as patch
// frames, input events flow in as event frames.
//
// Every frame is one websocket binary message:
//
//	frame type (1 byte) | payload (rest of message)
//
// Payloads use protobuf-style varints for lengths and counts, and
// length-prefixed UTF-8 for strings. Node references travel as the
// document's stable node identifiers.
package protocol
