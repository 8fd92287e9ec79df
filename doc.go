// Package pgfrontend implements the front-end (client) side of PostgreSQL's
// v3 wire protocol: frame encoding/decoding, transport, the startup/auth
// handshake, and the background receiver that demultiplexes server
// messages for a connection's consumers.
//
// The query/prepared-statement dispatcher, a pooled "typed-result" front
// door, and TLS negotiation policy are out of scope; this package exposes
// the narrow seams (Transport, TLSNegotiator, the outbound queue) those
// layers build on.
package pgfrontend
