// Package security implements the gRPC transport for the security system.
//
// It adapts domain types to protobuf well-known types and exposes a server
// that calls into the state-machine controller through a small interface.
package security
