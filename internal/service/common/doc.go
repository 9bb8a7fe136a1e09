// Package common holds helpers shared by the command-line services.
//
// It provides a gRPC client for the security-system API with call timeouts,
// decoding of the status snapshot, and detection of the local actor that is
// sent along with write requests.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
