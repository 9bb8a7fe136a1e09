// Package client implements the one-shot securityctl operations.
//
// Each operation connects to the security-system server, performs a single
// request and prints the outcome.
package client
