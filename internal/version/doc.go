// Package version carries the build metadata of the security-system binaries.
//
// Version, Commit and BuildTime are set through -ldflags -X at build time.
package version
